package contract

import (
	"fmt"

	constant "github.com/narith-dev/RentSign/internal/constant"
	"github.com/narith-dev/RentSign/internal/errs"
	"github.com/narith-dev/RentSign/internal/model"
)

// Action is something that may move a contract to a new status.
type Action string

const (
	// An operator requests a signature link for the customer.
	ActionIssueLink Action = "issue_link"
	// The customer redeems a signature link.
	ActionRedeemLink Action = "redeem_link"
	// An operator generates the PDF without a signature flow.
	ActionManualGenerate Action = "manual_generate"
	// An operator uploads an externally signed PDF.
	ActionManualUpload Action = "manual_upload"
)

// Next returns the status a contract moves to when the action applies from
// the current status. Redemption is only legal while a signature is pending;
// the other actions are administrative and allowed from any status.
func Next(current constant.ContractStatus, action Action) (constant.ContractStatus, error) {
	switch action {
	case ActionIssueLink:
		return constant.ContractStatusPendingSignature, nil
	case ActionRedeemLink:
		if current != constant.ContractStatusPendingSignature {
			return current, errs.Conflict(fmt.Sprintf("contract in status %s cannot be signed through a link", current))
		}
		return constant.ContractStatusSignedElectronically, nil
	case ActionManualGenerate:
		return constant.ContractStatusPending, nil
	case ActionManualUpload:
		return constant.ContractStatusSigned, nil
	default:
		return current, errs.Validation(fmt.Sprintf("unknown contract action %q", action))
	}
}

// Guard validates the action's preconditions against the full contract
// record. It never mutates anything: a failed guard leaves the contract
// untouched.
func Guard(c *model.Contract, action Action) error {
	if c == nil {
		return errs.NotFound("contract not found")
	}

	if c.Lifecycle() == constant.LifecycleSoftDeleted {
		return errs.Validation("contract is deleted")
	}

	if action == ActionIssueLink && c.CustomerEmail() == "" {
		return errs.Validation("contract customer has no email address")
	}

	return nil
}

// Transition runs Guard then Next in one step.
func Transition(c *model.Contract, action Action) (constant.ContractStatus, error) {
	if err := Guard(c, action); err != nil {
		return "", err
	}

	return Next(c.Status, action)
}
