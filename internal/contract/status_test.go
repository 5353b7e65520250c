package contract

import (
	"testing"
	"time"

	constant "github.com/narith-dev/RentSign/internal/constant"
	"github.com/narith-dev/RentSign/internal/errs"
	"github.com/narith-dev/RentSign/internal/model"
)

func activeContract(status constant.ContractStatus) *model.Contract {
	return &model.Contract{
		Status: status,
		Customer: model.Customer{
			FirstName: "Marie",
			LastName:  "Durand",
			Email:     "marie@example.com",
		},
	}
}

func TestNext(t *testing.T) {
	tests := []struct {
		name    string
		current constant.ContractStatus
		action  Action
		want    constant.ContractStatus
		wantErr bool
	}{
		{"issue from pending", constant.ContractStatusPending, ActionIssueLink, constant.ContractStatusPendingSignature, false},
		{"issue again reissues", constant.ContractStatusPendingSignature, ActionIssueLink, constant.ContractStatusPendingSignature, false},
		{"redeem pending signature", constant.ContractStatusPendingSignature, ActionRedeemLink, constant.ContractStatusSignedElectronically, false},
		{"redeem from pending rejected", constant.ContractStatusPending, ActionRedeemLink, "", true},
		{"redeem twice rejected", constant.ContractStatusSignedElectronically, ActionRedeemLink, "", true},
		{"manual generate resets", constant.ContractStatusSignedElectronically, ActionManualGenerate, constant.ContractStatusPending, false},
		{"manual upload from any", constant.ContractStatusPendingSignature, ActionManualUpload, constant.ContractStatusSigned, false},
		{"unknown action", constant.ContractStatusPending, Action("nope"), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Next(tt.current, tt.action)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Next() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Next() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGuard(t *testing.T) {
	t.Run("nil contract", func(t *testing.T) {
		err := Guard(nil, ActionIssueLink)
		if !errs.Is(err, errs.KindNotFound) {
			t.Errorf("expected not-found error, got %v", err)
		}
	})

	t.Run("missing customer email", func(t *testing.T) {
		c := activeContract(constant.ContractStatusPending)
		c.Customer.Email = ""

		err := Guard(c, ActionIssueLink)
		if !errs.Is(err, errs.KindValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("soft deleted contract", func(t *testing.T) {
		c := activeContract(constant.ContractStatusPending)
		now := time.Now()
		c.DeletedAt = &now

		err := Guard(c, ActionManualGenerate)
		if !errs.Is(err, errs.KindValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("healthy contract passes", func(t *testing.T) {
		if err := Guard(activeContract(constant.ContractStatusPending), ActionIssueLink); err != nil {
			t.Errorf("Guard() error = %v", err)
		}
	})
}

func TestTransitionLeavesStatusOnFailure(t *testing.T) {
	c := activeContract(constant.ContractStatusPending)

	if _, err := Transition(c, ActionRedeemLink); err == nil {
		t.Fatal("expected redeem from PENDING to fail")
	}

	if c.Status != constant.ContractStatusPending {
		t.Errorf("failed transition mutated status to %s", c.Status)
	}
}
