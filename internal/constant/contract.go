package constant

import "time"

const QUERY_TIMEOUT_DURATION = 5 * time.Second

const (
	REQUEST_SUCCESSFUL   = "Request successful"
	REQUEST_UNSUCCESSFUL = "Request unsuccessful"
)

type ContractStatus string

const (
	// Draft contract, nothing sent to the customer yet. Manual PDF
	// generation also resets a contract to this status.
	ContractStatusPending ContractStatus = "PENDING"
	// A signature link has been issued and is awaiting redemption.
	ContractStatusPendingSignature ContractStatus = "PENDING_SIGNATURE"
	// Signed through a redeemed signature link.
	ContractStatusSignedElectronically ContractStatus = "SIGNED_ELECTRONICALLY"
	// Signed outside the system, the operator uploaded the signed PDF.
	ContractStatusSigned ContractStatus = "SIGNED"
)

// Lifecycle of a row independent of its signature status.
type Lifecycle int

const (
	LifecycleActive Lifecycle = iota
	LifecycleSoftDeleted
)

// Folder segment under the tenant prefix where contract documents live.
const ContractDocumentFolder = "contracts"

// Recorded when the signer's address or location cannot be determined.
const UnknownSignerValue = "unknown"
