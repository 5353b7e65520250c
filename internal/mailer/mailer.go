package mailer

import "embed"

const (
	FROM_NAME = "RentSign"
	MAX_RETRY = 3
)

// MailTemplateFile names a template under templates/. Each template defines
// a "subject" and a "body" block.
type MailTemplateFile string

const (
	TemplateSignRequest    MailTemplateFile = "sign_request.tmpl"
	TemplateContractSigned MailTemplateFile = "contract_signed.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile, toUsername, toEmail string, data any) (int, error)
}

// SignRequestData feeds the signature request mail sent to the customer.
type SignRequestData struct {
	CustomerName   string `json:"customerName"`
	ContractNumber string `json:"contractNumber"`
	SignURL        string `json:"signUrl"`
	ExpiresAt      string `json:"expiresAt"`
}

// ContractSignedData feeds the confirmation mail sent once a contract has
// been signed electronically.
type ContractSignedData struct {
	CustomerName   string `json:"customerName"`
	ContractNumber string `json:"contractNumber"`
	SignedAt       string `json:"signedAt"`
	DownloadURL    string `json:"downloadUrl"`
}
