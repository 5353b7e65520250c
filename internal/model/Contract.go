package model

import (
	"time"

	constant "github.com/narith-dev/RentSign/internal/constant"
)

type Contract struct {
	BaseModel
	// Human-readable number, unique within an organization.
	ContractNumber string                  `gorm:"type:varchar(60);not null;index:idx_contract_number_org,unique,composite:org" json:"contractNumber" form:"contractNumber" binding:"required"`
	Status         constant.ContractStatus `gorm:"type:varchar(30);default:'PENDING';not null" json:"status" form:"status"`

	StartAt *time.Time `gorm:"type:timestamptz" json:"startAt" form:"startAt"`
	EndAt   *time.Time `gorm:"type:timestamptz" json:"endAt" form:"endAt"`

	AccountAmount        *float64 `gorm:"type:numeric(10,2)" json:"accountAmount" form:"accountAmount"`
	CautionAmount        *float64 `gorm:"type:numeric(10,2)" json:"cautionAmount" form:"cautionAmount"`
	TotalHT              *float64 `gorm:"type:numeric(10,2)" json:"totalHt" form:"totalHt"`
	TotalTTC             *float64 `gorm:"type:numeric(10,2)" json:"totalTtc" form:"totalTtc"`
	PaidAccount          *float64 `gorm:"type:numeric(10,2)" json:"paidAccount" form:"paidAccount"`
	PaidCaution          *float64 `gorm:"type:numeric(10,2)" json:"paidCaution" form:"paidCaution"`
	DepositPaymentMethod string   `gorm:"type:varchar(40)" json:"depositPaymentMethod" form:"depositPaymentMethod"`

	SignedAt          *time.Time `gorm:"type:timestamptz" json:"signedAt"`
	SignatureIP       string     `gorm:"type:varchar(60)" json:"signatureIp"`
	SignatureLocation string     `gorm:"type:text" json:"signatureLocation"`
	// The redeemed sign-link token, retained as audit trail after the link
	// row itself is deleted. Also gates the public download path.
	SignatureReference string `gorm:"type:text" json:"signatureReference"`
	SignedPdfURL       string `gorm:"type:text" json:"signedPdfUrl"`

	// Optional per-contract template override.
	TemplateID *string `gorm:"type:text" json:"templateId" form:"templateId"`

	OrganizationID string  `gorm:"type:text;not null;index:idx_contract_number_org,unique,composite:org" json:"organizationId" form:"organizationId"`
	CustomerID     string  `gorm:"type:text;not null" json:"customerId" form:"customerId" binding:"required"`
	ContractTypeID string  `gorm:"type:text;not null" json:"contractTypeId" form:"contractTypeId" binding:"required"`
	PackageID      *string `gorm:"type:text" json:"packageId" form:"packageId"`

	DeletedAt *time.Time `gorm:"type:timestamptz;index" json:"deletedAt"`
	DeletedBy *string    `gorm:"type:text" json:"-"`
	CreatedBy *string    `gorm:"type:text" json:"-"`
	UpdatedBy *string    `gorm:"type:text" json:"-"`

	Organization Organization `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-" form:"-"`
	Customer     Customer     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"customer" form:"-"`
	ContractType ContractType `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"contractType" form:"-"`
	Package      *Package     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"package,omitempty" form:"-"`

	AddonLinks []ContractAddon `gorm:"foreignKey:ContractID" json:"addonLinks" form:"-"`
	Dresses    []ContractDress `gorm:"foreignKey:ContractID" json:"dresses" form:"-"`
}

func (c Contract) TableName() string {
	return "contracts"
}

// Lifecycle reports the row lifecycle independent of signature status. Hard
// deleted rows do not exist, so only two states remain observable.
func (c Contract) Lifecycle() constant.Lifecycle {
	if c.DeletedAt != nil {
		return constant.LifecycleSoftDeleted
	}
	return constant.LifecycleActive
}

// CustomerEmail resolves the signer email, empty when none is usable.
func (c Contract) CustomerEmail() string {
	return c.Customer.Email
}
