package model

import "time"

type ContractTemplate struct {
	BaseModel
	// Content is a placeholder-grammar template body, never executed as code.
	Content        string `gorm:"type:text;not null" json:"content" form:"content" binding:"required"`
	ContractTypeID string `gorm:"type:text;not null;index" json:"contractTypeId" form:"contractTypeId"`
	// Null means the template is global, shared across organizations.
	OrganizationID *string    `gorm:"type:text;index" json:"organizationId" form:"organizationId"`
	IsDefault      bool       `gorm:"type:boolean;default:false" json:"isDefault" form:"isDefault"`
	IsActive       bool       `gorm:"type:boolean;default:true" json:"isActive" form:"isActive"`
	DeletedAt      *time.Time `gorm:"type:timestamptz" json:"-"`

	ContractType ContractType `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-" form:"-"`
}

func (ct ContractTemplate) TableName() string {
	return "contract_templates"
}
