package model

type ContractType struct {
	BaseModel
	// Name drives the compiled-in clause category fallback when no stored
	// template applies, e.g. "Forfait mariage" or "Location par jour".
	Name string `gorm:"type:varchar(120);not null" json:"name" form:"name" binding:"required"`

	OrganizationID string       `gorm:"type:text;not null;index" json:"organizationId" form:"organizationId"`
	Organization   Organization `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-" form:"-"`
}

func (ct ContractType) TableName() string {
	return "contract_types"
}
