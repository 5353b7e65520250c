package model

type Addon struct {
	BaseModel
	Name  string   `gorm:"type:varchar(120);not null" json:"name" form:"name" binding:"required"`
	Price *float64 `gorm:"type:numeric(10,2)" json:"price" form:"price"`

	OrganizationID string       `gorm:"type:text;not null;index" json:"organizationId" form:"organizationId"`
	Organization   Organization `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-" form:"-"`
}

func (a Addon) TableName() string {
	return "addons"
}

// ContractAddon links an addon to a contract with the price agreed at
// contract time.
type ContractAddon struct {
	BaseModel
	ContractID string   `gorm:"type:text;not null;index" json:"contractId" form:"contractId"`
	AddonID    string   `gorm:"type:text;not null" json:"addonId" form:"addonId" binding:"required"`
	Price      *float64 `gorm:"type:numeric(10,2)" json:"price" form:"price"`

	Addon Addon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"addon" form:"-"`
}

func (ca ContractAddon) TableName() string {
	return "contract_addons"
}
