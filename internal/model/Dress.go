package model

type Dress struct {
	BaseModel
	Name  string   `gorm:"type:varchar(120);not null" json:"name" form:"name" binding:"required"`
	Size  string   `gorm:"type:varchar(20)" json:"size" form:"size"`
	Color string   `gorm:"type:varchar(40)" json:"color" form:"color"`
	Price *float64 `gorm:"type:numeric(10,2)" json:"price" form:"price"`

	OrganizationID string       `gorm:"type:text;not null;index" json:"organizationId" form:"organizationId"`
	Organization   Organization `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-" form:"-"`
}

func (d Dress) TableName() string {
	return "dresses"
}

type ContractDress struct {
	BaseModel
	ContractID string `gorm:"type:text;not null;index" json:"contractId" form:"contractId"`
	DressID    string `gorm:"type:text;not null" json:"dressId" form:"dressId" binding:"required"`

	Dress Dress `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"dress" form:"-"`
}

func (cd ContractDress) TableName() string {
	return "contract_dresses"
}
