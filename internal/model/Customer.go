package model

import "strings"

type Customer struct {
	BaseModel
	FirstName string `gorm:"type:varchar(100);not null" json:"firstName" form:"firstName" binding:"required"`
	LastName  string `gorm:"type:varchar(100);not null" json:"lastName" form:"lastName" binding:"required"`
	Email     string `gorm:"type:text" json:"email" form:"email"`
	Phone     string `gorm:"type:varchar(30)" json:"phone" form:"phone"`

	OrganizationID string       `gorm:"type:text;not null;index" json:"organizationId" form:"organizationId"`
	Organization   Organization `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-" form:"-"`
}

func (c Customer) TableName() string {
	return "customers"
}

func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
