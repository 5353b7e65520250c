package model

import "time"

// SignLink is a single-use, time-boxed capability credential. It is never
// updated: redemption deletes the row after the contract transition commits,
// and a replaced link is deleted before its successor is created.
type SignLink struct {
	BaseModel
	Token      string    `gorm:"type:text;not null;uniqueIndex" json:"token"`
	ContractID string    `gorm:"type:text;not null;index" json:"contractId"`
	CustomerID string    `gorm:"type:text;not null" json:"customerId"`
	ExpiresAt  time.Time `gorm:"type:timestamptz;not null" json:"expiresAt"`

	Contract Contract `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"contract" form:"-"`
	Customer Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-" form:"-"`
}

func (sl SignLink) TableName() string {
	return "sign_links"
}

func (sl SignLink) IsExpired(now time.Time) bool {
	return sl.ExpiresAt.Before(now)
}
