package model

type Organization struct {
	BaseModel
	Name string `gorm:"type:varchar(120);not null" json:"name" form:"name" binding:"required"`
}

func (o Organization) TableName() string {
	return "organizations"
}
