package model

type Package struct {
	BaseModel
	Name  string   `gorm:"type:varchar(120);not null" json:"name" form:"name" binding:"required"`
	Price *float64 `gorm:"type:numeric(10,2)" json:"price" form:"price"`

	OrganizationID string       `gorm:"type:text;not null;index" json:"organizationId" form:"organizationId"`
	Organization   Organization `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-" form:"-"`

	// Addons bundled into the package. An addon present both here and on a
	// contract's addon links renders as "included via package".
	Addons []Addon `gorm:"many2many:package_addons;" json:"addons" form:"-"`
}

func (p Package) TableName() string {
	return "packages"
}

// HasAddon reports whether the package bundles the given addon.
func (p Package) HasAddon(addonID string) bool {
	for _, a := range p.Addons {
		if a.ID == addonID {
			return true
		}
	}
	return false
}
