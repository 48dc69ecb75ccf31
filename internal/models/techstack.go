package models

// TechStack is a technology badge shown in the site-wide ticker. Ungated,
// ordered like every other collection.
type TechStack struct {
	Base
	Orderable
	Name  string `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Icon  string `gorm:"size:128" json:"icon"`
	Color string `gorm:"size:32" json:"color"`
}
