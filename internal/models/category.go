package models

// Category groups projects or products. It has no publish gate; every
// category is visible wherever its type is rendered.
type Category struct {
	Base
	Orderable
	Name  string `gorm:"size:255;not null" json:"name"`
	Slug  string `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Type  string `gorm:"size:32;index;not null" json:"type"`
	Color string `gorm:"size:32" json:"color"`
}
