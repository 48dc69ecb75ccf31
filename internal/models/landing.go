package models

// LandingSection is one block of the landing page, addressed by its stable
// sectionKey rather than the numeric id. Sections exist from seeding onward;
// admins edit, reorder and hide them but do not create new ones.
type LandingSection struct {
	Base
	Orderable
	SectionKey string  `gorm:"size:64;uniqueIndex;not null" json:"sectionKey"`
	Title      string  `gorm:"size:512" json:"title"`
	Subtitle   string  `gorm:"size:512" json:"subtitle"`
	Content    JSONMap `gorm:"type:text" json:"content"`
	IsVisible  bool    `gorm:"index;default:true" json:"isVisible"`
}
