package models

// Product is an in-house product highlighted on the marketing site.
type Product struct {
	Base
	Orderable
	Slug        string      `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Title       string      `gorm:"size:255;not null" json:"title"`
	Description string      `gorm:"type:text;not null" json:"description"`
	Category    string      `gorm:"size:64;index" json:"category"`
	Image       string      `gorm:"size:512" json:"image"`
	Features    FeatureList `gorm:"type:text" json:"features"`
	Specs       string      `gorm:"type:text" json:"specs"`
	Stats       StatList    `gorm:"type:text" json:"stats"`
	Background  string      `gorm:"type:text" json:"background"`
	Solution    string      `gorm:"type:text" json:"solution"`
	IsPublished bool        `gorm:"index;default:false" json:"isPublished"`
}
