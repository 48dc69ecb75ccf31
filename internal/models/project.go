package models

// Project is a client engagement shown in the portfolio section.
type Project struct {
	Base
	Orderable
	Slug        string     `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Category    string     `gorm:"size:64;index" json:"category"`
	Image       string     `gorm:"size:512" json:"image"`
	TechStack   StringList `gorm:"type:text" json:"techStack"`
	Challenge   string     `gorm:"type:text" json:"challenge"`
	Solution    string     `gorm:"type:text" json:"solution"`
	DeepDive    string     `gorm:"type:text" json:"deepDive"`
	Gallery     StringList `gorm:"type:text" json:"gallery"`
	Stats       StatList   `gorm:"type:text" json:"stats"`
	IsPublished bool       `gorm:"index;default:false" json:"isPublished"`
}
