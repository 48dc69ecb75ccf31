package models

// AcademyProject is an academic case study. The public listing groups by year
// descending before falling back to the shared display order.
type AcademyProject struct {
	Base
	Orderable
	Slug          string     `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Description   string     `gorm:"type:text;not null" json:"description"`
	TechStack     StringList `gorm:"type:text" json:"techStack"`
	Abstract      string     `gorm:"type:text" json:"abstract"`
	Methodology   string     `gorm:"type:text" json:"methodology"`
	Results       string     `gorm:"type:text" json:"results"`
	Image         string     `gorm:"size:512" json:"image"`
	WiringDiagram string     `gorm:"size:512" json:"wiringDiagram"`
	Gallery       StringList `gorm:"type:text" json:"gallery"`
	Year          int        `gorm:"index;not null" json:"year"`
	IsPublished   bool       `gorm:"index;default:false" json:"isPublished"`
}
