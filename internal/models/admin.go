package models

// Admin is a dashboard account. Password holds the bcrypt hash.
type Admin struct {
	Base
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`
}
