package models

// SiteSetting is one key/value pair of site-wide configuration. Values are
// arbitrary JSON decided by the admin UI.
type SiteSetting struct {
	Base
	Key   string    `gorm:"size:128;uniqueIndex;not null" json:"key"`
	Value JSONValue `gorm:"type:text" json:"value"`
}
