package models

// Media is an uploaded file. The stored filename is randomized; OriginalName
// keeps what the uploader called it.
type Media struct {
	Base
	Filename     string `gorm:"size:255;not null" json:"filename"`
	OriginalName string `gorm:"size:255" json:"originalName"`
	MimeType     string `gorm:"size:128;index" json:"mimeType"`
	Size         int64  `json:"size"`
	Path         string `gorm:"size:512" json:"path"`
}
