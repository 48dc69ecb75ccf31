package models

import "time"

// Base carries the surrogate primary key and timestamps shared by every table.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) PrimaryKey() uint { return b.ID }

// Orderable is embedded by every resource that participates in the
// drag-and-drop display order. A zero SortOrder means "unassigned"; the
// content collection appends such records after the current maximum.
type Orderable struct {
	SortOrder int `gorm:"index;default:0" json:"sortOrder"`
}

func (o *Orderable) DisplayOrder() int     { return o.SortOrder }
func (o *Orderable) SetDisplayOrder(n int) { o.SortOrder = n }
