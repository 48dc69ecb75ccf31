package content

import (
	"strings"

	"gorm.io/gorm"
)

// Filter narrows a read view. The two variants mirror the query parameters
// the HTTP layer accepts: a free-text search and a single-column facet.
type Filter interface {
	apply(tx *gorm.DB, meta Meta) *gorm.DB
}

// Search matches Term as a substring of the collection's configured search
// columns (any column matching is enough).
type Search struct {
	Term string
}

func (s Search) apply(tx *gorm.DB, meta Meta) *gorm.DB {
	if s.Term == "" || len(meta.SearchColumns) == 0 {
		return tx
	}
	pattern := "%" + s.Term + "%"
	conds := make([]string, 0, len(meta.SearchColumns))
	args := make([]any, 0, len(meta.SearchColumns))
	for _, col := range meta.SearchColumns {
		conds = append(conds, col+" LIKE ?")
		args = append(args, pattern)
	}
	return tx.Where(strings.Join(conds, " OR "), args...)
}

// Facet constrains one column to an exact value.
type Facet struct {
	Column string
	Value  any
}

func (f Facet) apply(tx *gorm.DB, _ Meta) *gorm.DB {
	if f.Column == "" {
		return tx
	}
	return tx.Where(f.Column+" = ?", f.Value)
}

func applyFilters(tx *gorm.DB, meta Meta, filters []Filter) *gorm.DB {
	for _, f := range filters {
		if f != nil {
			tx = f.apply(tx, meta)
		}
	}
	return tx
}
