// Package content implements the ordered-collection pattern shared by every
// CMS resource type: records carry a user-controlled integer display order
// and, for most types, an independent publish gate. One generic Collection
// replaces the per-resource service bodies; resource differences live in Meta.
package content

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultPageSize is used when a public list request does not name a limit.
const DefaultPageSize = 50

// RecordOf constrains the pointer type of a managed model: the collection
// needs the surrogate key and read/write access to the display order. Models
// satisfy it by embedding models.Base and models.Orderable.
type RecordOf[T any] interface {
	*T
	PrimaryKey() uint
	DisplayOrder() int
	SetDisplayOrder(int)
}

// Order is one column of the display ordering.
type Order struct {
	Column string
	Desc   bool
}

// Meta describes how one resource type plugs into the shared behavior.
type Meta struct {
	// VisibilityColumn names the publish gate column (is_published,
	// is_visible). Empty means the type has no gate and the public view
	// returns every record.
	VisibilityColumn string
	// OrderBy is the display ordering. Defaults to sort_order ascending.
	// Ascending id is always appended as the stable tie-break, so equal
	// sort orders resolve in insertion order.
	OrderBy []Order
	// SearchColumns are matched by Search filters.
	SearchColumns []string
	// NaturalKeyColumn is the public lookup key (slug, section_key).
	// Empty when the type has none.
	NaturalKeyColumn string
}

// Placement is one entry of a bulk reorder request.
type Placement struct {
	ID        uint `json:"id"`
	SortOrder int  `json:"sortOrder"`
}

// PageResult is the public read view envelope: one page of records plus the
// pre-pagination match count.
type PageResult[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// Query selects and pages a public read view.
type Query struct {
	Filters []Filter
	Page    int
	Limit   int
}

// Collection manages the records of one resource type.
type Collection[T any, P RecordOf[T]] struct {
	db   *gorm.DB
	meta Meta
}

// New builds a collection over db for the resource type described by meta.
func New[T any, P RecordOf[T]](db *gorm.DB, meta Meta) *Collection[T, P] {
	if len(meta.OrderBy) == 0 {
		meta.OrderBy = []Order{{Column: "sort_order"}}
	}
	return &Collection[T, P]{db: db, meta: meta}
}

// Create persists rec. A zero display order means "append": the next value
// past the current maximum for the type (1 when empty) is computed inside
// the insert transaction. An explicit order is stored verbatim; duplicates
// are tolerated and resolved by the stable tie-break.
func (c *Collection[T, P]) Create(ctx context.Context, rec P) error {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if rec.DisplayOrder() == 0 {
			next, err := c.nextSortOrder(tx)
			if err != nil {
				return err
			}
			rec.SetDisplayOrder(next)
		}
		return tx.Create(rec).Error
	})
	return Translate(err)
}

// Get fetches one record by surrogate id.
func (c *Collection[T, P]) Get(ctx context.Context, id uint) (P, error) {
	rec := P(new(T))
	if err := c.db.WithContext(ctx).First(rec, id).Error; err != nil {
		var zero P
		return zero, Translate(err)
	}
	return rec, nil
}

// GetByKey fetches one record by its natural key. The lookup is not gated:
// direct links keep working while a record is unpublished.
func (c *Collection[T, P]) GetByKey(ctx context.Context, key string) (P, error) {
	var zero P
	if c.meta.NaturalKeyColumn == "" {
		return zero, fmt.Errorf("%w: resource has no natural key", ErrInvalid)
	}
	rec := P(new(T))
	err := c.db.WithContext(ctx).Where(c.meta.NaturalKeyColumn+" = ?", key).First(rec).Error
	if err != nil {
		return zero, Translate(err)
	}
	return rec, nil
}

// Update saves every field of rec.
func (c *Collection[T, P]) Update(ctx context.Context, rec P) error {
	return Translate(c.db.WithContext(ctx).Save(rec).Error)
}

// Delete removes one record. Gaps left in the display order are permitted
// and ignored by readers.
func (c *Collection[T, P]) Delete(ctx context.Context, id uint) error {
	res := c.db.WithContext(ctx).Delete(P(new(T)), id)
	if res.Error != nil {
		return Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return nil
}

// List returns the public read view: gated, filtered, ordered, paginated,
// with the pre-pagination total.
func (c *Collection[T, P]) List(ctx context.Context, q Query) (*PageResult[T], error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageSize
	}

	base := func() *gorm.DB {
		tx := c.db.WithContext(ctx).Model(P(new(T)))
		if c.meta.VisibilityColumn != "" {
			tx = tx.Where(c.meta.VisibilityColumn+" = ?", true)
		}
		return applyFilters(tx, c.meta, q.Filters)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, Translate(err)
	}

	out := []T{}
	err := c.ordered(base()).Offset((q.Page - 1) * q.Limit).Limit(q.Limit).Find(&out).Error
	if err != nil {
		return nil, Translate(err)
	}

	return &PageResult[T]{Data: out, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

// ListAll returns the whole gated view in display order, unpaginated. Used
// by the public endpoints that render complete collections (products,
// landing sections, categories, tech stacks).
func (c *Collection[T, P]) ListAll(ctx context.Context, filters ...Filter) ([]T, error) {
	tx := c.db.WithContext(ctx).Model(P(new(T)))
	if c.meta.VisibilityColumn != "" {
		tx = tx.Where(c.meta.VisibilityColumn+" = ?", true)
	}
	out := []T{}
	err := c.ordered(applyFilters(tx, c.meta, filters)).Find(&out).Error
	if err != nil {
		return nil, Translate(err)
	}
	return out, nil
}

// ListAdmin returns every record regardless of the publish gate, in display
// order, unpaginated. Admin lists are small enough to return whole.
func (c *Collection[T, P]) ListAdmin(ctx context.Context, filters ...Filter) ([]T, error) {
	tx := c.db.WithContext(ctx).Model(P(new(T)))
	out := []T{}
	err := c.ordered(applyFilters(tx, c.meta, filters)).Find(&out).Error
	if err != nil {
		return nil, Translate(err)
	}
	return out, nil
}

// Reorder atomically rewrites the display order of the listed records. Every
// id must belong to this resource type; one unknown id rolls the whole batch
// back, so readers never observe a partially applied reorder. Submitting the
// same payload twice is idempotent.
func (c *Collection[T, P]) Reorder(ctx context.Context, items []Placement) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: empty reorder payload", ErrInvalid)
	}
	for _, it := range items {
		if it.ID == 0 {
			return fmt.Errorf("%w: reorder item missing id", ErrInvalid)
		}
	}

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, it := range items {
			res := tx.Model(P(new(T))).Where("id = ?", it.ID).Update("sort_order", it.SortOrder)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: id %d", ErrNotFound, it.ID)
			}
		}
		return nil
	})
	return Translate(err)
}

// SetVisibility sets or, when visible is nil, inverts the publish gate of
// one record by id and returns the updated record.
func (c *Collection[T, P]) SetVisibility(ctx context.Context, id uint, visible *bool) (P, error) {
	return c.setVisibility(ctx, "id = ?", id, visible)
}

// SetVisibilityByKey is SetVisibility addressed by natural key.
func (c *Collection[T, P]) SetVisibilityByKey(ctx context.Context, key string, visible *bool) (P, error) {
	var zero P
	if c.meta.NaturalKeyColumn == "" {
		return zero, fmt.Errorf("%w: resource has no natural key", ErrInvalid)
	}
	return c.setVisibility(ctx, c.meta.NaturalKeyColumn+" = ?", key, visible)
}

func (c *Collection[T, P]) setVisibility(ctx context.Context, cond string, arg any, visible *bool) (P, error) {
	var zero P
	if c.meta.VisibilityColumn == "" {
		return zero, fmt.Errorf("%w: resource has no visibility flag", ErrInvalid)
	}

	rec := P(new(T))
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current []bool
		if err := tx.Model(P(new(T))).Where(cond, arg).Pluck(c.meta.VisibilityColumn, &current).Error; err != nil {
			return err
		}
		if len(current) == 0 {
			return gorm.ErrRecordNotFound
		}

		target := !current[0]
		if visible != nil {
			target = *visible
		}
		if err := tx.Model(P(new(T))).Where(cond, arg).Update(c.meta.VisibilityColumn, target).Error; err != nil {
			return err
		}
		return tx.Where(cond, arg).First(rec).Error
	})
	if err != nil {
		return zero, Translate(err)
	}
	return rec, nil
}

// DistinctInts returns the distinct values of an integer column, descending.
// publicOnly applies the visibility gate; used to build facet pickers such
// as the academy year filter.
func (c *Collection[T, P]) DistinctInts(ctx context.Context, column string, publicOnly bool) ([]int, error) {
	tx := c.db.WithContext(ctx).Model(P(new(T)))
	if publicOnly && c.meta.VisibilityColumn != "" {
		tx = tx.Where(c.meta.VisibilityColumn+" = ?", true)
	}
	out := []int{}
	err := tx.Distinct(column).Order(column + " DESC").Pluck(column, &out).Error
	if err != nil {
		return nil, Translate(err)
	}
	return out, nil
}

func (c *Collection[T, P]) nextSortOrder(tx *gorm.DB) (int, error) {
	var current sql.NullInt64
	err := tx.Model(P(new(T))).Select("MAX(sort_order)").Scan(&current).Error
	if err != nil {
		return 0, err
	}
	return int(current.Int64) + 1, nil
}

func (c *Collection[T, P]) ordered(tx *gorm.DB) *gorm.DB {
	for _, o := range c.meta.OrderBy {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc})
	}
	return tx.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
}
