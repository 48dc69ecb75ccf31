package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gosimple/slug"

	"github.com/rynvlabs/cms/internal/models"
	"github.com/rynvlabs/cms/pkg/content"
)

type CategoriesHandler struct {
	coll *content.Collection[models.Category, *models.Category]
}

func NewCategoriesHandler(coll *content.Collection[models.Category, *models.Category]) *CategoriesHandler {
	return &CategoriesHandler{coll: coll}
}

type categoryPayload struct {
	Name      *string `json:"name"`
	Slug      *string `json:"slug"`
	Type      *string `json:"type"`
	Color     *string `json:"color"`
	SortOrder *int    `json:"sortOrder"`
}

func categoryFilters(r *http.Request) []content.Filter {
	var filters []content.Filter
	if t := r.URL.Query().Get("type"); t != "" {
		filters = append(filters, content.Facet{Column: "type", Value: strings.ToUpper(t)})
	}
	return filters
}

// List returns categories in display order, optionally narrowed by type.
// Categories have no publish gate.
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	recs, err := h.coll.ListAll(r.Context(), categoryFilters(r)...)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, recs, http.StatusOK)
}

func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p categoryPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, fmt.Errorf("%w: %v", content.ErrInvalid, err))
		return
	}

	name := strDeref(p.Name)
	typ := strDeref(p.Type)
	if name == "" || typ == "" {
		writeError(w, fmt.Errorf("%w: name and type are required", content.ErrInvalid))
		return
	}

	rec := models.Category{
		Name:  name,
		Slug:  slugOr(p.Slug, name),
		Type:  strings.ToUpper(typ),
		Color: strDeref(p.Color),
	}
	if p.SortOrder != nil {
		rec.SortOrder = *p.SortOrder
	}

	if err := h.coll.Create(r.Context(), &rec); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, rec, http.StatusCreated)
}

func (h *CategoriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var p categoryPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, fmt.Errorf("%w: %v", content.ErrInvalid, err))
		return
	}

	rec, err := h.coll.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	if p.Name != nil && *p.Name != "" {
		if *p.Name != rec.Name && strDeref(p.Slug) == "" {
			rec.Slug = slug.Make(*p.Name)
		}
		rec.Name = *p.Name
	}
	if s := strDeref(p.Slug); s != "" {
		rec.Slug = s
	}
	if p.Type != nil {
		rec.Type = strings.ToUpper(*p.Type)
	}
	if p.Color != nil {
		rec.Color = *p.Color
	}
	if p.SortOrder != nil {
		rec.SortOrder = *p.SortOrder
	}

	if err := h.coll.Update(r.Context(), rec); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, rec, http.StatusOK)
}

func (h *CategoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rec, err := h.coll.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.coll.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, rec, http.StatusOK)
}

func (h *CategoriesHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	items, err := decodeReorder(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.coll.Reorder(r.Context(), items); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]bool{"success": true}, http.StatusOK)
}
