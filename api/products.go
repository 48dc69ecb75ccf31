package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gosimple/slug"

	"github.com/rynvlabs/cms/internal/models"
	"github.com/rynvlabs/cms/pkg/content"
)

type ProductsHandler struct {
	coll *content.Collection[models.Product, *models.Product]
}

func NewProductsHandler(coll *content.Collection[models.Product, *models.Product]) *ProductsHandler {
	return &ProductsHandler{coll: coll}
}

type productPayload struct {
	Title       *string             `json:"title"`
	Slug        *string             `json:"slug"`
	Description *string             `json:"description"`
	Category    *string             `json:"category"`
	Image       *string             `json:"image"`
	Features    *models.FeatureList `json:"features"`
	Specs       *string             `json:"specs"`
	Stats       *models.StatList    `json:"stats"`
	Background  *string             `json:"background"`
	Solution    *string             `json:"solution"`
	SortOrder   *int                `json:"sortOrder"`
	IsPublished *bool               `json:"isPublished"`
}

// List returns every published product in display order. The catalog is
// small; no pagination.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	recs, err := h.coll.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, recs, http.StatusOK)
}

func (h *ProductsHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	rec, err := h.coll.GetByKey(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, rec, http.StatusOK)
}

func (h *ProductsHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	recs, err := h.coll.ListAdmin(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, recs, http.StatusOK)
}

func (h *ProductsHandler) AdminGet(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, rec, http.StatusOK)
}

func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p productPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, fmt.Errorf("%w: %v", content.ErrInvalid, err))
		return
	}

	title := strDeref(p.Title)
	description := strDeref(p.Description)
	if title == "" || description == "" {
		writeError(w, fmt.Errorf("%w: title and description are required", content.ErrInvalid))
		return
	}

	rec := models.Product{
		Title:       title,
		Slug:        slugOr(p.Slug, title),
		Description: description,
		Category:    strings.ToUpper(strDeref(p.Category)),
		Image:       strDeref(p.Image),
		Specs:       strDeref(p.Specs),
		Background:  strDeref(p.Background),
		Solution:    strDeref(p.Solution),
	}
	if p.Features != nil {
		rec.Features = *p.Features
	}
	if p.Stats != nil {
		rec.Stats = *p.Stats
	}
	if p.SortOrder != nil {
		rec.SortOrder = *p.SortOrder
	}
	if p.IsPublished != nil {
		rec.IsPublished = *p.IsPublished
	}

	if err := h.coll.Create(r.Context(), &rec); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, rec, http.StatusCreated)
}

func (h *ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var p productPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, fmt.Errorf("%w: %v", content.ErrInvalid, err))
		return
	}

	rec, err := h.coll.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	if p.Title != nil && *p.Title != "" {
		if *p.Title != rec.Title && strDeref(p.Slug) == "" {
			rec.Slug = slug.Make(*p.Title)
		}
		rec.Title = *p.Title
	}
	if s := strDeref(p.Slug); s != "" {
		rec.Slug = s
	}
	if p.Description != nil {
		rec.Description = *p.Description
	}
	if p.Category != nil {
		rec.Category = strings.ToUpper(*p.Category)
	}
	if p.Image != nil {
		rec.Image = *p.Image
	}
	if p.Features != nil {
		rec.Features = *p.Features
	}
	if p.Specs != nil {
		rec.Specs = *p.Specs
	}
	if p.Stats != nil {
		rec.Stats = *p.Stats
	}
	if p.Background != nil {
		rec.Background = *p.Background
	}
	if p.Solution != nil {
		rec.Solution = *p.Solution
	}
	if p.SortOrder != nil {
		rec.SortOrder = *p.SortOrder
	}
	if p.IsPublished != nil {
		rec.IsPublished = *p.IsPublished
	}

	if err := h.coll.Update(r.Context(), rec); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, rec, http.StatusOK)
}

func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *ProductsHandler) Reorder(w http.ResponseWriter, r *http.Request) {
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

func (h *ProductsHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var body struct {
		IsPublished *bool `json:"isPublished"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	rec, err := h.coll.SetVisibility(r.Context(), id, body.IsPublished)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, rec, http.StatusOK)
}
