package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rynvlabs/cms/internal/models"
	"github.com/rynvlabs/cms/pkg/content"
)

type TechStacksHandler struct {
	coll *content.Collection[models.TechStack, *models.TechStack]
}

func NewTechStacksHandler(coll *content.Collection[models.TechStack, *models.TechStack]) *TechStacksHandler {
	return &TechStacksHandler{coll: coll}
}

type techStackPayload struct {
	Name      *string `json:"name"`
	Icon      *string `json:"icon"`
	Color     *string `json:"color"`
	SortOrder *int    `json:"sortOrder"`
}

// List returns every tech stack badge in display order; no publish gate.
func (h *TechStacksHandler) List(w http.ResponseWriter, r *http.Request) {
	recs, err := h.coll.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, recs, http.StatusOK)
}

func (h *TechStacksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p techStackPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, fmt.Errorf("%w: %v", content.ErrInvalid, err))
		return
	}

	name := strDeref(p.Name)
	if name == "" {
		writeError(w, fmt.Errorf("%w: name is required", content.ErrInvalid))
		return
	}

	rec := models.TechStack{
		Name:  name,
		Icon:  strDeref(p.Icon),
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

func (h *TechStacksHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var p techStackPayload
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
		rec.Name = *p.Name
	}
	if p.Icon != nil {
		rec.Icon = *p.Icon
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

func (h *TechStacksHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *TechStacksHandler) Reorder(w http.ResponseWriter, r *http.Request) {
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
