package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rynvlabs/cms/internal/models"
	"github.com/rynvlabs/cms/pkg/content"
)

// LandingHandler manages the fixed set of landing-page sections. Sections are
// addressed by sectionKey; they are edited, hidden and reordered but never
// created or deleted through the API (the seeder owns the set).
type LandingHandler struct {
	coll *content.Collection[models.LandingSection, *models.LandingSection]
}

func NewLandingHandler(coll *content.Collection[models.LandingSection, *models.LandingSection]) *LandingHandler {
	return &LandingHandler{coll: coll}
}

type landingPayload struct {
	Title    *string         `json:"title"`
	Subtitle *string         `json:"subtitle"`
	Content  *models.JSONMap `json:"content"`
}

// List is the public read view: visible sections only, in display order.
func (h *LandingHandler) List(w http.ResponseWriter, r *http.Request) {
	recs, err := h.coll.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, recs, http.StatusOK)
}

// AdminList returns every section, hidden ones included.
func (h *LandingHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	recs, err := h.coll.ListAdmin(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, recs, http.StatusOK)
}

func (h *LandingHandler) GetByKey(w http.ResponseWriter, r *http.Request) {
	rec, err := h.coll.GetByKey(r.Context(), mux.Vars(r)["sectionKey"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, rec, http.StatusOK)
}

func (h *LandingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var p landingPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, fmt.Errorf("%w: %v", content.ErrInvalid, err))
		return
	}

	rec, err := h.coll.GetByKey(r.Context(), mux.Vars(r)["sectionKey"])
	if err != nil {
		writeError(w, err)
		return
	}

	if p.Title != nil {
		rec.Title = *p.Title
	}
	if p.Subtitle != nil {
		rec.Subtitle = *p.Subtitle
	}
	if p.Content != nil {
		rec.Content = *p.Content
	}

	if err := h.coll.Update(r.Context(), rec); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, rec, http.StatusOK)
}

// ToggleVisibility sets isVisible explicitly, or inverts it when the body
// carries no value.
func (h *LandingHandler) ToggleVisibility(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IsVisible *bool `json:"isVisible"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	rec, err := h.coll.SetVisibilityByKey(r.Context(), mux.Vars(r)["sectionKey"], body.IsVisible)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, rec, http.StatusOK)
}

func (h *LandingHandler) Reorder(w http.ResponseWriter, r *http.Request) {
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
