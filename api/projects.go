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

type ProjectsHandler struct {
	coll *content.Collection[models.Project, *models.Project]
}

func NewProjectsHandler(coll *content.Collection[models.Project, *models.Project]) *ProjectsHandler {
	return &ProjectsHandler{coll: coll}
}

// projectPayload covers create and update; on update, absent fields keep
// their stored value (including the JSON array columns).
type projectPayload struct {
	Title       *string            `json:"title"`
	Slug        *string            `json:"slug"`
	Description *string            `json:"description"`
	Category    *string            `json:"category"`
	Image       *string            `json:"image"`
	TechStack   *models.StringList `json:"techStack"`
	Challenge   *string            `json:"challenge"`
	Solution    *string            `json:"solution"`
	DeepDive    *string            `json:"deepDive"`
	Gallery     *models.StringList `json:"gallery"`
	Stats       *models.StatList   `json:"stats"`
	SortOrder   *int               `json:"sortOrder"`
	IsPublished *bool              `json:"isPublished"`
}

func projectFilters(r *http.Request) []content.Filter {
	q := r.URL.Query()
	var filters []content.Filter
	if cat := q.Get("category"); cat != "" {
		filters = append(filters, content.Facet{Column: "category", Value: strings.ToUpper(cat)})
	}
	if s := q.Get("search"); s != "" {
		filters = append(filters, content.Search{Term: s})
	}
	return filters
}

// List is the public read view: published only, ordered, paginated.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r.URL.Query())
	res, err := h.coll.List(r.Context(), content.Query{
		Filters: projectFilters(r),
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, res, http.StatusOK)
}

func (h *ProjectsHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	rec, err := h.coll.GetByKey(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, rec, http.StatusOK)
}

// AdminList returns every project regardless of publish state, unpaginated.
func (h *ProjectsHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	recs, err := h.coll.ListAdmin(r.Context(), projectFilters(r)...)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, recs, http.StatusOK)
}

func (h *ProjectsHandler) AdminGet(w http.ResponseWriter, r *http.Request) {
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

func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p projectPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, fmt.Errorf("%w: %v", content.ErrInvalid, err))
		return
	}

	title := strDeref(p.Title)
	description := strDeref(p.Description)
	category := strDeref(p.Category)
	if title == "" || description == "" || category == "" {
		writeError(w, fmt.Errorf("%w: title, description and category are required", content.ErrInvalid))
		return
	}

	rec := models.Project{
		Title:       title,
		Slug:        slugOr(p.Slug, title),
		Description: description,
		Category:    strings.ToUpper(category),
		Image:       strDeref(p.Image),
		Challenge:   strDeref(p.Challenge),
		Solution:    strDeref(p.Solution),
		DeepDive:    strDeref(p.DeepDive),
	}
	if p.TechStack != nil {
		rec.TechStack = *p.TechStack
	}
	if p.Gallery != nil {
		rec.Gallery = *p.Gallery
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

func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var p projectPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, fmt.Errorf("%w: %v", content.ErrInvalid, err))
		return
	}

	rec, err := h.coll.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	// Slug is recomputed only when the title changes and no explicit slug
	// accompanies it.
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
	if p.TechStack != nil {
		rec.TechStack = *p.TechStack
	}
	if p.Challenge != nil {
		rec.Challenge = *p.Challenge
	}
	if p.Solution != nil {
		rec.Solution = *p.Solution
	}
	if p.DeepDive != nil {
		rec.DeepDive = *p.DeepDive
	}
	if p.Gallery != nil {
		rec.Gallery = *p.Gallery
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

	if err := h.coll.Update(r.Context(), rec); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, rec, http.StatusOK)
}

func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *ProjectsHandler) Reorder(w http.ResponseWriter, r *http.Request) {
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

// TogglePublish sets isPublished explicitly, or inverts it when the body
// carries no value (the admin "eye icon").
func (h *ProjectsHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var body struct {
		IsPublished *bool `json:"isPublished"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body) // empty body means invert

	rec, err := h.coll.SetVisibility(r.Context(), id, body.IsPublished)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, rec, http.StatusOK)
}

func strDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// slugOr returns the explicit slug when supplied, otherwise one derived
// from the title.
func slugOr(explicit *string, title string) string {
	if s := strDeref(explicit); s != "" {
		return s
	}
	return slug.Make(title)
}
