package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gosimple/slug"

	"github.com/rynvlabs/cms/internal/models"
	"github.com/rynvlabs/cms/pkg/content"
)

type AcademyHandler struct {
	coll *content.Collection[models.AcademyProject, *models.AcademyProject]
}

func NewAcademyHandler(coll *content.Collection[models.AcademyProject, *models.AcademyProject]) *AcademyHandler {
	return &AcademyHandler{coll: coll}
}

type academyPayload struct {
	Title         *string            `json:"title"`
	Slug          *string            `json:"slug"`
	Description   *string            `json:"description"`
	TechStack     *models.StringList `json:"techStack"`
	Abstract      *string            `json:"abstract"`
	Methodology   *string            `json:"methodology"`
	Results       *string            `json:"results"`
	Image         *string            `json:"image"`
	WiringDiagram *string            `json:"wiringDiagram"`
	Gallery       *models.StringList `json:"gallery"`
	Year          *int               `json:"year"`
	SortOrder     *int               `json:"sortOrder"`
	IsPublished   *bool              `json:"isPublished"`
}

func academyFilters(r *http.Request) []content.Filter {
	q := r.URL.Query()
	var filters []content.Filter
	if y := q.Get("year"); y != "" {
		if year, err := strconv.Atoi(y); err == nil {
			filters = append(filters, content.Facet{Column: "year", Value: year})
		}
	}
	if s := q.Get("search"); s != "" {
		filters = append(filters, content.Search{Term: s})
	}
	return filters
}

// List is the public read view, grouped by year descending. The response
// carries the distinct published years for the filter UI, computed across
// the whole collection rather than the returned page.
func (h *AcademyHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r.URL.Query())
	res, err := h.coll.List(r.Context(), content.Query{
		Filters: academyFilters(r),
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	years, err := h.coll.DistinctInts(r.Context(), "year", true)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{
		"data":  res.Data,
		"total": res.Total,
		"page":  res.Page,
		"limit": res.Limit,
		"years": years,
	}, http.StatusOK)
}

func (h *AcademyHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	rec, err := h.coll.GetByKey(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, rec, http.StatusOK)
}

func (h *AcademyHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	recs, err := h.coll.ListAdmin(r.Context(), academyFilters(r)...)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, recs, http.StatusOK)
}

func (h *AcademyHandler) AdminGet(w http.ResponseWriter, r *http.Request) {
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

func (h *AcademyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p academyPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, fmt.Errorf("%w: %v", content.ErrInvalid, err))
		return
	}

	title := strDeref(p.Title)
	description := strDeref(p.Description)
	if title == "" || description == "" || p.Year == nil {
		writeError(w, fmt.Errorf("%w: title, description and year are required", content.ErrInvalid))
		return
	}

	rec := models.AcademyProject{
		Title:         title,
		Slug:          slugOr(p.Slug, title),
		Description:   description,
		Abstract:      strDeref(p.Abstract),
		Methodology:   strDeref(p.Methodology),
		Results:       strDeref(p.Results),
		Image:         strDeref(p.Image),
		WiringDiagram: strDeref(p.WiringDiagram),
		Year:          *p.Year,
	}
	if p.TechStack != nil {
		rec.TechStack = *p.TechStack
	}
	if p.Gallery != nil {
		rec.Gallery = *p.Gallery
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

func (h *AcademyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var p academyPayload
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
	if p.TechStack != nil {
		rec.TechStack = *p.TechStack
	}
	if p.Abstract != nil {
		rec.Abstract = *p.Abstract
	}
	if p.Methodology != nil {
		rec.Methodology = *p.Methodology
	}
	if p.Results != nil {
		rec.Results = *p.Results
	}
	if p.Image != nil {
		rec.Image = *p.Image
	}
	if p.WiringDiagram != nil {
		rec.WiringDiagram = *p.WiringDiagram
	}
	if p.Gallery != nil {
		rec.Gallery = *p.Gallery
	}
	if p.Year != nil {
		rec.Year = *p.Year
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

func (h *AcademyHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *AcademyHandler) Reorder(w http.ResponseWriter, r *http.Request) {
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

func (h *AcademyHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
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
