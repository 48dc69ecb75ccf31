package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/rynvlabs/cms/internal/models"
	"github.com/rynvlabs/cms/pkg/content"
)

// SettingsHandler serves the site-wide key/value configuration store.
type SettingsHandler struct {
	db *gorm.DB
}

func NewSettingsHandler(db *gorm.DB) *SettingsHandler {
	return &SettingsHandler{db: db}
}

// List flattens all settings into one key→value object for the public site.
func (h *SettingsHandler) List(w http.ResponseWriter, r *http.Request) {
	var settings []models.SiteSetting
	if err := h.db.WithContext(r.Context()).Find(&settings).Error; err != nil {
		writeError(w, content.Translate(err))
		return
	}

	out := map[string]models.JSONValue{}
	for _, s := range settings {
		out[s.Key] = s.Value
	}
	writeJSON(w, out, http.StatusOK)
}

// AdminList returns the raw setting rows, ordered by key.
func (h *SettingsHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	settings := []models.SiteSetting{}
	if err := h.db.WithContext(r.Context()).Order("key ASC").Find(&settings).Error; err != nil {
		writeError(w, content.Translate(err))
		return
	}
	writeJSON(w, settings, http.StatusOK)
}

func (h *SettingsHandler) GetByKey(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	var setting models.SiteSetting
	err := h.db.WithContext(r.Context()).Where("key = ?", key).First(&setting).Error
	if err != nil {
		writeError(w, content.Translate(err))
		return
	}
	writeJSON(w, setting, http.StatusOK)
}

// Update upserts one setting by key: update when the key exists, create
// otherwise. A concurrent create of the same key loses to the unique index
// and surfaces as a conflict.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	var body struct {
		Value models.JSONValue `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, fmt.Errorf("%w: %v", content.ErrInvalid, err))
		return
	}

	ctx := r.Context()
	var setting models.SiteSetting
	err := h.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		setting = models.SiteSetting{Key: key, Value: body.Value}
		err = h.db.WithContext(ctx).Create(&setting).Error
	case err == nil:
		setting.Value = body.Value
		err = h.db.WithContext(ctx).Save(&setting).Error
	}
	if err != nil {
		writeError(w, content.Translate(err))
		return
	}

	writeJSON(w, setting, http.StatusOK)
}
