package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rynvlabs/cms/internal/models"
	"github.com/rynvlabs/cms/pkg/content"
)

// MediaHandler stores uploads on disk under uploadDir and records them in the
// media table. Stored names are randomized; the original name is kept on the
// record.
type MediaHandler struct {
	db        *gorm.DB
	uploadDir string
	maxSize   int64
}

func NewMediaHandler(db *gorm.DB, uploadDir string, maxSize int64) *MediaHandler {
	return &MediaHandler{db: db, uploadDir: uploadDir, maxSize: maxSize}
}

// Upload accepts a single multipart file under the "file" field.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize)
	if err := r.ParseMultipartForm(h.maxSize); err != nil {
		writeError(w, fmt.Errorf("%w: %v", content.ErrInvalid, err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, fmt.Errorf("%w: missing file field", content.ErrInvalid))
		return
	}
	defer file.Close()

	media, err := h.store(r, file, header)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, media, http.StatusCreated)
}

// UploadBulk accepts multiple files under the "files" field.
func (h *MediaHandler) UploadBulk(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize)
	if err := r.ParseMultipartForm(h.maxSize); err != nil {
		writeError(w, fmt.Errorf("%w: %v", content.ErrInvalid, err))
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeError(w, fmt.Errorf("%w: missing files field", content.ErrInvalid))
		return
	}

	out := make([]*models.Media, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			writeError(w, fmt.Errorf("%w: %v", content.ErrInvalid, err))
			return
		}
		media, err := h.store(r, file, header)
		file.Close()
		if err != nil {
			writeError(w, err)
			return
		}
		out = append(out, media)
	}
	writeJSON(w, out, http.StatusCreated)
}

func (h *MediaHandler) store(r *http.Request, file multipart.File, header *multipart.FileHeader) (*models.Media, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	name := uuid.NewString() + ext
	dest := filepath.Join(h.uploadDir, name)

	out, err := os.Create(dest)
	if err != nil {
		return nil, err
	}
	size, err := io.Copy(out, file)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dest)
		return nil, err
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	media := &models.Media{
		Filename:     name,
		OriginalName: header.Filename,
		MimeType:     mimeType,
		Size:         size,
		Path:         "/uploads/" + name,
	}
	if err := h.db.WithContext(r.Context()).Create(media).Error; err != nil {
		os.Remove(dest)
		return nil, content.Translate(err)
	}
	return media, nil
}

// List returns uploads newest first, paginated, optionally narrowed to
// images or documents.
func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := pageParams(q)

	base := func() *gorm.DB {
		tx := h.db.WithContext(r.Context()).Model(&models.Media{})
		switch q.Get("type") {
		case "image":
			tx = tx.Where("mime_type LIKE ?", "image/%")
		case "document":
			tx = tx.Where("mime_type NOT LIKE ?", "image/%")
		}
		return tx
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		writeError(w, content.Translate(err))
		return
	}

	records := []models.Media{}
	err := base().Order("created_at DESC").Order("id DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&records).Error
	if err != nil {
		writeError(w, content.Translate(err))
		return
	}

	writeJSON(w, map[string]any{
		"data":  records,
		"total": total,
		"page":  page,
		"limit": limit,
	}, http.StatusOK)
}

// Delete removes the record and the stored file. A missing file on disk is
// logged, not an error; the record is gone either way.
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var media models.Media
	if err := h.db.WithContext(r.Context()).First(&media, id).Error; err != nil {
		writeError(w, content.Translate(err))
		return
	}
	if err := h.db.WithContext(r.Context()).Delete(&models.Media{}, id).Error; err != nil {
		writeError(w, content.Translate(err))
		return
	}

	if err := os.Remove(filepath.Join(h.uploadDir, media.Filename)); err != nil && !os.IsNotExist(err) {
		logger.Error("remove upload", slog.Any("err", err), slog.String("file", media.Filename))
	}

	writeJSON(w, map[string]bool{"success": true}, http.StatusOK)
}
