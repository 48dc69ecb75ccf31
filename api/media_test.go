package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rynvlabs/cms/internal/models"
)

func uploadFile(t *testing.T, srv *httptest.Server, token, path, field, filename, contentType string, data []byte) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(map[string][]string)
	h["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename)}
	h["Content-Type"] = []string{contentType}
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, srv.URL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	return res
}

func TestMediaUploadListDelete(t *testing.T) {
	srv, _ := setupServer(t)
	token := login(t, srv)

	res := uploadFile(t, srv, token, "/v1/admin/media", "file", "photo.png", "image/png", []byte("png-bytes"))
	wantStatus(t, res, http.StatusCreated)
	var media models.Media
	decodeBody(t, res, &media)
	if media.OriginalName != "photo.png" {
		t.Fatalf("expected original name kept, got %q", media.OriginalName)
	}
	if media.Filename == "photo.png" {
		t.Fatalf("stored name should be randomized")
	}
	if media.MimeType != "image/png" {
		t.Fatalf("unexpected mime type %q", media.MimeType)
	}
	if media.Size != int64(len("png-bytes")) {
		t.Fatalf("unexpected size %d", media.Size)
	}

	res = uploadFile(t, srv, token, "/v1/admin/media", "file", "report.pdf", "application/pdf", []byte("%PDF-"))
	wantStatus(t, res, http.StatusCreated)
	res.Body.Close()

	// The uploaded file is served back under /uploads/.
	res = doRequest(t, srv, http.MethodGet, media.Path, "", nil)
	wantStatus(t, res, http.StatusOK)
	res.Body.Close()

	res = doRequest(t, srv, http.MethodGet, "/v1/admin/media?type=image", token, nil)
	wantStatus(t, res, http.StatusOK)
	var page struct {
		Data  []models.Media `json:"data"`
		Total int64          `json:"total"`
	}
	decodeBody(t, res, &page)
	if page.Total != 1 || len(page.Data) != 1 || page.Data[0].ID != media.ID {
		t.Fatalf("unexpected image listing: total=%d", page.Total)
	}

	res = doRequest(t, srv, http.MethodDelete, fmt.Sprintf("/v1/admin/media/%d", media.ID), token, nil)
	wantStatus(t, res, http.StatusOK)
	res.Body.Close()

	res = doRequest(t, srv, http.MethodGet, media.Path, "", nil)
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected stored file removed, got %d", res.StatusCode)
	}
	res.Body.Close()
}

func TestMediaUploadBulk(t *testing.T) {
	srv, _ := setupServer(t)
	token := login(t, srv)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range []string{"a.png", "b.png"} {
		part, err := mw.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte("data-" + name)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/v1/admin/media/bulk", &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("bulk upload: %v", err)
	}
	wantStatus(t, res, http.StatusCreated)

	var out []models.Media
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	res.Body.Close()
	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}
}

func TestMediaUploadMissingFile(t *testing.T) {
	srv, _ := setupServer(t)
	token := login(t, srv)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.Close()

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/v1/admin/media", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	wantStatus(t, res, http.StatusBadRequest)
	res.Body.Close()
}
