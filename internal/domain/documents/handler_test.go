package documents

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dermai/dermai/internal/platform/blobstore"
)

func newHandlerForTest() (*Handler, *mockRepo, *blobstore.MemoryStore) {
	repo := newMockRepo()
	blobs := blobstore.NewMemoryStore()
	return NewHandler(NewService(repo, blobs, zerolog.Nop())), repo, blobs
}

func multipartUpload(t *testing.T, userID, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if userID != "" {
		mw.WriteField("userId", userID)
	}
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		part.Write([]byte(content))
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestHandleUpload(t *testing.T) {
	h, _, _ := newHandlerForTest()

	body, contentType := multipartUpload(t, "12345", "report.pdf", "%PDF-1.4")
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/doctor/upload", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.handleUpload(c); err != nil {
		t.Fatalf("handleUpload: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool     `json:"success"`
		Message string   `json:"message"`
		Data    Document `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if resp.Message != "File uploaded successfully" {
		t.Errorf("unexpected message %q", resp.Message)
	}
	if resp.Data.Filename != "report.pdf" {
		t.Errorf("unexpected filename %s", resp.Data.Filename)
	}
	if !strings.HasPrefix(resp.Data.URL, "/uploads/") {
		t.Errorf("expected /uploads url, got %s", resp.Data.URL)
	}
}

func TestHandleUpload_NoFile(t *testing.T) {
	h, _, _ := newHandlerForTest()

	body, contentType := multipartUpload(t, "12345", "", "")
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/doctor/upload", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.handleUpload(c); err != nil {
		t.Fatalf("handleUpload: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleUpload_RejectsNonPDF(t *testing.T) {
	h, _, _ := newHandlerForTest()

	body, contentType := multipartUpload(t, "12345", "notes.txt", "hello")
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/doctor/upload", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.handleUpload(c); err != nil {
		t.Fatalf("handleUpload: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleListByUser(t *testing.T) {
	h, _, _ := newHandlerForTest()

	if _, err := h.svc.Upload(context.Background(), 12345, "a.pdf", 5, strings.NewReader("x"), 0); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("userId")
	c.SetParamValues("12345")

	if err := h.handleListByUser(c); err != nil {
		t.Fatalf("handleListByUser: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool       `json:"success"`
		Data    []Document `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Filename != "a.pdf" {
		t.Errorf("unexpected documents: %+v", resp.Data)
	}
}

func TestHandleDelete_NotFound(t *testing.T) {
	h, _, _ := newHandlerForTest()

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	if err := h.handleDelete(c); err != nil {
		t.Fatalf("handleDelete: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleDownload(t *testing.T) {
	h, _, _ := newHandlerForTest()

	d, err := h.svc.Upload(context.Background(), 12345, "a.pdf", 5, strings.NewReader("%PDF-1.4"), 0)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("name")
	c.SetParamValues(d.StoredName)

	if err := h.handleDownload(c); err != nil {
		t.Fatalf("handleDownload: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "%PDF-1.4" {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "application/pdf") {
		t.Errorf("unexpected content type %s", ct)
	}
}

func TestHandleDownload_Missing(t *testing.T) {
	h, _, _ := newHandlerForTest()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("name")
	c.SetParamValues("nope.pdf")

	if err := h.handleDownload(c); err != nil {
		t.Fatalf("handleDownload: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
