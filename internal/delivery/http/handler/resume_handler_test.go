package handler

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"workskill/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func resumeApp(uc *fakeResumes, maxBytes int64) *fiber.App {
	h := NewResumeHandler(uc, maxBytes)
	return newTestApp(func(r fiber.Router) { h.RegisterRoutes(r.Group("/api/profile/resumes")) })
}

func multipartRequest(t *testing.T, target, field, name string, data []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, name)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("X-User-ID", "u1")
	return req
}

func TestResumeHandler_Upload(t *testing.T) {
	uc := &fakeResumes{}
	app := resumeApp(uc, 1024)

	res, _ := send(t, app, multipartRequest(t, "/api/profile/resumes/", "file", "cv.txt", []byte("Go developer")))
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}
	if uc.uploaded.FileName != "cv.txt" || string(uc.uploaded.Data) != "Go developer" {
		t.Fatalf("unexpected upload %+v", uc.uploaded)
	}
}

func TestResumeHandler_UploadRejections(t *testing.T) {
	app := resumeApp(&fakeResumes{}, 4)

	res, _ := send(t, app, multipartRequest(t, "/api/profile/resumes/", "document", "cv.txt", []byte("x")))
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing file field, got %d", res.StatusCode)
	}

	res, body := send(t, app, multipartRequest(t, "/api/profile/resumes/", "file", "cv.txt", []byte("too large")))
	if res.StatusCode != fiber.StatusBadRequest || body.Message != "File too large" {
		t.Fatalf("expected 400 File too large, got %d %q", res.StatusCode, body.Message)
	}
}

func TestResumeHandler_Download(t *testing.T) {
	uc := &fakeResumes{file: usecase.ResumeFile{FileName: "cv.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}}
	app := resumeApp(uc, 1024)

	req := httptest.NewRequest(http.MethodGet, "/api/profile/resumes/abc/download", nil)
	req.Header.Set("X-User-ID", "u1")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %q", ct)
	}
	data, _ := io.ReadAll(res.Body)
	if string(data) != "%PDF" {
		t.Fatalf("unexpected body %q", data)
	}
}

func TestResumeHandler_NotFound(t *testing.T) {
	app := resumeApp(&fakeResumes{getErr: usecase.ErrResumeNotFound}, 1024)

	for _, tc := range []struct{ method, target string }{
		{http.MethodGet, "/api/profile/resumes/abc"},
		{http.MethodPut, "/api/profile/resumes/abc/activate"},
		{http.MethodDelete, "/api/profile/resumes/abc"},
	} {
		req := httptest.NewRequest(tc.method, tc.target, nil)
		req.Header.Set("X-User-ID", "u1")
		res, _ := send(t, app, req)
		if res.StatusCode != fiber.StatusNotFound {
			t.Fatalf("%s %s: expected 404, got %d", tc.method, tc.target, res.StatusCode)
		}
	}
}
