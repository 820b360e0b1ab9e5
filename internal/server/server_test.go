package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spigell/resume-parser/internal/document"
	"github.com/spigell/resume-parser/internal/extraction"
	"github.com/spigell/resume-parser/internal/resume"
)

type stubParser struct {
	err     error
	lastDoc *document.Document
}

func (s *stubParser) Parse(_ context.Context, doc *document.Document) (resume.Record, error) {
	s.lastDoc = doc
	if s.err != nil {
		return resume.Record{}, s.err
	}
	return resume.NewBuilder().Email(resume.Present("jane@example.com")).Build(), nil
}

func (s *stubParser) Supports(ext string) bool {
	return ext == ".pdf" || ext == ".txt"
}

func (s *stubParser) Steps() []extraction.Status {
	return []extraction.Status{{Name: extraction.StepEmail, Enabled: true}}
}

func uploadRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if field != "" {
		part, err := w.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	} else if err := w.WriteField("other", "value"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode body %q: %v", data, err)
	}
	return out
}

func TestHealth(t *testing.T) {
	srv := New(Config{}, &stubParser{}, nil)

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["status"] != "ok" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestParse(t *testing.T) {
	parser := &stubParser{}
	srv := New(Config{}, parser, nil)

	resp, err := srv.App().Test(uploadRequest(t, "file", "jane.pdf", []byte("%PDF-1.4")))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if len(body) != len(resume.Keys()) {
		t.Fatalf("expected every key in response, got %d", len(body))
	}
	if body[resume.KeyEmail] != "jane@example.com" {
		t.Fatalf("unexpected email: %v", body[resume.KeyEmail])
	}
	if parser.lastDoc == nil || parser.lastDoc.Name() != "jane.pdf" || parser.lastDoc.Size() != 8 {
		t.Fatalf("unexpected document passed to parser: %+v", parser.lastDoc)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name     string
		parser   *stubParser
		field    string
		filename string
		content  []byte
		maxBytes int64
		status   int
	}{
		{name: "missing file", parser: &stubParser{}, status: http.StatusBadRequest},
		{name: "unsupported extension", parser: &stubParser{}, field: "file", filename: "cv.odt", content: []byte("x"), status: http.StatusUnsupportedMediaType},
		{
			name:     "unsupported format from parser",
			parser:   &stubParser{err: &document.ExtractionError{Document: "cv.pdf", Err: document.ErrUnsupportedFormat}},
			field:    "file",
			filename: "cv.pdf",
			content:  []byte("x"),
			status:   http.StatusUnsupportedMediaType,
		},
		{
			name:     "extraction error",
			parser:   &stubParser{err: &document.ExtractionError{Document: "cv.pdf", Ext: ".pdf", Err: errors.New("malformed pdf")}},
			field:    "file",
			filename: "cv.pdf",
			content:  []byte("x"),
			status:   http.StatusUnprocessableEntity,
		},
		{name: "internal error", parser: &stubParser{err: errors.New("annotate failed")}, field: "file", filename: "cv.txt", content: []byte("x"), status: http.StatusInternalServerError},
		{name: "too large", parser: &stubParser{}, field: "file", filename: "cv.txt", content: bytes.Repeat([]byte("a"), 64), maxBytes: 16, status: http.StatusRequestEntityTooLarge},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := New(Config{MaxUploadBytes: tc.maxBytes}, tc.parser, nil)

			resp, err := srv.App().Test(uploadRequest(t, tc.field, tc.filename, tc.content))
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tc.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tc.status)
			}
			if msg, _ := decodeBody(t, resp)["message"].(string); msg == "" {
				t.Fatal("expected error message")
			}
		})
	}
}

func TestSteps(t *testing.T) {
	srv := New(Config{}, &stubParser{}, nil)

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/api/v1/steps", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var statuses []extraction.Status
	if err := json.NewDecoder(resp.Body).Decode(&statuses); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(statuses) != 1 || statuses[0].Name != extraction.StepEmail {
		t.Fatalf("unexpected steps: %+v", statuses)
	}
}
