package testutil

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
)

// UploadPart is one file field of a multipart request.
type UploadPart struct {
	Field    string
	Filename string
	Content  string
}

// NewMultipartRequest creates a POST request carrying the given file parts.
//
// Example:
//
//	req := testutil.NewMultipartRequest(t, "/api/report",
//	    testutil.UploadPart{Field: "file1", Filename: "trades.csv", Content: csv},
//	)
func NewMultipartRequest(t *testing.T, path string, parts ...UploadPart) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, p := range parts {
		fw, err := w.CreateFormFile(p.Field, p.Filename)
		if err != nil {
			t.Fatalf("Failed to create form file: %v", err)
		}
		if _, err := fw.Write([]byte(p.Content)); err != nil {
			t.Fatalf("Failed to write form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

// DecodeJSON decodes a recorded response body into v.
//
// Example:
//
//	var got map[string]string
//	testutil.DecodeJSON(t, rec, &got)
func DecodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()

	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
	}
}
