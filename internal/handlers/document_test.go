package handlers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// uploadContext builds a test context carrying a multipart "file" part with
// the given filename and declared content type.
func uploadContext(t *testing.T, filename, contentType string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to create multipart part: %v", err)
	}
	if _, err := part.Write([]byte("file body")); err != nil {
		t.Fatalf("failed to write part body: %v", err)
	}
	mw.Close()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/upload", body)
	c.Request.Header.Set("Content-Type", mw.FormDataContentType())
	return c, w
}

func TestReadUpload_Valid(t *testing.T) {
	c, _ := uploadContext(t, "report.txt", "text/plain")

	upload, ok := readUpload(c)
	if !ok {
		t.Fatal("readUpload rejected a valid part")
	}
	if upload.Filename != "report.txt" {
		t.Errorf("Filename = %q, want %q", upload.Filename, "report.txt")
	}
	if upload.FileType != "text/plain" {
		t.Errorf("FileType = %q, want %q", upload.FileType, "text/plain")
	}
	if string(upload.Content) != "file body" {
		t.Errorf("Content = %q, want %q", upload.Content, "file body")
	}
}

func TestReadUpload_ReducesPathToBaseName(t *testing.T) {
	c, _ := uploadContext(t, "../../etc/passwd", "text/plain")

	upload, ok := readUpload(c)
	if !ok {
		t.Fatal("readUpload should accept the part after reducing the name")
	}
	if upload.Filename != "passwd" {
		t.Errorf("Filename = %q, want %q", upload.Filename, "passwd")
	}
}

func TestReadUpload_RejectsUnsafeFilenames(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{"dot", "."},
		{"dotdot", ".."},
		{"traversal to parent", "a/.."},
		{"too long", strings.Repeat("x", maxFilenameLen+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := uploadContext(t, tt.filename, "text/plain")

			if _, ok := readUpload(c); ok {
				t.Fatalf("readUpload accepted filename %q", tt.filename)
			}
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestReadUpload_RejectsOversizedFileType(t *testing.T) {
	c, w := uploadContext(t, "report.txt", strings.Repeat("x", maxFileTypeLen+1))

	if _, ok := readUpload(c); ok {
		t.Fatal("readUpload accepted an oversized file type")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestReadUpload_MissingFile(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/upload", nil)

	if _, ok := readUpload(c); ok {
		t.Fatal("readUpload accepted a request without a file part")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
