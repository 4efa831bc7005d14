package services

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("taskDocumentation", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/tasks", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["taskDocumentation"][0]
}

func TestDocumentService_SaveAndResolve(t *testing.T) {
	dir := t.TempDir()
	docs, err := NewDocumentService(dir)
	require.NoError(t, err)

	doc, err := docs.Save(newFileHeader(t, "design.pdf", "%PDF-1.4"))
	require.NoError(t, err)

	assert.Equal(t, "design.pdf", doc.Name)
	assert.True(t, strings.HasSuffix(doc.Key, "_design.pdf"))
	assert.Equal(t, "design.pdf", DisplayName(doc.Key))

	path, err := docs.Resolve(doc.Key)
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(content))
}

func TestDocumentService_SameNameDoesNotCollide(t *testing.T) {
	docs, err := NewDocumentService(t.TempDir())
	require.NoError(t, err)

	first, err := docs.Save(newFileHeader(t, "notes.txt", "one"))
	require.NoError(t, err)
	second, err := docs.Save(newFileHeader(t, "notes.txt", "two"))
	require.NoError(t, err)

	assert.NotEqual(t, first.Key, second.Key)
}

func TestDocumentService_SaveStripsDirectories(t *testing.T) {
	docs, err := NewDocumentService(t.TempDir())
	require.NoError(t, err)

	doc, err := docs.Save(newFileHeader(t, `C:\Users\ana\report.docx`, "x"))

	require.NoError(t, err)
	assert.Equal(t, "report.docx", doc.Name)
}

func TestDocumentService_ResolveRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "secret.txt"), []byte("x"), 0o644))
	docs, err := NewDocumentService(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	for _, key := range []string{"../secret.txt", "..", ".", "", "a/b"} {
		_, err := docs.Resolve(key)
		assert.ErrorIs(t, err, ErrDocumentNotFound, key)
	}
}

func TestDocumentService_ResolveMissing(t *testing.T) {
	docs, err := NewDocumentService(t.TempDir())
	require.NoError(t, err)

	_, err = docs.Resolve("missing.txt")

	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "a_b.txt", DisplayName("3f2b8c1e-8d4e-4c43-9a70-1c2d3e4f5a6b_a_b.txt"))
	assert.Equal(t, "1700000000000-123_legacy.txt", DisplayName("1700000000000-123_legacy.txt"))
	assert.Equal(t, "plain.txt", DisplayName("plain.txt"))
}
