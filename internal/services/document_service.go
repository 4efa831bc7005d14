package services

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/yukikurage/task-tracker/internal/models"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrEmptyDocument    = errors.New("uploaded document has no file name")
)

// DocumentService stores task documents in a single directory.
// Stored names are "<uuid>_<original name>" so uploads never collide.
type DocumentService struct {
	dir string
}

// NewDocumentService creates the upload directory if needed
func NewDocumentService(dir string) (*DocumentService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DocumentService{dir: dir}, nil
}

// Save copies an uploaded file into the upload directory
func (s *DocumentService) Save(header *multipart.FileHeader) (*models.TaskDocument, error) {
	name := sanitizeFileName(header.Filename)
	if name == "" {
		return nil, ErrEmptyDocument
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	key := uuid.NewString() + "_" + name
	dst, err := os.OpenFile(filepath.Join(s.dir, key), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return nil, fmt.Errorf("failed to write document: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return nil, fmt.Errorf("failed to write document: %w", err)
	}

	log.Printf("Stored document %s (%d bytes)", key, header.Size)
	return &models.TaskDocument{Key: key, Name: name}, nil
}

// Resolve returns the on-disk path of a stored document
func (s *DocumentService) Resolve(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", ErrDocumentNotFound
	}

	path := filepath.Join(s.dir, key)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrDocumentNotFound
		}
		return "", fmt.Errorf("failed to access document: %w", err)
	}
	if info.IsDir() {
		return "", ErrDocumentNotFound
	}
	return path, nil
}

// DisplayName strips the random prefix from a stored key
func DisplayName(key string) string {
	prefix, name, found := strings.Cut(key, "_")
	if !found || name == "" {
		return key
	}
	if _, err := uuid.Parse(prefix); err != nil {
		return key
	}
	return name
}

func sanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = filepath.Base(name)
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return strings.TrimSpace(name)
}

// Remove deletes a stored document; a missing document is ignored
func (s *DocumentService) Remove(key string) error {
	path, err := s.Resolve(key)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return nil
		}
		return err
	}
	return os.Remove(path)
}
