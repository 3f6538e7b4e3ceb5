package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound is returned by Fetch when no schedule exists for a class.
	ErrNotFound = errors.New("no schedule stored for class")
	// ErrBadFormat is returned when a submission is not a .jpg file.
	ErrBadFormat = errors.New("file is not a .jpg image")
	// ErrBadClassName is returned for class names that are not plain
	// lowercase alphanumeric identifiers.
	ErrBadClassName = errors.New("invalid class name")
)

// Store manages the staging area for pending uploads and the permanent
// one-image-per-class catalog.
type Store struct {
	catalogDir string
	tempDir    string
}

// New creates both directories if needed and returns a Store over them.
func New(catalogDir, tempDir string) (*Store, error) {
	if err := os.MkdirAll(catalogDir, 0755); err != nil {
		return nil, fmt.Errorf("create catalog dir: %w", err)
	}
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	return &Store{catalogDir: catalogDir, tempDir: tempDir}, nil
}

// NormalizeClassName lowercases and trims a class name before it is used
// anywhere as a path segment or ledger key.
func NormalizeClassName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidateClassName rejects anything but a lowercase alphanumeric
// identifier, so a class name coming from free text can never escape the
// catalog or temp directory once joined into a path.
func ValidateClassName(name string) error {
	if name == "" {
		return ErrBadClassName
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ErrBadClassName
		}
	}
	return nil
}

// ValidateImageName checks the original filename of a submission before any
// bytes are staged.
func ValidateImageName(name string) error {
	if !strings.HasSuffix(strings.ToLower(name), ".jpg") {
		return ErrBadFormat
	}
	return nil
}

// CatalogPath returns the permanent path for a class's schedule image.
func (s *Store) CatalogPath(className string) string {
	return filepath.Join(s.catalogDir, className+".jpg")
}

// Stage writes a submission to the staging area. The filename includes the
// request ID so concurrently staged submissions never collide.
func (s *Store) Stage(requestID, className string, data []byte) (string, error) {
	if err := ValidateClassName(className); err != nil {
		return "", err
	}
	path := filepath.Join(s.tempDir, fmt.Sprintf("%s_%s.jpg", requestID, className))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("stage upload: %w", err)
	}
	return path, nil
}

// Promote moves a staged image into the catalog, overwriting any existing
// entry for the class. The content is written to a temp file next to the
// final path and renamed into place, so a concurrent Fetch never observes a
// partial write. The staged file is removed only after the rename succeeds;
// on failure it is left in place for manual recovery.
func (s *Store) Promote(stagedPath, className string) error {
	if err := ValidateClassName(className); err != nil {
		return err
	}
	src, err := os.Open(stagedPath)
	if err != nil {
		return fmt.Errorf("open staged file: %w", err)
	}
	defer src.Close()

	finalPath := s.CatalogPath(className)
	tmpPath := finalPath + ".tmp"

	dst, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create catalog temp file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("copy staged content: %w", err)
	}
	if err := dst.Sync(); err != nil {
		dst.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync catalog temp file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close catalog temp file: %w", err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("promote to catalog: %w", err)
	}

	if err := os.Remove(stagedPath); err != nil {
		// The catalog update already happened; a leftover staged file is
		// harmless, so only report it.
		return fmt.Errorf("remove staged file after promote: %w", err)
	}
	return nil
}

// Discard deletes a staged file. Discarding an already-absent path is not an
// error, so terminal cleanup can run more than once.
func (s *Store) Discard(stagedPath string) error {
	err := os.Remove(stagedPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("discard staged file: %w", err)
	}
	return nil
}

// Fetch reads the catalog image for a class.
func (s *Store) Fetch(className string) ([]byte, error) {
	if err := ValidateClassName(className); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.CatalogPath(className))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return data, nil
}
