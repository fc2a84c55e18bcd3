package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrUnsupportedType rejects uploads whose extension is not in the
	// image allow-list.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrTooLarge rejects uploads over the configured size cap.
	ErrTooLarge = errors.New("file too large")
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// PhotoStore persists uploaded photos under a server-controlled
// directory with uuid-based names, so a declared filename never
// influences the stored path.
type PhotoStore struct {
	dir      string
	maxBytes int64
}

func NewPhotoStore(dir string, maxBytes int64) (*PhotoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create photo dir %q: %w", dir, err)
	}
	return &PhotoStore{dir: dir, maxBytes: maxBytes}, nil
}

// Dir returns the directory photos are stored in.
func (s *PhotoStore) Dir() string {
	return s.dir
}

// Save stores the upload and returns its stable reference (the stored
// filename). The declared name is only used for its extension.
func (s *PhotoStore) Save(declaredName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(declaredName))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create photo file: %w", err)
	}
	defer f.Close()

	// Read one byte past the cap to detect oversize streams.
	written, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write photo: %w", err)
	}
	if written > s.maxBytes {
		os.Remove(path)
		return "", fmt.Errorf("%w: over %d bytes", ErrTooLarge, s.maxBytes)
	}

	return name, nil
}
