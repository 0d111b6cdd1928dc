// Package uploads stores user-submitted files (company logos, resumes) on
// local disk under generated names. Files are served statically; records
// keep only the generated filename.
package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxFileSize is the per-file upload limit.
const MaxFileSize = 5 << 20 // 5 MB

// Accepted extensions per upload kind.
var (
	ImageExtensions    = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	DocumentExtensions = []string{".pdf", ".doc", ".docx"}
)

// Store writes uploads into a single directory.
type Store struct {
	dir string
}

// NewStore creates the upload directory if needed and returns a store
// rooted there.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory the store writes into.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the uploaded file under a generated name and returns that
// name. The name combines a nanosecond timestamp with a random component,
// so two uploads in the same instant cannot collide.
func (s *Store) Save(fh *multipart.FileHeader, allowedExtensions []string) (string, error) {
	if fh.Size > MaxFileSize {
		return "", fmt.Errorf("file %s exceeds the %d byte limit", fh.Filename, MaxFileSize)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !extensionAllowed(ext, allowedExtensions) {
		return "", fmt.Errorf("file type %q is not allowed", ext)
	}

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.NewString()[:8], ext)

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return name, nil
}

// Remove deletes a stored file by name. The name is reduced to its base so
// callers cannot reach outside the upload directory.
func (s *Store) Remove(name string) error {
	if name == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, filepath.Base(name))); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove upload %s: %w", name, err)
	}
	return nil
}

func extensionAllowed(ext string, allowed []string) bool {
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}
