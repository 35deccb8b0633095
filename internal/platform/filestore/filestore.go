// Package filestore persists uploaded attachment binaries on the local
// filesystem under a single uploads root.
package filestore

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store writes and removes uploaded files beneath a fixed root directory.
// Writes are fire-and-forget: no fsync beyond what the filesystem provides.
type Store struct {
	root   string
	logger *slog.Logger
	now    func() time.Time // Injectable for testing
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory %q: %w", dir, err)
	}

	return &Store{
		root:   dir,
		logger: logger.With(slog.String("component", "filestore")),
		now:    time.Now,
	}, nil
}

// Root returns the uploads root directory.
func (s *Store) Root() string {
	return s.root
}

// Save writes the reader's contents to a new file under the uploads root and
// returns the stored name. The name is made collision-resistant with a
// millisecond timestamp prefix and the original name is sanitized: path
// components are stripped and whitespace collapses to underscores.
func (s *Store) Save(originalName string, r io.Reader) (string, error) {
	stored := fmt.Sprintf("%d-%s", s.now().UnixMilli(), SanitizeFileName(originalName))
	full := filepath.Join(s.root, stored)

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		// Remove the partial file so a failed upload leaves nothing behind.
		if rmErr := os.Remove(full); rmErr != nil {
			s.logger.Warn("failed to clean up partial upload", "path", full, "error", rmErr)
		}
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close upload file: %w", err)
	}

	return stored, nil
}

// Remove deletes a stored file by name or relative path. A missing file is
// not an error; removal is idempotent at the filesystem layer.
func (s *Store) Remove(name string) error {
	full := filepath.Join(s.root, filepath.Base(name))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %q: %w", full, err)
	}
	return nil
}

// SanitizeFileName reduces an uploaded filename to a safe flat name: any
// directory components are dropped and runs of whitespace become a single
// underscore. An empty result falls back to "file".
func SanitizeFileName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	sanitized := strings.Join(strings.Fields(base), "_")
	if sanitized == "" || sanitized == "." || sanitized == ".." {
		return "file"
	}
	return sanitized
}
