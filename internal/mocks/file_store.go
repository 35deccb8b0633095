package mocks

import (
	"fmt"
	"io"

	"github.com/taskforge/taskforge-api/internal/service"
)

// MockFileStore implements service.FileStore for testing without touching
// the filesystem.
type MockFileStore struct {
	SaveFn   func(originalName string, r io.Reader) (string, error)
	RemoveFn func(name string) error

	// Saved maps stored names to the bytes written. Removed collects the
	// names passed to Remove.
	Saved   map[string][]byte
	Removed []string

	saveCount int
}

// NewMockFileStore creates a mock with initialized defaults.
func NewMockFileStore() *MockFileStore {
	return &MockFileStore{
		Saved: make(map[string][]byte),
	}
}

// Save implements the FileStore interface. The default stores the contents
// in memory under a deterministic name.
func (m *MockFileStore) Save(originalName string, r io.Reader) (string, error) {
	if m.SaveFn != nil {
		return m.SaveFn(originalName, r)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	m.saveCount++
	stored := fmt.Sprintf("%d-%s", m.saveCount, originalName)
	m.Saved[stored] = data
	return stored, nil
}

// Remove implements the FileStore interface.
func (m *MockFileStore) Remove(name string) error {
	if m.RemoveFn != nil {
		return m.RemoveFn(name)
	}

	m.Removed = append(m.Removed, name)
	delete(m.Saved, name)
	return nil
}

var _ service.FileStore = (*MockFileStore)(nil)
