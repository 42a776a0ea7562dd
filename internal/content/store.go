// Package content stores the site's editable CMS document.
package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// ErrInvalidDocument is returned when a document is not valid JSON.
var ErrInvalidDocument = errors.New("content must be a JSON document")

// FileStore keeps a single JSON document on disk.
type FileStore struct {
	path string
	mu   sync.RWMutex
}

// NewFileStore creates a store backed by path. The file and its directory
// are created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Get returns the saved document, or nil when nothing has been saved.
func (s *FileStore) Get() (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("stored content at %s is corrupt", s.path)
	}
	return json.RawMessage(data), nil
}

// Save replaces the document. The write goes to a temporary file in the same
// directory which is then renamed over the old one.
func (s *FileStore) Save(doc []byte) error {
	if !json.Valid(doc) {
		return ErrInvalidDocument
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, doc, "", "  "); err != nil {
		return ErrInvalidDocument
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create content directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".content-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(pretty.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write content: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync content: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close content: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace content: %w", err)
	}
	return nil
}
