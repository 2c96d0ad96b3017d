package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// FileStore keeps document bytes on the local filesystem, addressed by a path
// derived deterministically from (project id, filename). Renaming a document
// therefore moves its bytes; nothing is keyed by content hash. The store is a
// derived cache of the metadata table, not the source of truth.
type FileStore struct {
	base string
}

func NewFileStore(baseDir string) *FileStore {
	return &FileStore{base: baseDir}
}

// Path returns the storage location for a document.
func (s *FileStore) Path(projectID uint, filename string) string {
	return filepath.Join(s.base, "documents", strconv.FormatUint(uint64(projectID), 10), filename)
}

// Write stores content at the derived path, creating the project directory
// as needed. Existing content at the path is overwritten.
func (s *FileStore) Write(projectID uint, filename string, content []byte) error {
	path := s.Path(projectID, filename)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Open returns a reader over the stored content. The caller closes it.
func (s *FileStore) Open(projectID uint, filename string) (io.ReadCloser, error) {
	f, err := os.Open(s.Path(projectID, filename))
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Exists reports whether bytes are present at the derived path.
func (s *FileStore) Exists(projectID uint, filename string) bool {
	_, err := os.Stat(s.Path(projectID, filename))
	return err == nil
}

// Remove deletes the stored content. A missing file is not an error: delete
// is idempotent so that crash recovery and repeated deletes stay safe.
func (s *FileStore) Remove(projectID uint, filename string) error {
	err := os.Remove(s.Path(projectID, filename))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", s.Path(projectID, filename), err)
	}
	return nil
}
