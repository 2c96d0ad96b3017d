package services

import "io"

// BlobStore is the byte-storage boundary consumed by the document service.
// Content is addressed by a path derived from (project id, filename); Remove
// of a missing path must be a no-op.
type BlobStore interface {
	Path(projectID uint, filename string) string
	Write(projectID uint, filename string, content []byte) error
	Open(projectID uint, filename string) (io.ReadCloser, error)
	Exists(projectID uint, filename string) bool
	Remove(projectID uint, filename string) error
}
