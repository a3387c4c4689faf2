package filestorage

import (
	"io"
)

// FileStorage persists uploaded bytes and hands back a stable reference path.
type FileStorage interface {
	// Save writes src under a collision-free name derived from originalName
	// and returns the stored path (for example "uploads/1712345678901-3f9a2c1d.pdf").
	Save(src io.Reader, originalName string) (string, error)

	// Delete removes a stored file. Deleting a missing file is not an error.
	Delete(storedPath string) error

	// FullPath maps a stored path to its location on disk.
	FullPath(storedPath string) string
}

// StoredFile describes one upload after it has been written to storage
type StoredFile struct {
	Field        string
	OriginalName string
	MimeType     string
	Size         int64
	Path         string
}
