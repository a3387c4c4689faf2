package filestorage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pioneer/admissions/internal/pkg/logger"
)

// PublicPrefix is the URL path prefix under which stored files are served
const PublicPrefix = "uploads"

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string
	now      func() time.Time
}

// NewLocalStorage creates the base directory if needed.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: basePath, now: time.Now}, nil
}

// BasePath returns the directory files are written to
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

// uniqueName builds "<unix millis>-<random>.<ext>" from the original name
func (ls *LocalStorage) uniqueName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%d-%s%s", ls.now().UnixMilli(), suffix, ext)
}

// Save implements FileStorage
func (ls *LocalStorage) Save(src io.Reader, originalName string) (string, error) {
	name := ls.uniqueName(originalName)
	dstPath := filepath.Join(ls.basePath, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	stored := path.Join(PublicPrefix, name)
	logger.Debug().Str("filename", originalName).Str("stored", stored).Msg("File saved")
	return stored, nil
}

// Delete implements FileStorage. Only the base name of storedPath is used, so
// a reference can never reach outside the storage directory.
func (ls *LocalStorage) Delete(storedPath string) error {
	if storedPath == "" {
		return nil
	}

	physicalPath := ls.FullPath(storedPath)
	if physicalPath == "" {
		return fmt.Errorf("invalid file path: %s", storedPath)
	}

	if err := os.Remove(physicalPath); err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted")
	return nil
}

// FullPath implements FileStorage
func (ls *LocalStorage) FullPath(storedPath string) string {
	name := filepath.Base(filepath.FromSlash(storedPath))
	if name == "" || name == "." || name == string(filepath.Separator) || name == PublicPrefix {
		return ""
	}
	return filepath.Join(ls.basePath, name)
}

// RemoveQuietly deletes every path, logging failures instead of returning them.
func RemoveQuietly(storage FileStorage, paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := storage.Delete(p); err != nil {
			logger.Warn().Err(err).Str("path", p).Msg("Best-effort file cleanup failed")
		}
	}
}

// PublicURL rewrites a stored path into a URL on the requesting host
func PublicURL(scheme, host, storedPath string) string {
	if storedPath == "" {
		return ""
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, host, PublicPrefix, path.Base(filepath.ToSlash(storedPath)))
}
