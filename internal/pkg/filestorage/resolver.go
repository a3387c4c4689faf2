package filestorage

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/pioneer/admissions/internal/pkg/apperrors"
	"github.com/pioneer/admissions/internal/pkg/logger"
)

// UploadPolicy bounds upload sizes. Overrides replaces MaxBytes for a kind.
type UploadPolicy struct {
	MaxBytes  int64
	Overrides map[UploadKind]int64
}

// Limit returns the size limit for kind; zero means unlimited.
func (p UploadPolicy) Limit(kind UploadKind) int64 {
	if n, ok := p.Overrides[kind]; ok {
		return n
	}
	return p.MaxBytes
}

// Resolver checks uploads against their kind's policy and stores the ones
// that pass.
type Resolver struct {
	storage FileStorage
	policy  UploadPolicy
}

// NewResolver creates a resolver writing to storage
func NewResolver(storage FileStorage, policy UploadPolicy) *Resolver {
	return &Resolver{storage: storage, policy: policy}
}

// Storage returns the underlying file storage
func (r *Resolver) Storage() FileStorage {
	return r.storage
}

// Store validates a single upload and writes it to storage. The size limit is
// checked before anything is read; the MIME type is sniffed from content.
func (r *Resolver) Store(kind UploadKind, fh *multipart.FileHeader) (*StoredFile, error) {
	if !kind.Valid() {
		return nil, apperrors.NewCustomError(apperrors.ErrUploadKind, fmt.Sprintf("unknown upload kind %d", kind))
	}
	if fh == nil {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("%s file is required", kind.FieldName()))
	}

	if limit := r.policy.Limit(kind); limit > 0 && fh.Size > limit {
		return nil, apperrors.NewCustomError(apperrors.ErrFileTooLarge,
			fmt.Sprintf("%s exceeds the maximum size of %d bytes", kind.FieldName(), limit)).
			WithDetails(map[string]interface{}{"field": kind.FieldName(), "limit": limit, "size": fh.Size})
	}

	src, err := fh.Open()
	if err != nil {
		logger.Error().Err(err).Str("field", kind.FieldName()).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	detected, err := mimetype.DetectReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to detect file type: %w", err)
	}
	if !kind.Accepts(detected.String()) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidFileType,
			fmt.Sprintf("%s must be one of %v", kind.FieldName(), kind.AllowedTypes())).
			WithDetails(map[string]interface{}{"field": kind.FieldName(), "detected": detected.String()})
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind uploaded file: %w", err)
	}

	if strings.HasPrefix(detected.String(), "image/") {
		if _, _, err := image.Decode(src); err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidFileType,
				fmt.Sprintf("%s is not a readable image", kind.FieldName())).
				WithDetails(map[string]interface{}{"field": kind.FieldName(), "detected": detected.String()})
		}
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("failed to rewind uploaded file: %w", err)
		}
	}

	path, err := r.storage.Save(src, storedName(fh.Filename, detected))
	if err != nil {
		return nil, err
	}

	return &StoredFile{
		Field:        kind.FieldName(),
		OriginalName: fh.Filename,
		MimeType:     detected.String(),
		Size:         fh.Size,
		Path:         path,
	}, nil
}

// extensionsFor lists the file extensions a client may use for each stored
// MIME type.
var extensionsFor = map[string][]string{
	MimeJPEG: {".jpg", ".jpeg"},
	MimePNG:  {".png"},
	MimePDF:  {".pdf"},
}

// storedName keeps the client's extension only when it agrees with the sniffed
// content type; otherwise the detected type's extension is used.
func storedName(original string, detected *mimetype.MIME) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	for _, allowed := range extensionsFor[detected.String()] {
		if ext == allowed {
			return base + ext
		}
	}
	return base + detected.Extension()
}

// Resolve stores every provided upload and returns the stored file per kind.
// Kinds without a file are skipped. If any upload is rejected, files already
// stored by this call are removed before the error is returned.
func (r *Resolver) Resolve(files map[UploadKind]*multipart.FileHeader, order []UploadKind) (map[UploadKind]StoredFile, error) {
	stored := make(map[UploadKind]StoredFile, len(files))
	for _, kind := range order {
		fh, ok := files[kind]
		if !ok || fh == nil {
			continue
		}
		sf, err := r.Store(kind, fh)
		if err != nil {
			r.Discard(stored)
			return nil, err
		}
		stored[kind] = *sf
	}
	return stored, nil
}

// Discard removes stored files best-effort
func (r *Resolver) Discard(stored map[UploadKind]StoredFile) {
	paths := make([]string, 0, len(stored))
	for _, sf := range stored {
		paths = append(paths, sf.Path)
	}
	RemoveQuietly(r.storage, paths...)
}

// Replace removes oldPath once a new file has been stored in its place.
func (r *Resolver) Replace(oldPath, newPath string) {
	if oldPath != "" && oldPath != newPath {
		RemoveQuietly(r.storage, oldPath)
	}
}

// FilesFromForm picks the first file of each kind's part out of a multipart form.
func FilesFromForm(form *multipart.Form, kinds ...UploadKind) map[UploadKind]*multipart.FileHeader {
	files := make(map[UploadKind]*multipart.FileHeader, len(kinds))
	if form == nil {
		return files
	}
	for _, kind := range kinds {
		if headers := form.File[kind.FieldName()]; len(headers) > 0 {
			files[kind] = headers[0]
		}
	}
	return files
}
