package services

import (
	"context"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/pioneer/admissions/internal/app/models"
	"github.com/pioneer/admissions/internal/app/models/dto"
	"github.com/pioneer/admissions/internal/app/repositories"
	"github.com/pioneer/admissions/internal/pkg/apperrors"
	"github.com/pioneer/admissions/internal/pkg/filestorage"
	"github.com/pioneer/admissions/internal/pkg/helpers"
)

// URLFunc rewrites a stored file path into a URL the client can fetch
type URLFunc func(storedPath string) string

func classLabelError() error {
	return apperrors.NewValidationError("class", "class must be a valid class")
}

// SyllabusService manages syllabus PDFs
type SyllabusService struct {
	store    repositories.SyllabusStore
	resolver *filestorage.Resolver
	logger   zerolog.Logger
}

// NewSyllabusService creates a new SyllabusService
func NewSyllabusService(store repositories.SyllabusStore, resolver *filestorage.Resolver, logger zerolog.Logger) *SyllabusService {
	return &SyllabusService{store: store, resolver: resolver, logger: logger}
}

// Create stores the PDF and records it under class
func (s *SyllabusService) Create(ctx context.Context, class string, file *multipart.FileHeader) (*models.Syllabus, error) {
	if !models.IsClassLabel(class) {
		return nil, classLabelError()
	}

	stored, err := s.resolver.Store(filestorage.KindSyllabusPDF, file)
	if err != nil {
		return nil, err
	}

	item := &models.Syllabus{Class: class, PDFPath: stored.Path}
	if err := s.store.Create(ctx, item); err != nil {
		filestorage.RemoveQuietly(s.resolver.Storage(), stored.Path)
		return nil, err
	}

	s.logger.Info().Int64("syllabusID", item.ID).Str("class", class).Msg("Syllabus uploaded")
	return item, nil
}

// Get returns one syllabus entry
func (s *SyllabusService) Get(ctx context.Context, id int64) (*models.Syllabus, error) {
	return s.store.GetByID(ctx, id)
}

// ListGrouped returns every syllabus grouped by class label
func (s *SyllabusService) ListGrouped(ctx context.Context, urlFor URLFunc) (map[string][]dto.SyllabusEntry, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]dto.SyllabusEntry)
	for _, item := range items {
		grouped[item.Class] = append(grouped[item.Class], dto.SyllabusEntry{
			ID:           item.ID,
			PDFURL:       urlFor(item.PDFPath),
			UploadedDate: helpers.FormatDate(item.CreatedAt),
		})
	}
	return grouped, nil
}

// Update changes the class and, when file is given, replaces the PDF.
// The previous file is removed best-effort after the record is updated.
func (s *SyllabusService) Update(ctx context.Context, id int64, class string, file *multipart.FileHeader) (*models.Syllabus, error) {
	item, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if class != "" {
		if !models.IsClassLabel(class) {
			return nil, classLabelError()
		}
		item.Class = class
	}

	oldPath := item.PDFPath
	if file != nil {
		stored, err := s.resolver.Store(filestorage.KindSyllabusPDF, file)
		if err != nil {
			return nil, err
		}
		item.PDFPath = stored.Path
	}

	if err := s.store.Update(ctx, item); err != nil {
		if item.PDFPath != oldPath {
			filestorage.RemoveQuietly(s.resolver.Storage(), item.PDFPath)
		}
		return nil, err
	}

	s.resolver.Replace(oldPath, item.PDFPath)
	return item, nil
}

// Delete removes the record and its PDF
func (s *SyllabusService) Delete(ctx context.Context, id int64) error {
	item, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	filestorage.RemoveQuietly(s.resolver.Storage(), item.PDFPath)
	return nil
}
