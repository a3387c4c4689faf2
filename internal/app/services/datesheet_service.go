package services

import (
	"context"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/pioneer/admissions/internal/app/models"
	"github.com/pioneer/admissions/internal/app/models/dto"
	"github.com/pioneer/admissions/internal/app/repositories"
	"github.com/pioneer/admissions/internal/pkg/filestorage"
	"github.com/pioneer/admissions/internal/pkg/helpers"
	"github.com/pioneer/admissions/internal/pkg/validation"
)

// DatesheetService manages exam datesheets
type DatesheetService struct {
	store     repositories.DatesheetStore
	resolver  *filestorage.Resolver
	validator *validation.Validator
	logger    zerolog.Logger
}

// NewDatesheetService creates a new DatesheetService
func NewDatesheetService(store repositories.DatesheetStore, resolver *filestorage.Resolver, validator *validation.Validator, logger zerolog.Logger) *DatesheetService {
	return &DatesheetService{store: store, resolver: resolver, validator: validator, logger: logger}
}

// Create validates the fields, stores the PDF and records the datesheet
func (s *DatesheetService) Create(ctx context.Context, in dto.DatesheetInput, file *multipart.FileHeader) (*models.Datesheet, error) {
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	stored, err := s.resolver.Store(filestorage.KindDatesheetPDF, file)
	if err != nil {
		return nil, err
	}

	item := &models.Datesheet{
		ExamName: in.ExamName,
		Class:    in.Class,
		Year:     in.Year,
		ExamDate: in.Date,
		PDFPath:  stored.Path,
	}
	if err := s.store.Create(ctx, item); err != nil {
		filestorage.RemoveQuietly(s.resolver.Storage(), stored.Path)
		return nil, err
	}

	s.logger.Info().Int64("datesheetID", item.ID).Str("class", item.Class).Msg("Datesheet uploaded")
	return item, nil
}

// Get returns one datesheet
func (s *DatesheetService) Get(ctx context.Context, id int64) (*models.Datesheet, error) {
	return s.store.GetByID(ctx, id)
}

// ListGrouped returns every datesheet grouped by class label
func (s *DatesheetService) ListGrouped(ctx context.Context, urlFor URLFunc) (map[string][]dto.DatesheetEntry, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]dto.DatesheetEntry)
	for _, item := range items {
		grouped[item.Class] = append(grouped[item.Class], dto.DatesheetEntry{
			ID:           item.ID,
			Name:         item.ExamName,
			UploadedDate: helpers.FormatDate(item.CreatedAt),
			Year:         item.Year,
			ExamDate:     item.ExamDate,
			PDFURL:       urlFor(item.PDFPath),
		})
	}
	return grouped, nil
}

// Update replaces the fields and, when file is given, the PDF
func (s *DatesheetService) Update(ctx context.Context, id int64, in dto.DatesheetInput, file *multipart.FileHeader) (*models.Datesheet, error) {
	item, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	item.ExamName, item.Class, item.Year, item.ExamDate = in.ExamName, in.Class, in.Year, in.Date

	oldPath := item.PDFPath
	if file != nil {
		stored, err := s.resolver.Store(filestorage.KindDatesheetPDF, file)
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
func (s *DatesheetService) Delete(ctx context.Context, id int64) error {
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
