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

// AssignmentService manages homework assignments grouped by class
type AssignmentService struct {
	store     repositories.AssignmentStore
	resolver  *filestorage.Resolver
	validator *validation.Validator
	logger    zerolog.Logger
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(store repositories.AssignmentStore, resolver *filestorage.Resolver, validator *validation.Validator, logger zerolog.Logger) *AssignmentService {
	return &AssignmentService{store: store, resolver: resolver, validator: validator, logger: logger}
}

// ToAssignmentEntry renders one assignment with its PDF URL
func ToAssignmentEntry(a models.Assignment, urlFor URLFunc) dto.AssignmentEntry {
	return dto.AssignmentEntry{
		ID:           a.ID,
		Title:        a.Title,
		Subject:      a.Subject,
		Description:  a.Description,
		PDFURL:       urlFor(a.PDFPath),
		UploadedDate: helpers.FormatDate(a.UploadedDate),
	}
}

// ToClassAssignmentResponse attaches PDF URLs to a class group
func ToClassAssignmentResponse(g *models.ClassAssignment, urlFor URLFunc) dto.ClassAssignmentResponse {
	out := dto.ClassAssignmentResponse{
		ID:          g.ID,
		Class:       g.Class,
		Assignments: make([]dto.AssignmentEntry, 0, len(g.Assignments)),
	}
	for _, a := range g.Assignments {
		out.Assignments = append(out.Assignments, ToAssignmentEntry(a, urlFor))
	}
	return out
}

// Add appends an assignment to class, creating the class group if needed
func (s *AssignmentService) Add(ctx context.Context, class string, in dto.AssignmentInput, file *multipart.FileHeader) (*models.Assignment, error) {
	if !models.IsClassLabel(class) {
		return nil, classLabelError()
	}
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	a := &models.Assignment{Title: in.Title, Subject: in.Subject, Description: in.Description}
	if file != nil {
		stored, err := s.resolver.Store(filestorage.KindAssignmentPDF, file)
		if err != nil {
			return nil, err
		}
		a.PDFPath = stored.Path
	}

	if err := s.store.Add(ctx, class, a); err != nil {
		filestorage.RemoveQuietly(s.resolver.Storage(), a.PDFPath)
		return nil, err
	}

	s.logger.Info().Int64("assignmentID", a.ID).Str("class", class).Msg("Assignment added")
	return a, nil
}

// ListGrouped returns every class group with its assignments
func (s *AssignmentService) ListGrouped(ctx context.Context, urlFor URLFunc) ([]dto.ClassAssignmentResponse, error) {
	groups, err := s.store.ListGrouped(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClassAssignmentResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, ToClassAssignmentResponse(g, urlFor))
	}
	return out, nil
}

// GetByClass returns the group of one class
func (s *AssignmentService) GetByClass(ctx context.Context, class string, urlFor URLFunc) (*dto.ClassAssignmentResponse, error) {
	g, err := s.store.GetByClass(ctx, class)
	if err != nil {
		return nil, err
	}
	resp := ToClassAssignmentResponse(g, urlFor)
	return &resp, nil
}

// Get returns one assignment of a class
func (s *AssignmentService) Get(ctx context.Context, class string, id int64) (*models.Assignment, error) {
	return s.store.GetAssignment(ctx, class, id)
}

// Update replaces the fields of one assignment and, when file is given, its PDF
func (s *AssignmentService) Update(ctx context.Context, class string, id int64, in dto.AssignmentInput, file *multipart.FileHeader) (*models.Assignment, error) {
	a, err := s.store.GetAssignment(ctx, class, id)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	a.Title, a.Subject, a.Description = in.Title, in.Subject, in.Description

	oldPath := a.PDFPath
	if file != nil {
		stored, err := s.resolver.Store(filestorage.KindAssignmentPDF, file)
		if err != nil {
			return nil, err
		}
		a.PDFPath = stored.Path
	}

	if err := s.store.Update(ctx, a); err != nil {
		if a.PDFPath != oldPath {
			filestorage.RemoveQuietly(s.resolver.Storage(), a.PDFPath)
		}
		return nil, err
	}

	s.resolver.Replace(oldPath, a.PDFPath)
	return a, nil
}

// Delete removes one assignment of a class and its PDF
func (s *AssignmentService) Delete(ctx context.Context, class string, id int64) error {
	a, err := s.store.GetAssignment(ctx, class, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, class, id); err != nil {
		return err
	}
	filestorage.RemoveQuietly(s.resolver.Storage(), a.PDFPath)
	return nil
}
