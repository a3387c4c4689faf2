package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pioneer/admissions/internal/app/models"
	"github.com/pioneer/admissions/internal/app/models/dto"
	"github.com/pioneer/admissions/internal/app/repositories"
	"github.com/pioneer/admissions/internal/pkg/apperrors"
	"github.com/pioneer/admissions/internal/pkg/email"
	"github.com/pioneer/admissions/internal/pkg/filestorage"
	"github.com/pioneer/admissions/internal/pkg/helpers"
)

// ApplicationService is the administrator's review surface over applicants
type ApplicationService struct {
	store    repositories.ApplicantStore
	storage  filestorage.FileStorage
	notifier email.StatusNotifier
	logger   zerolog.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(store repositories.ApplicantStore, storage filestorage.FileStorage, notifier email.StatusNotifier, logger zerolog.Logger) *ApplicationService {
	return &ApplicationService{
		store:    store,
		storage:  storage,
		notifier: notifier,
		logger:   logger,
	}
}

// List returns one page of applications, newest first
func (s *ApplicationService) List(ctx context.Context, filter models.ApplicantFilter) (*dto.PaginatedResponse, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, apperrors.NewValidationError("status", "Status must be one of pending, approved, rejected")
	}

	items, total, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]*models.Applicant, len(items))
	for i, a := range items {
		out[i] = a.Sanitized()
	}

	return &dto.PaginatedResponse{
		Items:      out,
		Pagination: helpers.NewPaginationInfo(total, filter.Page, filter.Size),
	}, nil
}

// Get returns one application without its password
func (s *ApplicationService) Get(ctx context.Context, id string) (*models.Applicant, error) {
	a, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return a.Sanitized(), nil
}

// UpdateStatus moves an application to any of the three workflow states and
// notifies the applicant. Notification failures are logged only.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) (*models.Applicant, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("applicationStatus", "Invalid status value")
	}

	a, err := s.store.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("applicantID", a.ID.String()).Str("status", string(status)).Msg("Application status updated")

	if s.notifier != nil {
		if err := s.notifier.NotifyStatusChange(ctx, a.Email, a.StudentName, string(status)); err != nil {
			s.logger.Warn().Err(err).Str("applicantID", a.ID.String()).Msg("Status notification failed")
		}
	}
	return a.Sanitized(), nil
}

// MarkAsRead flags an application as read
func (s *ApplicationService) MarkAsRead(ctx context.Context, id string) (*models.Applicant, error) {
	a, err := s.store.MarkAsRead(ctx, id)
	if err != nil {
		return nil, err
	}
	return a.Sanitized(), nil
}

// Delete removes the application and, best-effort, every file it references
func (s *ApplicationService) Delete(ctx context.Context, id string) error {
	a, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}

	paths := a.Documents.All()
	filestorage.RemoveQuietly(s.storage, paths...)
	s.logger.Info().Str("applicantID", a.ID.String()).Int("files", len(paths)).Msg("Application deleted")
	return nil
}

// Count returns the number of applications
func (s *ApplicationService) Count(ctx context.Context) (int64, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return n, nil
}
