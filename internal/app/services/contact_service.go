package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pioneer/admissions/internal/app/models"
	"github.com/pioneer/admissions/internal/app/models/dto"
	"github.com/pioneer/admissions/internal/app/repositories"
	"github.com/pioneer/admissions/internal/pkg/validation"
)

// ContactService handles contact-form submissions
type ContactService struct {
	store     repositories.ContactStore
	validator *validation.Validator
	logger    zerolog.Logger
}

// NewContactService creates a new ContactService
func NewContactService(store repositories.ContactStore, validator *validation.Validator, logger zerolog.Logger) *ContactService {
	return &ContactService{store: store, validator: validator, logger: logger}
}

// Submit validates and records a contact-form submission
func (s *ContactService) Submit(ctx context.Context, req dto.ContactRequest) (*models.Contact, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)

	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	c := &models.Contact{Name: req.Name, Email: req.Email, Subject: req.Subject, Message: req.Message}
	if err := s.store.Create(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("contactID", c.ID).Msg("Contact form received")
	return c, nil
}

// List returns every submission, newest first
func (s *ContactService) List(ctx context.Context) ([]*models.Contact, error) {
	return s.store.List(ctx)
}

// Delete removes a submission
func (s *ContactService) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}
