package services

import (
	"context"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/pioneer/admissions/internal/app/models"
	"github.com/pioneer/admissions/internal/app/models/dto"
	"github.com/pioneer/admissions/internal/app/repositories"
	"github.com/pioneer/admissions/internal/pkg/filestorage"
	"github.com/pioneer/admissions/internal/pkg/validation"
)

// MessageService manages announcements
type MessageService struct {
	store     repositories.MessageStore
	resolver  *filestorage.Resolver
	validator *validation.Validator
	logger    zerolog.Logger
}

// NewMessageService creates a new MessageService
func NewMessageService(store repositories.MessageStore, resolver *filestorage.Resolver, validator *validation.Validator, logger zerolog.Logger) *MessageService {
	return &MessageService{store: store, resolver: resolver, validator: validator, logger: logger}
}

// ToAnnouncementResponse attaches the attachment URL to a message
func ToAnnouncementResponse(m *models.Message, urlFor URLFunc) dto.AnnouncementResponse {
	return dto.AnnouncementResponse{
		ID:             m.ID,
		Title:          m.Title,
		Content:        m.Content,
		SentBy:         m.SentBy,
		TargetAudience: m.TargetAudience,
		AttachmentURL:  urlFor(m.AttachmentPath),
		SentAt:         m.SentAt,
	}
}

// Create records an announcement with an optional attachment
func (s *MessageService) Create(ctx context.Context, in dto.MessageInput, attachment *multipart.FileHeader) (*models.Message, error) {
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	m := &models.Message{
		Title:          in.Title,
		Content:        in.Content,
		SentBy:         in.SentBy,
		TargetAudience: in.TargetAudience,
	}
	if attachment != nil {
		stored, err := s.resolver.Store(filestorage.KindMessageAttachment, attachment)
		if err != nil {
			return nil, err
		}
		m.AttachmentPath = stored.Path
	}

	if err := s.store.Create(ctx, m); err != nil {
		filestorage.RemoveQuietly(s.resolver.Storage(), m.AttachmentPath)
		return nil, err
	}

	s.logger.Info().Int64("messageID", m.ID).Str("audience", m.TargetAudience).Msg("Message sent")
	return m, nil
}

// Get returns one message
func (s *MessageService) Get(ctx context.Context, id int64) (*models.Message, error) {
	return s.store.GetByID(ctx, id)
}

// List returns every message, newest first
func (s *MessageService) List(ctx context.Context) ([]*models.Message, error) {
	return s.store.List(ctx)
}

// Update replaces the fields and, when attachment is given, the attachment
func (s *MessageService) Update(ctx context.Context, id int64, in dto.MessageInput, attachment *multipart.FileHeader) (*models.Message, error) {
	m, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	m.Title, m.Content, m.SentBy, m.TargetAudience = in.Title, in.Content, in.SentBy, in.TargetAudience

	oldPath := m.AttachmentPath
	if attachment != nil {
		stored, err := s.resolver.Store(filestorage.KindMessageAttachment, attachment)
		if err != nil {
			return nil, err
		}
		m.AttachmentPath = stored.Path
	}

	if err := s.store.Update(ctx, m); err != nil {
		if m.AttachmentPath != oldPath {
			filestorage.RemoveQuietly(s.resolver.Storage(), m.AttachmentPath)
		}
		return nil, err
	}

	s.resolver.Replace(oldPath, m.AttachmentPath)
	return m, nil
}

// Delete removes the message and its attachment
func (s *MessageService) Delete(ctx context.Context, id int64) error {
	m, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	filestorage.RemoveQuietly(s.resolver.Storage(), m.AttachmentPath)
	return nil
}
