package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pioneer/admissions/internal/app/models"
	"github.com/pioneer/admissions/internal/app/models/dto"
	"github.com/pioneer/admissions/internal/app/repositories"
	"github.com/pioneer/admissions/internal/pkg/apperrors"
	"github.com/pioneer/admissions/internal/pkg/auth"
	"github.com/pioneer/admissions/internal/pkg/validation"
)

// Administrator-facing messages
const (
	msgFieldsMissing    = "Not all fields have been entered."
	msgPasswordTooShort = "Password must be at least 6 characters long."
	msgPasswordMismatch = "Passwords do not match."
	msgAdminExists      = "An account with this email already exists."
)

// AdminService handles administrator accounts and sessions
type AdminService struct {
	store       repositories.AdminStore
	jwtService  *auth.JWTService
	revocations auth.RevocationStore
	logger      zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(store repositories.AdminStore, jwtService *auth.JWTService, revocations auth.RevocationStore, logger zerolog.Logger) *AdminService {
	return &AdminService{
		store:       store,
		jwtService:  jwtService,
		revocations: revocations,
		logger:      logger,
	}
}

func adminData(a *models.Admin) dto.AdminData {
	return dto.AdminData{ID: a.ID, Name: a.Name, Surname: a.Surname, Email: a.Email}
}

// Register creates an administrator. The name defaults to the email.
func (s *AdminService) Register(ctx context.Context, req *dto.AdminRegisterRequest) (*dto.AdminData, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" || req.PasswordCheck == "" {
		return nil, apperrors.NewBadRequestError(msgFieldsMissing)
	}
	if len(req.Password) < validation.PasswordMinLength {
		return nil, apperrors.NewBadRequestError(msgPasswordTooShort)
	}
	if req.Password != req.PasswordCheck {
		return nil, apperrors.NewBadRequestError(msgPasswordMismatch)
	}

	if _, err := s.store.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, msgAdminExists)
	} else if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = email
	}

	admin := &models.Admin{
		Name:     name,
		Surname:  strings.TrimSpace(req.Surname),
		Email:    email,
		Password: hash,
	}
	if err := s.store.Create(ctx, admin); err != nil {
		return nil, err
	}

	s.logger.Info().Str("adminID", admin.ID.String()).Msg("Administrator registered")
	data := adminData(admin)
	return &data, nil
}

// Login verifies the credentials and issues an administrator token
func (s *AdminService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AdminLoginResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperrors.NewBadRequestError(msgFieldsMissing)
	}

	admin, err := s.store.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, msgInvalidCredentials)
		}
		return nil, err
	}
	if !auth.CheckPassword(admin.Password, req.Password) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, msgInvalidCredentials)
	}

	token, err := s.jwtService.IssueAdminToken(admin.ID, admin.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &dto.AdminLoginResult{
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
		Admin:     adminData(admin),
	}, nil
}

// Logout revokes the presented token until it would have expired
func (s *AdminService) Logout(ctx context.Context, claims *auth.Claims) error {
	return revokeClaims(ctx, s.revocations, claims)
}

// ValidateToken reports whether tokenString belongs to an existing,
// logged-in administrator. Invalid tokens are reported as not valid rather
// than as errors.
func (s *AdminService) ValidateToken(ctx context.Context, tokenString string) (*dto.TokenValidationResponse, error) {
	claims, err := s.jwtService.ValidateToken(tokenString)
	if err != nil || !claims.IsAdmin {
		return &dto.TokenValidationResponse{Valid: false}, nil
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return &dto.TokenValidationResponse{Valid: false}, nil
	}

	admin, err := s.store.GetByID(ctx, claims.UserID.String())
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return &dto.TokenValidationResponse{Valid: false}, nil
		}
		return nil, err
	}

	data := adminData(admin)
	return &dto.TokenValidationResponse{Valid: true, Admin: &data}, nil
}
