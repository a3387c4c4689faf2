package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/pioneer/admissions/internal/app/models"
	"github.com/pioneer/admissions/internal/app/models/dto"
	"github.com/pioneer/admissions/internal/app/repositories"
	"github.com/pioneer/admissions/internal/pkg/apperrors"
	"github.com/pioneer/admissions/internal/pkg/auth"
	"github.com/pioneer/admissions/internal/pkg/filestorage"
	"github.com/pioneer/admissions/internal/pkg/validation"
)

// Applicant-facing messages
const (
	msgEmailExists        = "Email already exists"
	msgRegistered         = "User registered successfully"
	msgLoggedIn           = "Successfully logged in."
	msgInvalidCredentials = "Invalid credentials."
	msgMissingCredentials = "Please provide both email and password."
)

// ApplicantService handles applicant registration and sessions
type ApplicantService struct {
	store       repositories.ApplicantStore
	validator   *validation.RegistrationValidator
	resolver    *filestorage.Resolver
	jwtService  *auth.JWTService
	revocations auth.RevocationStore
	logger      zerolog.Logger
}

// NewApplicantService creates a new ApplicantService
func NewApplicantService(
	store repositories.ApplicantStore,
	validator *validation.RegistrationValidator,
	resolver *filestorage.Resolver,
	jwtService *auth.JWTService,
	revocations auth.RevocationStore,
	logger zerolog.Logger,
) *ApplicantService {
	return &ApplicantService{
		store:       store,
		validator:   validator,
		resolver:    resolver,
		jwtService:  jwtService,
		revocations: revocations,
		logger:      logger,
	}
}

func emailExistsError() error {
	return apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, msgEmailExists)
}

// Register validates the form, stores the uploads and creates the applicant.
// Uploads stored by a registration that fails later are removed again.
func (s *ApplicantService) Register(ctx context.Context, raw map[string]string, files map[filestorage.UploadKind]*multipart.FileHeader) (*dto.RegisterResponse, error) {
	if dropped := validation.DroppedFields(raw); len(dropped) > 0 {
		s.logger.Debug().Strs("fields", dropped).Msg("Ignoring unknown registration fields")
	}

	reg, err := s.validator.Process(raw)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.GetByEmail(ctx, reg.Email); err == nil {
		return nil, emailExistsError()
	} else if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, err
	}

	stored, err := s.resolver.Resolve(files, filestorage.RegistrationKinds)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", reg.Email).Msg("Registration upload rejected")
		return nil, err
	}

	hash, err := auth.HashPassword(reg.Password)
	if err != nil {
		s.resolver.Discard(stored)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	applicant := applicantFromRegistration(reg, stored)
	applicant.Password = hash

	if err := s.store.Create(ctx, applicant); err != nil {
		s.resolver.Discard(stored)
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, emailExistsError()
		}
		return nil, err
	}

	token, err := s.jwtService.IssueApplicantToken(applicant.ID, applicant.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info().Str("applicantID", applicant.ID.String()).Int("documents", len(stored)).Msg("Applicant registered")

	return &dto.RegisterResponse{
		Success: true,
		Token:   token.Token,
		Msg:     msgRegistered,
		UserID:  applicant.ID,
	}, nil
}

// Login verifies the credentials and issues an applicant token
func (s *ApplicantService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperrors.NewBadRequestError(msgMissingCredentials)
	}

	applicant, err := s.store.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, msgInvalidCredentials)
		}
		return nil, err
	}

	if !auth.CheckPassword(applicant.Password, req.Password) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, msgInvalidCredentials)
	}

	token, err := s.jwtService.IssueApplicantToken(applicant.ID, applicant.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &dto.LoginResponse{
		Msg: msgLoggedIn,
		Data: dto.LoginData{
			UserID: applicant.ID,
			Email:  applicant.Email,
			Token:  token.Token,
		},
	}, nil
}

// Profile returns the applicant record without its password
func (s *ApplicantService) Profile(ctx context.Context, id string) (*models.Applicant, error) {
	applicant, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return applicant.Sanitized(), nil
}

// Logout revokes the presented token until it would have expired
func (s *ApplicantService) Logout(ctx context.Context, claims *auth.Claims) error {
	return revokeClaims(ctx, s.revocations, claims)
}

func revokeClaims(ctx context.Context, store auth.RevocationStore, claims *auth.Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return apperrors.ErrTokenInvalid
	}
	if err := store.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func applicantFromRegistration(r *validation.Registration, stored map[filestorage.UploadKind]filestorage.StoredFile) *models.Applicant {
	a := &models.Applicant{
		Email:               r.Email,
		Class:               r.Class,
		Dated:               r.Dated,
		StudentName:         r.StudentName,
		SchoolLastAttended:  r.SchoolLastAttended,
		FatherName:          r.FatherName,
		FatherProfession:    r.FatherProfession,
		MotherName:          r.MotherName,
		MotherProfession:    r.MotherProfession,
		GuardianName:        r.GuardianName,
		GuardianProfession:  r.GuardianProfession,
		MonthlyIncome:       r.MonthlyIncome,
		FatherContact:       r.FatherContact,
		MotherContact:       r.MotherContact,
		FatherQualification: r.FatherQualification,
		MotherQualification: r.MotherQualification,
		Residence:           r.Residence,
		Village:             r.Village,
		Tehsil:              r.Tehsil,
		District:            r.District,
		PenNo:               r.PenNo,
		BloodGroup:          r.BloodGroup,
		SiblingStudying:     r.SiblingStudying,
		ApplicationStatus:   models.StatusPending,
	}
	if r.DOB != nil {
		a.DOB = models.DateOfBirth{Day: r.DOB.Day, Month: r.DOB.Month, Year: r.DOB.Year, InWords: r.DOB.InWords}
	}
	if r.SiblingStudying && r.SiblingDetails != nil {
		a.SiblingDetails = &models.SiblingDetails{Name: r.SiblingDetails.Name, Class: r.SiblingDetails.Class}
	}

	a.Documents = models.DocumentPaths{
		StudentPhoto:      stored[filestorage.KindStudentPhoto].Path,
		DOBCertificate:    stored[filestorage.KindDOBCertificate].Path,
		BloodReport:       stored[filestorage.KindBloodReport].Path,
		AadharCard:        stored[filestorage.KindAadharCard].Path,
		PassportPhotos:    stored[filestorage.KindPassportPhotos].Path,
		MarksCertificate:  stored[filestorage.KindMarksCertificate].Path,
		SchoolLeavingCert: stored[filestorage.KindSchoolLeavingCert].Path,
	}
	return a
}
