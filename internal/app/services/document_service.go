package services

import (
	"context"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pioneer/admissions/internal/app/models"
	"github.com/pioneer/admissions/internal/app/repositories"
	"github.com/pioneer/admissions/internal/pkg/apperrors"
	"github.com/pioneer/admissions/internal/pkg/filestorage"
	"github.com/pioneer/admissions/internal/pkg/helpers"
	"github.com/pioneer/admissions/internal/pkg/pdf"
	"github.com/pioneer/admissions/internal/pkg/validation"
)

// DocumentConfig holds the school details printed on generated documents
type DocumentConfig struct {
	LogoPath     string
	SchoolName   string
	Session      string
	Issuer       string
	ContactEmail string
	Phones       []string
}

// RenderedDocument is a generated PDF ready to be sent as an attachment
type RenderedDocument struct {
	Filename string
	Content  []byte
}

// DocumentService renders admit cards and application summaries
type DocumentService struct {
	store     repositories.ApplicantStore
	storage   filestorage.FileStorage
	renderer  *pdf.Renderer
	assets    pdf.Assets
	config    DocumentConfig
	logger    zerolog.Logger
	now       func() time.Time
	newSerial func() string
}

// NewDocumentService creates a new DocumentService. A missing logo is
// logged and the documents are rendered without it.
func NewDocumentService(
	store repositories.ApplicantStore,
	storage filestorage.FileStorage,
	renderer *pdf.Renderer,
	config DocumentConfig,
	logger zerolog.Logger,
) *DocumentService {
	var assets pdf.Assets
	if config.LogoPath != "" {
		logo, err := os.ReadFile(config.LogoPath)
		if err != nil {
			logger.Warn().Err(err).Str("path", config.LogoPath).Msg("Logo not available, documents will omit it")
		} else {
			assets.Logo = logo
		}
	}

	return &DocumentService{
		store:     store,
		storage:   storage,
		renderer:  renderer,
		assets:    assets,
		config:    config,
		logger:    logger,
		now:       time.Now,
		newSerial: func() string { return uuid.NewString() },
	}
}

// AdmitCard renders the admit card of an approved application. Any other
// state fails with ErrNotApproved and no document is produced.
func (s *DocumentService) AdmitCard(ctx context.Context, id string) (*RenderedDocument, error) {
	a, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.ApplicationStatus != models.StatusApproved {
		return nil, apperrors.NewCustomError(apperrors.ErrNotApproved, "Admit card is available only for approved applications.")
	}

	data := pdf.AdmitCardData{
		SerialNumber: s.newSerial(),
		ApplicantID:  a.ID.String(),
		StudentName:  a.StudentName,
		DateOfBirth:  a.DOB.Formatted(),
		FatherName:   a.FatherName,
		Class:        a.Class,
		Contact:      a.FatherContact,
		Address:      pdf.JoinAddress(a.Residence, a.Village, a.Tehsil, a.District),
		PenNo:        a.PenNo,
		BloodGroup:   a.BloodGroup,
		Photo:        s.readStored(a.Documents.StudentPhoto),
		Issuer:       s.config.Issuer,
		IssuedAt:     s.now(),
	}

	doc, err := pdf.AdmitCard(data, s.assets)
	if err != nil {
		s.logger.Error().Err(err).Str("applicantID", a.ID.String()).Msg("Failed to lay out admit card")
		return nil, err
	}

	content, err := s.renderer.Render(doc)
	if err != nil {
		s.logger.Error().Err(err).Str("applicantID", a.ID.String()).Msg("Failed to render admit card")
		return nil, err
	}

	s.logger.Info().Str("applicantID", a.ID.String()).Str("serial", data.SerialNumber).Msg("Admit card issued")
	return &RenderedDocument{
		Filename: safeFilename(a.StudentName) + "_Admit_Card.pdf",
		Content:  content,
	}, nil
}

// Summary renders the printable registration form of any application
func (s *DocumentService) Summary(ctx context.Context, id string) (*RenderedDocument, error) {
	a, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	data := pdf.SummaryData{
		SchoolName:         s.config.SchoolName,
		Session:            s.config.Session,
		Class:              a.Class,
		Date:               dayFirst(a.Dated),
		StudentName:        a.StudentName,
		DateOfBirth:        a.DOB.Formatted(),
		LastSchool:         a.SchoolLastAttended,
		FatherName:         a.FatherName,
		FatherProfession:   a.FatherProfession,
		FatherContact:      a.FatherContact,
		MotherName:         a.MotherName,
		MotherProfession:   a.MotherProfession,
		MotherContact:      a.MotherContact,
		GuardianName:       a.GuardianName,
		GuardianProfession: a.GuardianProfession,
		EmergencyContact:   a.FatherContact,
		Residence:          a.Residence,
		Village:            a.Village,
		Tehsil:             a.Tehsil,
		District:           a.District,
		SiblingStudying:    a.SiblingStudying,
		Phones:             s.config.Phones,
		ContactEmail:       s.config.ContactEmail,
	}
	if a.SiblingDetails != nil {
		data.SiblingName = a.SiblingDetails.Name
		data.SiblingClass = a.SiblingDetails.Class
	}

	content, err := s.renderer.Render(pdf.ApplicationSummary(data, s.assets))
	if err != nil {
		s.logger.Error().Err(err).Str("applicantID", a.ID.String()).Msg("Failed to render application summary")
		return nil, err
	}

	return &RenderedDocument{
		Filename: "application_" + a.ID.String() + ".pdf",
		Content:  content,
	}, nil
}

// readStored returns the content of a stored upload, or nil when it is
// missing or unreadable.
func (s *DocumentService) readStored(storedPath string) []byte {
	if storedPath == "" {
		return nil
	}
	full := s.storage.FullPath(storedPath)
	if full == "" {
		return nil
	}
	data, err := os.ReadFile(full)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", storedPath).Msg("Stored photo not readable, rendering empty frame")
		return nil
	}
	return data
}

func dayFirst(dated string) string {
	if t, ok := validation.ParseDate(dated); ok {
		return helpers.FormatDayFirst(t)
	}
	return dated
}

// safeFilename keeps ASCII letters, digits, dots and dashes; everything else
// becomes an underscore.
func safeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "applicant"
	}
	return strings.Map(func(r rune) rune {
		if r <= unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.') {
			return r
		}
		return '_'
	}, name)
}
