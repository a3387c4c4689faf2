package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pioneer/admissions/internal/app/models"
	"github.com/pioneer/admissions/internal/pkg/apperrors"
	"github.com/pioneer/admissions/internal/pkg/dberrors"
	"github.com/pioneer/admissions/internal/pkg/helpers"
	"github.com/pioneer/admissions/internal/pkg/logger"
)

// ApplicantStore persists applicant records
type ApplicantStore interface {
	Create(ctx context.Context, applicant *models.Applicant) error
	GetByID(ctx context.Context, id string) (*models.Applicant, error)
	GetByEmail(ctx context.Context, email string) (*models.Applicant, error)
	List(ctx context.Context, filter models.ApplicantFilter) ([]*models.Applicant, int64, error)
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) (*models.Applicant, error)
	MarkAsRead(ctx context.Context, id string) (*models.Applicant, error)
	Delete(ctx context.Context, id string) (*models.Applicant, error)
	Count(ctx context.Context) (int64, error)
}

const applicantEmailIndex = "applicants_email_lower_key"

var applicantColumns = []string{
	"id", "email", "password", "class", "dated", "student_name",
	"dob_day", "dob_month", "dob_year", "dob_in_words",
	"school_last_attended", "father_name", "father_profession", "mother_name", "mother_profession",
	"guardian_name", "guardian_profession", "monthly_income",
	"father_contact", "mother_contact", "father_qualification", "mother_qualification",
	"residence", "village", "tehsil", "district", "pen_no", "blood_group",
	"sibling_studying", "sibling_name", "sibling_class",
	"student_photo_path", "dob_certificate_path", "blood_report_path", "aadhar_card_path",
	"passport_photos_path", "marks_certificate_path", "school_leaving_cert_path",
	"application_status", "is_read", "created_at", "updated_at",
}

var returningApplicant = "RETURNING " + strings.Join(applicantColumns, ", ")

// ApplicantRepository handles applicant database operations
type ApplicantRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewApplicantRepository creates a new ApplicantRepository
func NewApplicantRepository(db *pgxpool.Pool) *ApplicantRepository {
	return &ApplicantRepository{
		db: db,
		sb: newStatementBuilder(),
	}
}

func scanApplicant(row pgx.Row) (*models.Applicant, error) {
	var a models.Applicant
	var siblingName, siblingClass *string
	err := row.Scan(
		&a.ID, &a.Email, &a.Password, &a.Class, &a.Dated, &a.StudentName,
		&a.DOB.Day, &a.DOB.Month, &a.DOB.Year, &a.DOB.InWords,
		&a.SchoolLastAttended, &a.FatherName, &a.FatherProfession, &a.MotherName, &a.MotherProfession,
		&a.GuardianName, &a.GuardianProfession, &a.MonthlyIncome,
		&a.FatherContact, &a.MotherContact, &a.FatherQualification, &a.MotherQualification,
		&a.Residence, &a.Village, &a.Tehsil, &a.District, &a.PenNo, &a.BloodGroup,
		&a.SiblingStudying, &siblingName, &siblingClass,
		&a.Documents.StudentPhoto, &a.Documents.DOBCertificate, &a.Documents.BloodReport, &a.Documents.AadharCard,
		&a.Documents.PassportPhotos, &a.Documents.MarksCertificate, &a.Documents.SchoolLeavingCert,
		&a.ApplicationStatus, &a.IsRead, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if siblingName != nil || siblingClass != nil {
		a.SiblingDetails = &models.SiblingDetails{}
		if siblingName != nil {
			a.SiblingDetails.Name = *siblingName
		}
		if siblingClass != nil {
			a.SiblingDetails.Class = *siblingClass
		}
	}
	return &a, nil
}

// Create inserts a new applicant. The id is generated here and the status
// defaults to pending. A second record with the same email, compared
// case-insensitively, fails with apperrors.ErrEmailAlreadyExists.
func (r *ApplicantRepository) Create(ctx context.Context, a *models.Applicant) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.ApplicationStatus == "" {
		a.ApplicationStatus = models.StatusPending
	}

	var siblingName, siblingClass *string
	if a.SiblingDetails != nil {
		siblingName, siblingClass = &a.SiblingDetails.Name, &a.SiblingDetails.Class
	}

	sql, args, err := r.sb.Insert("applicants").
		Columns(applicantColumns[:len(applicantColumns)-2]...).
		Values(
			a.ID, a.Email, a.Password, a.Class, a.Dated, a.StudentName,
			a.DOB.Day, a.DOB.Month, a.DOB.Year, a.DOB.InWords,
			a.SchoolLastAttended, a.FatherName, a.FatherProfession, a.MotherName, a.MotherProfession,
			a.GuardianName, a.GuardianProfession, a.MonthlyIncome,
			a.FatherContact, a.MotherContact, a.FatherQualification, a.MotherQualification,
			a.Residence, a.Village, a.Tehsil, a.District, a.PenNo, a.BloodGroup,
			a.SiblingStudying, siblingName, siblingClass,
			a.Documents.StudentPhoto, a.Documents.DOBCertificate, a.Documents.BloodReport, a.Documents.AadharCard,
			a.Documents.PassportPhotos, a.Documents.MarksCertificate, a.Documents.SchoolLeavingCert,
			a.ApplicationStatus, a.IsRead,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create applicant SQL")
		return fmt.Errorf("failed to build create applicant query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, applicantEmailIndex) {
			return apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "Email already exists")
		}
		logger.Error().Err(err).Str("email", a.Email).Msg("Error executing create applicant query")
		return fmt.Errorf("error creating applicant: %w", err)
	}

	return nil
}

func (r *ApplicantRepository) getOne(ctx context.Context, where squirrel.Sqlizer, op string) (*models.Applicant, error) {
	sql, args, err := r.sb.Select(applicantColumns...).
		From("applicants").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s query: %w", op, err)
	}

	a, err := scanApplicant(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, notFoundOr(err, "Application", op)
	}
	return a, nil
}

// GetByID retrieves an applicant; a malformed id is reported as not found.
func (r *ApplicantRepository) GetByID(ctx context.Context, id string) (*models.Applicant, error) {
	uid, err := parseID(id, "Application")
	if err != nil {
		return nil, err
	}
	return r.getOne(ctx, squirrel.Eq{"id": uid}, "get applicant by id")
}

// GetByEmail retrieves an applicant by case-insensitive email
func (r *ApplicantRepository) GetByEmail(ctx context.Context, email string) (*models.Applicant, error) {
	return r.getOne(ctx, squirrel.Expr("LOWER(email) = LOWER(?)", email), "get applicant by email")
}

// List returns applicants newest first together with the total matching count
func (r *ApplicantRepository) List(ctx context.Context, filter models.ApplicantFilter) ([]*models.Applicant, int64, error) {
	where := squirrel.And{}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"application_status": *filter.Status})
	}
	if filter.IsRead != nil {
		where = append(where, squirrel.Eq{"is_read": *filter.IsRead})
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("applicants").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count applicants query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing count applicants query")
		return nil, 0, fmt.Errorf("failed to count applicants: %w", err)
	}
	if total == 0 {
		return []*models.Applicant{}, 0, nil
	}

	query := r.sb.Select(applicantColumns...).
		From("applicants").
		Where(where).
		OrderBy("created_at DESC")
	if offset, limit, ok := helpers.CalculateOffsetLimit(filter.Page, filter.Size); ok {
		query = query.Limit(limit).Offset(offset)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list applicants query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list applicants query")
		return nil, 0, fmt.Errorf("failed to query applicants: %w", err)
	}
	defer rows.Close()

	applicants := []*models.Applicant{}
	for rows.Next() {
		a, err := scanApplicant(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning applicant row")
			return nil, 0, fmt.Errorf("failed to scan applicant row: %w", err)
		}
		applicants = append(applicants, a)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating applicant rows")
		return nil, 0, fmt.Errorf("error iterating applicant rows: %w", err)
	}

	return applicants, total, nil
}

func (r *ApplicantRepository) updateReturning(ctx context.Context, id string, set map[string]interface{}, op string) (*models.Applicant, error) {
	uid, err := parseID(id, "Application")
	if err != nil {
		return nil, err
	}
	set["updated_at"] = squirrel.Expr("NOW()")

	sql, args, err := r.sb.Update("applicants").
		SetMap(set).
		Where(squirrel.Eq{"id": uid}).
		Suffix(returningApplicant).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s query: %w", op, err)
	}

	a, err := scanApplicant(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, notFoundOr(err, "Application", op)
	}
	return a, nil
}

// UpdateStatus sets only the workflow state and returns the updated record
func (r *ApplicantRepository) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) (*models.Applicant, error) {
	return r.updateReturning(ctx, id, map[string]interface{}{"application_status": status}, "update applicant status")
}

// MarkAsRead sets only the read flag and returns the updated record
func (r *ApplicantRepository) MarkAsRead(ctx context.Context, id string) (*models.Applicant, error) {
	return r.updateReturning(ctx, id, map[string]interface{}{"is_read": true}, "mark applicant as read")
}

// Delete removes an applicant and returns the deleted record so that its
// files can be cleaned up.
func (r *ApplicantRepository) Delete(ctx context.Context, id string) (*models.Applicant, error) {
	uid, err := parseID(id, "Application")
	if err != nil {
		return nil, err
	}

	sql, args, err := r.sb.Delete("applicants").
		Where(squirrel.Eq{"id": uid}).
		Suffix(returningApplicant).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build delete applicant query: %w", err)
	}

	a, err := scanApplicant(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, notFoundOr(err, "Application", "delete applicant")
	}
	return a, nil
}

// Count returns the number of applicants
func (r *ApplicantRepository) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db, r.sb, "applicants")
}
