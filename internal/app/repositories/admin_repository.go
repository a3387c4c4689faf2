package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pioneer/admissions/internal/app/models"
	"github.com/pioneer/admissions/internal/pkg/apperrors"
	"github.com/pioneer/admissions/internal/pkg/dberrors"
	"github.com/pioneer/admissions/internal/pkg/logger"
)

// AdminStore persists administrator accounts
type AdminStore interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	Count(ctx context.Context) (int64, error)
}

const adminEmailIndex = "admins_email_lower_key"

var adminColumns = []string{"id", "name", "surname", "email", "password", "is_admin", "created_at", "updated_at"}

// AdminRepository handles administrator database operations
type AdminRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db, sb: newStatementBuilder()}
}

func scanAdmin(row pgx.Row) (*models.Admin, error) {
	var a models.Admin
	if err := row.Scan(&a.ID, &a.Name, &a.Surname, &a.Email, &a.Password, &a.IsAdmin, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts an administrator; duplicate emails fail with ErrEmailAlreadyExists
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	if admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}
	admin.IsAdmin = true

	sql, args, err := r.sb.Insert("admins").
		Columns("id", "name", "surname", "email", "password", "is_admin").
		Values(admin.ID, admin.Name, admin.Surname, admin.Email, admin.Password, admin.IsAdmin).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create admin query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&admin.CreatedAt, &admin.UpdatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, adminEmailIndex) {
			return apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "An account with this email already exists.")
		}
		logger.Error().Err(err).Str("email", admin.Email).Msg("Error executing create admin query")
		return fmt.Errorf("error creating admin: %w", err)
	}
	return nil
}

func (r *AdminRepository) getOne(ctx context.Context, where squirrel.Sqlizer, op string) (*models.Admin, error) {
	sql, args, err := r.sb.Select(adminColumns...).From("admins").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s query: %w", op, err)
	}

	admin, err := scanAdmin(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, notFoundOr(err, "Admin", op)
	}
	return admin, nil
}

// GetByID retrieves an administrator by id
func (r *AdminRepository) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	uid, err := parseID(id, "Admin")
	if err != nil {
		return nil, err
	}
	return r.getOne(ctx, squirrel.Eq{"id": uid}, "get admin by id")
}

// GetByEmail retrieves an administrator by case-insensitive email
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return r.getOne(ctx, squirrel.Expr("LOWER(email) = LOWER(?)", email), "get admin by email")
}

// Count returns the number of administrators
func (r *AdminRepository) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db, r.sb, "admins")
}
