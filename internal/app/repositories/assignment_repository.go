package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pioneer/admissions/internal/app/models"
	"github.com/pioneer/admissions/internal/db"
	"github.com/pioneer/admissions/internal/pkg/logger"
)

// AssignmentStore persists assignments grouped by class
type AssignmentStore interface {
	// Add appends an assignment to the class group, creating the group when needed
	Add(ctx context.Context, class string, a *models.Assignment) error
	ListGrouped(ctx context.Context) ([]*models.ClassAssignment, error)
	GetByClass(ctx context.Context, class string) (*models.ClassAssignment, error)
	GetAssignment(ctx context.Context, class string, id int64) (*models.Assignment, error)
	Update(ctx context.Context, a *models.Assignment) error
	Delete(ctx context.Context, class string, id int64) error
	Count(ctx context.Context) (int64, error)
}

var assignmentColumns = []string{"a.id", "ca.class", "a.title", "a.subject", "a.description", "a.pdf_path", "a.uploaded_date"}

// AssignmentRepository handles class assignment database operations
type AssignmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{db: db, sb: newStatementBuilder()}
}

func scanAssignment(row pgx.Row) (*models.Assignment, error) {
	var a models.Assignment
	if err := row.Scan(&a.ID, &a.Class, &a.Title, &a.Subject, &a.Description, &a.PDFPath, &a.UploadedDate); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssignmentRepository) selectAssignments() squirrel.SelectBuilder {
	return r.sb.Select(assignmentColumns...).
		From("assignments a").
		Join("class_assignments ca ON ca.id = a.class_assignment_id")
}

// Add upserts the class group and inserts the assignment in one transaction
func (r *AssignmentRepository) Add(ctx context.Context, class string, a *models.Assignment) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		upsert, args, err := r.sb.Insert("class_assignments").
			Columns("class").
			Values(class).
			Suffix("ON CONFLICT (class) DO UPDATE SET class = EXCLUDED.class RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build class assignment upsert: %w", err)
		}

		var groupID int64
		if err := tx.QueryRow(ctx, upsert, args...).Scan(&groupID); err != nil {
			logger.Error().Err(err).Str("class", class).Msg("Error upserting class assignment")
			return fmt.Errorf("error upserting class assignment: %w", err)
		}

		insert, args, err := r.sb.Insert("assignments").
			Columns("class_assignment_id", "title", "subject", "description", "pdf_path").
			Values(groupID, a.Title, a.Subject, a.Description, a.PDFPath).
			Suffix("RETURNING id, uploaded_date").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create assignment query: %w", err)
		}

		if err := tx.QueryRow(ctx, insert, args...).Scan(&a.ID, &a.UploadedDate); err != nil {
			logger.Error().Err(err).Str("class", class).Msg("Error creating assignment")
			return fmt.Errorf("error creating assignment: %w", err)
		}
		a.Class = class
		return nil
	})
}

func (r *AssignmentRepository) queryAssignments(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Assignment, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list assignments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list assignments query")
		return nil, fmt.Errorf("error querying assignments: %w", err)
	}
	defer rows.Close()

	var out []*models.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning assignment row: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListGrouped returns every class group with its assignments, newest first
func (r *AssignmentRepository) ListGrouped(ctx context.Context) ([]*models.ClassAssignment, error) {
	sql, args, err := r.sb.Select("id", "class", "created_at").From("class_assignments").OrderBy("class ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list class assignments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list class assignments query")
		return nil, fmt.Errorf("error querying class assignments: %w", err)
	}

	groups := []*models.ClassAssignment{}
	byClass := map[string]*models.ClassAssignment{}
	for rows.Next() {
		g := &models.ClassAssignment{Assignments: []models.Assignment{}}
		if err := rows.Scan(&g.ID, &g.Class, &g.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("error scanning class assignment row: %w", err)
		}
		groups = append(groups, g)
		byClass[g.Class] = g
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating class assignments: %w", err)
	}

	items, err := r.queryAssignments(ctx, r.selectAssignments().OrderBy("a.uploaded_date DESC", "a.id DESC"))
	if err != nil {
		return nil, err
	}
	for _, a := range items {
		if g, ok := byClass[a.Class]; ok {
			g.Assignments = append(g.Assignments, *a)
		}
	}
	return groups, nil
}

// GetByClass returns the group of one class
func (r *AssignmentRepository) GetByClass(ctx context.Context, class string) (*models.ClassAssignment, error) {
	sql, args, err := r.sb.Select("id", "class", "created_at").From("class_assignments").
		Where(squirrel.Eq{"class": class}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get class assignment query: %w", err)
	}

	g := &models.ClassAssignment{Assignments: []models.Assignment{}}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&g.ID, &g.Class, &g.CreatedAt); err != nil {
		return nil, notFoundOr(err, "Class", "get class assignment")
	}

	items, err := r.queryAssignments(ctx, r.selectAssignments().
		Where(squirrel.Eq{"a.class_assignment_id": g.ID}).
		OrderBy("a.uploaded_date DESC", "a.id DESC"))
	if err != nil {
		return nil, err
	}
	for _, a := range items {
		g.Assignments = append(g.Assignments, *a)
	}
	return g, nil
}

// GetAssignment returns one assignment of a class
func (r *AssignmentRepository) GetAssignment(ctx context.Context, class string, id int64) (*models.Assignment, error) {
	sql, args, err := r.selectAssignments().
		Where(squirrel.Eq{"a.id": id, "ca.class": class}).
		Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get assignment query: %w", err)
	}

	a, err := scanAssignment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, notFoundOr(err, "Assignment", "get assignment")
	}
	return a, nil
}

// Update rewrites the mutable fields of an assignment
func (r *AssignmentRepository) Update(ctx context.Context, a *models.Assignment) error {
	sql, args, err := r.sb.Update("assignments").
		SetMap(map[string]interface{}{
			"title":       a.Title,
			"subject":     a.Subject,
			"description": a.Description,
			"pdf_path":    a.PDFPath,
		}).
		Where(squirrel.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update assignment query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("id", a.ID).Msg("Error updating assignment")
		return fmt.Errorf("error updating assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFoundOr(pgx.ErrNoRows, "Assignment", "update assignment")
	}
	return nil
}

// Delete removes one assignment from a class
func (r *AssignmentRepository) Delete(ctx context.Context, class string, id int64) error {
	sql, args, err := r.sb.Delete("assignments").
		Where(squirrel.Eq{"id": id}).
		Where("class_assignment_id = (SELECT id FROM class_assignments WHERE class = ?)", class).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete assignment query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("id", id).Msg("Error deleting assignment")
		return fmt.Errorf("error deleting assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFoundOr(pgx.ErrNoRows, "Assignment", "delete assignment")
	}
	return nil
}

// Count returns the number of assignments across all classes
func (r *AssignmentRepository) Count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db, r.sb, "assignments")
}
