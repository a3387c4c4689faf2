package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pioneer/admissions/internal/app/models"
	"github.com/pioneer/admissions/internal/pkg/logger"
)

// SyllabusStore persists syllabus entries
type SyllabusStore interface {
	Create(ctx context.Context, s *models.Syllabus) error
	GetByID(ctx context.Context, id int64) (*models.Syllabus, error)
	List(ctx context.Context) ([]*models.Syllabus, error)
	Update(ctx context.Context, s *models.Syllabus) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// DatesheetStore persists datesheets
type DatesheetStore interface {
	Create(ctx context.Context, d *models.Datesheet) error
	GetByID(ctx context.Context, id int64) (*models.Datesheet, error)
	List(ctx context.Context) ([]*models.Datesheet, error)
	Update(ctx context.Context, d *models.Datesheet) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// MessageStore persists announcements
type MessageStore interface {
	Create(ctx context.Context, m *models.Message) error
	GetByID(ctx context.Context, id int64) (*models.Message, error)
	List(ctx context.Context) ([]*models.Message, error)
	Update(ctx context.Context, m *models.Message) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// ContactStore persists contact-form submissions
type ContactStore interface {
	Create(ctx context.Context, c *models.Contact) error
	List(ctx context.Context) ([]*models.Contact, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// table describes how one simple entity maps onto its table
type table[T any] struct {
	name    string
	entity  string
	columns []string
	scan    func(row pgx.Row) (*T, error)
	order   string
}

// contentRepo implements the shared read/delete/count paths for simple entities
type contentRepo[T any] struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
	t  table[T]
}

func (r *contentRepo[T]) insert(ctx context.Context, values map[string]interface{}, returning string, dest ...interface{}) error {
	sql, args, err := r.sb.Insert(r.t.name).SetMap(values).Suffix("RETURNING " + returning).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create %s query: %w", r.t.entity, err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(dest...); err != nil {
		logger.Error().Err(err).Str("entity", r.t.entity).Msg("Error executing create query")
		return fmt.Errorf("error creating %s: %w", r.t.entity, err)
	}
	return nil
}

func (r *contentRepo[T]) getByID(ctx context.Context, id int64) (*T, error) {
	sql, args, err := r.sb.Select(r.t.columns...).From(r.t.name).Where(squirrel.Eq{"id": id}).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get %s query: %w", r.t.entity, err)
	}
	item, err := r.t.scan(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, notFoundOr(err, r.t.entity, "get "+r.t.entity)
	}
	return item, nil
}

func (r *contentRepo[T]) list(ctx context.Context) ([]*T, error) {
	sql, args, err := r.sb.Select(r.t.columns...).From(r.t.name).OrderBy(r.t.order).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list %s query: %w", r.t.entity, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("entity", r.t.entity).Msg("Error executing list query")
		return nil, fmt.Errorf("error querying %s: %w", r.t.name, err)
	}
	defer rows.Close()

	items := []*T{}
	for rows.Next() {
		item, err := r.t.scan(rows)
		if err != nil {
			logger.Error().Err(err).Str("entity", r.t.entity).Msg("Error scanning row")
			return nil, fmt.Errorf("error scanning %s row: %w", r.t.entity, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", r.t.entity, err)
	}
	return items, nil
}

func (r *contentRepo[T]) update(ctx context.Context, id int64, values map[string]interface{}, returning string, dest ...interface{}) error {
	sql, args, err := r.sb.Update(r.t.name).SetMap(values).Where(squirrel.Eq{"id": id}).Suffix("RETURNING " + returning).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update %s query: %w", r.t.entity, err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(dest...); err != nil {
		return notFoundOr(err, r.t.entity, "update "+r.t.entity)
	}
	return nil
}

func (r *contentRepo[T]) delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, r.sb, r.t.name, r.t.entity, id)
}

func (r *contentRepo[T]) count(ctx context.Context) (int64, error) {
	return countRows(ctx, r.db, r.sb, r.t.name)
}

// SyllabusRepository handles syllabus database operations
type SyllabusRepository struct {
	contentRepo[models.Syllabus]
}

// NewSyllabusRepository creates a new SyllabusRepository
func NewSyllabusRepository(db *pgxpool.Pool) *SyllabusRepository {
	return &SyllabusRepository{contentRepo[models.Syllabus]{db: db, sb: newStatementBuilder(), t: table[models.Syllabus]{
		name:    "syllabi",
		entity:  "Syllabus",
		columns: []string{"id", "class", "pdf_path", "created_at", "updated_at"},
		order:   "class ASC, created_at DESC",
		scan: func(row pgx.Row) (*models.Syllabus, error) {
			var s models.Syllabus
			return &s, row.Scan(&s.ID, &s.Class, &s.PDFPath, &s.CreatedAt, &s.UpdatedAt)
		},
	}}}
}

// Create implements SyllabusStore
func (r *SyllabusRepository) Create(ctx context.Context, s *models.Syllabus) error {
	return r.insert(ctx, map[string]interface{}{"class": s.Class, "pdf_path": s.PDFPath},
		"id, created_at, updated_at", &s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// GetByID implements SyllabusStore
func (r *SyllabusRepository) GetByID(ctx context.Context, id int64) (*models.Syllabus, error) {
	return r.getByID(ctx, id)
}

// List implements SyllabusStore
func (r *SyllabusRepository) List(ctx context.Context) ([]*models.Syllabus, error) {
	return r.list(ctx)
}

// Update implements SyllabusStore
func (r *SyllabusRepository) Update(ctx context.Context, s *models.Syllabus) error {
	return r.update(ctx, s.ID,
		map[string]interface{}{"class": s.Class, "pdf_path": s.PDFPath, "updated_at": squirrel.Expr("NOW()")},
		"created_at, updated_at", &s.CreatedAt, &s.UpdatedAt)
}

// Delete implements SyllabusStore
func (r *SyllabusRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, id)
}

// Count implements SyllabusStore
func (r *SyllabusRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx)
}

// DatesheetRepository handles datesheet database operations
type DatesheetRepository struct {
	contentRepo[models.Datesheet]
}

// NewDatesheetRepository creates a new DatesheetRepository
func NewDatesheetRepository(db *pgxpool.Pool) *DatesheetRepository {
	return &DatesheetRepository{contentRepo[models.Datesheet]{db: db, sb: newStatementBuilder(), t: table[models.Datesheet]{
		name:    "datesheets",
		entity:  "Datesheet",
		columns: []string{"id", "exam_name", "class", "year", "exam_date", "pdf_path", "created_at", "updated_at"},
		order:   "class ASC, created_at DESC",
		scan: func(row pgx.Row) (*models.Datesheet, error) {
			var d models.Datesheet
			return &d, row.Scan(&d.ID, &d.ExamName, &d.Class, &d.Year, &d.ExamDate, &d.PDFPath, &d.CreatedAt, &d.UpdatedAt)
		},
	}}}
}

func datesheetValues(d *models.Datesheet) map[string]interface{} {
	return map[string]interface{}{
		"exam_name": d.ExamName,
		"class":     d.Class,
		"year":      d.Year,
		"exam_date": d.ExamDate,
		"pdf_path":  d.PDFPath,
	}
}

// Create implements DatesheetStore
func (r *DatesheetRepository) Create(ctx context.Context, d *models.Datesheet) error {
	return r.insert(ctx, datesheetValues(d), "id, created_at, updated_at", &d.ID, &d.CreatedAt, &d.UpdatedAt)
}

// GetByID implements DatesheetStore
func (r *DatesheetRepository) GetByID(ctx context.Context, id int64) (*models.Datesheet, error) {
	return r.getByID(ctx, id)
}

// List implements DatesheetStore
func (r *DatesheetRepository) List(ctx context.Context) ([]*models.Datesheet, error) {
	return r.list(ctx)
}

// Update implements DatesheetStore
func (r *DatesheetRepository) Update(ctx context.Context, d *models.Datesheet) error {
	values := datesheetValues(d)
	values["updated_at"] = squirrel.Expr("NOW()")
	return r.update(ctx, d.ID, values, "created_at, updated_at", &d.CreatedAt, &d.UpdatedAt)
}

// Delete implements DatesheetStore
func (r *DatesheetRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, id)
}

// Count implements DatesheetStore
func (r *DatesheetRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx)
}

// MessageRepository handles announcement database operations
type MessageRepository struct {
	contentRepo[models.Message]
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{contentRepo[models.Message]{db: db, sb: newStatementBuilder(), t: table[models.Message]{
		name:    "messages",
		entity:  "Message",
		columns: []string{"id", "title", "content", "sent_by", "target_audience", "attachment_path", "sent_at", "updated_at"},
		order:   "sent_at DESC",
		scan: func(row pgx.Row) (*models.Message, error) {
			var m models.Message
			return &m, row.Scan(&m.ID, &m.Title, &m.Content, &m.SentBy, &m.TargetAudience, &m.AttachmentPath, &m.SentAt, &m.UpdatedAt)
		},
	}}}
}

func messageValues(m *models.Message) map[string]interface{} {
	return map[string]interface{}{
		"title":           m.Title,
		"content":         m.Content,
		"sent_by":         m.SentBy,
		"target_audience": m.TargetAudience,
		"attachment_path": m.AttachmentPath,
	}
}

// Create implements MessageStore
func (r *MessageRepository) Create(ctx context.Context, m *models.Message) error {
	return r.insert(ctx, messageValues(m), "id, sent_at, updated_at", &m.ID, &m.SentAt, &m.UpdatedAt)
}

// GetByID implements MessageStore
func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	return r.getByID(ctx, id)
}

// List implements MessageStore
func (r *MessageRepository) List(ctx context.Context) ([]*models.Message, error) {
	return r.list(ctx)
}

// Update implements MessageStore
func (r *MessageRepository) Update(ctx context.Context, m *models.Message) error {
	values := messageValues(m)
	values["updated_at"] = squirrel.Expr("NOW()")
	return r.update(ctx, m.ID, values, "sent_at, updated_at", &m.SentAt, &m.UpdatedAt)
}

// Delete implements MessageStore
func (r *MessageRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, id)
}

// Count implements MessageStore
func (r *MessageRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx)
}

// ContactRepository handles contact-form database operations
type ContactRepository struct {
	contentRepo[models.Contact]
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{contentRepo[models.Contact]{db: db, sb: newStatementBuilder(), t: table[models.Contact]{
		name:    "contacts",
		entity:  "Contact",
		columns: []string{"id", "name", "email", "subject", "message", "created_at"},
		order:   "created_at DESC",
		scan: func(row pgx.Row) (*models.Contact, error) {
			var c models.Contact
			return &c, row.Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &c.CreatedAt)
		},
	}}}
}

// Create implements ContactStore
func (r *ContactRepository) Create(ctx context.Context, c *models.Contact) error {
	return r.insert(ctx, map[string]interface{}{
		"name": c.Name, "email": c.Email, "subject": c.Subject, "message": c.Message,
	}, "id, created_at", &c.ID, &c.CreatedAt)
}

// List implements ContactStore
func (r *ContactRepository) List(ctx context.Context) ([]*models.Contact, error) {
	return r.list(ctx)
}

// Delete implements ContactStore
func (r *ContactRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, id)
}

// Count implements ContactStore
func (r *ContactRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx)
}
