package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pioneer/admissions/internal/pkg/apperrors"
	"github.com/pioneer/admissions/internal/pkg/dberrors"
	"github.com/pioneer/admissions/internal/pkg/logger"
)

func newStatementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// parseID turns an external identifier into a UUID. A malformed identifier
// cannot name any record, so it is reported as not found.
func parseID(id, entity string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, apperrors.NewResourceNotFoundError(entity + " not found")
	}
	return parsed, nil
}

// notFoundOr maps pgx.ErrNoRows and malformed literals to a not-found error,
// logging and wrapping anything else.
func notFoundOr(err error, entity, op string) error {
	if errors.Is(err, pgx.ErrNoRows) || dberrors.IsInvalidTextRepresentation(err) {
		return apperrors.NewResourceNotFoundError(entity + " not found")
	}
	logger.Error().Err(err).Str("entity", entity).Msg("Error executing " + op + " query")
	return fmt.Errorf("error during %s: %w", op, err)
}

// countRows returns SELECT COUNT(*) for table
func countRows(ctx context.Context, db *pgxpool.Pool, sb squirrel.StatementBuilderType, table string) (int64, error) {
	sql, args, err := sb.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var n int64
	if err := db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		logger.Error().Err(err).Str("table", table).Msg("Error counting rows")
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}

// deleteByID deletes one row, returning not found when nothing matched
func deleteByID(ctx context.Context, db *pgxpool.Pool, sb squirrel.StatementBuilderType, table, entity string, id int64) error {
	sql, args, err := sb.Delete(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete %s query: %w", entity, err)
	}

	tag, err := db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("id", id).Str("entity", entity).Msg("Error deleting row")
		return fmt.Errorf("error deleting %s: %w", entity, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError(entity + " not found")
	}
	return nil
}
