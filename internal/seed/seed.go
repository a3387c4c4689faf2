package seed

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pioneer/admissions/internal/app/models"
	"github.com/pioneer/admissions/internal/app/repositories"
	"github.com/pioneer/admissions/internal/pkg/apperrors"
	"github.com/pioneer/admissions/internal/pkg/auth"
)

// CreateDefaultAdmin creates the configured administrator when no
// administrator exists yet. Empty credentials disable seeding.
func CreateDefaultAdmin(ctx context.Context, store repositories.AdminStore, email, password string, lgr zerolog.Logger) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		lgr.Debug().Msg("No default administrator configured")
		return nil
	}

	n, err := store.Count(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error counting administrators")
		return err
	}
	if n > 0 {
		lgr.Info().Int64("admins", n).Msg("Administrators present, skipping default administrator")
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.Admin{Name: email, Email: email, Password: hash}
	if err := store.Create(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		lgr.Error().Err(err).Str("email", email).Msg("Error creating default administrator")
		return err
	}

	lgr.Info().Str("email", email).Msg("Default administrator created")
	return nil
}
