// Package seed creates default data on startup.
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/acitm/admissions/internal/app/models"
	"github.com/acitm/admissions/internal/app/repositories"
	"github.com/acitm/admissions/internal/config"
	"github.com/acitm/admissions/internal/pkg/auth"
)

// CreateDefaultAdmin creates the configured admin account if no admin profile
// exists yet. Without it a fresh deployment has no way to log in.
func CreateDefaultAdmin(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	profileRepo := repositories.NewProfileRepository(dbPool)
	accountRepo := repositories.NewAccountRepository(dbPool)

	hasAdmin, err := profileRepo.HasAdmin(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for existing admin: %w", err)
	}
	if hasAdmin {
		lgr.Debug().Msg("Admin profile already exists, skipping seed")
		return nil
	}

	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		lgr.Warn().Msg("No admin profile exists and no admin credentials configured")
		return nil
	}

	passwordHash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	accountID, err := accountRepo.CreateAccount(ctx, cfg.Admin.Email, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	if err := profileRepo.SetRole(ctx, accountID, models.RoleAdmin); err != nil {
		return fmt.Errorf("failed to promote admin profile: %w", err)
	}

	lgr.Info().Str("email", cfg.Admin.Email).Msg("Default admin account created")
	return nil
}
