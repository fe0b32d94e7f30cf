package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acitm/admissions/internal/app/models"
	"github.com/acitm/admissions/internal/db"
	"github.com/acitm/admissions/internal/pkg/apperrors"
	"github.com/acitm/admissions/internal/pkg/dberrors"
)

// AccountRepository handles database operations for login accounts. It is
// the backing implementation of the auth provider: sign-up creates both the
// users row and the associated blank profile row, mirroring the platform
// trigger the upstream schema relied on.
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

// CreateAccount creates a login account and its blank profile row in one
// transaction, returning the new account id. The upstream schema created the
// profile via a database trigger; here both inserts commit together.
func (r *AccountRepository) CreateAccount(ctx context.Context, email, passwordHash string) (string, error) {
	id := uuid.NewString()

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO users (id, email, password, created_at)
			VALUES ($1, $2, $3, $4)
		`, id, email, passwordHash, time.Now())
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrEmailAlreadyExists
			}
			return fmt.Errorf("error creating account: %w", err)
		}

		// The profile starts unlinked; provisioning sets role and center afterwards.
		_, err = tx.Exec(ctx, `
			INSERT INTO profiles (id, role, center_id)
			VALUES ($1, $2, NULL)
		`, id, models.RoleCenter)
		if err != nil {
			return fmt.Errorf("error creating profile for account: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return id, nil
}

// GetByEmail retrieves an account by email address
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := r.db.QueryRow(ctx, `
		SELECT id, email, password, created_at
		FROM users
		WHERE email = $1
	`, email).Scan(&account.ID, &account.Email, &account.Password, &account.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error retrieving account: %w", err)
	}

	return &account, nil
}

// GetByID retrieves an account by id
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	err := r.db.QueryRow(ctx, `
		SELECT id, email, password, created_at
		FROM users
		WHERE id = $1
	`, id).Scan(&account.ID, &account.Email, &account.Password, &account.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving account: %w", err)
	}

	return &account, nil
}

// EmailExists checks whether an account with the given email exists
func (r *AccountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}
	return exists, nil
}
