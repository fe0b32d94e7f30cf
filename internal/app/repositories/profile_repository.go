package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acitm/admissions/internal/app/models"
	"github.com/acitm/admissions/internal/pkg/apperrors"
)

// ProfileRepository handles database operations for profiles, the linking
// table between login accounts and roles/centers.
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{
		db: db,
	}
}

// GetUser resolves the full application identity for an account id: the
// profile row joined with the account email and, when center-affiliated, the
// center name.
func (r *ProfileRepository) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx, `
		SELECT p.id, u.email, p.role, p.center_id, c.name
		FROM profiles p
		JOIN users u ON u.id = p.id
		LEFT JOIN centers c ON c.id = p.center_id
		WHERE p.id = $1
	`, id).Scan(&user.ID, &user.Email, &user.Role, &user.CenterID, &user.CenterName)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}

	return &user, nil
}

// Link associates a profile with a center and role
func (r *ProfileRepository) Link(ctx context.Context, id, centerID string, role models.Role) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE profiles
		SET center_id = $1, role = $2
		WHERE id = $3
	`, centerID, role, id)

	if err != nil {
		return fmt.Errorf("error linking profile: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}

// HasAdmin reports whether any admin profile exists
func (r *ProfileRepository) HasAdmin(ctx context.Context) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM profiles WHERE role = $1)`, models.RoleAdmin).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking for admin profile: %w", err)
	}
	return exists, nil
}

// SetRole updates only the role of a profile
func (r *ProfileRepository) SetRole(ctx context.Context, id string, role models.Role) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE profiles SET role = $1 WHERE id = $2`, role, id)
	if err != nil {
		return fmt.Errorf("error updating profile role: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
