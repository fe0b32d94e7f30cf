package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acitm/admissions/internal/app/models"
	"github.com/acitm/admissions/internal/pkg/apperrors"
)

// CenterRepository handles database operations for training centers
type CenterRepository struct {
	db *pgxpool.Pool
}

// NewCenterRepository creates a new center repository
func NewCenterRepository(db *pgxpool.Pool) *CenterRepository {
	return &CenterRepository{
		db: db,
	}
}

// Create creates a new center row
func (r *CenterRepository) Create(ctx context.Context, center *models.Center) error {
	if center.ID == "" {
		center.ID = uuid.NewString()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO centers (id, name, location)
		VALUES ($1, $2, $3)
	`, center.ID, center.Name, center.Location)

	if err != nil {
		return fmt.Errorf("error creating center: %w", err)
	}

	return nil
}

// GetByID retrieves a center by ID
func (r *CenterRepository) GetByID(ctx context.Context, id string) (*models.Center, error) {
	var center models.Center
	err := r.db.QueryRow(ctx, `
		SELECT id, name, location
		FROM centers
		WHERE id = $1
	`, id).Scan(&center.ID, &center.Name, &center.Location)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCenterNotFound
		}
		return nil, fmt.Errorf("error retrieving center: %w", err)
	}

	return &center, nil
}

// GetAll retrieves all centers
func (r *CenterRepository) GetAll(ctx context.Context) ([]*models.Center, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, location
		FROM centers
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var centers []*models.Center
	for rows.Next() {
		var center models.Center
		if err := rows.Scan(&center.ID, &center.Name, &center.Location); err != nil {
			return nil, err
		}
		centers = append(centers, &center)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return centers, nil
}

// CountStudents returns the number of students referencing a center
func (r *CenterRepository) CountStudents(ctx context.Context, centerID string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM students WHERE center_id = $1`, centerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting students for center: %w", err)
	}
	return count, nil
}

// Delete deletes a center row. The caller is responsible for checking
// student references first; check and delete are separate statements.
func (r *CenterRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM centers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting center: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCenterNotFound
	}

	return nil
}
