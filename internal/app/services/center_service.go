package services

import (
	"context"

	"github.com/acitm/admissions/internal/app/models"
	"github.com/acitm/admissions/internal/pkg/apperrors"
	"github.com/acitm/admissions/internal/pkg/logger"
)

type centerStore interface {
	GetByID(ctx context.Context, id string) (*models.Center, error)
	GetAll(ctx context.Context) ([]*models.Center, error)
	CountStudents(ctx context.Context, centerID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

// CenterService implements training center operations
type CenterService struct {
	centers centerStore
}

// NewCenterService creates a new center service
func NewCenterService(centers centerStore) *CenterService {
	return &CenterService{
		centers: centers,
	}
}

// GetAllCenters lists every training center
func (s *CenterService) GetAllCenters(ctx context.Context) ([]*models.Center, error) {
	return s.centers.GetAll(ctx)
}

// GetCenter retrieves a single center by id
func (s *CenterService) GetCenter(ctx context.Context, id string) (*models.Center, error) {
	return s.centers.GetByID(ctx, id)
}

// RemoveCenter deletes a center if no students reference it. The count and
// the delete are separate statements; students have no foreign key to
// centers, so a record created between the two survives with a dangling
// center id and shows up as Unknown in the statistics.
func (s *CenterService) RemoveCenter(ctx context.Context, id string) error {
	count, err := s.centers.CountStudents(ctx, id)
	if err != nil {
		return err
	}

	if count > 0 {
		logger.Warn().Str("centerID", id).Int64("students", count).Msg("Refusing to remove center with students")
		return apperrors.ErrCenterHasStudents
	}

	if err := s.centers.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Str("centerID", id).Msg("Center removed")
	return nil
}
