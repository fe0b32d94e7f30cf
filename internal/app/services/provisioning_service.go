package services

import (
	"context"

	"github.com/acitm/admissions/internal/app/models"
	"github.com/acitm/admissions/internal/app/models/dto"
	"github.com/acitm/admissions/internal/pkg/apperrors"
	"github.com/acitm/admissions/internal/pkg/auth"
	"github.com/acitm/admissions/internal/pkg/logger"
)

// Provisioning workflow states, in order of progression.
const (
	ProvisionStateInit           = "init"
	ProvisionStateCenterCreated  = "center_created"
	ProvisionStateAccountCreated = "account_created"
	ProvisionStateProfileLinked  = "profile_linked"
)

type centerWriter interface {
	Create(ctx context.Context, center *models.Center) error
	Delete(ctx context.Context, id string) error
}

type accountProvider interface {
	CreateAccount(ctx context.Context, email, passwordHash string) (string, error)
}

type profileLinker interface {
	Link(ctx context.Context, id, centerID string, role models.Role) error
}

// ProvisioningService creates a training center together with its login
// account as an explicit multi-step workflow. The three steps hit separate
// systems so they cannot share a transaction; on failure the workflow
// compensates by deleting the center row it created. A login account created
// in step two cannot be removed, so a step-three failure leaves it orphaned
// and reports the orphan id.
type ProvisioningService struct {
	centers  centerWriter
	accounts accountProvider
	profiles profileLinker
}

// NewProvisioningService creates a new provisioning service
func NewProvisioningService(centers centerWriter, accounts accountProvider, profiles profileLinker) *ProvisioningService {
	return &ProvisioningService{
		centers:  centers,
		accounts: accounts,
		profiles: profiles,
	}
}

// ProvisionCenter runs the workflow: create the center row, create the login
// account, link the account's profile to the center with the center role.
func (s *ProvisioningService) ProvisionCenter(ctx context.Context, req *dto.ProvisionCenterRequest) (*models.Center, error) {
	state := ProvisionStateInit

	center := &models.Center{
		Name:     req.Name,
		Location: req.Location,
	}
	if err := s.centers.Create(ctx, center); err != nil {
		logger.Error().Err(err).Str("state", state).Str("name", req.Name).Msg("Center provisioning failed")
		return nil, &apperrors.ProvisioningError{State: state, Err: err}
	}
	state = ProvisionStateCenterCreated

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, s.compensate(ctx, center.ID, state, "", err)
	}

	accountID, err := s.accounts.CreateAccount(ctx, req.Email, passwordHash)
	if err != nil {
		return nil, s.compensate(ctx, center.ID, state, "", err)
	}
	state = ProvisionStateAccountCreated

	if err := s.profiles.Link(ctx, accountID, center.ID, models.RoleCenter); err != nil {
		return nil, s.compensate(ctx, center.ID, state, accountID, err)
	}
	state = ProvisionStateProfileLinked

	logger.Info().
		Str("centerID", center.ID).
		Str("accountID", accountID).
		Str("state", state).
		Msg("Center provisioned")

	return center, nil
}

// compensate rolls back the center row created earlier and wraps the step
// failure. orphanAccountID is non-empty when a login account already exists
// for a center that is being rolled back.
func (s *ProvisioningService) compensate(ctx context.Context, centerID, state, orphanAccountID string, cause error) error {
	provErr := &apperrors.ProvisioningError{
		State:           state,
		OrphanAccountID: orphanAccountID,
		Err:             cause,
	}

	if err := s.centers.Delete(ctx, centerID); err != nil {
		logger.Error().Err(err).Str("centerID", centerID).Str("state", state).
			Msg("Compensation failed, center row left behind")
		return provErr
	}

	provErr.Compensated = true
	logger.Warn().Err(cause).Str("centerID", centerID).Str("state", state).
		Str("orphanAccountID", orphanAccountID).
		Msg("Center provisioning rolled back")
	return provErr
}
