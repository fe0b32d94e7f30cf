package services

import (
	"context"
	"errors"
	"testing"

	"github.com/acitm/admissions/internal/app/models"
	"github.com/acitm/admissions/internal/app/models/dto"
	"github.com/acitm/admissions/internal/pkg/apperrors"
)

type fakeCenterWriter struct {
	created   []*models.Center
	deleted   []string
	createErr error
	deleteErr error
}

func (f *fakeCenterWriter) Create(_ context.Context, center *models.Center) error {
	if f.createErr != nil {
		return f.createErr
	}
	if center.ID == "" {
		center.ID = "center-1"
	}
	f.created = append(f.created, center)
	return nil
}

func (f *fakeCenterWriter) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeAccountProvider struct {
	accountID string
	err       error
	created   int
}

func (f *fakeAccountProvider) CreateAccount(_ context.Context, _, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.created++
	return f.accountID, nil
}

type fakeProfileLinker struct {
	linkedID     string
	linkedCenter string
	linkedRole   models.Role
	err          error
}

func (f *fakeProfileLinker) Link(_ context.Context, id, centerID string, role models.Role) error {
	if f.err != nil {
		return f.err
	}
	f.linkedID = id
	f.linkedCenter = centerID
	f.linkedRole = role
	return nil
}

func provisionRequest() *dto.ProvisionCenterRequest {
	return &dto.ProvisionCenterRequest{
		Name:     "North Center",
		Location: "North Street 1",
		Email:    "north@example.com",
		Password: "supersecret",
	}
}

func TestProvisionCenterSuccess(t *testing.T) {
	centers := &fakeCenterWriter{}
	accounts := &fakeAccountProvider{accountID: "acc-1"}
	profiles := &fakeProfileLinker{}
	svc := NewProvisioningService(centers, accounts, profiles)

	center, err := svc.ProvisionCenter(context.Background(), provisionRequest())
	if err != nil {
		t.Fatalf("ProvisionCenter() error = %v", err)
	}

	if center.ID == "" {
		t.Error("expected center id to be assigned")
	}
	if center.Name != "North Center" {
		t.Errorf("center name = %q, want %q", center.Name, "North Center")
	}
	if profiles.linkedID != "acc-1" || profiles.linkedCenter != center.ID {
		t.Errorf("profile linked to (%q, %q), want (%q, %q)",
			profiles.linkedID, profiles.linkedCenter, "acc-1", center.ID)
	}
	if profiles.linkedRole != models.RoleCenter {
		t.Errorf("linked role = %q, want %q", profiles.linkedRole, models.RoleCenter)
	}
	if len(centers.deleted) != 0 {
		t.Errorf("no compensation expected, got deletes %v", centers.deleted)
	}
}

func TestProvisionCenterFailsAtCenterCreation(t *testing.T) {
	boom := errors.New("insert failed")
	centers := &fakeCenterWriter{createErr: boom}
	svc := NewProvisioningService(centers, &fakeAccountProvider{}, &fakeProfileLinker{})

	_, err := svc.ProvisionCenter(context.Background(), provisionRequest())

	var provErr *apperrors.ProvisioningError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProvisioningError, got %v", err)
	}
	if provErr.State != ProvisionStateInit {
		t.Errorf("state = %q, want %q", provErr.State, ProvisionStateInit)
	}
	if provErr.Compensated {
		t.Error("nothing was created, nothing should be compensated")
	}
	if !errors.Is(err, boom) {
		t.Error("expected cause to be preserved via Unwrap")
	}
}

func TestProvisionCenterCompensatesOnAccountFailure(t *testing.T) {
	centers := &fakeCenterWriter{}
	accounts := &fakeAccountProvider{err: apperrors.ErrEmailAlreadyExists}
	svc := NewProvisioningService(centers, accounts, &fakeProfileLinker{})

	_, err := svc.ProvisionCenter(context.Background(), provisionRequest())

	var provErr *apperrors.ProvisioningError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProvisioningError, got %v", err)
	}
	if provErr.State != ProvisionStateCenterCreated {
		t.Errorf("state = %q, want %q", provErr.State, ProvisionStateCenterCreated)
	}
	if !provErr.Compensated {
		t.Error("expected center row to be rolled back")
	}
	if provErr.OrphanAccountID != "" {
		t.Errorf("no account was created, got orphan %q", provErr.OrphanAccountID)
	}
	if len(centers.deleted) != 1 || centers.deleted[0] != "center-1" {
		t.Errorf("deleted centers = %v, want [center-1]", centers.deleted)
	}
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Error("expected cause to be preserved via Unwrap")
	}
}

func TestProvisionCenterReportsOrphanAccountOnLinkFailure(t *testing.T) {
	centers := &fakeCenterWriter{}
	accounts := &fakeAccountProvider{accountID: "acc-9"}
	profiles := &fakeProfileLinker{err: errors.New("link failed")}
	svc := NewProvisioningService(centers, accounts, profiles)

	_, err := svc.ProvisionCenter(context.Background(), provisionRequest())

	var provErr *apperrors.ProvisioningError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProvisioningError, got %v", err)
	}
	if provErr.State != ProvisionStateAccountCreated {
		t.Errorf("state = %q, want %q", provErr.State, ProvisionStateAccountCreated)
	}
	if !provErr.Compensated {
		t.Error("expected center row to be rolled back")
	}
	if provErr.OrphanAccountID != "acc-9" {
		t.Errorf("orphan account = %q, want %q", provErr.OrphanAccountID, "acc-9")
	}
}

func TestProvisionCenterReportsFailedCompensation(t *testing.T) {
	centers := &fakeCenterWriter{deleteErr: errors.New("delete failed")}
	accounts := &fakeAccountProvider{err: errors.New("provider down")}
	svc := NewProvisioningService(centers, accounts, &fakeProfileLinker{})

	_, err := svc.ProvisionCenter(context.Background(), provisionRequest())

	var provErr *apperrors.ProvisioningError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProvisioningError, got %v", err)
	}
	if provErr.Compensated {
		t.Error("compensation failed, Compensated should be false")
	}
}
