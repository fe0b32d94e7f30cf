package services

import (
	"context"
	"errors"
	"testing"

	"github.com/acitm/admissions/internal/app/models"
	"github.com/acitm/admissions/internal/pkg/apperrors"
)

type fakeCenterStore struct {
	centers      map[string]*models.Center
	studentCount map[string]int64
	deleted      []string
}

func newFakeCenterStore() *fakeCenterStore {
	return &fakeCenterStore{
		centers:      make(map[string]*models.Center),
		studentCount: make(map[string]int64),
	}
}

func (f *fakeCenterStore) GetByID(_ context.Context, id string) (*models.Center, error) {
	center, ok := f.centers[id]
	if !ok {
		return nil, apperrors.ErrCenterNotFound
	}
	return center, nil
}

func (f *fakeCenterStore) GetAll(_ context.Context) ([]*models.Center, error) {
	var out []*models.Center
	for _, c := range f.centers {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCenterStore) CountStudents(_ context.Context, centerID string) (int64, error) {
	return f.studentCount[centerID], nil
}

func (f *fakeCenterStore) Delete(_ context.Context, id string) error {
	if _, ok := f.centers[id]; !ok {
		return apperrors.ErrCenterNotFound
	}
	delete(f.centers, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func TestRemoveCenter(t *testing.T) {
	tests := []struct {
		name     string
		centerID string
		students int64
		wantErr  error
	}{
		{name: "empty center is removed", centerID: "c1", students: 0, wantErr: nil},
		{name: "center with students is refused", centerID: "c1", students: 3, wantErr: apperrors.ErrCenterHasStudents},
		{name: "missing center", centerID: "missing", students: 0, wantErr: apperrors.ErrCenterNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeCenterStore()
			store.centers["c1"] = &models.Center{ID: "c1", Name: "North Center"}
			store.studentCount["c1"] = tt.students
			svc := NewCenterService(store)

			err := svc.RemoveCenter(context.Background(), tt.centerID)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("RemoveCenter() error = %v, want %v", err, tt.wantErr)
			}

			if tt.wantErr == nil && len(store.deleted) != 1 {
				t.Errorf("deleted = %v, want exactly one delete", store.deleted)
			}
			if tt.wantErr != nil && len(store.deleted) != 0 {
				t.Errorf("deleted = %v, want no deletes", store.deleted)
			}
		})
	}
}
