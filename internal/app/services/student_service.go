package services

import (
	"context"
	"fmt"

	"github.com/acitm/admissions/internal/app/models"
	"github.com/acitm/admissions/internal/app/models/dto"
	"github.com/acitm/admissions/internal/pkg/apperrors"
	"github.com/acitm/admissions/internal/pkg/logger"
)

type studentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id string) (*models.Student, error)
	List(ctx context.Context, centerID string, status models.StudentStatus) ([]*models.Student, error)
	UpdateColumns(ctx context.Context, id string, columns map[string]interface{}) (*models.Student, error)
	Delete(ctx context.Context, id string) error
}

// StudentService implements admission record operations. Center-role callers
// are always scoped to their own center; the admin role sees every record and
// is the only role that may change a record's status.
type StudentService struct {
	students studentStore
}

// NewStudentService creates a new student service
func NewStudentService(students studentStore) *StudentService {
	return &StudentService{
		students: students,
	}
}

// CreateStudent creates an admission record. New records always start
// Pending regardless of any status in the request, and a center-role caller
// always creates records for their own center.
func (s *StudentService) CreateStudent(ctx context.Context, actor *models.User, req *dto.CreateStudentRequest) (*models.Student, error) {
	centerID := req.CenterID
	if actor.Role == models.RoleCenter {
		if actor.CenterID == nil {
			return nil, apperrors.ErrPermissionDenied
		}
		centerID = *actor.CenterID
	}
	if centerID == "" {
		return nil, fmt.Errorf("%w: centerId is required", apperrors.ErrValidationFailed)
	}

	student := &models.Student{
		Name:          req.Name,
		FatherName:    req.FatherName,
		Course:        req.Course,
		AdmissionDate: req.AdmissionDate,
		Mobile:        req.Mobile,
		Address:       req.Address,
		Gender:        req.Gender,
		DOB:           req.DOB,
		PhotoURL:      req.PhotoURL,
		SignatureURL:  req.SignatureURL,
		Status:        models.StatusPending,
		CenterID:      centerID,
	}

	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}

	logger.Info().Str("studentID", student.ID).Str("centerID", centerID).Msg("Admission record created")
	return student, nil
}

// ListStudents returns admission records visible to the actor, newest
// admissions first. statusFilter is optional; an unknown value is rejected.
func (s *StudentService) ListStudents(ctx context.Context, actor *models.User, statusFilter string) ([]*models.Student, error) {
	status := models.StudentStatus(statusFilter)
	if statusFilter != "" && !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidationFailed, statusFilter)
	}

	centerID := ""
	if actor.Role == models.RoleCenter {
		if actor.CenterID == nil {
			return nil, apperrors.ErrPermissionDenied
		}
		centerID = *actor.CenterID
	}

	return s.students.List(ctx, centerID, status)
}

// GetStudent retrieves a single admission record. Records belonging to
// another center are indistinguishable from missing ones for a center-role
// caller.
func (s *StudentService) GetStudent(ctx context.Context, actor *models.User, id string) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.canAccess(actor, student) {
		return nil, apperrors.ErrStudentNotFound
	}

	return student, nil
}

// UpdateStudent applies a partial update keyed by JSON field names. Unknown
// field names are rejected. Only the admin role may touch status or move a
// record between centers; those keys from a center-role caller are dropped.
func (s *StudentService) UpdateStudent(ctx context.Context, actor *models.User, id string, req dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.canAccess(actor, student) {
		return nil, apperrors.ErrStudentNotFound
	}

	columns := make(map[string]interface{}, len(req))
	for field, value := range req {
		column, ok := models.StudentFieldColumns[field]
		if !ok {
			return nil, fmt.Errorf("%w: unknown field %q", apperrors.ErrValidationFailed, field)
		}

		if actor.Role != models.RoleAdmin && (field == "status" || field == "centerId") {
			continue
		}

		if field == "status" {
			str, ok := value.(string)
			if !ok || !models.ValidStatus(models.StudentStatus(str)) {
				return nil, fmt.Errorf("%w: invalid status value", apperrors.ErrValidationFailed)
			}
		}

		columns[column] = value
	}

	updated, err := s.students.UpdateColumns(ctx, id, columns)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("studentID", id).Int("fields", len(columns)).Msg("Admission record updated")
	return updated, nil
}

// DeleteStudent removes an admission record
func (s *StudentService) DeleteStudent(ctx context.Context, actor *models.User, id string) error {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.canAccess(actor, student) {
		return apperrors.ErrStudentNotFound
	}

	if err := s.students.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Str("studentID", id).Msg("Admission record deleted")
	return nil
}

func (s *StudentService) canAccess(actor *models.User, student *models.Student) bool {
	if actor.Role == models.RoleAdmin {
		return true
	}
	return actor.CenterID != nil && *actor.CenterID == student.CenterID
}
