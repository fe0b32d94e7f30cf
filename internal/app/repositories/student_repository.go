package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acitm/admissions/internal/app/models"
	"github.com/acitm/admissions/internal/pkg/apperrors"
)

const studentColumns = "id, name, father_name, course, admission_date, mobile, address, gender, dob, photo_url, signature_url, status, center_id"

// StudentRepository handles database operations for student admission records
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.FatherName,
		&s.Course,
		&s.AdmissionDate,
		&s.Mobile,
		&s.Address,
		&s.Gender,
		&s.DOB,
		&s.PhotoURL,
		&s.SignatureURL,
		&s.Status,
		&s.CenterID,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new student row
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO students (`+studentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		student.ID,
		student.Name,
		student.FatherName,
		student.Course,
		student.AdmissionDate,
		student.Mobile,
		student.Address,
		student.Gender,
		student.DOB,
		student.PhotoURL,
		student.SignatureURL,
		student.Status,
		student.CenterID,
	)

	if err != nil {
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	student, err := scanStudent(r.db.QueryRow(ctx, `
		SELECT `+studentColumns+` FROM students WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// List retrieves students, optionally filtered by center and/or status.
// Empty filter values mean no filtering on that column.
func (r *StudentRepository) List(ctx context.Context, centerID string, status models.StudentStatus) ([]*models.Student, error) {
	builder := r.sb.Select(studentColumns).From("students").OrderBy("admission_date DESC, name")
	if centerID != "" {
		builder = builder.Where(squirrel.Eq{"center_id": centerID})
	}
	if status != "" {
		builder = builder.Where(squirrel.Eq{"status": status})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// GetByIDs retrieves the students matching the given ids
func (r *StudentRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Student, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	sql, args, err := r.sb.Select(studentColumns).
		From("students").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student selection query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// UpdateColumns applies a partial update. Keys are database column names,
// already translated from application field names by the service layer.
func (r *StudentRepository) UpdateColumns(ctx context.Context, id string, columns map[string]interface{}) (*models.Student, error) {
	if len(columns) == 0 {
		return r.GetByID(ctx, id)
	}

	builder := r.sb.Update("students").Where(squirrel.Eq{"id": id}).Suffix("RETURNING " + studentColumns)
	for col, val := range columns {
		builder = builder.Set(col, val)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student update query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error updating student: %w", err)
	}

	return student, nil
}

// Delete deletes a student row unconditionally
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
