package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acitm/admissions/internal/app/models/dto"
)

// StatsRepository computes the aggregate admission counts backing the
// dashboard charts.
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{
		db: db,
	}
}

// AdmissionsByCenter returns student counts grouped by center. Students
// whose center row no longer exists are reported under "Unknown".
func (r *StatsRepository) AdmissionsByCenter(ctx context.Context) ([]dto.CenterAdmissionCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.center_id, COALESCE(c.name, 'Unknown'), COUNT(*)
		FROM students s
		LEFT JOIN centers c ON c.id = s.center_id
		GROUP BY s.center_id, c.name
		ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("error counting admissions by center: %w", err)
	}
	defer rows.Close()

	var counts []dto.CenterAdmissionCount
	for rows.Next() {
		var c dto.CenterAdmissionCount
		if err := rows.Scan(&c.CenterID, &c.CenterName, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// AdmissionsByCourse returns student counts grouped by course
func (r *StatsRepository) AdmissionsByCourse(ctx context.Context) ([]dto.CourseAdmissionCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT course, COUNT(*)
		FROM students
		GROUP BY course
		ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("error counting admissions by course: %w", err)
	}
	defer rows.Close()

	var counts []dto.CourseAdmissionCount
	for rows.Next() {
		var c dto.CourseAdmissionCount
		if err := rows.Scan(&c.Course, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
