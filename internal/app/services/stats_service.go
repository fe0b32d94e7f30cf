package services

import (
	"context"

	"github.com/acitm/admissions/internal/app/models/dto"
)

type statsSource interface {
	AdmissionsByCenter(ctx context.Context) ([]dto.CenterAdmissionCount, error)
	AdmissionsByCourse(ctx context.Context) ([]dto.CourseAdmissionCount, error)
}

// StatsService serves the aggregate counts behind the dashboard charts
type StatsService struct {
	stats statsSource
}

// NewStatsService creates a new stats service
func NewStatsService(stats statsSource) *StatsService {
	return &StatsService{
		stats: stats,
	}
}

// AdmissionsByCenter returns student counts grouped by center
func (s *StatsService) AdmissionsByCenter(ctx context.Context) ([]dto.CenterAdmissionCount, error) {
	return s.stats.AdmissionsByCenter(ctx)
}

// AdmissionsByCourse returns student counts grouped by course
func (s *StatsService) AdmissionsByCourse(ctx context.Context) ([]dto.CourseAdmissionCount, error) {
	return s.stats.AdmissionsByCourse(ctx)
}
