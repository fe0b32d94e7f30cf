package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	AccountRepository *AccountRepository
	ProfileRepository *ProfileRepository
	CenterRepository  *CenterRepository
	StudentRepository *StudentRepository
	StatsRepository   *StatsRepository
	TokenRepository   *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		AccountRepository: NewAccountRepository(db),
		ProfileRepository: NewProfileRepository(db),
		CenterRepository:  NewCenterRepository(db),
		StudentRepository: NewStudentRepository(db),
		StatsRepository:   NewStatsRepository(db),
		TokenRepository:   NewTokenRepository(db),
	}
}
