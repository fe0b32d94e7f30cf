package models

import (
	"time"
)

// Account defines a login account based on the 'users' table. Accounts are
// created by provisioning or seeding and never modified afterwards.
type Account struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Profile links an account to a role and, for center accounts, a center.
// Based on the 'profiles' table; profiles.id equals users.id.
type Profile struct {
	ID       string  `json:"id" db:"id"`
	Role     Role    `json:"role" db:"role"`
	CenterID *string `json:"centerId,omitempty" db:"center_id"`
}

// User is the resolved application identity: an account enriched with its
// profile and, when center-affiliated, the center name.
type User struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Role       Role    `json:"role"`
	CenterID   *string `json:"centerId,omitempty"`
	CenterName *string `json:"centerName,omitempty"`
}
