package models

// Center defines a training center based on the 'centers' table.
type Center struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Location string `json:"location" db:"location"`
}
