package models

// Role identifies what a signed-in account is allowed to do.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleCenter Role = "center"
)

// StudentStatus is the admission decision state of a student record.
type StudentStatus string

const (
	StatusPending  StudentStatus = "Pending"
	StatusAccepted StudentStatus = "Accepted"
	StatusRejected StudentStatus = "Rejected"
)

// ValidStatus reports whether s is one of the known admission states.
func ValidStatus(s StudentStatus) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}
