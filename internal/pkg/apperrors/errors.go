package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")

	// Authorization errors
	ErrPermissionDenied  = errors.New("permission denied")
	ErrSessionUnresolved = errors.New("no profile linked to this account")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Account errors
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Center errors
var (
	ErrCenterNotFound    = errors.New("center not found")
	ErrCenterHasStudents = errors.New("center has associated students and cannot be removed")
)

// Student errors
var (
	ErrStudentNotFound = errors.New("student not found")
)

// Storage errors
var (
	ErrUploadFailed = errors.New("file upload failed")
)

// ProvisioningError reports a partial failure of the center provisioning
// workflow. State names the last state the workflow reached before failing,
// Compensated says whether the center row created earlier was rolled back,
// and OrphanAccountID is set when a login account was created that the
// workflow cannot remove.
type ProvisioningError struct {
	State           string
	Compensated     bool
	OrphanAccountID string
	Err             error
}

// Error implements the error interface
func (e *ProvisioningError) Error() string {
	if e.OrphanAccountID != "" {
		return fmt.Sprintf("provisioning failed at %s: %v (account %s was created but is not linked; remove it manually)",
			e.State, e.Err, e.OrphanAccountID)
	}
	return fmt.Sprintf("provisioning failed at %s: %v", e.State, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ProvisioningError) Unwrap() error {
	return e.Err
}
