package services

import "errors"

// Sentinel errors returned by services. Handlers map these to HTTP codes
// with errors.Is.
var (
	// ErrInvalidRequest covers malformed requests, e.g. zero or two
	// secondary login factors.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidCredentials is deliberately generic: callers cannot tell
	// an unknown email from a wrong factor or password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrValidationFailed wraps field-level validation errors.
	ErrValidationFailed = errors.New("validation failed")

	// ErrDuplicateSubmission marks a repeat submission for the same
	// (student, faculty, subject, semester, academic year).
	ErrDuplicateSubmission = errors.New("feedback already submitted for this faculty and subject")

	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")

	// ErrFacultyInUse blocks deleting a faculty member that already has
	// feedback records.
	ErrFacultyInUse = errors.New("faculty has existing feedback and cannot be deleted")
)
