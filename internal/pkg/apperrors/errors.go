package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionMissing     = errors.New("session missing")
	ErrSessionInvalid     = errors.New("invalid session")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUsernameExists    = errors.New("username already exists")
	ErrEmailExists       = errors.New("email already exists")
	ErrInstructorInvalid = errors.New("instructor must be an existing teacher")
)

// Course content errors
var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrCourseCodeExists   = errors.New("course code already exists")
	ErrSectionNotFound    = errors.New("section not found")
	ErrActivityNotFound   = errors.New("activity not found")
	ErrSectionNotInCourse = errors.New("section does not belong to course")
)

// Submission errors
var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrNotAnAssignment    = errors.New("activity does not accept submissions")
	ErrGradeOutOfRange    = errors.New("grade must be between 0 and 100")
)

// notFound and conflict group the domain sentinels by the generic failure they represent
var (
	notFound = []error{ErrUserNotFound, ErrCourseNotFound, ErrSectionNotFound, ErrActivityNotFound, ErrSubmissionNotFound}
	conflict = []error{ErrUsernameExists, ErrEmailExists, ErrCourseCodeExists, ErrResourceAlreadyExists}
)

// IsNotFound reports whether err is any of the not-found errors
func IsNotFound(err error) bool {
	return Is(err, ErrResourceNotFound, notFound...)
}

// IsConflict reports whether err is any of the uniqueness conflicts
func IsConflict(err error) bool {
	return Is(err, ErrConflict, conflict...)
}

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewValidationError creates a validation error carrying a user-facing message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// Is returns whether err matches target or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
