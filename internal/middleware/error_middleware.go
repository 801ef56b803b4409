package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unipem/lms/internal/app/models/dto"
	"github.com/unipem/lms/internal/pkg/apperrors"
	"github.com/unipem/lms/internal/pkg/logger"
)

// MsgInternalError is shown for every unexpected failure
const MsgInternalError = "Terjadi kesalahan sistem."

// HandleAPIError maps service errors to the error envelope and status code
func HandleAPIError(c *gin.Context, err error) {
	status, detail := classify(err)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func classify(err error) (int, *dto.ErrorDetail) {
	var custom *apperrors.CustomError
	message := func(fallback string) string {
		if errors.As(err, &custom) && custom.Message != "" {
			return custom.Message
		}
		return fallback
	}

	switch {
	case apperrors.IsNotFound(err):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message(rootMessage(err, "Resource not found")))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, message("Invalid credentials"))
	case apperrors.Is(err, apperrors.ErrSessionMissing, apperrors.ErrSessionInvalid):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, message("Authentication required"))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, message("Permission denied"))
	case apperrors.IsConflict(err):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, message(rootMessage(err, "Resource already exists")))
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message(validationMessage(err)))
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeBadRequest, message("Bad request"))
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, MsgInternalError).
			WithSeverity(dto.ErrorSeverityCritical)
	}
}

// rootMessage returns the text of the domain sentinel wrapped in err
func rootMessage(err error, fallback string) string {
	for _, sentinel := range []error{
		apperrors.ErrUserNotFound, apperrors.ErrCourseNotFound, apperrors.ErrSectionNotFound,
		apperrors.ErrActivityNotFound, apperrors.ErrSubmissionNotFound,
		apperrors.ErrUsernameExists, apperrors.ErrEmailExists, apperrors.ErrCourseCodeExists,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return fallback
}

func validationMessage(err error) string {
	for _, sentinel := range []error{
		apperrors.ErrInstructorInvalid, apperrors.ErrSectionNotInCourse,
		apperrors.ErrNotAnAssignment, apperrors.ErrGradeOutOfRange,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "Validation failed"
}

// Recovery turns panics into the 500 error envelope
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("Recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInternalServer, MsgInternalError).WithSeverity(dto.ErrorSeverityCritical)))
	})
}
