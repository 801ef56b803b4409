package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/unipem/lms/internal/app/models/dto"
	"github.com/unipem/lms/internal/pkg/auth"
)

// parseUUIDParam reads a uuid path parameter, writing a 400 response when it is malformed
func parseUUIDParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithField(name).
			WithDetails("must be a valid UUID")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return uuid.Nil, false
	}
	return id, true
}

// currentSession returns the session stored by the gate, writing 401 when there is none
func currentSession(ctx *gin.Context) (*auth.Session, bool) {
	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized,
			dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return nil, false
	}
	return session, true
}
