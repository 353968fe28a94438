package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/classtrack/roster/internal/app/models/dto"
	"github.com/classtrack/roster/internal/pkg/apperrors"
)

// HandleAPIError maps service errors to HTTP responses. Validation and
// not-found outcomes are expected and answered with structured bodies;
// anything else is a request-fatal server error.
func HandleAPIError(c *gin.Context, err error) {
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").
			WithFields(verr.Violations)
		c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(detail))
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrSectionNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Section not found")))

	case errors.Is(err, apperrors.ErrStudentNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Student not found")))

	case errors.Is(err, apperrors.ErrSectionHasStudents):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeConflict, "Section has enrolled students and cannot be deleted")))

	default:
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("request failed")

		code := dto.ErrorCodeInternalServer
		var serr *apperrors.StoreError
		if errors.As(err, &serr) {
			code = dto.ErrorCodeDatabaseError
		}
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(code, "Internal server error").WithSeverity(dto.ErrorSeverityCritical)))
	}
}
