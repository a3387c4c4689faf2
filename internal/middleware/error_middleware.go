package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pioneer/admissions/internal/app/models/dto"
	"github.com/pioneer/admissions/internal/pkg/apperrors"
	"github.com/pioneer/admissions/internal/pkg/logger"
)

// HandleAPIError maps err to its HTTP status and response body. Errors
// without a known kind are logged and answered with a generic 500.
func HandleAPIError(c *gin.Context, err error) {
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(verr))
		return
	}

	var custom *apperrors.CustomError
	hasCustom := errors.As(err, &custom)
	detailed := func(status int, code dto.ErrorCode, fallback string) {
		detail := dto.NewErrorDetail(code, apperrors.PublicMessage(err, fallback))
		if hasCustom && custom.Details != nil {
			if field, ok := custom.Details["field"].(string); ok {
				detail.WithField(field)
			}
			detail.WithDetails(custom.Details)
		}
		c.JSON(status, dto.NewErrorResponse(detail))
	}

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(&apperrors.ValidationError{}))
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(http.StatusBadRequest, dto.MessageResponse{
			Success: false,
			Msg:     apperrors.PublicMessage(err, "Email already exists"),
		})
	case errors.Is(err, apperrors.ErrInvalidFileType):
		detailed(http.StatusBadRequest, dto.ErrorCodeInvalidFileType, "Invalid file type")
	case errors.Is(err, apperrors.ErrFileTooLarge):
		detailed(http.StatusBadRequest, dto.ErrorCodeFileTooLarge, "File too large")
	case errors.Is(err, apperrors.ErrUploadKind):
		detailed(http.StatusBadRequest, dto.ErrorCodeBadRequest, "Unexpected upload field")
	case errors.Is(err, apperrors.ErrBadRequest):
		detailed(http.StatusBadRequest, dto.ErrorCodeBadRequest, "Bad request")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		detailed(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		detailed(http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials.")
	case errors.Is(err, apperrors.ErrTokenMissing):
		detailed(http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found")
	case errors.Is(err, apperrors.ErrTokenExpired):
		detailed(http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenRevoked):
		detailed(http.StatusUnauthorized, dto.ErrorCodeRevokedToken, "Token revoked")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		detailed(http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrNotApproved):
		detailed(http.StatusForbidden, dto.ErrorCodeNotApproved, "Application is not approved")
	default:
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}
