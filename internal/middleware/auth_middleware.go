package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pioneer/admissions/internal/app/models/dto"
	"github.com/pioneer/admissions/internal/pkg/apperrors"
	"github.com/pioneer/admissions/internal/pkg/auth"
)

// legacyTokenHeader is the header older admin clients send the raw token in
const legacyTokenHeader = "x-auth-token"

// PrincipalLookup reports whether the account behind a token still exists
type PrincipalLookup func(ctx context.Context, id string) error

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService     *auth.JWTService
	revocations    auth.RevocationStore
	applicantExist PrincipalLookup
	adminExist     PrincipalLookup
	logger         zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware. The lookups are consulted
// after the token is verified; a nil lookup skips the check.
func NewAuthMiddleware(
	jwtService *auth.JWTService,
	revocations auth.RevocationStore,
	applicantExist PrincipalLookup,
	adminExist PrincipalLookup,
	logger zerolog.Logger,
) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:     jwtService,
		revocations:    revocations,
		applicantExist: applicantExist,
		adminExist:     adminExist,
		logger:         logger,
	}
}

// tokenFromRequest reads the token from the Authorization header ("Bearer"
// is optional) or from x-auth-token.
func tokenFromRequest(c *gin.Context) (string, error) {
	if h := c.GetHeader("Authorization"); h != "" {
		return auth.ExtractBearerToken(strings.Trim(h, "\"'"))
	}
	if h := strings.TrimSpace(c.GetHeader(legacyTokenHeader)); h != "" {
		return h, nil
	}
	return "", apperrors.ErrTokenMissing
}

func abortUnauthorized(c *gin.Context, err error) {
	code, message := dto.ErrorCodeInvalidToken, "Unauthorized. Invalid token."
	switch {
	case errors.Is(err, apperrors.ErrTokenMissing):
		code, message = dto.ErrorCodeTokenNotFound, "No authentication token, authorization denied."
	case errors.Is(err, apperrors.ErrTokenExpired):
		code, message = dto.ErrorCodeExpiredToken, "Unauthorized. Token has expired."
	case errors.Is(err, apperrors.ErrTokenRevoked):
		code, message = dto.ErrorCodeRevokedToken, "Unauthorized. Token has been revoked."
	case errors.Is(err, apperrors.ErrResourceNotFound):
		code, message = dto.ErrorCodeUnauthorized, "Unauthorized. Account not found."
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// authenticate verifies the token, checks revocation and stores the claims
func (m *AuthMiddleware) authenticate(c *gin.Context) (*auth.Claims, bool) {
	token, err := tokenFromRequest(c)
	if err != nil {
		abortUnauthorized(c, err)
		return nil, false
	}

	claims, err := m.jwtService.ValidateToken(token)
	if err != nil {
		abortUnauthorized(c, err)
		return nil, false
	}

	revoked, err := m.revocations.IsRevoked(c.Request.Context(), claims.ID)
	if err != nil {
		m.logger.Error().Err(err).Str("tokenID", claims.ID).Msg("Revocation lookup failed")
		HandleAPIError(c, err)
		c.Abort()
		return nil, false
	}
	if revoked {
		abortUnauthorized(c, apperrors.ErrTokenRevoked)
		return nil, false
	}

	c.Set(ContextClaims, claims)
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextEmail, claims.Email)
	c.Set(ContextIsAdmin, claims.IsAdmin)
	return claims, true
}

func (m *AuthMiddleware) checkExists(c *gin.Context, lookup PrincipalLookup, claims *auth.Claims) bool {
	if lookup == nil {
		return true
	}
	if err := lookup(c.Request.Context(), claims.UserID.String()); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			abortUnauthorized(c, err)
			return false
		}
		HandleAPIError(c, err)
		c.Abort()
		return false
	}
	return true
}

// ApplicantAuth admits requests carrying a valid applicant token
func (m *AuthMiddleware) ApplicantAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.authenticate(c)
		if !ok {
			return
		}
		if claims.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeForbidden, "Forbidden. Applicant token required.")))
			return
		}
		if !m.checkExists(c, m.applicantExist, claims) {
			return
		}
		c.Next()
	}
}

// AdminAuth admits requests carrying a valid administrator token
func (m *AuthMiddleware) AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.authenticate(c)
		if !ok {
			return
		}
		if !claims.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeForbidden, "Forbidden. Not an admin user.")))
			return
		}
		if !m.checkExists(c, m.adminExist, claims) {
			return
		}
		c.Next()
	}
}

// TokenFromRequest exposes the raw presented token, used by validate-token
func TokenFromRequest(c *gin.Context) (string, error) {
	return tokenFromRequest(c)
}
