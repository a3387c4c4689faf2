package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/pioneer/admissions/internal/pkg/auth"
)

// Context keys set by the authentication middleware
const (
	ContextClaims  = "claims"
	ContextUserID  = "userID"
	ContextEmail   = "email"
	ContextIsAdmin = "isAdmin"
)

// GetClaims returns the verified token claims of the request, if any
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok && claims != nil
}

// GetUserID returns the id of the authenticated principal as a string
func GetUserID(c *gin.Context) (string, bool) {
	claims, ok := GetClaims(c)
	if !ok {
		return "", false
	}
	return claims.UserID.String(), true
}
