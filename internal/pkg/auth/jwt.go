package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pioneer/admissions/internal/app/models"
	"github.com/pioneer/admissions/internal/pkg/apperrors"
)

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey           string
	ApplicantExpiration time.Duration
	AdminExpiration     time.Duration
	TokenIssuer         string
}

// JWTService handles JWT operations
type JWTService struct {
	config JWTConfig
	now    func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{
		config: config,
		now:    time.Now,
	}
}

// Claims defines JWT token content
type Claims struct {
	UserID  uuid.UUID       `json:"userId"`
	Email   string          `json:"email"`
	Role    models.RoleType `json:"role"`
	IsAdmin bool            `json:"isAdmin"`
	jwt.RegisteredClaims
}

// IssuedToken is a signed token plus the data needed to revoke it later
type IssuedToken struct {
	Token     string
	ID        string
	ExpiresAt time.Time
}

// IssueApplicantToken signs a token for an applicant (7 days by default)
func (s *JWTService) IssueApplicantToken(id uuid.UUID, email string) (*IssuedToken, error) {
	return s.issue(id, email, models.RoleApplicant, s.config.ApplicantExpiration)
}

// IssueAdminToken signs a token for an administrator (1 day by default)
func (s *JWTService) IssueAdminToken(id uuid.UUID, email string) (*IssuedToken, error) {
	return s.issue(id, email, models.RoleAdmin, s.config.AdminExpiration)
}

func (s *JWTService) issue(id uuid.UUID, email string, role models.RoleType, ttl time.Duration) (*IssuedToken, error) {
	now := s.now()
	expiry := now.Add(ttl)

	claims := &Claims{
		UserID:  id,
		Email:   email,
		Role:    role,
		IsAdmin: role == models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiry),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.TokenIssuer,
			Subject:   id.String(),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	return &IssuedToken{Token: signed, ID: claims.ID, ExpiresAt: expiry}, nil
}

// ValidateToken parses and verifies a token. Expired tokens map to
// apperrors.ErrTokenExpired, everything else to apperrors.ErrTokenInvalid.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, apperrors.ErrTokenMissing
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == uuid.Nil || claims.Email == "" || claims.ID == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	return claims, nil
}

// ExtractBearerToken extracts the token from the Authorization header
func ExtractBearerToken(authHeader string) (string, error) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" || authHeader == "Bearer" {
		return "", apperrors.ErrTokenMissing
	}

	// "Bearer " is optional
	if strings.HasPrefix(authHeader, "Bearer ") {
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			return "", apperrors.ErrTokenMissing
		}
		return token, nil
	}

	return authHeader, nil
}
