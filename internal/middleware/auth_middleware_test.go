package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pioneer/admissions/internal/app/models/dto"
	"github.com/pioneer/admissions/internal/pkg/apperrors"
	"github.com/pioneer/admissions/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type authFixture struct {
	jwt         *auth.JWTService
	revocations *auth.MemoryRevocationStore
	missing     map[string]bool
	router      *gin.Engine
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		jwt: auth.NewJWTService(auth.JWTConfig{
			SecretKey:           "middleware-secret",
			ApplicantExpiration: time.Hour,
			AdminExpiration:     time.Hour,
			TokenIssuer:         "test",
		}),
		revocations: auth.NewMemoryRevocationStore(),
		missing:     map[string]bool{},
	}
	exists := func(_ context.Context, id string) error {
		if f.missing[id] {
			return apperrors.NewResourceNotFoundError("not found")
		}
		return nil
	}
	m := NewAuthMiddleware(f.jwt, f.revocations, exists, exists, zerolog.Nop())

	f.router = gin.New()
	ok := func(c *gin.Context) {
		id, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"userId": id})
	}
	f.router.GET("/applicant", m.ApplicantAuth(), ok)
	f.router.GET("/admin", m.AdminAuth(), ok)
	return f
}

func (f *authFixture) do(path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorCode {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	return body.Error.Code
}

func TestAuthMiddleware_TokenSources(t *testing.T) {
	f := newAuthFixture(t)
	id := uuid.New()
	issued, err := f.jwt.IssueAdminToken(id, "office@x.com")
	require.NoError(t, err)

	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"bearer prefix", map[string]string{"Authorization": "Bearer " + issued.Token}},
		{"raw authorization", map[string]string{"Authorization": issued.Token}},
		{"quoted authorization", map[string]string{"Authorization": `"` + issued.Token + `"`}},
		{"legacy header", map[string]string{"x-auth-token": issued.Token}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do("/admin", tt.headers)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), id.String())
		})
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	f := newAuthFixture(t)
	applicantID, adminID := uuid.New(), uuid.New()
	applicant, err := f.jwt.IssueApplicantToken(applicantID, "a@x.com")
	require.NoError(t, err)
	admin, err := f.jwt.IssueAdminToken(adminID, "office@x.com")
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		w := f.do("/admin", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeTokenNotFound, errorCode(t, w))
	})

	t.Run("garbage token", func(t *testing.T) {
		w := f.do("/admin", map[string]string{"Authorization": "Bearer not-a-jwt"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeInvalidToken, errorCode(t, w))
	})

	t.Run("applicant token on admin route", func(t *testing.T) {
		w := f.do("/admin", map[string]string{"Authorization": applicant.Token})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, dto.ErrorCodeForbidden, errorCode(t, w))
	})

	t.Run("admin token on applicant route", func(t *testing.T) {
		w := f.do("/applicant", map[string]string{"Authorization": admin.Token})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("applicant token on applicant route", func(t *testing.T) {
		w := f.do("/applicant", map[string]string{"Authorization": applicant.Token})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("revoked token", func(t *testing.T) {
		require.NoError(t, f.revocations.Revoke(context.Background(), admin.ID, admin.ExpiresAt))
		w := f.do("/admin", map[string]string{"Authorization": admin.Token})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeRevokedToken, errorCode(t, w))
	})

	t.Run("deleted account", func(t *testing.T) {
		f.missing[applicantID.String()] = true
		w := f.do("/applicant", map[string]string{"Authorization": applicant.Token})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeUnauthorized, errorCode(t, w))
	})
}
