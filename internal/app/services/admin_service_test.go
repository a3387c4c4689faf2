package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pioneer/admissions/internal/app/models/dto"
	"github.com/pioneer/admissions/internal/pkg/apperrors"
)

func TestAdminService_Register(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  dto.AdminRegisterRequest
		msg  string
	}{
		{"missing fields", dto.AdminRegisterRequest{Email: "office@pioneer.edu", Password: "secret1"}, "Not all fields have been entered."},
		{"short password", dto.AdminRegisterRequest{Email: "office@pioneer.edu", Password: "abc", PasswordCheck: "abc"}, "Password must be at least 6 characters long."},
		{"mismatch", dto.AdminRegisterRequest{Email: "office@pioneer.edu", Password: "secret1", PasswordCheck: "secret2"}, "Passwords do not match."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.admin.Register(ctx, &tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrBadRequest))
			assert.Equal(t, tt.msg, err.Error())
		})
	}

	admin, err := env.admin.Register(ctx, &dto.AdminRegisterRequest{
		Email: " Office@Pioneer.edu ", Password: "secret1", PasswordCheck: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "office@pioneer.edu", admin.Email)
	assert.Equal(t, "office@pioneer.edu", admin.Name)

	_, err = env.admin.Register(ctx, &dto.AdminRegisterRequest{
		Email: "office@pioneer.edu", Password: "secret1", PasswordCheck: "secret1",
	})
	assert.True(t, errors.Is(err, apperrors.ErrEmailAlreadyExists))
	assert.Equal(t, "An account with this email already exists.", err.Error())
}

func TestAdminService_LoginValidateLogout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.admin.Register(ctx, &dto.AdminRegisterRequest{
		Email: "office@pioneer.edu", Password: "secret1", PasswordCheck: "secret1", Name: "Office",
	})
	require.NoError(t, err)

	_, err = env.admin.Login(ctx, &dto.LoginRequest{Email: "office@pioneer.edu", Password: "wrong12"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))

	result, err := env.admin.Login(ctx, &dto.LoginRequest{Email: "office@pioneer.edu", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Office", result.Admin.Name)
	assert.False(t, result.ExpiresAt.IsZero())

	check, err := env.admin.ValidateToken(ctx, result.Token)
	require.NoError(t, err)
	assert.True(t, check.Valid)
	require.NotNil(t, check.Admin)
	assert.Equal(t, "office@pioneer.edu", check.Admin.Email)

	claims, err := env.jwt.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
	require.NoError(t, env.admin.Logout(ctx, claims))

	check, err = env.admin.ValidateToken(ctx, result.Token)
	require.NoError(t, err)
	assert.False(t, check.Valid)
}

func TestAdminService_ValidateToken_RejectsOtherTokens(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	check, err := env.admin.ValidateToken(ctx, "not-a-token")
	require.NoError(t, err)
	assert.False(t, check.Valid)

	reg, err := env.applicant.Register(ctx, registrationForm(), nil)
	require.NoError(t, err)
	check, err = env.admin.ValidateToken(ctx, reg.Token)
	require.NoError(t, err)
	assert.False(t, check.Valid, "applicant tokens are not admin tokens")
}
