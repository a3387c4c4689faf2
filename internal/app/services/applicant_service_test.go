package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pioneer/admissions/internal/app/models"
	"github.com/pioneer/admissions/internal/app/models/dto"
	"github.com/pioneer/admissions/internal/pkg/apperrors"
	"github.com/pioneer/admissions/internal/pkg/filestorage"
)

type uploads map[filestorage.UploadKind]*multipart.FileHeader

func TestApplicantService_Register(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.applicant.Register(ctx, registrationForm(), uploads{
		filestorage.KindStudentPhoto:   fileHeader(t, "studentPhoto", "photo.png", pngBytes(t)),
		filestorage.KindDOBCertificate: fileHeader(t, "dobCertificate", "dob.pdf", pdfBytes),
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "User registered successfully", resp.Msg)
	assert.NotEmpty(t, resp.Token)

	claims, err := env.jwt.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, claims.UserID)
	assert.Equal(t, models.RoleApplicant, claims.Role)
	assert.False(t, claims.IsAdmin)

	stored, err := env.applicants.GetByID(ctx, resp.UserID.String())
	require.NoError(t, err)
	assert.Equal(t, "parent@example.com", stored.Email)
	assert.Equal(t, models.StatusPending, stored.ApplicationStatus)
	assert.False(t, stored.IsRead)
	assert.NotEqual(t, "Abc123", stored.Password)
	assert.Equal(t, "01-01-2010", stored.DOB.Formatted())
	assert.NotEmpty(t, stored.Documents.StudentPhoto)
	assert.NotEmpty(t, stored.Documents.DOBCertificate)
	assert.Empty(t, stored.Documents.BloodReport)
	assert.Equal(t, 2, env.storedFiles(t))
}

func TestApplicantService_Register_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.applicant.Register(ctx, registrationForm(), nil)
	require.NoError(t, err)

	form := registrationForm()
	form["email"] = "PARENT@example.COM"
	_, err = env.applicant.Register(ctx, form, uploads{
		filestorage.KindStudentPhoto: fileHeader(t, "studentPhoto", "photo.png", pngBytes(t)),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrEmailAlreadyExists))
	assert.Equal(t, "Email already exists", err.Error())
	assert.Equal(t, 0, env.storedFiles(t))

	n, _ := env.applicants.Count(ctx)
	assert.Equal(t, int64(1), n)
}

func TestApplicantService_Register_ValidationFailure(t *testing.T) {
	env := newTestEnv(t)

	form := registrationForm()
	form["father_contact"] = "12ab"
	delete(form, "dob_in_words")

	_, err := env.applicant.Register(context.Background(), form, uploads{
		filestorage.KindStudentPhoto: fileHeader(t, "studentPhoto", "photo.png", pngBytes(t)),
	})
	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))

	paths := map[string]bool{}
	for _, f := range verr.Fields {
		paths[f.Path] = true
	}
	assert.True(t, paths["father_contact"])
	assert.True(t, paths["dob"])
	assert.Equal(t, 0, env.storedFiles(t))
}

func TestApplicantService_Register_RejectedUpload(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.applicant.Register(context.Background(), registrationForm(), uploads{
		filestorage.KindStudentPhoto:   fileHeader(t, "studentPhoto", "photo.png", pngBytes(t)),
		filestorage.KindDOBCertificate: fileHeader(t, "dobCertificate", "dob.txt", []byte("plain text is not accepted")),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidFileType))
	assert.Equal(t, 0, env.storedFiles(t), "files stored before the rejected one are removed")

	n, _ := env.applicants.Count(context.Background())
	assert.Zero(t, n)
}

func TestApplicantService_Register_StoreFailureRemovesUploads(t *testing.T) {
	env := newTestEnv(t)
	env.applicants.CreateErr = errors.New("connection reset")

	_, err := env.applicant.Register(context.Background(), registrationForm(), uploads{
		filestorage.KindStudentPhoto: fileHeader(t, "studentPhoto", "photo.png", pngBytes(t)),
		filestorage.KindBloodReport:  fileHeader(t, "bloodReport", "blood.pdf", pdfBytes),
	})
	require.Error(t, err)
	assert.Equal(t, 0, env.storedFiles(t))
}

func TestApplicantService_Login(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reg, err := env.applicant.Register(ctx, registrationForm(), nil)
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		resp, err := env.applicant.Login(ctx, &dto.LoginRequest{Email: "parent@example.com", Password: "Abc123"})
		require.NoError(t, err)
		assert.Equal(t, "Successfully logged in.", resp.Msg)
		assert.Equal(t, reg.UserID, resp.Data.UserID)
		assert.NotEmpty(t, resp.Data.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := env.applicant.Login(ctx, &dto.LoginRequest{Email: "parent@example.com", Password: "Wrong123"})
		assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))
		assert.Equal(t, "Invalid credentials.", err.Error())
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := env.applicant.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "Abc123"})
		assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := env.applicant.Login(ctx, &dto.LoginRequest{Email: "parent@example.com"})
		assert.True(t, errors.Is(err, apperrors.ErrBadRequest))
	})
}

func TestApplicantService_ProfileAndLogout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	reg, err := env.applicant.Register(ctx, registrationForm(), nil)
	require.NoError(t, err)

	profile, err := env.applicant.Profile(ctx, reg.UserID.String())
	require.NoError(t, err)
	assert.Empty(t, profile.Password)
	assert.Equal(t, "Aarav Sharma", profile.StudentName)

	claims, err := env.jwt.ValidateToken(reg.Token)
	require.NoError(t, err)
	require.NoError(t, env.applicant.Logout(ctx, claims))

	revoked, err := env.revocations.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.True(t, errors.Is(env.applicant.Logout(ctx, nil), apperrors.ErrTokenInvalid))
}
