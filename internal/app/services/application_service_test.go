package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pioneer/admissions/internal/app/models"
	"github.com/pioneer/admissions/internal/pkg/apperrors"
	"github.com/pioneer/admissions/internal/pkg/filestorage"
)

func registerN(t *testing.T, env *testEnv, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		form := registrationForm()
		form["email"] = fmt.Sprintf("parent%d@example.com", i)
		resp, err := env.applicant.Register(context.Background(), form, nil)
		require.NoError(t, err)
		ids = append(ids, resp.UserID.String())
	}
	return ids
}

func TestApplicationService_List(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ids := registerN(t, env, 5)

	_, err := env.application.UpdateStatus(ctx, ids[0], models.StatusApproved)
	require.NoError(t, err)

	page, err := env.application.List(ctx, models.ApplicantFilter{Page: 1, Size: 2})
	require.NoError(t, err)
	items := page.Items.([]*models.Applicant)
	assert.Len(t, items, 2)
	assert.Equal(t, int64(5), page.Pagination.TotalItems)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.Equal(t, ids[4], items[0].ID.String(), "newest first")
	for _, a := range items {
		assert.Empty(t, a.Password)
	}

	approved := models.StatusApproved
	page, err = env.application.List(ctx, models.ApplicantFilter{Status: &approved})
	require.NoError(t, err)
	items = page.Items.([]*models.Applicant)
	require.Len(t, items, 1)
	assert.Equal(t, ids[0], items[0].ID.String())

	bogus := models.ApplicationStatus("archived")
	_, err = env.application.List(ctx, models.ApplicantFilter{Status: &bogus})
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
}

func TestApplicationService_UpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := registerN(t, env, 1)[0]

	_, err := env.application.UpdateStatus(ctx, id, "done")
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
	assert.Empty(t, env.notifier.calls)

	a, err := env.application.UpdateStatus(ctx, id, models.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, a.ApplicationStatus)

	// any state may follow any other
	a, err = env.application.UpdateStatus(ctx, id, models.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, a.ApplicationStatus)
	assert.Equal(t, []string{"parent0@example.com:rejected", "parent0@example.com:approved"}, env.notifier.calls)

	_, err = env.application.UpdateStatus(ctx, "5f1c1b9e-8a4e-4d59-9d71-8b0d5b7f3c11", models.StatusApproved)
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))
}

func TestApplicationService_UpdateStatus_NotifierFailure(t *testing.T) {
	env := newTestEnv(t)
	env.notifier.err = errors.New("smtp unreachable")
	id := registerN(t, env, 1)[0]

	a, err := env.application.UpdateStatus(context.Background(), id, models.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, a.ApplicationStatus)
}

func TestApplicationService_MarkAsRead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := registerN(t, env, 1)[0]

	a, err := env.application.MarkAsRead(ctx, id)
	require.NoError(t, err)
	assert.True(t, a.IsRead)
	assert.Equal(t, models.StatusPending, a.ApplicationStatus)

	_, err = env.application.MarkAsRead(ctx, "not-a-uuid")
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))
}

func TestApplicationService_DeleteRemovesFiles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.applicant.Register(ctx, registrationForm(), uploads{
		filestorage.KindStudentPhoto:   fileHeader(t, "studentPhoto", "photo.png", pngBytes(t)),
		filestorage.KindAadharCard:     fileHeader(t, "aadharCard", "aadhar.pdf", pdfBytes),
		filestorage.KindPassportPhotos: fileHeader(t, "passportPhotos", "pp.png", pngBytes(t)),
	})
	require.NoError(t, err)
	require.Equal(t, 3, env.storedFiles(t))

	require.NoError(t, env.application.Delete(ctx, resp.UserID.String()))
	assert.Equal(t, 0, env.storedFiles(t))

	_, err = env.application.Get(ctx, resp.UserID.String())
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))

	err = env.application.Delete(ctx, resp.UserID.String())
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))
}

func TestDocumentService_AdmitCard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	form := registrationForm()
	form["student_name"] = "Zoë D'Souza"
	resp, err := env.applicant.Register(ctx, form, uploads{
		filestorage.KindStudentPhoto: fileHeader(t, "studentPhoto", "photo.png", pngBytes(t)),
	})
	require.NoError(t, err)
	id := resp.UserID.String()

	for _, status := range []models.ApplicationStatus{models.StatusPending, models.StatusRejected} {
		_, err = env.application.UpdateStatus(ctx, id, status)
		require.NoError(t, err)
		_, err = env.document.AdmitCard(ctx, id)
		assert.True(t, errors.Is(err, apperrors.ErrNotApproved), "status %s", status)
	}

	_, err = env.application.UpdateStatus(ctx, id, models.StatusApproved)
	require.NoError(t, err)

	doc, err := env.document.AdmitCard(ctx, id)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF-")))
	assert.Equal(t, "Zo__D_Souza_Admit_Card.pdf", doc.Filename)

	_, err = env.document.AdmitCard(ctx, "5f1c1b9e-8a4e-4d59-9d71-8b0d5b7f3c11")
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))
}

func TestDocumentService_Summary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := registerN(t, env, 1)[0]

	// summaries do not depend on the review state
	doc, err := env.document.Summary(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "application_"+id+".pdf", doc.Filename)
	assert.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF-")))

	again, err := env.document.Summary(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, doc.Content, again.Content)
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t, "Aarav_Sharma", safeFilename("Aarav Sharma"))
	assert.Equal(t, "applicant", safeFilename("   "))
	assert.Equal(t, "a-b.c", safeFilename("a-b.c"))
}

func TestDayFirst(t *testing.T) {
	assert.Equal(t, "01-03-2025", dayFirst("2025-03-01"))
	assert.Equal(t, "someday", dayFirst("someday"))
}
