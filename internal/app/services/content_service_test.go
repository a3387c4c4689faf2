package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pioneer/admissions/internal/app/models"
	"github.com/pioneer/admissions/internal/app/models/dto"
	"github.com/pioneer/admissions/internal/app/repositories/memory"
	"github.com/pioneer/admissions/internal/pkg/apperrors"
)

func testURL(storedPath string) string {
	if storedPath == "" {
		return ""
	}
	return "http://test/" + storedPath
}

func TestSyllabusService_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewSyllabusService(memory.NewSyllabusStore(), env.resolver, zerolog.Nop())

	_, err := svc.Create(ctx, "13th Class", fileHeader(t, "pdf", "s.pdf", pdfBytes))
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	_, err = svc.Create(ctx, "1st Class", fileHeader(t, "pdf", "s.png", pngBytes(t)))
	assert.True(t, errors.Is(err, apperrors.ErrInvalidFileType))
	assert.Equal(t, 0, env.storedFiles(t))

	first, err := svc.Create(ctx, "1st Class", fileHeader(t, "pdf", "a.pdf", pdfBytes))
	require.NoError(t, err)
	_, err = svc.Create(ctx, "1st Class", fileHeader(t, "pdf", "b.pdf", pdfBytes))
	require.NoError(t, err)
	_, err = svc.Create(ctx, "LKG", fileHeader(t, "pdf", "c.pdf", pdfBytes))
	require.NoError(t, err)

	grouped, err := svc.ListGrouped(ctx, testURL)
	require.NoError(t, err)
	assert.Len(t, grouped["1st Class"], 2)
	assert.Len(t, grouped["LKG"], 1)
	assert.Equal(t, "http://test/"+first.PDFPath, grouped["1st Class"][1].PDFURL)

	oldPath := first.PDFPath
	updated, err := svc.Update(ctx, first.ID, "2nd Class", fileHeader(t, "pdf", "new.pdf", pdfBytes))
	require.NoError(t, err)
	assert.Equal(t, "2nd Class", updated.Class)
	assert.NotEqual(t, oldPath, updated.PDFPath)
	assert.Equal(t, 3, env.storedFiles(t), "replaced file is removed")

	require.NoError(t, svc.Delete(ctx, first.ID))
	assert.Equal(t, 2, env.storedFiles(t))

	_, err = svc.Get(ctx, first.ID)
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))
}

func TestDatesheetService_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewDatesheetService(memory.NewDatesheetStore(), env.resolver, env.validator, zerolog.Nop())

	in := dto.DatesheetInput{ExamName: "Mid Term", Class: "5th Class", Year: "2025", Date: "2025-09-10"}

	_, err := svc.Create(ctx, dto.DatesheetInput{ExamName: "Mid Term", Class: "Fifth"}, fileHeader(t, "pdf", "d.pdf", pdfBytes))
	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 0, env.storedFiles(t))

	item, err := svc.Create(ctx, in, fileHeader(t, "pdf", "d.pdf", pdfBytes))
	require.NoError(t, err)

	grouped, err := svc.ListGrouped(ctx, testURL)
	require.NoError(t, err)
	require.Len(t, grouped["5th Class"], 1)
	assert.Equal(t, "Mid Term", grouped["5th Class"][0].Name)
	assert.Equal(t, "2025-09-10", grouped["5th Class"][0].ExamDate)

	in.ExamName = "Final"
	updated, err := svc.Update(ctx, item.ID, in, nil)
	require.NoError(t, err)
	assert.Equal(t, "Final", updated.ExamName)
	assert.Equal(t, item.PDFPath, updated.PDFPath, "no file keeps the current one")

	require.NoError(t, svc.Delete(ctx, item.ID))
	assert.Equal(t, 0, env.storedFiles(t))
}

func TestMessageService_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewMessageService(memory.NewMessageStore(), env.resolver, env.validator, zerolog.Nop())

	in := dto.MessageInput{Title: "Holiday", Content: "School closed Friday", SentBy: "Principal", TargetAudience: "Parents"}

	_, err := svc.Create(ctx, dto.MessageInput{Title: "x", Content: "y", SentBy: "z", TargetAudience: "Teachers"}, nil)
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	plain, err := svc.Create(ctx, in, nil)
	require.NoError(t, err)
	assert.Empty(t, ToAnnouncementResponse(plain, testURL).AttachmentURL)

	withFile, err := svc.Create(ctx, in, fileHeader(t, "attachment", "notice.png", pngBytes(t)))
	require.NoError(t, err)
	assert.Equal(t, "http://test/"+withFile.AttachmentPath, ToAnnouncementResponse(withFile, testURL).AttachmentURL)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, withFile.ID, list[0].ID)

	require.NoError(t, svc.Delete(ctx, withFile.ID))
	assert.Equal(t, 0, env.storedFiles(t))
}

func TestContactService_Submit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	store := memory.NewContactStore()
	svc := NewContactService(store, env.validator, zerolog.Nop())

	_, err := svc.Submit(ctx, dto.ContactRequest{Name: "A", Email: "not-an-email", Subject: "S", Message: "M"})
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	_, err = svc.Submit(ctx, dto.ContactRequest{Name: "  ", Email: "a@b.co", Subject: "S", Message: "M"})
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed), "blank after trimming")

	c, err := svc.Submit(ctx, dto.ContactRequest{Name: " Asha ", Email: "asha@example.com", Subject: "Fees", Message: "Question"})
	require.NoError(t, err)
	assert.Equal(t, "Asha", c.Name)

	require.NoError(t, svc.Delete(ctx, c.ID))
	assert.True(t, errors.Is(svc.Delete(ctx, c.ID), apperrors.ErrResourceNotFound))
}

func TestAssignmentService_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	store := memory.NewAssignmentStore()
	svc := NewAssignmentService(store, env.resolver, env.validator, zerolog.Nop())

	_, err := svc.Add(ctx, "Class 1", dto.AssignmentInput{Title: "T", Subject: "S"}, nil)
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	a1, err := svc.Add(ctx, "3rd Class", dto.AssignmentInput{Title: "Fractions", Subject: "Maths"}, fileHeader(t, "pdf", "f.pdf", pdfBytes))
	require.NoError(t, err)
	_, err = svc.Add(ctx, "3rd Class", dto.AssignmentInput{Title: "Plants", Subject: "Science"}, nil)
	require.NoError(t, err)

	group, err := svc.GetByClass(ctx, "3rd Class", testURL)
	require.NoError(t, err)
	require.Len(t, group.Assignments, 2)
	assert.Equal(t, "Plants", group.Assignments[0].Title)
	assert.Equal(t, "http://test/"+a1.PDFPath, group.Assignments[1].PDFURL)

	_, err = svc.GetByClass(ctx, "LKG", testURL)
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))

	updated, err := svc.Update(ctx, "3rd Class", a1.ID, dto.AssignmentInput{Title: "Fractions II", Subject: "Maths"}, fileHeader(t, "pdf", "g.pdf", pdfBytes))
	require.NoError(t, err)
	assert.Equal(t, "Fractions II", updated.Title)
	assert.Equal(t, 1, env.storedFiles(t))

	_, err = svc.Update(ctx, "4th Class", a1.ID, dto.AssignmentInput{Title: "x", Subject: "y"}, nil)
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound), "id must belong to the class")

	require.NoError(t, svc.Delete(ctx, "3rd Class", a1.ID))
	assert.Equal(t, 0, env.storedFiles(t))

	all, err := svc.ListGrouped(ctx, testURL)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Len(t, all[0].Assignments, 1)
}

func TestDashboardService_Totals(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	registerN(t, env, 3)

	contacts := memory.NewContactStore()
	require.NoError(t, contacts.Create(ctx, &models.Contact{Name: "A", Email: "a@b.co", Subject: "S", Message: "M"}))
	messages := memory.NewMessageStore()
	assignments := memory.NewAssignmentStore()
	require.NoError(t, assignments.Add(ctx, "LKG", &models.Assignment{Title: "Colours", Subject: "Art"}))

	svc := NewDashboardService(DashboardCounters{
		Applications: env.applicants,
		Admins:       env.admins,
		Contacts:     contacts,
		Datesheets:   memory.NewDatesheetStore(),
		Messages:     messages,
		Syllabus:     memory.NewSyllabusStore(),
		Assignments:  assignments,
	})

	totals, err := svc.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, dto.TotalsResponse{Applications: 3, Contacts: 1, Assignments: 1}, *totals)

	n, err := svc.Applications(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n.Total)
}

type failingCounter struct{}

func (failingCounter) Count(context.Context) (int64, error) { return 0, errors.New("db down") }

func TestDashboardService_TotalsFailure(t *testing.T) {
	env := newTestEnv(t)
	svc := NewDashboardService(DashboardCounters{
		Applications: env.applicants,
		Admins:       failingCounter{},
		Contacts:     memory.NewContactStore(),
		Datesheets:   memory.NewDatesheetStore(),
		Messages:     memory.NewMessageStore(),
		Syllabus:     memory.NewSyllabusStore(),
		Assignments:  memory.NewAssignmentStore(),
	})

	_, err := svc.Totals(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to count admins")
}
