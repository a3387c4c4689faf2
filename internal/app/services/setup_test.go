package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/pioneer/admissions/internal/app/repositories/memory"
	"github.com/pioneer/admissions/internal/pkg/auth"
	"github.com/pioneer/admissions/internal/pkg/filestorage"
	"github.com/pioneer/admissions/internal/pkg/pdf"
	"github.com/pioneer/admissions/internal/pkg/validation"
)

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// fileHeader builds a real multipart.FileHeader carrying data
func fileHeader(t *testing.T, field, filename string, data []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(10 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File[field][0]
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (n *recordingNotifier) NotifyStatusChange(_ context.Context, toEmail, _ string, status string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, toEmail+":"+status)
	return n.err
}

type testEnv struct {
	applicants  *memory.ApplicantStore
	admins      *memory.AdminStore
	storage     *filestorage.LocalStorage
	resolver    *filestorage.Resolver
	jwt         *auth.JWTService
	revocations *auth.MemoryRevocationStore
	notifier    *recordingNotifier
	validator   *validation.Validator

	applicant   *ApplicantService
	admin       *AdminService
	application *ApplicationService
	document    *DocumentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	storage, err := filestorage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	env := &testEnv{
		applicants:  memory.NewApplicantStore(),
		admins:      memory.NewAdminStore(),
		storage:     storage,
		resolver:    filestorage.NewResolver(storage, filestorage.UploadPolicy{MaxBytes: 1 << 20}),
		revocations: auth.NewMemoryRevocationStore(),
		notifier:    &recordingNotifier{},
		validator:   validation.New(validation.PolicyStrict),
		jwt: auth.NewJWTService(auth.JWTConfig{
			SecretKey:           "test-secret",
			ApplicantExpiration: 7 * 24 * time.Hour,
			AdminExpiration:     24 * time.Hour,
			TokenIssuer:         "admissions-test",
		}),
	}

	lgr := zerolog.Nop()
	env.applicant = NewApplicantService(env.applicants, validation.NewRegistrationValidator(validation.PolicyStrict),
		env.resolver, env.jwt, env.revocations, lgr)
	env.admin = NewAdminService(env.admins, env.jwt, env.revocations, lgr)
	env.application = NewApplicationService(env.applicants, storage, env.notifier, lgr)
	env.document = NewDocumentService(env.applicants, storage, pdf.NewRenderer(nil),
		DocumentConfig{SchoolName: "Pioneer Public School", Session: "2025-26", Issuer: "Principal"}, lgr)
	env.document.newSerial = func() string { return "SERIAL-1" }
	return env
}

func (e *testEnv) storedFiles(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir(e.storage.BasePath())
	require.NoError(t, err)
	return len(entries)
}

func registrationForm() map[string]string {
	return map[string]string{
		"email":                "Parent@Example.com",
		"password":             "Abc123",
		"class":                "1st Class",
		"dated":                "2025-03-01",
		"student_name":         "Aarav Sharma",
		"dob_day":              "01",
		"dob_month":            "01",
		"dob_year":             "2010",
		"dob_in_words":         "first january two thousand ten",
		"school_last_attended": "Little Stars",
		"father_name":          "Rakesh Sharma",
		"father_profession":    "Teacher",
		"mother_name":          "Sunita Sharma",
		"mother_profession":    "Nurse",
		"father_contact":       "9876543210",
		"residence":            "House 12",
		"village":              "Rampur",
		"tehsil":               "Kupwara",
		"district":             "Kupwara",
	}
}
