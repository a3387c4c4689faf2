package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pioneer/admissions/internal/app/controllers"
	"github.com/pioneer/admissions/internal/app/repositories/memory"
	"github.com/pioneer/admissions/internal/app/services"
	"github.com/pioneer/admissions/internal/middleware"
	"github.com/pioneer/admissions/internal/pkg/auth"
	"github.com/pioneer/admissions/internal/pkg/filestorage"
	"github.com/pioneer/admissions/internal/pkg/pdf"
	"github.com/pioneer/admissions/internal/pkg/validation"
)

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")

type apiHarness struct {
	t      *testing.T
	router *gin.Engine
}

func newHarness(t *testing.T) *apiHarness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	storage, err := filestorage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	resolver := filestorage.NewResolver(storage, filestorage.UploadPolicy{MaxBytes: 1 << 20})

	jwt := auth.NewJWTService(auth.JWTConfig{
		SecretKey:           "routes-secret",
		ApplicantExpiration: time.Hour,
		AdminExpiration:     time.Hour,
		TokenIssuer:         "routes-test",
	})
	revocations := auth.NewMemoryRevocationStore()
	validator := validation.New(validation.PolicyStrict)
	lgr := zerolog.Nop()

	applicants, admins := memory.NewApplicantStore(), memory.NewAdminStore()
	syllabus, datesheets := memory.NewSyllabusStore(), memory.NewDatesheetStore()
	messages, contacts := memory.NewMessageStore(), memory.NewContactStore()
	assignments := memory.NewAssignmentStore()

	svc := &services.Services{
		Applicant: services.NewApplicantService(applicants, validation.NewRegistrationValidator(validation.PolicyStrict),
			resolver, jwt, revocations, lgr),
		Admin:       services.NewAdminService(admins, jwt, revocations, lgr),
		Application: services.NewApplicationService(applicants, storage, nil, lgr),
		Document: services.NewDocumentService(applicants, storage, pdf.NewRenderer(nil),
			services.DocumentConfig{SchoolName: "Pioneer Public School", Session: "2025-26"}, lgr),
		Syllabus:   services.NewSyllabusService(syllabus, resolver, lgr),
		Datesheet:  services.NewDatesheetService(datesheets, resolver, validator, lgr),
		Message:    services.NewMessageService(messages, resolver, validator, lgr),
		Contact:    services.NewContactService(contacts, validator, lgr),
		Assignment: services.NewAssignmentService(assignments, resolver, validator, lgr),
		Dashboard: services.NewDashboardService(services.DashboardCounters{
			Applications: applicants,
			Admins:       admins,
			Contacts:     contacts,
			Datesheets:   datesheets,
			Messages:     messages,
			Syllabus:     syllabus,
			Assignments:  assignments,
		}),
	}

	authMiddleware := middleware.NewAuthMiddleware(jwt, revocations, nil, nil, lgr)
	router := gin.New()
	SetupRouter(router, controllers.NewControllers(svc, lgr), authMiddleware, storage.BasePath(), nil)
	return &apiHarness{t: t, router: router}
}

func (h *apiHarness) serve(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func (h *apiHarness) json(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return h.serve(req, token)
}

type part struct {
	field, filename string
	data            []byte
}

func (h *apiHarness) multipart(method, path string, fields map[string]string, files []part, token string) *httptest.ResponseRecorder {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(h.t, w.WriteField(k, v))
	}
	for _, f := range files {
		fw, err := w.CreateFormFile(f.field, f.filename)
		require.NoError(h.t, err)
		_, err = fw.Write(f.data)
		require.NoError(h.t, err)
	}
	require.NoError(h.t, w.Close())

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return h.serve(req, token)
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func registrationFields(email string) map[string]string {
	return map[string]string{
		"email":                email,
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

func (h *apiHarness) adminToken() string {
	h.t.Helper()
	w := h.json(http.MethodPost, "/api/admin/register", map[string]string{
		"email": "office@pioneer.edu", "password": "secret1", "passwordCheck": "secret1",
	}, "")
	require.Equal(h.t, http.StatusCreated, w.Code, w.Body.String())

	w = h.json(http.MethodPost, "/api/admin/login", map[string]string{
		"email": "office@pioneer.edu", "password": "secret1",
	}, "")
	require.Equal(h.t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	decode(h.t, w, &resp)
	require.True(h.t, resp.Success)
	require.NotEmpty(h.t, resp.Data.Token)
	return resp.Data.Token
}

func TestHealthAndPing(t *testing.T) {
	h := newHarness(t)

	w := h.serve(httptest.NewRequest(http.MethodGet, "/api/health", nil), "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = h.serve(httptest.NewRequest(http.MethodGet, "/ping", nil), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}

type downDB struct{}

func (downDB) Ping(context.Context) error { return errors.New("connection refused") }

func TestHealthReportsDatabaseOutage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	lgr := zerolog.Nop()
	SetupRouter(router, controllers.NewControllers(&services.Services{}, lgr),
		middleware.NewAuthMiddleware(nil, nil, nil, nil, lgr), "", downDB{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unavailable")
}

func TestApplicantLifecycle(t *testing.T) {
	h := newHarness(t)

	w := h.multipart(http.MethodPost, "/api/auth/register", registrationFields("parent@example.com"),
		[]part{{"studentPhoto", "photo.png", pngBytes(t)}}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var registered struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		UserID  string `json:"userId"`
	}
	decode(t, w, &registered)
	assert.True(t, registered.Success)
	require.NotEmpty(t, registered.Token)

	t.Run("duplicate email", func(t *testing.T) {
		w := h.multipart(http.MethodPost, "/api/auth/register", registrationFields("PARENT@example.com"), nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"success":false,"msg":"Email already exists"}`, w.Body.String())
	})

	t.Run("profile hides password", func(t *testing.T) {
		w := h.serve(httptest.NewRequest(http.MethodGet, "/api/auth/user", nil), registered.Token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Aarav Sharma")
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("login", func(t *testing.T) {
		w := h.json(http.MethodPost, "/api/auth/login", map[string]string{"email": "parent@example.com", "password": "Abc123"}, "")
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data struct {
				Token string `json:"token"`
			} `json:"data"`
		}
		decode(t, w, &resp)
		assert.NotEmpty(t, resp.Data.Token)

		w = h.json(http.MethodPost, "/api/auth/login", map[string]string{"email": "parent@example.com", "password": "wrong1"}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("admit card requires approval", func(t *testing.T) {
		w := h.serve(httptest.NewRequest(http.MethodGet, "/api/auth/admitCard", nil), registered.Token)
		assert.Equal(t, http.StatusForbidden, w.Code)

		admin := h.adminToken()
		w = h.json(http.MethodPut, "/api/admin/admissionApplication/"+registered.UserID+"/status",
			map[string]string{"applicationStatus": "approved"}, admin)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = h.serve(httptest.NewRequest(http.MethodGet, "/api/auth/admitCard", nil), registered.Token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "Aarav_Sharma_Admit_Card.pdf")
		assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

		w = h.serve(httptest.NewRequest(http.MethodGet, "/api/admin/admitCard?id="+registered.UserID, nil), admin)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("logout revokes token", func(t *testing.T) {
		w := h.serve(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil), registered.Token)
		require.Equal(t, http.StatusOK, w.Code)

		w = h.serve(httptest.NewRequest(http.MethodGet, "/api/auth/user", nil), registered.Token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRegisterValidationErrors(t *testing.T) {
	h := newHarness(t)
	fields := registrationFields("parent@example.com")
	fields["father_contact"] = "98-76"

	w := h.multipart(http.MethodPost, "/api/auth/register", fields, nil, "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		StatusCode int    `json:"statusCode"`
		Message    string `json:"message"`
		Errors     []struct {
			Path string `json:"path"`
		} `json:"errors"`
	}
	decode(t, w, &resp)
	assert.Equal(t, "Validation Error", resp.Message)
	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, "father_contact", resp.Errors[0].Path)
}

func TestAdminApplications(t *testing.T) {
	h := newHarness(t)
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		w := h.multipart(http.MethodPost, "/api/auth/register", registrationFields(email), nil, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	admin := h.adminToken()

	t.Run("requires admin token", func(t *testing.T) {
		w := h.serve(httptest.NewRequest(http.MethodGet, "/api/admin/admissionApplications", nil), "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("paginated listing", func(t *testing.T) {
		w := h.serve(httptest.NewRequest(http.MethodGet, "/api/admin/admissionApplications?page=1&size=2&status=pending", nil), admin)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data struct {
				Items      []map[string]interface{} `json:"items"`
				Pagination struct {
					TotalItems int64 `json:"totalItems"`
					TotalPages int   `json:"totalPages"`
				} `json:"pagination"`
			} `json:"data"`
		}
		decode(t, w, &resp)
		assert.Len(t, resp.Data.Items, 2)
		assert.Equal(t, int64(3), resp.Data.Pagination.TotalItems)
		assert.Equal(t, 2, resp.Data.Pagination.TotalPages)
		assert.NotContains(t, w.Body.String(), `"password"`)
	})

	t.Run("unpaged listing returns everything", func(t *testing.T) {
		w := h.serve(httptest.NewRequest(http.MethodGet, "/api/admin/admissionApplications", nil), admin)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data struct {
				Items []map[string]interface{} `json:"items"`
			} `json:"data"`
		}
		decode(t, w, &resp)
		assert.Len(t, resp.Data.Items, 3)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		w := h.serve(httptest.NewRequest(http.MethodGet, "/api/admin/admissionApplications?status=archived", nil), admin)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		w := h.serve(httptest.NewRequest(http.MethodGet, "/api/admin/admissionApplication/not-a-uuid", nil), admin)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("totals", func(t *testing.T) {
		w := h.serve(httptest.NewRequest(http.MethodGet, "/api/admin/totals", nil), admin)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"applications":3`)
		assert.Contains(t, w.Body.String(), `"users":1`)

		w = h.serve(httptest.NewRequest(http.MethodGet, "/api/admin/total-applications", nil), admin)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"total":3`)
	})
}

func TestValidateToken(t *testing.T) {
	h := newHarness(t)
	admin := h.adminToken()

	w := h.serve(httptest.NewRequest(http.MethodGet, "/api/admin/validate-token", nil), admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"valid":true`)

	w = h.serve(httptest.NewRequest(http.MethodGet, "/api/admin/validate-token", nil), "")
	assert.JSONEq(t, `{"valid":false}`, w.Body.String())

	w = h.serve(httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil), admin)
	require.Equal(t, http.StatusOK, w.Code)

	w = h.serve(httptest.NewRequest(http.MethodGet, "/api/admin/validate-token", nil), admin)
	assert.JSONEq(t, `{"valid":false}`, w.Body.String())
}

func TestSyllabusUploadAndListing(t *testing.T) {
	h := newHarness(t)
	admin := h.adminToken()

	w := h.multipart(http.MethodPost, "/api/admin/syllabus", map[string]string{"class": "5th Class"},
		[]part{{"pdf", "maths.pdf", pdfBytes}}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	t.Run("public grouped listing", func(t *testing.T) {
		w := h.serve(httptest.NewRequest(http.MethodGet, "/api/auth/syllabus", nil), "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data map[string][]struct {
				PDFURL       string `json:"pdf_url"`
				UploadedDate string `json:"uploaded_date"`
			} `json:"data"`
		}
		decode(t, w, &resp)
		require.Len(t, resp.Data["5th Class"], 1)
		entry := resp.Data["5th Class"][0]
		assert.True(t, strings.HasPrefix(entry.PDFURL, "http://example.com/uploads/"), entry.PDFURL)
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, entry.UploadedDate)

		file := h.serve(httptest.NewRequest(http.MethodGet, strings.TrimPrefix(entry.PDFURL, "http://example.com"), nil), "")
		assert.Equal(t, http.StatusOK, file.Code)
	})

	t.Run("rejects non-pdf", func(t *testing.T) {
		w := h.multipart(http.MethodPost, "/api/admin/syllabus", map[string]string{"class": "5th Class"},
			[]part{{"pdf", "photo.png", pngBytes(t)}}, admin)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "UPL_001")
	})

	t.Run("rejects unknown class", func(t *testing.T) {
		w := h.multipart(http.MethodPost, "/api/admin/syllabus", map[string]string{"class": "13th Class"},
			[]part{{"pdf", "x.pdf", pdfBytes}}, admin)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		w := h.serve(httptest.NewRequest(http.MethodDelete, "/api/admin/syllabus/abc", nil), admin)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAssignmentsAndContact(t *testing.T) {
	h := newHarness(t)
	admin := h.adminToken()

	w := h.multipart(http.MethodPost, "/api/admin/assignments/UKG", map[string]string{"title": "Colours", "subject": "Art"},
		[]part{{"pdf", "colours.pdf", pdfBytes}}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	decode(t, w, &created)
	require.NotZero(t, created.Data.ID)

	w = h.serve(httptest.NewRequest(http.MethodGet, "/api/auth/assignments/UKG", nil), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Colours")

	w = h.multipart(http.MethodPut, "/api/admin/assignments/UKG/"+strconv.FormatInt(created.Data.ID, 10), map[string]string{"title": "Shapes"}, nil, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Shapes")
	assert.Contains(t, w.Body.String(), "Art")

	w = h.serve(httptest.NewRequest(http.MethodGet, "/api/admin/total-assignments", nil), admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = h.serve(httptest.NewRequest(http.MethodDelete, "/api/admin/assignments/UKG/"+strconv.FormatInt(created.Data.ID, 10), nil), admin)
	require.Equal(t, http.StatusOK, w.Code)

	w = h.serve(httptest.NewRequest(http.MethodGet, "/api/admin/total-assignments", nil), admin)
	assert.Contains(t, w.Body.String(), `"total":0`)

	w = h.json(http.MethodPost, "/api/auth/contact", map[string]string{"name": "Asha", "email": "asha@example.com", "subject": "Fees"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.json(http.MethodPost, "/api/auth/contact", map[string]string{
		"name": "Asha", "email": "asha@example.com", "subject": "Fees", "message": "When is the deadline?",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = h.serve(httptest.NewRequest(http.MethodGet, "/api/admin/total-contacts", nil), admin)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestAdminContactPaths(t *testing.T) {
	h := newHarness(t)
	admin := h.adminToken()

	for _, subject := range []string{"Fees", "Transport"} {
		w := h.json(http.MethodPost, "/api/auth/contact", map[string]string{
			"name": "Asha", "email": "asha@example.com", "subject": subject, "message": "Question",
		}, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	list := func(path string) []int64 {
		t.Helper()
		w := h.serve(httptest.NewRequest(http.MethodGet, path, nil), admin)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp struct {
			Data []struct {
				ID int64 `json:"id"`
			} `json:"data"`
		}
		decode(t, w, &resp)
		ids := make([]int64, 0, len(resp.Data))
		for _, c := range resp.Data {
			ids = append(ids, c.ID)
		}
		return ids
	}

	ids := list("/api/admin/contact")
	require.Len(t, ids, 2)
	assert.Equal(t, ids, list("/api/admin/contacts"))

	w := h.serve(httptest.NewRequest(http.MethodDelete, "/api/admin/contact/"+strconv.FormatInt(ids[0], 10), nil), admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = h.serve(httptest.NewRequest(http.MethodDelete, "/api/admin/contacts/"+strconv.FormatInt(ids[1], 10), nil), admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Empty(t, list("/api/admin/contact"))

	w = h.serve(httptest.NewRequest(http.MethodGet, "/api/admin/contact", nil), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
