// Package memory provides map-backed implementations of the repository
// interfaces. They are used by tests and by local runs without Postgres.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pioneer/admissions/internal/app/models"
	"github.com/pioneer/admissions/internal/pkg/apperrors"
	"github.com/pioneer/admissions/internal/pkg/helpers"
)

func notFound(entity string) error {
	return apperrors.NewResourceNotFoundError(entity + " not found")
}

// ApplicantStore is an in-memory repositories.ApplicantStore
type ApplicantStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*models.Applicant
	now   func() time.Time

	// CreateErr, when set, is returned by Create instead of storing
	CreateErr error
}

// NewApplicantStore creates an empty store
func NewApplicantStore() *ApplicantStore {
	return &ApplicantStore{items: map[uuid.UUID]*models.Applicant{}, now: time.Now}
}

func copyApplicant(a *models.Applicant) *models.Applicant {
	c := *a
	if a.SiblingDetails != nil {
		s := *a.SiblingDetails
		c.SiblingDetails = &s
	}
	return &c
}

// Create stores a copy of a, assigning its id and timestamps
func (s *ApplicantStore) Create(_ context.Context, a *models.Applicant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.CreateErr != nil {
		return s.CreateErr
	}
	for _, existing := range s.items {
		if strings.EqualFold(existing.Email, a.Email) {
			return apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "Email already exists")
		}
	}

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.ApplicationStatus == "" {
		a.ApplicationStatus = models.StatusPending
	}
	// keep insertion order observable through CreatedAt
	a.CreatedAt = s.now().Add(time.Duration(len(s.items)) * time.Millisecond)
	a.UpdatedAt = a.CreatedAt
	s.items[a.ID] = copyApplicant(a)
	return nil
}

func (s *ApplicantStore) get(id string) (*models.Applicant, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, notFound("Application")
	}
	a, ok := s.items[uid]
	if !ok {
		return nil, notFound("Application")
	}
	return a, nil
}

// GetByID returns a copy of the applicant with id
func (s *ApplicantStore) GetByID(_ context.Context, id string) (*models.Applicant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return copyApplicant(a), nil
}

// GetByEmail looks an applicant up case-insensitively
func (s *ApplicantStore) GetByEmail(_ context.Context, email string) (*models.Applicant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.items {
		if strings.EqualFold(a.Email, email) {
			return copyApplicant(a), nil
		}
	}
	return nil, notFound("User")
}

// List returns matching applicants newest first
func (s *ApplicantStore) List(_ context.Context, filter models.ApplicantFilter) ([]*models.Applicant, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []*models.Applicant{}
	for _, a := range s.items {
		if filter.Status != nil && a.ApplicationStatus != *filter.Status {
			continue
		}
		if filter.IsRead != nil && a.IsRead != *filter.IsRead {
			continue
		}
		matched = append(matched, copyApplicant(a))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	start, end := helpers.PageBounds(filter.Page, filter.Size, len(matched))
	return matched[start:end], total, nil
}

func (s *ApplicantStore) update(id string, fn func(a *models.Applicant)) (*models.Applicant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.get(id)
	if err != nil {
		return nil, err
	}
	fn(a)
	a.UpdatedAt = s.now()
	return copyApplicant(a), nil
}

// UpdateStatus sets only the review state
func (s *ApplicantStore) UpdateStatus(_ context.Context, id string, status models.ApplicationStatus) (*models.Applicant, error) {
	return s.update(id, func(a *models.Applicant) { a.ApplicationStatus = status })
}

// MarkAsRead sets only the read flag
func (s *ApplicantStore) MarkAsRead(_ context.Context, id string) (*models.Applicant, error) {
	return s.update(id, func(a *models.Applicant) { a.IsRead = true })
}

// Delete removes and returns the applicant
func (s *ApplicantStore) Delete(_ context.Context, id string) (*models.Applicant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.get(id)
	if err != nil {
		return nil, err
	}
	delete(s.items, a.ID)
	return a, nil
}

// Count returns the number of applicants
func (s *ApplicantStore) Count(context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.items)), nil
}

// AdminStore is an in-memory repositories.AdminStore
type AdminStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*models.Admin
}

// NewAdminStore creates an empty store
func NewAdminStore() *AdminStore {
	return &AdminStore{items: map[uuid.UUID]*models.Admin{}}
}

// Create stores a copy of admin
func (s *AdminStore) Create(_ context.Context, admin *models.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.items {
		if strings.EqualFold(existing.Email, admin.Email) {
			return apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "An account with this email already exists.")
		}
	}
	if admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}
	admin.IsAdmin = true
	admin.CreatedAt = time.Now()
	admin.UpdatedAt = admin.CreatedAt
	c := *admin
	s.items[admin.ID] = &c
	return nil
}

// GetByID returns a copy of the admin with id
func (s *AdminStore) GetByID(_ context.Context, id string) (*models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, notFound("Admin")
	}
	a, ok := s.items[uid]
	if !ok {
		return nil, notFound("Admin")
	}
	c := *a
	return &c, nil
}

// GetByEmail looks an admin up case-insensitively
func (s *AdminStore) GetByEmail(_ context.Context, email string) (*models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.items {
		if strings.EqualFold(a.Email, email) {
			c := *a
			return &c, nil
		}
	}
	return nil, notFound("Admin")
}

// Count returns the number of admins
func (s *AdminStore) Count(context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.items)), nil
}
