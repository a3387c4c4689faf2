package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pioneer/admissions/internal/app/models"
	"github.com/pioneer/admissions/internal/app/repositories"
)

var (
	_ repositories.ApplicantStore  = (*ApplicantStore)(nil)
	_ repositories.AdminStore      = (*AdminStore)(nil)
	_ repositories.SyllabusStore   = (*SyllabusStore)(nil)
	_ repositories.DatesheetStore  = (*DatesheetStore)(nil)
	_ repositories.MessageStore    = (*MessageStore)(nil)
	_ repositories.ContactStore    = (*ContactStore)(nil)
	_ repositories.AssignmentStore = (*AssignmentStore)(nil)
)

// table is an int64-keyed collection with insertion-ordered ids
type table[T any] struct {
	mu     sync.RWMutex
	entity string
	nextID int64
	rows   map[int64]T
}

func newTable[T any](entity string) table[T] {
	return table[T]{entity: entity, rows: map[int64]T{}}
}

func (t *table[T]) insert(set func(id int64, now time.Time) T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	t.rows[t.nextID] = set(t.nextID, time.Now())
}

func (t *table[T]) get(id int64) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, notFound(t.entity)
	}
	return v, nil
}

// list returns the rows ordered by less
func (t *table[T]) list(less func(a, b T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.rows))
	for _, v := range t.rows {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func (t *table[T]) replace(id int64, v T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return notFound(t.entity)
	}
	t.rows[id] = v
	return nil
}

func (t *table[T]) delete(id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return notFound(t.entity)
	}
	delete(t.rows, id)
	return nil
}

func (t *table[T]) count() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return int64(len(t.rows))
}

// SyllabusStore is an in-memory repositories.SyllabusStore
type SyllabusStore struct{ t table[models.Syllabus] }

// NewSyllabusStore creates an empty store
func NewSyllabusStore() *SyllabusStore {
	return &SyllabusStore{t: newTable[models.Syllabus]("Syllabus")}
}

func (s *SyllabusStore) Create(_ context.Context, item *models.Syllabus) error {
	s.t.insert(func(id int64, now time.Time) models.Syllabus {
		item.ID, item.CreatedAt, item.UpdatedAt = id, now, now
		return *item
	})
	return nil
}

func (s *SyllabusStore) GetByID(_ context.Context, id int64) (*models.Syllabus, error) {
	v, err := s.t.get(id)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *SyllabusStore) List(context.Context) ([]*models.Syllabus, error) {
	rows := s.t.list(func(a, b models.Syllabus) bool {
		if a.Class != b.Class {
			return a.Class < b.Class
		}
		return a.ID > b.ID
	})
	out := make([]*models.Syllabus, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}

func (s *SyllabusStore) Update(_ context.Context, item *models.Syllabus) error {
	item.UpdatedAt = time.Now()
	return s.t.replace(item.ID, *item)
}

func (s *SyllabusStore) Delete(_ context.Context, id int64) error { return s.t.delete(id) }

func (s *SyllabusStore) Count(context.Context) (int64, error) { return s.t.count(), nil }

// DatesheetStore is an in-memory repositories.DatesheetStore
type DatesheetStore struct{ t table[models.Datesheet] }

// NewDatesheetStore creates an empty store
func NewDatesheetStore() *DatesheetStore {
	return &DatesheetStore{t: newTable[models.Datesheet]("Datesheet")}
}

func (s *DatesheetStore) Create(_ context.Context, item *models.Datesheet) error {
	s.t.insert(func(id int64, now time.Time) models.Datesheet {
		item.ID, item.CreatedAt, item.UpdatedAt = id, now, now
		return *item
	})
	return nil
}

func (s *DatesheetStore) GetByID(_ context.Context, id int64) (*models.Datesheet, error) {
	v, err := s.t.get(id)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *DatesheetStore) List(context.Context) ([]*models.Datesheet, error) {
	rows := s.t.list(func(a, b models.Datesheet) bool {
		if a.Class != b.Class {
			return a.Class < b.Class
		}
		return a.ID > b.ID
	})
	out := make([]*models.Datesheet, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}

func (s *DatesheetStore) Update(_ context.Context, item *models.Datesheet) error {
	item.UpdatedAt = time.Now()
	return s.t.replace(item.ID, *item)
}

func (s *DatesheetStore) Delete(_ context.Context, id int64) error { return s.t.delete(id) }

func (s *DatesheetStore) Count(context.Context) (int64, error) { return s.t.count(), nil }

// MessageStore is an in-memory repositories.MessageStore
type MessageStore struct{ t table[models.Message] }

// NewMessageStore creates an empty store
func NewMessageStore() *MessageStore {
	return &MessageStore{t: newTable[models.Message]("Message")}
}

func (s *MessageStore) Create(_ context.Context, m *models.Message) error {
	s.t.insert(func(id int64, now time.Time) models.Message {
		m.ID, m.SentAt, m.UpdatedAt = id, now, now
		return *m
	})
	return nil
}

func (s *MessageStore) GetByID(_ context.Context, id int64) (*models.Message, error) {
	v, err := s.t.get(id)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *MessageStore) List(context.Context) ([]*models.Message, error) {
	rows := s.t.list(func(a, b models.Message) bool { return a.ID > b.ID })
	out := make([]*models.Message, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}

func (s *MessageStore) Update(_ context.Context, m *models.Message) error {
	m.UpdatedAt = time.Now()
	return s.t.replace(m.ID, *m)
}

func (s *MessageStore) Delete(_ context.Context, id int64) error { return s.t.delete(id) }

func (s *MessageStore) Count(context.Context) (int64, error) { return s.t.count(), nil }

// ContactStore is an in-memory repositories.ContactStore
type ContactStore struct{ t table[models.Contact] }

// NewContactStore creates an empty store
func NewContactStore() *ContactStore {
	return &ContactStore{t: newTable[models.Contact]("Contact")}
}

func (s *ContactStore) Create(_ context.Context, c *models.Contact) error {
	s.t.insert(func(id int64, now time.Time) models.Contact {
		c.ID, c.CreatedAt = id, now
		return *c
	})
	return nil
}

func (s *ContactStore) List(context.Context) ([]*models.Contact, error) {
	rows := s.t.list(func(a, b models.Contact) bool { return a.ID > b.ID })
	out := make([]*models.Contact, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}

func (s *ContactStore) Delete(_ context.Context, id int64) error { return s.t.delete(id) }

func (s *ContactStore) Count(context.Context) (int64, error) { return s.t.count(), nil }

// AssignmentStore is an in-memory repositories.AssignmentStore
type AssignmentStore struct {
	mu      sync.RWMutex
	groups  map[string]*models.ClassAssignment
	nextGID int64
	nextID  int64
}

// NewAssignmentStore creates an empty store
func NewAssignmentStore() *AssignmentStore {
	return &AssignmentStore{groups: map[string]*models.ClassAssignment{}}
}

func (s *AssignmentStore) Add(_ context.Context, class string, a *models.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[class]
	if !ok {
		s.nextGID++
		g = &models.ClassAssignment{ID: s.nextGID, Class: class, Assignments: []models.Assignment{}, CreatedAt: time.Now()}
		s.groups[class] = g
	}
	s.nextID++
	a.ID, a.Class, a.UploadedDate = s.nextID, class, time.Now()
	// newest first
	g.Assignments = append([]models.Assignment{*a}, g.Assignments...)
	return nil
}

func copyGroup(g *models.ClassAssignment) *models.ClassAssignment {
	c := *g
	c.Assignments = append([]models.Assignment{}, g.Assignments...)
	return &c
}

func (s *AssignmentStore) ListGrouped(context.Context) ([]*models.ClassAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.ClassAssignment, 0, len(s.groups))
	for _, g := range s.groups {
		out = append(out, copyGroup(g))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Class < out[j].Class })
	return out, nil
}

func (s *AssignmentStore) GetByClass(_ context.Context, class string) (*models.ClassAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groups[class]
	if !ok {
		return nil, notFound("Class")
	}
	return copyGroup(g), nil
}

func (s *AssignmentStore) find(class string, id int64) (*models.ClassAssignment, int, error) {
	g, ok := s.groups[class]
	if !ok {
		return nil, 0, notFound("Assignment")
	}
	for i := range g.Assignments {
		if g.Assignments[i].ID == id {
			return g, i, nil
		}
	}
	return nil, 0, notFound("Assignment")
}

func (s *AssignmentStore) GetAssignment(_ context.Context, class string, id int64) (*models.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, i, err := s.find(class, id)
	if err != nil {
		return nil, err
	}
	a := g.Assignments[i]
	return &a, nil
}

func (s *AssignmentStore) Update(_ context.Context, a *models.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, i, err := s.find(a.Class, a.ID)
	if err != nil {
		return err
	}
	g.Assignments[i] = *a
	return nil
}

func (s *AssignmentStore) Delete(_ context.Context, class string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, i, err := s.find(class, id)
	if err != nil {
		return err
	}
	g.Assignments = append(g.Assignments[:i], g.Assignments[i+1:]...)
	return nil
}

func (s *AssignmentStore) Count(context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, g := range s.groups {
		n += int64(len(g.Assignments))
	}
	return n, nil
}
