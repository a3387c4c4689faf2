package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	ApplicantRepository  *ApplicantRepository
	AdminRepository      *AdminRepository
	SyllabusRepository   *SyllabusRepository
	DatesheetRepository  *DatesheetRepository
	MessageRepository    *MessageRepository
	ContactRepository    *ContactRepository
	AssignmentRepository *AssignmentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		ApplicantRepository:  NewApplicantRepository(db),
		AdminRepository:      NewAdminRepository(db),
		SyllabusRepository:   NewSyllabusRepository(db),
		DatesheetRepository:  NewDatesheetRepository(db),
		MessageRepository:    NewMessageRepository(db),
		ContactRepository:    NewContactRepository(db),
		AssignmentRepository: NewAssignmentRepository(db),
	}
}
