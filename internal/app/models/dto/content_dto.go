package dto

import (
	"time"

	"github.com/pioneer/admissions/internal/app/models"
)

// UpdateStatusRequest changes the review state of an application
type UpdateStatusRequest struct {
	ApplicationStatus models.ApplicationStatus `json:"applicationStatus" binding:"required" example:"approved"`
}

// ContactRequest is a public contact-form submission
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// SyllabusEntry is one syllabus PDF in a class-grouped listing
type SyllabusEntry struct {
	ID           int64  `json:"id"`
	PDFURL       string `json:"pdf_url"`
	UploadedDate string `json:"uploaded_date" example:"2025-03-01"`
}

// DatesheetEntry is one datesheet in a class-grouped listing
type DatesheetEntry struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	UploadedDate string `json:"uploaded_date" example:"2025-03-01"`
	Year         string `json:"year"`
	ExamDate     string `json:"exam_date"`
	PDFURL       string `json:"pdf_url"`
}

// DatesheetInput carries the text fields of a datesheet form
type DatesheetInput struct {
	ExamName string `json:"examName" validate:"required"`
	Class    string `json:"class" validate:"required,class_label"`
	Year     string `json:"year" validate:"required"`
	Date     string `json:"date" validate:"required"`
}

// MessageInput carries the text fields of an announcement form
type MessageInput struct {
	Title          string `json:"title" validate:"required"`
	Content        string `json:"content" validate:"required"`
	SentBy         string `json:"sentBy" validate:"required"`
	TargetAudience string `json:"targetAudience" validate:"required,audience"`
}

// AnnouncementResponse is an announcement with its attachment URL
type AnnouncementResponse struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	SentBy         string    `json:"sentBy"`
	TargetAudience string    `json:"targetAudience"`
	AttachmentURL  string    `json:"attachment,omitempty"`
	SentAt         time.Time `json:"sentAt"`
}

// AssignmentInput carries the text fields of an assignment form
type AssignmentInput struct {
	Title       string `json:"title" validate:"required"`
	Subject     string `json:"subject" validate:"required"`
	Description string `json:"description"`
}

// AssignmentEntry is one assignment with its PDF URL
type AssignmentEntry struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Subject      string `json:"subject"`
	Description  string `json:"description,omitempty"`
	PDFURL       string `json:"pdf_url,omitempty"`
	UploadedDate string `json:"uploaded_date" example:"2025-03-01"`
}

// ClassAssignmentResponse groups the assignments of one class
type ClassAssignmentResponse struct {
	ID          int64             `json:"id"`
	Class       string            `json:"class"`
	Assignments []AssignmentEntry `json:"assignments"`
}

// TotalsResponse holds every dashboard count
type TotalsResponse struct {
	Applications int64 `json:"applications"`
	Admins       int64 `json:"users"`
	Contacts     int64 `json:"contacts"`
	Datesheets   int64 `json:"datesheets"`
	Messages     int64 `json:"messages"`
	Syllabus     int64 `json:"syllabus"`
	Assignments  int64 `json:"assignments"`
}

// CountResponse holds a single dashboard count
type CountResponse struct {
	Total int64 `json:"total" example:"42"`
}
