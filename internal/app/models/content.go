package models

import "time"

// Syllabus is a class syllabus PDF
type Syllabus struct {
	ID        int64     `json:"id"`
	Class     string    `json:"class"`
	PDFPath   string    `json:"pdf_path"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Datesheet is an exam schedule PDF for one class
type Datesheet struct {
	ID        int64     `json:"id"`
	ExamName  string    `json:"examName"`
	Class     string    `json:"class"`
	Year      string    `json:"year"`
	ExamDate  string    `json:"date"`
	PDFPath   string    `json:"pdf_path"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Message is an announcement addressed to a target audience
type Message struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	SentBy         string    `json:"sentBy"`
	TargetAudience string    `json:"targetAudience"`
	AttachmentPath string    `json:"attachment,omitempty"`
	SentAt         time.Time `json:"sentAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Contact is a public contact-form submission
type Contact struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Assignment is a single homework PDF
type Assignment struct {
	ID           int64     `json:"id"`
	Class        string    `json:"class"`
	Title        string    `json:"title"`
	Subject      string    `json:"subject"`
	Description  string    `json:"description,omitempty"`
	PDFPath      string    `json:"pdf_path,omitempty"`
	UploadedDate time.Time `json:"uploaded_date"`
}

// ClassAssignment groups the assignments of one class
type ClassAssignment struct {
	ID          int64        `json:"id"`
	Class       string       `json:"class"`
	Assignments []Assignment `json:"assignments"`
	CreatedAt   time.Time    `json:"createdAt"`
}
