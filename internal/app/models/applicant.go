package models

import (
	"time"

	"github.com/google/uuid"
)

// DateOfBirth is the four-part composite collected on the registration form
type DateOfBirth struct {
	Day     string `json:"day" example:"01"`
	Month   string `json:"month" example:"01"`
	Year    string `json:"year" example:"2010"`
	InWords string `json:"in_words" example:"First January Two Thousand Ten"`
}

// Formatted renders the date as DD-MM-YYYY, or "" when incomplete
func (d DateOfBirth) Formatted() string {
	if d.Day == "" || d.Month == "" || d.Year == "" {
		return ""
	}
	return d.Day + "-" + d.Month + "-" + d.Year
}

// SiblingDetails identifies a sibling already studying at the school
type SiblingDetails struct {
	Name  string `json:"name"`
	Class string `json:"class"`
}

// DocumentPaths holds stored upload paths; an empty string means not uploaded.
type DocumentPaths struct {
	StudentPhoto      string `json:"student_photo_path,omitempty"`
	DOBCertificate    string `json:"dob_certificate_path,omitempty"`
	BloodReport       string `json:"blood_report_path,omitempty"`
	AadharCard        string `json:"aadhar_card_path,omitempty"`
	PassportPhotos    string `json:"passport_photos_path,omitempty"`
	MarksCertificate  string `json:"marks_certificate_path,omitempty"`
	SchoolLeavingCert string `json:"school_leaving_cert_path,omitempty"`
}

// All returns every non-empty stored path
func (d DocumentPaths) All() []string {
	paths := make([]string, 0, 7)
	for _, p := range []string{
		d.StudentPhoto, d.DOBCertificate, d.BloodReport, d.AadharCard,
		d.PassportPhotos, d.MarksCertificate, d.SchoolLeavingCert,
	} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// Applicant is one admission submission and its review state
type Applicant struct {
	ID                  uuid.UUID         `json:"id" example:"5f1c1b9e-8a4e-4d59-9d71-8b0d5b7f3c11"`
	Email               string            `json:"email" example:"parent@example.com"`
	Password            string            `json:"-"`
	Class               string            `json:"class" example:"1st Class"`
	Dated               string            `json:"dated" example:"2025-03-01"`
	StudentName         string            `json:"student_name" example:"Aarav Sharma"`
	DOB                 DateOfBirth       `json:"dob"`
	SchoolLastAttended  string            `json:"school_last_attended"`
	FatherName          string            `json:"father_name"`
	FatherProfession    string            `json:"father_profession"`
	MotherName          string            `json:"mother_name"`
	MotherProfession    string            `json:"mother_profession"`
	GuardianName        string            `json:"guardian_name,omitempty"`
	GuardianProfession  string            `json:"guardian_profession,omitempty"`
	MonthlyIncome       string            `json:"monthly_income,omitempty"`
	FatherContact       string            `json:"father_contact"`
	MotherContact       string            `json:"mother_contact,omitempty"`
	FatherQualification string            `json:"father_qualification,omitempty"`
	MotherQualification string            `json:"mother_qualification,omitempty"`
	Residence           string            `json:"residence"`
	Village             string            `json:"village"`
	Tehsil              string            `json:"tehsil"`
	District            string            `json:"district"`
	PenNo               string            `json:"pen_no,omitempty"`
	BloodGroup          string            `json:"blood_group,omitempty"`
	SiblingStudying     bool              `json:"sibling_studying"`
	SiblingDetails      *SiblingDetails   `json:"sibling_details,omitempty"`
	Documents           DocumentPaths     `json:"documents"`
	ApplicationStatus   ApplicationStatus `json:"applicationStatus" example:"pending"`
	IsRead              bool              `json:"isRead"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
}

// Sanitized returns a copy with the password hash removed
func (a *Applicant) Sanitized() *Applicant {
	if a == nil {
		return nil
	}
	c := *a
	c.Password = ""
	return &c
}

// ApplicantFilter narrows administrative listings
type ApplicantFilter struct {
	Status *ApplicationStatus
	IsRead *bool
	Page   int
	Size   int // zero lists everything
}
