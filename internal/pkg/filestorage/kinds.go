package filestorage

import (
	"github.com/gabriel-vasile/mimetype"
)

// UploadKind is a named category of file attachment with its own MIME policy.
type UploadKind int

const (
	KindStudentPhoto UploadKind = iota + 1
	KindDOBCertificate
	KindBloodReport
	KindAadharCard
	KindPassportPhotos
	KindMarksCertificate
	KindSchoolLeavingCert
	KindSyllabusPDF
	KindDatesheetPDF
	KindAssignmentPDF
	KindMessageAttachment
)

const (
	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"
	MimePDF  = "application/pdf"
)

var (
	imagesOnly   = []string{MimeJPEG, MimePNG}
	imagesOrPDF  = []string{MimeJPEG, MimePNG, MimePDF}
	pdfOnly      = []string{MimePDF}
	kindSettings = map[UploadKind]struct {
		field   string
		allowed []string
	}{
		KindStudentPhoto:      {"studentPhoto", imagesOnly},
		KindDOBCertificate:    {"dobCertificate", imagesOrPDF},
		KindBloodReport:       {"bloodReport", imagesOrPDF},
		KindAadharCard:        {"aadharCard", imagesOrPDF},
		KindPassportPhotos:    {"passportPhotos", imagesOrPDF},
		KindMarksCertificate:  {"marksCertificate", imagesOrPDF},
		KindSchoolLeavingCert: {"schoolLeavingCert", imagesOrPDF},
		KindSyllabusPDF:       {"pdf", pdfOnly},
		KindDatesheetPDF:      {"pdf", pdfOnly},
		KindAssignmentPDF:     {"pdf", pdfOnly},
		KindMessageAttachment: {"attachment", imagesOrPDF},
	}
)

// RegistrationKinds are the upload kinds accepted on the registration form,
// in the order they are stored.
var RegistrationKinds = []UploadKind{
	KindStudentPhoto,
	KindDOBCertificate,
	KindBloodReport,
	KindAadharCard,
	KindPassportPhotos,
	KindMarksCertificate,
	KindSchoolLeavingCert,
}

// Valid reports whether k is a known kind
func (k UploadKind) Valid() bool {
	_, ok := kindSettings[k]
	return ok
}

// FieldName is the multipart part name carrying this kind
func (k UploadKind) FieldName() string {
	return kindSettings[k].field
}

// AllowedTypes lists the MIME types accepted for k
func (k UploadKind) AllowedTypes() []string {
	return kindSettings[k].allowed
}

// Accepts reports whether a file of the given MIME type may be stored as k.
// Parameters such as charset are ignored.
func (k UploadKind) Accepts(mime string) bool {
	allowed := kindSettings[k].allowed
	return len(allowed) > 0 && mimetype.EqualsAny(mime, allowed...)
}

func (k UploadKind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return k.FieldName()
}
