package models

// RoleType identifies which identity space a token belongs to
type RoleType string

const (
	RoleApplicant RoleType = "applicant"
	RoleAdmin     RoleType = "admin"
)

// ApplicationStatus is the review state of an applicant record
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

// Valid reports whether s is one of the three workflow values.
// Any valid value may follow any other.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ClassLabels are the class names accepted for syllabus and datesheet uploads.
var ClassLabels = []string{
	"Nursery", "LKG", "UKG",
	"1st Class", "2nd Class", "3rd Class", "4th Class", "5th Class", "6th Class",
	"7th Class", "8th Class", "9th Class", "10th Class", "11th Class", "12th Class",
}

// IsClassLabel reports whether label is in ClassLabels
func IsClassLabel(label string) bool {
	for _, l := range ClassLabels {
		if l == label {
			return true
		}
	}
	return false
}

// TargetAudiences are the recipients a message can be addressed to.
var TargetAudiences = []string{
	"All", "Parents", "Boys", "Girls", "Nursery", "LKG", "UKG",
	"1st", "2nd", "3rd", "4th", "5th", "6th", "7th", "8th", "9th", "10th",
}

// IsTargetAudience reports whether audience is in TargetAudiences
func IsTargetAudience(audience string) bool {
	for _, a := range TargetAudiences {
		if a == audience {
			return true
		}
	}
	return false
}
