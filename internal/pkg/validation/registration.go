package validation

import (
	"sort"
	"strings"
)

// DOB is the assembled date-of-birth composite
type DOB struct {
	Day     string `json:"day" validate:"required,len=2"`
	Month   string `json:"month" validate:"required,len=2"`
	Year    string `json:"year" validate:"required,len=4"`
	InWords string `json:"in_words" validate:"required"`
}

// Sibling identifies a sibling already studying at the school
type Sibling struct {
	Name  string `json:"name" validate:"required"`
	Class string `json:"class" validate:"required"`
}

// Registration is the normalized, typed registration form
type Registration struct {
	Email               string   `json:"email" validate:"required,email"`
	Password            string   `json:"password" validate:"required,min=6,password_policy"`
	Class               string   `json:"class" validate:"required"`
	Dated               string   `json:"dated" validate:"required,parseable_date"`
	StudentName         string   `json:"student_name" validate:"required"`
	DOB                 *DOB     `json:"dob" validate:"required"`
	SchoolLastAttended  string   `json:"school_last_attended" validate:"required"`
	FatherName          string   `json:"father_name" validate:"required"`
	FatherProfession    string   `json:"father_profession" validate:"required"`
	MotherName          string   `json:"mother_name" validate:"required"`
	MotherProfession    string   `json:"mother_profession" validate:"required"`
	GuardianName        string   `json:"guardian_name"`
	GuardianProfession  string   `json:"guardian_profession"`
	MonthlyIncome       string   `json:"monthly_income"`
	FatherContact       string   `json:"father_contact" validate:"required,min=10,max=15,digits"`
	MotherContact       string   `json:"mother_contact" validate:"omitempty,min=10,max=15,digits"`
	FatherQualification string   `json:"father_qualification"`
	MotherQualification string   `json:"mother_qualification"`
	Residence           string   `json:"residence" validate:"required"`
	Village             string   `json:"village" validate:"required"`
	Tehsil              string   `json:"tehsil" validate:"required"`
	District            string   `json:"district" validate:"required"`
	SiblingStudying     bool     `json:"sibling_studying"`
	SiblingDetails      *Sibling `json:"sibling_details" validate:"required_if=SiblingStudying true"`
	PenNo               string   `json:"pen_no"`
	BloodGroup          string   `json:"blood_group"`
}

// Form field names as submitted by the registration form
const (
	fieldDOBDay             = "dob_day"
	fieldDOBMonth           = "dob_month"
	fieldDOBYear            = "dob_year"
	fieldDOBInWords         = "dob_in_words"
	fieldSibling            = "sibling"
	fieldSiblingName        = "sibling_name"
	fieldSiblingClass       = "sibling_class"
	fieldSiblingStudying    = "sibling_studying"
	fieldLastSchoolAttended = "last_school_attended"
)

var knownFields = map[string]struct{}{
	"email": {}, "password": {}, "class": {}, "dated": {}, "student_name": {},
	fieldDOBDay: {}, fieldDOBMonth: {}, fieldDOBYear: {}, fieldDOBInWords: {},
	"school_last_attended": {}, fieldLastSchoolAttended: {},
	"father_name": {}, "father_profession": {}, "mother_name": {}, "mother_profession": {},
	"guardian_name": {}, "guardian_profession": {}, "monthly_income": {},
	"father_contact": {}, "mother_contact": {},
	"father_qualification": {}, "mother_qualification": {},
	"residence": {}, "village": {}, "tehsil": {}, "district": {},
	fieldSibling: {}, fieldSiblingName: {}, fieldSiblingClass: {}, fieldSiblingStudying: {},
	"pen_no": {}, "blood_group": {},
}

var registrationMessages = map[string]string{
	"email|email":                 "Invalid email address",
	"password|min":                "Password must be at least 6 characters long",
	"dob|required":                "Date of birth (day, month, year and in words) is required",
	"dob.day|len":                 "Day must be 2 digits",
	"dob.month|len":               "Month must be 2 digits",
	"dob.year|len":                "Year must be 4 digits",
	"dob.in_words|required":       "Date of birth in words is required",
	"father_contact|min":          "Father contact must be at least 10 digits",
	"father_contact|max":          "Father contact must be at most 15 digits",
	"father_contact|digits":       "Father contact must contain only digits",
	"mother_contact|min":          "Mother contact must be at least 10 digits",
	"mother_contact|max":          "Mother contact must be at most 15 digits",
	"mother_contact|digits":       "Mother contact must contain only digits",
	"sibling_details|required_if": "Sibling details are required if sibling is studying",

	"sibling_details.name|required":  "Sibling name is required when sibling is studying",
	"sibling_details.class|required": "Sibling class is required when sibling is studying",
}

// RegistrationValidator turns raw multipart text fields into a validated Registration.
type RegistrationValidator struct {
	*Validator
}

// NewRegistrationValidator builds a validator enforcing policy on passwords
func NewRegistrationValidator(policy PasswordPolicy) *RegistrationValidator {
	v := New(policy)
	for k, msg := range registrationMessages {
		v.messages[k] = msg
	}
	return &RegistrationValidator{Validator: v}
}

// Normalize converts raw form values into a Registration. It trims values,
// lowercases the email, coerces the sibling flag, assembles the DOB composite
// only when all four parts are present, and drops unknown fields.
func (v *RegistrationValidator) Normalize(raw map[string]string) *Registration {
	get := func(key string) string { return strings.TrimSpace(raw[key]) }

	r := &Registration{
		Email:               strings.ToLower(get("email")),
		Password:            raw["password"],
		Class:               get("class"),
		Dated:               get("dated"),
		StudentName:         get("student_name"),
		SchoolLastAttended:  get("school_last_attended"),
		FatherName:          get("father_name"),
		FatherProfession:    get("father_profession"),
		MotherName:          get("mother_name"),
		MotherProfession:    get("mother_profession"),
		GuardianName:        get("guardian_name"),
		GuardianProfession:  get("guardian_profession"),
		MonthlyIncome:       get("monthly_income"),
		FatherContact:       get("father_contact"),
		MotherContact:       get("mother_contact"),
		FatherQualification: get("father_qualification"),
		MotherQualification: get("mother_qualification"),
		Residence:           get("residence"),
		Village:             get("village"),
		Tehsil:              get("tehsil"),
		District:            get("district"),
		PenNo:               get("pen_no"),
		BloodGroup:          get("blood_group"),
	}

	if last := get(fieldLastSchoolAttended); last != "" {
		r.SchoolLastAttended = last
	}

	day, month, year, words := get(fieldDOBDay), get(fieldDOBMonth), get(fieldDOBYear), get(fieldDOBInWords)
	if day != "" && month != "" && year != "" && words != "" {
		r.DOB = &DOB{Day: day, Month: month, Year: year, InWords: words}
	}

	if studying, ok := parseFlag(get(fieldSiblingStudying)); ok {
		r.SiblingStudying = studying
	} else if strings.EqualFold(get(fieldSibling), "yes") {
		r.SiblingStudying = true
	}

	if r.SiblingStudying {
		name, class := get(fieldSiblingName), get(fieldSiblingClass)
		if name != "" || class != "" {
			r.SiblingDetails = &Sibling{Name: name, Class: class}
		}
	}

	return r
}

// Validate returns nil or *apperrors.ValidationError
func (v *RegistrationValidator) Validate(r *Registration) error {
	return v.Struct(r)
}

// Process normalizes then validates raw
func (v *RegistrationValidator) Process(raw map[string]string) (*Registration, error) {
	r := v.Normalize(raw)
	if err := v.Validate(r); err != nil {
		return nil, err
	}
	return r, nil
}

// DroppedFields lists the raw keys Normalize ignores, sorted
func DroppedFields(raw map[string]string) []string {
	var dropped []string
	for k := range raw {
		if _, ok := knownFields[k]; !ok {
			dropped = append(dropped, k)
		}
	}
	sort.Strings(dropped)
	return dropped
}

func parseFlag(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true", "yes", "1", "on":
		return true, true
	case "false", "no", "0", "off":
		return false, true
	}
	return false, false
}
