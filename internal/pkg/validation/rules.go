package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// PasswordPolicy selects how strong a registration password must be.
type PasswordPolicy string

const (
	// PolicyStrict requires at least one lowercase letter, one uppercase letter and one digit.
	PolicyStrict PasswordPolicy = "strict"
	// PolicyBasic only enforces the minimum length.
	PolicyBasic PasswordPolicy = "basic"
)

// ParsePasswordPolicy falls back to PolicyStrict for unknown values.
func ParsePasswordPolicy(s string) PasswordPolicy {
	if PasswordPolicy(strings.ToLower(s)) == PolicyBasic {
		return PolicyBasic
	}
	return PolicyStrict
}

// PasswordMinLength applies to every policy
const PasswordMinLength = 6

// Custom validation tags
const (
	tagDigits         = "digits"
	tagParseableDate  = "parseable_date"
	tagPasswordPolicy = "password_policy"
	tagClassLabel     = "class_label"
	tagAudience       = "audience"
)

var digitsRegex = regexp.MustCompile(`^\d+$`)

// dateLayouts are the forms accepted for the "dated" field
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02-01-2006",
	"01/02/2006",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// ParseDate parses s using any accepted layout
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func digitsValidation(fl validator.FieldLevel) bool {
	return digitsRegex.MatchString(fl.Field().String())
}

func parseableDateValidation(fl validator.FieldLevel) bool {
	_, ok := ParseDate(fl.Field().String())
	return ok
}

// StrongPassword reports whether pw mixes lowercase, uppercase and digits.
func StrongPassword(pw string) bool {
	var lower, upper, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

func passwordPolicyValidation(policy PasswordPolicy) validator.Func {
	return func(fl validator.FieldLevel) bool {
		if policy == PolicyBasic {
			return true
		}
		return StrongPassword(fl.Field().String())
	}
}
