package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/pioneer/admissions/internal/app/models"
	"github.com/pioneer/admissions/internal/pkg/apperrors"
)

// Validator wraps go-playground/validator with English messages and
// JSON-named field paths.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
	// messages overrides the translated text for a "path|tag" pair
	messages map[string]string
}

// New creates a Validator using the given password policy for the
// password_policy tag.
func New(policy PasswordPolicy) *Validator {
	enLocale := en.New()
	translator, _ := ut.New(enLocale, enLocale).GetTranslator("en")

	validate := validator.New()
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v := &Validator{validate: validate, translator: translator, messages: map[string]string{}}

	_ = validate.RegisterValidation(tagDigits, digitsValidation)
	v.registerTranslation(tagDigits, "{0} must contain only digits")

	_ = validate.RegisterValidation(tagParseableDate, parseableDateValidation)
	v.registerTranslation(tagParseableDate, "Invalid date")

	_ = validate.RegisterValidation(tagPasswordPolicy, passwordPolicyValidation(policy))
	v.registerTranslation(tagPasswordPolicy, "Password must include uppercase, lowercase, and number")

	_ = validate.RegisterValidation(tagClassLabel, func(fl validator.FieldLevel) bool {
		return models.IsClassLabel(fl.Field().String())
	})
	v.registerTranslation(tagClassLabel, "{0} must be a valid class")

	_ = validate.RegisterValidation(tagAudience, func(fl validator.FieldLevel) bool {
		return models.IsTargetAudience(fl.Field().String())
	})
	v.registerTranslation(tagAudience, "{0} must be a valid target audience")

	v.registerTranslation("required_if", "{0} is required", true)

	return v
}

// registerTranslation registers text for tag; {0} is replaced by the field name.
func (v *Validator) registerTranslation(tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = v.validate.RegisterTranslation(
		tag, v.translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Struct validates obj and returns *apperrors.ValidationError listing every
// failing field, or nil.
func (v *Validator) Struct(obj interface{}) error {
	err := v.validate.Struct(obj)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewCustomError(apperrors.ErrBadRequest, err.Error())
	}

	out := &apperrors.ValidationError{Fields: make([]apperrors.FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		path := fieldPath(fe.Namespace())
		msg, ok := v.messages[path+"|"+fe.Tag()]
		if !ok {
			msg = fe.Translate(v.translator)
		}
		out.Fields = append(out.Fields, apperrors.FieldError{Path: path, Message: msg})
	}
	return out
}

// fieldPath drops the root struct name: "Registration.dob.day" -> "dob.day".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
