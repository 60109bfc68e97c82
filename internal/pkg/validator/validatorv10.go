package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"regexp"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/shandysiswandi/ambassador/internal/pkg/strcase"
)

var (
	rePhone       = regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,}$`)
	reEmailLoose  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	reNumericCode = regexp.MustCompile(`^[0-9]+$`)
)

// ErrTranslatorNotFound indicates the requested translator is unavailable.
var ErrTranslatorNotFound = errors.New("translator not found")

// V10Validator implements Validator using go-playground/validator v10.
type V10Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// V10ValidationError is a field-to-message map returned when validation fails.
//
// Keys are field names in snake_case to match typical JSON conventions.
type V10ValidationError map[string]string

// Error implements the error interface.
func (vs V10ValidationError) Error() string {
	if len(vs) == 0 {
		return "validation error"
	}

	b, err := json.Marshal(vs)
	if err != nil {
		return fmt.Sprintf("validation error (failed to marshal: %v)", err)
	}
	return string(b)
}

// Values returns the field error map.
func (vs V10ValidationError) Values() map[string]string {
	return vs
}

// NewV10Validator constructs a V10Validator with English translations and custom rules.
func NewV10Validator() (*V10Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	enLang := en.New()
	uni := ut.New(enLang, enLang)
	enTrans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	if err := enTranslations.RegisterDefaultTranslations(validate, enTrans); err != nil {
		return nil, err
	}

	v10CustomValidation(validate, enTrans)

	return &V10Validator{
		validate:   validate,
		translator: enTrans,
	}, nil
}

// Validate validates a struct and returns a V10ValidationError on failure.
func (v *V10Validator) Validate(data any) error {
	if err := v.validate.Struct(data); err != nil {
		var validateErrs validator.ValidationErrors
		if !errors.As(err, &validateErrs) {
			return err
		}

		errV10 := make(V10ValidationError)
		for _, fe := range validateErrs {
			errV10[strcase.ToLowerSnake(fe.Field())] = fe.Translate(v.translator)
		}

		return errV10
	}

	return nil
}

type rule struct {
	tag     string
	message string
	check   func(string) bool
}

var rules = []rule{
	{tag: "phone", message: "{0} must be a valid phone number", check: rePhone.MatchString},
	{tag: "email_loose", message: "{0} must be a valid email address", check: reEmailLoose.MatchString},
	{tag: "numeric_code", message: "{0} must contain only digits", check: reNumericCode.MatchString},
	{tag: "otp_purpose", message: "{0} must be one of [phone email]", check: func(s string) bool {
		return s == "phone" || s == "email"
	}},
}

//nolint:errcheck,gosec // registration only fails on programmer error
func v10CustomValidation(validate *validator.Validate, enTrans ut.Translator) {
	for _, r := range rules {
		check := r.check
		validate.RegisterValidation(r.tag, func(fl validator.FieldLevel) bool {
			if fl.Field().Kind() != reflect.String {
				return false
			}
			return check(fl.Field().String())
		})

		tag, message := r.tag, r.message
		validate.RegisterTranslation(tag, enTrans,
			func(ut ut.Translator) error {
				return ut.Add(tag, message, false)
			},
			translate,
		)
	}
}

func translate(ut ut.Translator, fe validator.FieldError) string {
	t, err := ut.T(fe.Tag(), fe.Field())
	if err != nil {
		slog.Warn("warning: error translating", "tag", fe.Tag(), "error", err)
		return fe.Error()
	}

	return t
}
