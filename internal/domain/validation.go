package domain

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Field error messages returned to clients.
const (
	MsgFieldRequired  = "This field is required."
	MsgFieldBlank     = "This field may not be blank."
	MsgInvalidBoolean = "Must be a valid boolean."
	MsgInvalidString  = "Not a valid string."
	MsgNullCharacters = "Null characters are not allowed."
)

func MsgFieldTooLong(max string) string {
	return fmt.Sprintf("Ensure this field has no more than %s characters.", max)
}

// FieldErrors maps a field name to its validation messages.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// Fields returns the field names in sorted order.
func (fe FieldErrors) Fields() []string {
	out := make([]string, 0, len(fe))
	for f := range fe {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// ValidationError reports a payload that violates the task constraints.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields.Fields() {
		parts = append(parts, f+": "+strings.Join(e.Fields[f], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidationError reports whether err carries field errors and returns them.
func IsValidationError(err error) (FieldErrors, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields, true
	}
	return nil, false
}

// create: only title is mandatory
type createRules struct {
	Title       *string `json:"title" validate:"required,tasktitle,storable"`
	Description *string `json:"description" validate:"omitempty,storable"`
	Completed   *bool   `json:"completed"`
}

// update is a full replacement, every field must be present
type updateRules struct {
	Title       *string `json:"title" validate:"required,tasktitle,storable"`
	Description *string `json:"description" validate:"required,storable"`
	Completed   *bool   `json:"completed" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterAlias("tasktitle", fmt.Sprintf("min=1,max=%d", TaskTitleMaxLength))
	// postgres text columns reject NUL bytes and invalid UTF-8
	if err := v.RegisterValidation("storable", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return utf8.ValidString(s) && !strings.ContainsRune(s, 0)
	}); err != nil {
		panic(err)
	}
	return v
}

// ValidateForCreate checks a registration payload.
func ValidateForCreate(p TaskPayload) error {
	return check(createRules{
		Title:       p.Title,
		Description: p.Description,
		Completed:   p.Completed,
	}, p.DecodeErrors)
}

// ValidateForUpdate checks a full replacement payload.
func ValidateForUpdate(p TaskPayload) error {
	return check(updateRules{
		Title:       p.Title,
		Description: p.Description,
		Completed:   p.Completed,
	}, p.DecodeErrors)
}

func check(rules any, decodeErrs FieldErrors) error {
	fields := FieldErrors{}

	if err := validate.Struct(rules); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate task payload: %w", err)
		}
		for _, fe := range verrs {
			fields.Add(fe.Field(), messageFor(fe))
		}
	}

	for f, msgs := range decodeErrs {
		fields[f] = append([]string(nil), msgs...)
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func messageFor(fe validator.FieldError) string {
	switch fe.ActualTag() {
	case "required":
		return MsgFieldRequired
	case "min":
		return MsgFieldBlank
	case "max":
		return MsgFieldTooLong(fe.Param())
	case "storable":
		var s string
		switch v := fe.Value().(type) {
		case string:
			s = v
		case *string:
			if v != nil {
				s = *v
			}
		}
		if !utf8.ValidString(s) {
			return MsgInvalidString
		}
		return MsgNullCharacters
	default:
		return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
	}
}
