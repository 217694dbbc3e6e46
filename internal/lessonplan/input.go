package lessonplan

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DurationPresets are the lesson lengths a teacher can pick.
var DurationPresets = []string{"45 minutos", "60 minutos", "90 minutos", "120 minutos"}

// DefaultDuration is preselected on every form.
const DefaultDuration = "60 minutos"

// FieldError describes one invalid form field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// InputError lists every invalid field of a Request.
type InputError struct {
	Fields []FieldError
}

func (e *InputError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Rule
	}
	return "invalid lesson request: " + strings.Join(parts, ", ")
}

// Message returns the error text for field, or "".
func (e *InputError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("duration_preset", func(fl validator.FieldLevel) bool {
		return IsDurationPreset(fl.Field().String())
	})
	return v
}

// IsDurationPreset reports whether d is one of DurationPresets.
func IsDurationPreset(d string) bool {
	return slices.Contains(DurationPresets, d)
}

// Normalize trims surrounding whitespace and applies the default duration.
func (r Request) Normalize() Request {
	r.Grade = strings.TrimSpace(r.Grade)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Topic = strings.TrimSpace(r.Topic)
	r.Duration = strings.TrimSpace(r.Duration)
	r.AdditionalContext = strings.TrimSpace(r.AdditionalContext)
	if r.Duration == "" {
		r.Duration = DefaultDuration
	}
	return r
}

// ValidateRequest checks that the required fields are filled and the
// duration is a preset. It returns *InputError on failure.
func ValidateRequest(r Request) error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate request: %w", err)
	}

	out := &InputError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Este campo es obligatorio."
	case "max":
		return fmt.Sprintf("Máximo %s caracteres.", fe.Param())
	case "duration_preset":
		return "Elige una duración: " + strings.Join(DurationPresets, ", ") + "."
	default:
		return "Valor no válido."
	}
}
