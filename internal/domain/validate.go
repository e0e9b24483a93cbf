package domain

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrValidation is matched by every field-level rejection, local or remote.
var ErrValidation = errors.New("validation failed")

// ValidationError maps wire field names to a human readable message.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError holding a single field message.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// Add records msg for field, keeping the first message if one already exists.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report wire names (plan_limit, time_hr) instead of Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return TimeOfDay(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsInf(f, 0) && !math.IsNaN(f)
	})
	v.RegisterStructValidation(turfPlanRules, TurfPlan{})
	return v
}

func turfPlanRules(sl validator.StructLevel) {
	p := sl.Current().Interface().(TurfPlan)
	if p.TimeHr == 0 && p.TimeMin == 0 {
		sl.ReportError(p.TimeMin, "time_min", "TimeMin", "nonzeroduration", "")
	}
	_, fromErr := p.From.Minutes()
	_, toErr := p.To.Minutes()
	if fromErr == nil && toErr == nil && !p.From.Before(p.To) {
		sl.ReportError(p.To, "to", "To", "afterfrom", string(p.From))
	}
}

// ValidateAcademyPlan checks the field invariants of an academy plan.
func ValidateAcademyPlan(p AcademyPlan) error { return validatePlan(p) }

// ValidateTurfPlan checks the field invariants of a turf plan, including
// the non-zero duration and the from < to time window.
func ValidateTurfPlan(p TurfPlan) error { return validatePlan(p) }

// Validate dispatches on the record shape.
func Validate(p PlanRecord) error {
	switch plan := p.(type) {
	case AcademyPlan:
		return ValidateAcademyPlan(plan)
	case TurfPlan:
		return ValidateTurfPlan(plan)
	case *AcademyPlan:
		return ValidateAcademyPlan(*plan)
	case *TurfPlan:
		return ValidateTurfPlan(*plan)
	}
	return fmt.Errorf("no validation rules for %T", p)
}

func validatePlan(p any) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	ve := &ValidationError{}
	for _, fe := range fieldErrs {
		ve.Add(fe.Field(), message(fe))
	}
	return ve
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "nonblank", "required":
		return "is required"
	case "gte":
		return "must be at least " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "lt":
		return "must be less than " + fe.Param()
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "finite":
		return "must be a finite number"
	case "hhmm":
		return "must be a time of day in HH:MM form"
	case "nonzeroduration":
		return "duration must be longer than zero"
	case "afterfrom":
		return "must be later than " + fe.Param()
	}
	return "is invalid (" + fe.Tag() + ")"
}
