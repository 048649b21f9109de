package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ttacon/libphonenumber"
)

var ifscPattern = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)

// ValidationError maps offending fields (by JSON name) to the failed rule.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func fieldError(field, rule string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: rule}}
}

// Validator checks request structs and normalizes phone numbers.
type Validator struct {
	validate    *validator.Validate
	phoneRegion string
}

func NewValidator(phoneRegion string) *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("ifsc", func(fl validator.FieldLevel) bool {
		return ifscPattern.MatchString(fl.Field().String())
	})

	if phoneRegion == "" {
		phoneRegion = "IN"
	}
	return &Validator{validate: v, phoneRegion: phoneRegion}
}

// Struct runs the struct tags of v. Failures come back as *ValidationError.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	return processValidationErrors(verrs)
}

func processValidationErrors(verrs validator.ValidationErrors) *ValidationError {
	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, ve := range verrs {
		field := ve.Namespace()
		// drop the root struct name
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		out.Fields[field] = ve.Tag()
	}
	return out
}

// Var checks a single value against tag and reports it under field.
func (v *Validator) Var(field string, value any, tag string) error {
	if err := v.validate.Var(value, tag); err != nil {
		return fieldError(field, tag)
	}
	return nil
}

// NormalizePhone parses phone in the configured default region and returns it
// in E.164 form. An empty phone stays empty.
func (v *Validator) NormalizePhone(field, phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", nil
	}
	num, err := libphonenumber.Parse(phone, v.phoneRegion)
	if err != nil {
		return "", fieldError(field, "phone")
	}
	if !libphonenumber.IsValidNumber(num) {
		return "", fieldError(field, "phone")
	}
	return libphonenumber.Format(num, libphonenumber.E164), nil
}

// merge folds b into a; either may be nil.
func merge(a, b error) error {
	if b == nil {
		return a
	}
	if a == nil {
		return b
	}
	var va, vb *ValidationError
	if errors.As(a, &va) && errors.As(b, &vb) {
		for k, v := range vb.Fields {
			va.Fields[k] = v
		}
		return va
	}
	return a
}
