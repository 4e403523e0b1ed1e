package validation

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the calendar date format accepted for experience and education dates.
const DateLayout = "2006-01-02"

// New returns a validator that reports fields by their JSON names and knows the custom tags.
func New() *validator.Validate {
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
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("notblank", NotBlank)
	_ = v.RegisterValidation("date", ValidDate)
	_ = v.RegisterValidation("csvlist", NonEmptyList)
}

// NotBlank rejects strings made only of whitespace
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// NonEmptyList requires at least one non-blank entry in a comma-separated list
func NonEmptyList(fl validator.FieldLevel) bool {
	for _, item := range strings.Split(fl.Field().String(), ",") {
		if strings.TrimSpace(item) != "" {
			return true
		}
	}
	return false
}

// ValidDate accepts empty strings and YYYY-MM-DD dates
func ValidDate(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	_, err := time.Parse(DateLayout, val)
	return err == nil
}
