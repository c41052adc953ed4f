package service

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validate.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			for _, char := range value {
				isDigit := char >= '0' && char <= '9'
				isHexLetter := (char >= 'a' && char <= 'f') || (char >= 'A' && char <= 'F')
				if !isDigit && !isHexLetter {
					return false
				}
			}
			return true
		})
	})
}

// ValidationError carries every collected field violation as ordered
// "field: message" strings.
type ValidationError struct {
	Messages []string
}

func (ve *ValidationError) Error() string {
	return "validation failed: " + strings.Join(ve.Messages, "; ")
}

// collectMessages flattens a validator result into per-field messages.
// A nil error yields nil; an unexpected error becomes a single entry.
func collectMessages(err error) []string {
	if err == nil {
		return nil
	}
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	messages := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		messages = append(messages, fieldErr.Field()+": "+messageForTag(fieldErr))
	}
	return messages
}

func messageForTag(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", fieldErr.Param())
	case "objectid":
		return "must be a valid object id"
	default:
		return "is invalid"
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDate coerces the accepted client date forms into a timestamp.
// Forms without an explicit offset are taken in server-local time.
func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts[:2] {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	for _, layout := range dateLayouts[2:] {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date: %q", value)
}

// coerceDate appends a violation for field when value is present but
// not parseable. Presence itself is the required tag's job.
func coerceDate(field, value string, messages []string) (time.Time, []string) {
	if value == "" {
		return time.Time{}, messages
	}
	date, err := parseDate(value)
	if err != nil {
		return time.Time{}, append(messages, field+": must be a valid date")
	}
	return date, messages
}
