package model

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	// StorageDateLayout is how event dates are persisted.
	StorageDateLayout = "2006-01-02T15:04:05.000Z"
	// InputDateLayout is what date inputs accept and produce.
	InputDateLayout = "2006-01-02"
)

// ToStorageFormat converts a date from input (or storage) representation to
// the storage representation, at midnight UTC.
func ToStorageFormat(s string) (string, error) {
	t, err := parseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(StorageDateLayout), nil
}

// ToInputFormat converts a date from storage (or input) representation to the
// representation date inputs accept.
func ToInputFormat(s string) (string, error) {
	t, err := parseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(InputDateLayout), nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	if t, err := time.Parse(InputDateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// Capitalize upper-cases the first letter of s and leaves the rest untouched.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
