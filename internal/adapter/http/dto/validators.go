package dto

import (
	"html"
	"reflect"
	"strings"
	"unicode"

	"webstore/pkg/apperror"
)

const (
	minPasswordLength = 8
	minPasswordDigits = 2
	minPasswordAlpha  = 6
)

// ValidatePassword enforces the account password policy: at least 8
// characters, letters and digits only, at least 2 digits and 6 letters, and
// both upper and lower case present.
func ValidatePassword(password string) *apperror.AppError {
	if len(password) < minPasswordLength {
		return apperror.ErrWeakPassword("Password must be at least 8 characters long")
	}

	var digits, letters int
	var hasUpper, hasLower bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			digits++
		case unicode.IsLetter(r):
			letters++
			if unicode.IsUpper(r) {
				hasUpper = true
			}
			if unicode.IsLower(r) {
				hasLower = true
			}
		default:
			return apperror.ErrWeakPassword("Password must contain only letters and digits")
		}
	}

	if digits < minPasswordDigits {
		return apperror.ErrWeakPassword("Password must contain at least 2 digits")
	}
	if letters < minPasswordAlpha {
		return apperror.ErrWeakPassword("Password must contain at least 6 letters")
	}
	if !hasUpper || !hasLower {
		return apperror.ErrWeakPassword("Password must mix upper and lower case letters")
	}
	return nil
}

// SanitizeStruct trims whitespace and HTML-escapes every exported string
// field (including *string) of a struct pointer.
func SanitizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	sanitizeFields(rv.Elem())
}

func sanitizeFields(rv reflect.Value) {
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(sanitize(f.String()))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			elem := f.Elem()
			if elem.Kind() == reflect.String {
				elem.SetString(sanitize(elem.String()))
			}
		}
	}
}

func sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
