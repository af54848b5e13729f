package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("permission denied")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidToken       = errors.New("invalid token")
	ErrAccountInactive    = errors.New("account inactive or deleted")
)

const (
	MsgRequired      = "This field is required."
	MsgUsernameTaken = "username already exists"
	MsgInvalidLogin  = "Unable to log in with provided credentials."
	MsgNegativeValue = "Ensure this value is greater than or equal to 0."
	MsgBlank         = "This field may not be blank."
	MsgPasswordLong  = "Ensure this field has no more than 72 bytes."
	NonFieldErrors   = "non_field_errors"
)

// ValidationError maps a field name to its messages. It renders as the
// response body and matches ErrValidation with errors.Is.
type ValidationError map[string][]string

func (v ValidationError) Add(field, msg string) {
	v[field] = append(v[field], msg)
}

func (v ValidationError) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(v[f], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v ValidationError) Unwrap() error { return ErrValidation }

// FieldError builds a single-field ValidationError.
func FieldError(field, msg string) ValidationError {
	return ValidationError{field: {msg}}
}

// ConflictError is a uniqueness clash reported as a field error. It matches
// both ErrValidation and ErrConflict.
type ConflictError struct {
	Fields ValidationError
}

func (e *ConflictError) Error() string   { return e.Fields.Error() }
func (e *ConflictError) Unwrap() []error { return []error{e.Fields, ErrConflict} }

func usernameConflict() error {
	return &ConflictError{Fields: FieldError("username", MsgUsernameTaken)}
}
