package services

import (
	"errors"
	"strings"
)

// Sentinel errors returned by the service layer. Handlers translate these
// into HTTP statuses.
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrBookNotFound       = errors.New("book not found")
	ErrNovelistNotFound   = errors.New("novelist not found")
	ErrDuplicateAccount   = errors.New("username or email already in use")
	ErrDuplicateBook      = errors.New("book already exists")
	ErrDuplicateNovelist  = errors.New("novelist already exists")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrForbidden          = errors.New("not enough permission")
)

// isDuplicateEntryError detects unique-constraint violations across the
// supported drivers. Uniqueness is pre-checked before every insert, but the
// check and the insert are separate statements; a concurrent writer can slip
// between them and only the constraint catches it.
func isDuplicateEntryError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "duplicate key value violates unique constraint") // postgres
}
