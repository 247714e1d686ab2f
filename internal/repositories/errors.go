package repositories

import "errors"

// ErrNotFound marks lookups that matched no record. Implementations wrap it
// so callers can test with errors.Is.
var ErrNotFound = errors.New("not found")
