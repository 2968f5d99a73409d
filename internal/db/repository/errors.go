package repository

import "errors"

// ErrNotFound is returned when a lookup or delete matches no rows.
var ErrNotFound = errors.New("record not found")
