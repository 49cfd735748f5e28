package repository

import "errors"

// ErrNotFound is returned by lookups when no row matches. All store
// implementations return it so callers never depend on driver errors.
var ErrNotFound = errors.New("record not found")
