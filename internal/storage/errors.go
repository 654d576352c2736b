// ABOUTME: Common storage errors
// ABOUTME: Enables consistent error handling across storage callers

package storage

import "errors"

// ErrNotFound is returned when a requested conversion does not exist.
var ErrNotFound = errors.New("not found")
