// ABOUTME: Shared error definitions for storage operations
// ABOUTME: Enables consistent error handling across backends

package storage

import "errors"

// ErrNotFound is returned when a requested entity doesn't exist.
var ErrNotFound = errors.New("not found")
