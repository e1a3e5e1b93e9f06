// Package nbi provides a client for the ACS northbound API and device
// document normalization.
package nbi

import (
	"errors"
	"fmt"
)

// Sentinel errors for common NBI failure cases.
var (
	// ErrUnavailable indicates the NBI could not be reached at all.
	ErrUnavailable = errors.New("nbi: service unavailable")
	// ErrNotFound indicates the NBI reported a missing resource.
	ErrNotFound = errors.New("nbi: resource not found")
)

// StatusError is an unexpected HTTP status from the NBI.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("nbi: request failed (status %d): %s", e.StatusCode, e.Body)
}
