package dictionary

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when a word is empty after normalization.
var ErrInvalidInput = errors.New("no word provided")

// LookupFailedError reports that the dictionary could not be reached or answered with a
// non-success status. StatusCode is zero for transport failures.
type LookupFailedError struct {
	Word       string
	StatusCode int
	Status     string
	Err        error
}

func (e *LookupFailedError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API request failed: %d - %s", e.StatusCode, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("API request failed: %v", e.Err)
	}
	return "API request failed"
}

func (e *LookupFailedError) Unwrap() error {
	return e.Err
}
