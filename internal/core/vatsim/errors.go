package vatsim

import (
	"errors"
	"fmt"

	"golang.org/x/oauth2"
)

// ErrPilotNotFound is returned when the ratings API has no record for a CID.
// It must stay distinguishable from generic provider failures.
var ErrPilotNotFound = errors.New("pilot not found on VATSIM")

// StatusError wraps a non-2xx response from a provider API endpoint.
type StatusError struct {
	StatusCode int
	Endpoint   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("vatsim %s returned status %d", e.Endpoint, e.StatusCode)
}

// StatusCode extracts the provider HTTP status from an error returned by this
// package, or 0 when the failure never reached the provider (network error,
// malformed body). Callers use it to tell 4xx "bad code" from 5xx "provider
// down" in logs even though users see a single failure tag.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	var re *oauth2.RetrieveError
	if errors.As(err, &re) && re.Response != nil {
		return re.Response.StatusCode
	}
	return 0
}
