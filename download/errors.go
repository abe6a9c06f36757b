package download

import (
	"errors"
	"fmt"
)

// ErrPending is returned by Start while the offer's control is not idle.
var ErrPending = errors.New("download already in progress")

// HTTPError reports a non-2xx answer to the media request.
type HTTPError struct {
	Status int
}

// Error implements error.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.Status)
}

// Failure wraps any error of the direct download path.
type Failure struct {
	OfferID string
	Err     error
}

// Error implements error.
func (f *Failure) Error() string {
	return fmt.Sprintf("download %s: %s", f.OfferID, f.Err)
}

// Unwrap returns the underlying error.
func (f *Failure) Unwrap() error {
	return f.Err
}
