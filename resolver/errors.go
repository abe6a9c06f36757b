package resolver

import (
	"errors"
	"fmt"
	"net/http"
)

// InvalidInputMessage is shown when the source URL is empty.
const InvalidInputMessage = "Please enter a valid video URL"

var (
	// ErrInvalidInput is returned for an empty source URL. No request is issued.
	ErrInvalidInput = errors.New(InvalidInputMessage)

	// ErrBusy is returned while another request is in flight on the same dispatcher.
	ErrBusy = errors.New("a request is already in progress")

	// ErrMalformedResponse is returned when a successful response carries a body that is not a resolver document.
	ErrMalformedResponse = errors.New("the resolver sent an unreadable response")

	// ErrStale is returned for a completion superseded by a newer request.
	ErrStale = errors.New("request superseded by a newer one")
)

// NetworkError reports a request that failed on every attempt.
type NetworkError struct {
	// Status is the HTTP status of the last attempt, 0 when the server was unreachable.
	Status     int
	StatusText string
	Attempts   int
	Err        error
}

// Error implements error.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("unable to fetch the download link after %d attempts: %s", e.Attempts, e.Cause())
}

// Unwrap returns the transport or decode error of the last attempt.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Cause returns a human readable classification of the last status.
// It is advisory only; every transient failure is retried the same way.
func (e *NetworkError) Cause() string {
	switch e.Status {
	case 0:
		return "Network Error: The server is unreachable."
	case http.StatusBadRequest:
		return "Bad Request: The input URL might be incorrect."
	case http.StatusUnauthorized:
		return "Unauthorized: Please check the API key."
	case http.StatusTooManyRequests:
		return "Too Many Requests: You are being rate-limited."
	case http.StatusServiceUnavailable:
		return "Service Unavailable: The server is temporarily overloaded."
	default:
		text := e.StatusText
		if text == "" {
			text = http.StatusText(e.Status)
		}
		if text == "" && e.Err != nil {
			text = e.Err.Error()
		}
		return fmt.Sprintf("Unexpected Error: HTTP %d: %s", e.Status, text)
	}
}
