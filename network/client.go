// Package network provides the pre-configured HTTP clients shared by the resolver and the downloader.
package network

import (
	"net/http"
	"time"
)

// Client is the HTTP client shared across the application.
// It carries no overall timeout; callers bound each request with a context deadline
// since media downloads may legitimately run for minutes.
var Client = &http.Client{
	Transport: newTransport(),
}

// New returns the client to use for outgoing requests.
// When fingerprint is set the client negotiates TLS with a Chrome ClientHello.
func New(fingerprint bool) *http.Client {
	if !fingerprint {
		return Client
	}

	return &http.Client{Transport: newChromeTransport()}
}

// newTransport initializes a tuned http.Transport with optimized pool and timeout parameters.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 16
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 5 * time.Second
	return t
}
