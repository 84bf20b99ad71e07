package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is the resty client the backend adapter talks through.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client bound to baseURL that expects JSON
// answers. Every request is bounded by timeout; zero leaves it unbounded.
// Requests are never retried: the readiness probe and the user decide
// when to try again.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	return &HTTPClient{Client: client}
}
