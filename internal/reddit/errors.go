package reddit

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// APIError is a non-2xx response from the Reddit API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("reddit API error (status %d): %s", e.StatusCode, e.Body)
}

// RateLimitError is returned when the service answers 429 and signals how
// long to hold off.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}

// IsAuthExpired reports whether err is a 401 response, meaning the session
// token is no longer valid and a fresh Authenticate is needed.
func IsAuthExpired(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsServerError reports whether err is a 5xx response. These are usually
// trouble on Reddit's end and clear up on their own.
func IsServerError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode >= 500 && apiErr.StatusCode < 600
}
