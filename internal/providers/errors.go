package providers

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnknownProvider is returned by New for a provider name it does not know.
var ErrUnknownProvider = errors.New("unknown provider")

// ServiceError reports a failed completion call: the request could not be
// sent or the service answered with a non-success status.
type ServiceError struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *ServiceError) Error() string {
	switch {
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return fmt.Sprintf("%s: authentication error: %s", e.Provider, e.Body)
	case e.StatusCode == http.StatusTooManyRequests:
		return fmt.Sprintf("%s: rate limited", e.Provider)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: API error (status %d): %s", e.Provider, e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("%s: %v", e.Provider, e.Err)
	}
}

func (e *ServiceError) Unwrap() error { return e.Err }

// ResponseError reports a call that succeeded but returned no usable text.
type ResponseError struct {
	Provider string
	Reason   string
	Err      error
}

func (e *ResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Reason)
}

func (e *ResponseError) Unwrap() error { return e.Err }

// IsAuthError checks if an error is an authentication error.
func IsAuthError(err error) bool {
	var se *ServiceError
	if !errors.As(err, &se) {
		return false
	}
	return se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden
}

// IsRateLimited checks if an error is a rate-limit response.
func IsRateLimited(err error) bool {
	var se *ServiceError
	return errors.As(err, &se) && se.StatusCode == http.StatusTooManyRequests
}

// checkStatus maps an HTTP status to a ServiceError.
func checkStatus(provider string, status int, body []byte) error {
	if status == http.StatusOK {
		return nil
	}
	return &ServiceError{Provider: provider, StatusCode: status, Body: string(body)}
}
