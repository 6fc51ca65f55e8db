package providers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceError_Messages(t *testing.T) {
	tests := []struct {
		name string
		err  *ServiceError
		want string
	}{
		{"unauthorized", &ServiceError{Provider: "groq", StatusCode: 401, Body: "bad key"}, "groq: authentication error: bad key"},
		{"forbidden", &ServiceError{Provider: "groq", StatusCode: 403, Body: "nope"}, "groq: authentication error: nope"},
		{"rate limited", &ServiceError{Provider: "openai", StatusCode: 429}, "openai: rate limited"},
		{"server error", &ServiceError{Provider: "openai", StatusCode: 500, Body: "boom"}, "openai: API error (status 500): boom"},
		{"transport", &ServiceError{Provider: "ollama", Err: errors.New("connection refused")}, "ollama: connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestIsAuthError(t *testing.T) {
	assert.True(t, IsAuthError(&ServiceError{StatusCode: http.StatusUnauthorized}))
	assert.True(t, IsAuthError(fmt.Errorf("wrapped: %w", &ServiceError{StatusCode: http.StatusForbidden})))
	assert.False(t, IsAuthError(&ServiceError{StatusCode: http.StatusTooManyRequests}))
	assert.False(t, IsAuthError(errors.New("plain")))
	assert.False(t, IsAuthError(nil))
}

func TestIsRateLimited(t *testing.T) {
	assert.True(t, IsRateLimited(&ServiceError{StatusCode: http.StatusTooManyRequests}))
	assert.False(t, IsRateLimited(&ServiceError{StatusCode: http.StatusInternalServerError}))
	assert.False(t, IsRateLimited(&ResponseError{Reason: "empty"}))
}

func TestCheckStatus(t *testing.T) {
	assert.NoError(t, checkStatus("groq", http.StatusOK, nil))

	err := checkStatus("groq", http.StatusBadGateway, []byte("upstream"))
	var se *ServiceError
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
	assert.Equal(t, "upstream", se.Body)
}

func TestResponseError_Unwrap(t *testing.T) {
	inner := errors.New("unexpected EOF")
	err := &ResponseError{Provider: "gemini", Reason: "parsing response", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "gemini: parsing response: unexpected EOF", err.Error())
}
