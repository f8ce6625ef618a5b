package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
		sentinel   error
	}{
		{"not found", NotFound("event", "e1"), "NOT_FOUND", http.StatusNotFound, ErrNotFound},
		{"invalid input", InvalidInput("bad sort"), "INVALID_INPUT", http.StatusBadRequest, ErrInvalidInput},
		{"unavailable", Unavailable(errors.New("refused")), "SEARCH_UNAVAILABLE", http.StatusServiceUnavailable, ErrUnavailable},
		{"query timeout", QueryTimeout(errors.New("canceled")), "QUERY_TIMEOUT", http.StatusRequestTimeout, ErrQueryTimeout},
		{"internal", Internal(errors.New("oops")), "INTERNAL_ERROR", http.StatusInternalServerError, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantStatus, tt.err.Status)
			assert.Equal(t, tt.wantStatus, HTTPStatus(tt.err))
			if tt.sentinel != nil {
				assert.ErrorIs(t, tt.err, tt.sentinel)
			}
		})
	}
}

func TestUnavailable_MessageHidesCause(t *testing.T) {
	err := Unavailable(errors.New("dial tcp 10.0.0.5:5432: connection refused"))
	assert.Equal(t, "search is temporarily unavailable, please try again", err.Message)
	// The cause stays reachable for logs.
	assert.Contains(t, err.Error(), "connection refused")
}

func TestHTTPStatus_WrappedAppError(t *testing.T) {
	wrapped := fmt.Errorf("search: %w", QueryTimeout(errors.New("canceled")))
	assert.Equal(t, http.StatusRequestTimeout, HTTPStatus(wrapped))
}

func TestHTTPStatus_PlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("anything")))
}

func TestWrap(t *testing.T) {
	base := errors.New("base")
	err := Wrap(base, "context")
	require.ErrorIs(t, err, base)
	assert.Equal(t, "context: base", err.Error())
}
