package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	custom := "CUSTOMER_NOT_FOUND"

	tests := []struct {
		desc   string
		err    *HTTPError
		status int
		code   string
	}{
		{"bad request", NewBadRequestError("bad", false, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"not found", NewNotFoundError("gone", false, nil), http.StatusNotFound, "NOT_FOUND"},
		{"not found custom code", NewNotFoundError("gone", true, &custom), http.StatusNotFound, custom},
		{"media type", NewUnsupportedMediaTypeError("json only"), http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE"},
		{"rate limit", NewTooManyRequestsError("slow down"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.status, tc.err.Status)
			assert.Equal(t, tc.code, tc.err.Code)
		})
	}
}

func TestHTTPErrorEnvelope(t *testing.T) {
	err := NewBadRequestError("Invalid Customer: missing email", true, nil, []FieldError{
		{Field: "email", Error: "is required"},
	})

	b, mErr := json.Marshal(err)
	require.NoError(t, mErr)

	assert.JSONEq(t, `{
		"code": "BAD_REQUEST",
		"error": "Invalid Customer: missing email",
		"status": 400,
		"override": true,
		"errors": [{"field": "email", "error": "is required"}]
	}`, string(b))

	b, mErr = json.Marshal(NewNotFoundError("nope", false, nil))
	require.NoError(t, mErr)
	assert.NotContains(t, string(b), `"errors"`)
}

func TestHTTPErrorIs(t *testing.T) {
	wrapped := fmt.Errorf("finding customer: %w", NewNotFoundError("nope", false, nil))

	assert.True(t, errors.Is(wrapped, &HTTPError{}))
	assert.False(t, errors.Is(errors.New("plain"), &HTTPError{}))

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, "nope", httpErr.Error())
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
}
