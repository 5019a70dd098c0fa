package validation_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elien2016/customers/internal/errs"
	"github.com/elien2016/customers/internal/model/customer"
	"github.com/elien2016/customers/internal/validation"
)

func newContext(method, body, contentType string) echo.Context {
	req := httptest.NewRequest(method, "/customers", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestBindAndValidateCreateCustomer(t *testing.T) {
	const full = `{"first_name":"Ada","last_name":"Lovelace","email":"ada@x.com","address":"London"}`

	tests := []struct {
		desc        string
		body        string
		contentType string
		status      int
		message     string
		fields      []string
	}{
		{"plain text", full, "text/plain", http.StatusUnsupportedMediaType, "Content-Type must be application/json", nil},
		{"no content type", full, "", http.StatusUnsupportedMediaType, "Content-Type must be application/json", nil},
		{"form content type", "first_name=Ada", echo.MIMEApplicationForm, http.StatusUnsupportedMediaType, "Content-Type must be application/json", nil},
		{"empty body", "", echo.MIMEApplicationJSON, http.StatusBadRequest, "Request body is required", nil},
		{"malformed json", `{"first_name": "Ada"`, echo.MIMEApplicationJSON, http.StatusBadRequest, "Invalid JSON body", nil},
		{"python dict literal", `{'first_name': 'Ada'}`, echo.MIMEApplicationJSON, http.StatusBadRequest, "Invalid JSON body", nil},
		{"trailing brace", full + ` }`, echo.MIMEApplicationJSON, http.StatusBadRequest, "Invalid JSON body", nil},
		{"trailing garbage", full + `garbage`, echo.MIMEApplicationJSON, http.StatusBadRequest, "Invalid JSON body", nil},
		{"two objects", full + full, echo.MIMEApplicationJSON, http.StatusBadRequest, "Invalid JSON body", nil},
		{"array body", `[1, 2]`, echo.MIMEApplicationJSON, http.StatusBadRequest, "Invalid Customer: request body must be a JSON object", nil},
		{"null body", `null`, echo.MIMEApplicationJSON, http.StatusBadRequest, "Invalid Customer: request body must be a JSON object", nil},
		{"wrong field type", `{"first_name": 7}`, echo.MIMEApplicationJSON, http.StatusBadRequest, "Invalid Customer: first_name has an invalid type", []string{"first_name"}},
		{
			"empty object", `{}`, echo.MIMEApplicationJSON, http.StatusBadRequest,
			"Invalid Customer: missing first_name",
			[]string{"first_name", "last_name", "email", "address"},
		},
		{
			"camel case keys", `{"firstName":"Ada","lastName":"Lovelace","email":"ada@x.com","address":"London"}`,
			echo.MIMEApplicationJSON, http.StatusBadRequest,
			"Invalid Customer: missing first_name",
			[]string{"first_name", "last_name"},
		},
		{
			"null value counts as missing", `{"first_name":"Ada","last_name":null,"email":"ada@x.com","address":"London"}`,
			echo.MIMEApplicationJSON, http.StatusBadRequest,
			"Invalid Customer: missing last_name",
			[]string{"last_name"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			c := newContext(http.MethodPost, tc.body, tc.contentType)

			httpErr := asHTTPError(t, validation.BindAndValidate(c, &customer.CreateCustomerRequest{}))
			assert.Equal(t, tc.status, httpErr.Status)
			assert.Equal(t, tc.message, httpErr.Message)

			var fields []string
			for _, fe := range httpErr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Equal(t, tc.fields, fields)
		})
	}
}

func TestBindAndValidateEachMissingField(t *testing.T) {
	fields := []string{"first_name", "last_name", "email", "address"}

	for _, missing := range fields {
		t.Run(missing, func(t *testing.T) {
			var parts []string
			for _, f := range fields {
				if f != missing {
					parts = append(parts, `"`+f+`":"x"`)
				}
			}
			c := newContext(http.MethodPost, "{"+strings.Join(parts, ",")+"}", echo.MIMEApplicationJSON)

			httpErr := asHTTPError(t, validation.BindAndValidate(c, &customer.CreateCustomerRequest{}))
			assert.Equal(t, http.StatusBadRequest, httpErr.Status)
			assert.Equal(t, "Invalid Customer: missing "+missing, httpErr.Message)
			require.Len(t, httpErr.Errors, 1)
			assert.Equal(t, errs.FieldError{Field: missing, Error: "is required"}, httpErr.Errors[0])
		})
	}
}

func TestBindAndValidateSuccess(t *testing.T) {
	body := `{"id":99,"first_name":"Ada","last_name":"Lovelace","email":"","address":"London","extra":true}`
	c := newContext(http.MethodPost, body, "application/json; charset=utf-8")

	req := &customer.CreateCustomerRequest{}
	require.NoError(t, validation.BindAndValidate(c, req))

	got := req.ToCustomer()
	assert.Zero(t, got.ID)
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, "Lovelace", got.LastName)
	assert.Equal(t, "", got.Email)
	assert.Equal(t, "London", got.Address)
}

func TestBindAndValidateSurroundingWhitespace(t *testing.T) {
	body := "\n  {\"first_name\":\"Ada\",\"last_name\":\"Lovelace\",\"email\":\"ada@x.com\",\"address\":\"London\"}\r\n\t "
	c := newContext(http.MethodPost, body, echo.MIMEApplicationJSON)

	req := &customer.CreateCustomerRequest{}
	require.NoError(t, validation.BindAndValidate(c, req))
	assert.Equal(t, "Ada", req.ToCustomer().FirstName)
}

func TestBindAndValidatePathParam(t *testing.T) {
	c := newContext(http.MethodGet, "", "")
	c.SetParamNames("id")
	c.SetParamValues("42")

	req := &customer.GetCustomerRequest{}
	require.NoError(t, validation.BindAndValidate(c, req))
	assert.Equal(t, int64(42), req.ID)

	c = newContext(http.MethodDelete, "", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	httpErr := asHTTPError(t, validation.BindAndValidate(c, &customer.DeleteCustomerRequest{}))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

type rangeRequest struct {
	Limit int `json:"limit" validate:"min=1"`
}

func (r *rangeRequest) Validate() error { return validation.Struct(r) }

func TestBindAndValidateNonBodyPayload(t *testing.T) {
	c := newContext(http.MethodGet, "", "")

	httpErr := asHTTPError(t, validation.BindAndValidate(c, &rangeRequest{}))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Invalid Request: limit must be at least 1", httpErr.Message)
}

type customRequest struct{}

func (r *customRequest) Validate() error {
	return validation.CustomValidationErrors{{Field: "window", Message: "must not overlap"}}
}

func TestBindAndValidateCustomErrors(t *testing.T) {
	c := newContext(http.MethodGet, "", "")

	httpErr := asHTTPError(t, validation.BindAndValidate(c, &customRequest{}))
	assert.Equal(t, "Invalid Request: window must not overlap", httpErr.Message)
	assert.Equal(t, []errs.FieldError{{Field: "window", Error: "must not overlap"}}, httpErr.Errors)
}
