package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// RequestIDHeader is read from the request and set on the response.
	RequestIDHeader = "X-Request-ID"

	// RequestIDKey stores the id in the Echo context.
	RequestIDKey = "request_id"

	// MaxRequestIDLength bounds a caller supplied id.
	MaxRequestIDLength = 128
)

// RequestID tags each request with a correlation id. A caller supplied id
// is kept when it is short and printable; otherwise a UUID is generated.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(RequestIDHeader)
			if !validRequestID(id) {
				id = uuid.NewString()
			}

			c.Set(RequestIDKey, id)
			c.Response().Header().Set(RequestIDHeader, id)

			return next(c)
		}
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > MaxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

// GetRequestID returns the id set by RequestID, or "".
func GetRequestID(c echo.Context) string {
	id, _ := c.Get(RequestIDKey).(string)
	return id
}
