package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/elien2016/customers/internal/errs"
	"github.com/elien2016/customers/internal/server"
	"github.com/elien2016/customers/internal/sqlerr"
)

// GlobalMiddlewares groups the middleware applied to every route and the
// global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS allows browser clients from the configured origins.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  global.server.Config.Server.CORSAllowedOrigins,
		ExposeHeaders: []string{echo.HeaderLocation, RequestIDHeader},
	})
}

// RequestLogger writes one "API" log line per request, leveled by status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			// The error handler has not written the response yet when a
			// handler returns an error, so take the status from the error.
			// See https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			statusCode := v.Status
			if v.Error != nil {
				statusCode = ToHTTPError(v.Error).Status
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover turns panics into errors for the global error handler.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			GetLogger(c).Error().
				Err(err).
				Bytes("stack", stack).
				Msg("recovered from panic")
			return err
		},
	})
}

// Secure adds the standard security response headers.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// ToHTTPError maps any error returned by a handler or by Echo itself onto
// the API error envelope.
func ToHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return fromEchoError(echoErr)
	}

	// Anything else is a driver, database or unknown error.
	if errors.As(sqlerr.HandleError(err), &httpErr) {
		return httpErr
	}

	return errs.NewInternalServerError()
}

func fromEchoError(echoErr *echo.HTTPError) *errs.HTTPError {
	switch echoErr.Code {
	case http.StatusNotFound:
		return errs.NewNotFoundError("Route not found", false, nil)
	case http.StatusUnsupportedMediaType:
		return errs.NewUnsupportedMediaTypeError("Content-Type must be " + echo.MIMEApplicationJSON)
	case http.StatusTooManyRequests:
		return errs.NewTooManyRequestsError(http.StatusText(http.StatusTooManyRequests))
	}

	if echoErr.Code >= http.StatusInternalServerError {
		return &errs.HTTPError{
			Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
			Message: http.StatusText(echoErr.Code),
			Status:  echoErr.Code,
		}
	}

	message, ok := echoErr.Message.(string)
	if !ok || message == "" {
		message = http.StatusText(echoErr.Code)
	}

	return &errs.HTTPError{
		Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
		Message: message,
		Status:  echoErr.Code,
	}
}

// GlobalErrorHandler is the final error funnel for the HTTP server. It
// logs the original error and writes the normalized envelope.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	httpErr := ToHTTPError(err)

	logger := GetLogger(c)

	var e *zerolog.Event
	if httpErr.Status >= http.StatusInternalServerError {
		e = logger.Error().Stack()
	} else {
		e = logger.Debug()
	}
	e.Err(err).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Msg(httpErr.Message)

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(httpErr.Status)
	} else {
		err = c.JSON(httpErr.Status, httpErr)
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to write error response")
	}
}
