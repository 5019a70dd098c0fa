package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/elien2016/customers/internal/middleware"
	"github.com/elien2016/customers/internal/server"
	"github.com/elien2016/customers/internal/validation"
)

// Handler gives every endpoint access to the server dependencies.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint that receives a bound and validated
// request and returns a response body.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// HandlerFuncNoContent is a typed endpoint that writes no body.
type HandlerFuncNoContent[Req validation.Validatable] func(c echo.Context, req Req) error

// RequestFactory allocates a fresh request payload for every call.
type RequestFactory[Req validation.Validatable] func() Req

// ResponseHandler writes a successful result.
type ResponseHandler interface {
	Handle(c echo.Context, result any) error
	GetOperation() string
}

// JSONResponseHandler writes the result as JSON with a fixed status.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result any) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string { return "handler" }

// NoContentResponseHandler writes only a status.
type NoContentResponseHandler struct {
	status int
}

func (h NoContentResponseHandler) Handle(c echo.Context, _ any) error {
	return c.NoContent(h.status)
}

func (h NoContentResponseHandler) GetOperation() string { return "handler_no_content" }

// phase records the outcome and duration of one request phase on the New
// Relic transaction, if there is one.
func phase(txn *newrelic.Transaction, name string, started time.Time, err error) time.Duration {
	elapsed := time.Since(started)
	if txn == nil {
		return elapsed
	}

	status := "success"
	if err != nil {
		status = "failed"
		txn.NoticeError(nrpkgerrors.Wrap(err))
	}
	txn.AddAttribute(name+".status", status)
	txn.AddAttribute(name+".duration_ms", elapsed.Milliseconds())

	return elapsed
}

// handleRequest binds and validates req, runs the endpoint and writes the
// result. Errors go back untouched to the global error handler.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	handler func(c echo.Context, req Req) (any, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("route", route).
		Logger()

	validationStart := time.Now()
	err := validation.BindAndValidate(c, req)
	validationDuration := phase(txn, "validation", validationStart, err)
	if err != nil {
		logger.Debug().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request rejected")
		return err
	}

	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := phase(txn, "handler", handlerStart, err)

	if txn != nil {
		txn.AddAttribute("total.duration_ms", time.Since(start).Milliseconds())
	}

	if err != nil {
		e := logger.Debug()
		if middleware.ToHTTPError(err).Status >= http.StatusInternalServerError {
			e = logger.Error()
		}
		e.Err(err).
			Dur("handler_duration", handlerDuration).
			Msg("handler failed")
		return err
	}

	logger.Debug().
		Dur("validation_duration", validationDuration).
		Dur("handler_duration", handlerDuration).
		Dur("total_duration", time.Since(start)).
		Msg("request handled")

	return responseHandler.Handle(c, result)
}

// Handle wraps a typed endpoint that responds with JSON.
//
//	e.POST("/customers", handler.Handle(h.Handler, h.CreateCustomer, http.StatusCreated, newCreateRequest))
func Handle[Req validation.Validatable, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
	newReq RequestFactory[Req],
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, newReq(), func(c echo.Context, req Req) (any, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}

// HandleNoContent wraps a typed endpoint that responds without a body.
func HandleNoContent[Req validation.Validatable](
	h Handler,
	handler HandlerFuncNoContent[Req],
	status int,
	newReq RequestFactory[Req],
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, newReq(), func(c echo.Context, req Req) (any, error) {
			return nil, handler(c, req)
		}, NoContentResponseHandler{status: status})
	}
}
