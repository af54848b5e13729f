package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/marketplace/internal/service"
	"github.com/Skotchmaster/marketplace/pkg/logging"
)

const (
	detailNotFound        = "Not found."
	detailServerError     = "A server error occurred."
	detailNotProvided     = "Authentication credentials were not provided."
	detailInvalidToken    = "Invalid token."
	detailInactiveAccount = "User inactive or deleted."
	detailForbidden       = "You do not have permission to perform this action."
	detailInvalidPage     = "Invalid page."
	detailMalformedBody   = "Malformed request body."
)

type detail struct {
	Detail string `json:"detail"`
}

// fail logs a handler failure under event and maps a service error onto
// the HTTP error the client sees.
func fail(l *slog.Logger, event string, err error) error {
	var verr service.ValidationError
	switch {
	case errors.As(err, &verr):
		l.Warn(event, "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, verr)
	case errors.Is(err, service.ErrInvalidCredentials):
		l.Warn(event, "status", 400, "reason", "invalid credentials")
		return echo.NewHTTPError(http.StatusBadRequest, service.FieldError(service.NonFieldErrors, service.MsgInvalidLogin))
	case errors.Is(err, service.ErrNotFound):
		l.Warn(event, "status", 404, "reason", "not found")
		return echo.NewHTTPError(http.StatusNotFound, detailNotFound)
	case errors.Is(err, service.ErrUnauthenticated):
		l.Warn(event, "status", 401, "reason", "not authenticated")
		return echo.NewHTTPError(http.StatusUnauthorized, detailNotProvided)
	case errors.Is(err, service.ErrForbidden):
		l.Warn(event, "status", 403, "reason", "permission denied")
		return echo.NewHTTPError(http.StatusForbidden, detailForbidden)
	default:
		l.Error(event, "status", 500, "reason", "internal error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, detailServerError).WithInternal(err)
	}
}

// errorHandler renders every error as JSON: field maps verbatim, anything
// else as {"detail": ...}. Unexpected errors are logged and hidden.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var body any = detail{Detail: detailServerError}

	var he *echo.HTTPError
	var verr service.ValidationError
	switch {
	case errors.As(err, &he):
		code = he.Code
		switch m := he.Message.(type) {
		case service.ValidationError:
			body = m
		case string:
			body = detail{Detail: message(c, code, m)}
		default:
			body = detail{Detail: message(c, code, http.StatusText(code))}
		}
	case errors.As(err, &verr):
		code = http.StatusBadRequest
		body = verr
	default:
		logging.FromContext(c.Request().Context()).Error("unhandled_error", "error", err)
	}

	if code == http.StatusUnauthorized {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Bearer realm="api"`)
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(code)
	} else {
		werr = c.JSON(code, body)
	}
	if werr != nil {
		logging.FromContext(c.Request().Context()).Error("error_response_failed", "error", werr)
	}
}

// message rewrites echo's router defaults into the API's wording and
// never leaks text from a 5xx.
func message(c echo.Context, code int, msg string) string {
	switch {
	case code >= http.StatusInternalServerError:
		return detailServerError
	case code == http.StatusNotFound && msg == http.StatusText(code):
		return detailNotFound
	case code == http.StatusMethodNotAllowed && msg == http.StatusText(code):
		return fmt.Sprintf("Method %q not allowed.", c.Request().Method)
	}
	return msg
}
