package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/service"
	"github.com/Skotchmaster/marketplace/pkg/logging"
)

const principalKey = "principal"

// Authenticate resolves an optional "Bearer <token>" or "Token <token>"
// header to the current account. Requests without one stay anonymous;
// endpoints decide whether that is allowed.
func Authenticate(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			parts := strings.Fields(c.Request().Header.Get(echo.HeaderAuthorization))
			if len(parts) == 0 || !isTokenScheme(parts[0]) {
				return next(c)
			}

			ctx := c.Request().Context()
			l := logging.FromContext(ctx).With("middleware", "authenticate")

			if len(parts) != 2 {
				l.Warn("auth_failed", "status", 401, "reason", "malformed authorization header")
				return echo.NewHTTPError(http.StatusUnauthorized, detailInvalidToken)
			}

			acc, err := auth.Authenticate(ctx, parts[1])
			if err != nil {
				switch {
				case errors.Is(err, service.ErrInvalidToken):
					l.Warn("auth_failed", "status", 401, "reason", "invalid token")
					return echo.NewHTTPError(http.StatusUnauthorized, detailInvalidToken)
				case errors.Is(err, service.ErrAccountInactive):
					l.Warn("auth_failed", "status", 401, "reason", "account inactive or deleted")
					return echo.NewHTTPError(http.StatusUnauthorized, detailInactiveAccount)
				default:
					l.Error("auth_failed", "status", 500, "reason", "cannot load account", "error", err)
					return echo.NewHTTPError(http.StatusInternalServerError, detailServerError).WithInternal(err)
				}
			}

			c.Set(principalKey, acc)
			req := c.Request()
			c.SetRequest(req.WithContext(logging.IntoContext(ctx, logging.FromContext(ctx).With("account_id", acc.ID))))
			return next(c)
		}
	}
}

func isTokenScheme(s string) bool {
	return strings.EqualFold(s, "Bearer") || strings.EqualFold(s, "Token")
}

// principal returns the authenticated account or nil.
func principal(c echo.Context) *models.Account {
	acc, _ := c.Get(principalKey).(*models.Account)
	return acc
}
