package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pratapsingh123om/WQAM-FINAL/internal/domain"
	"github.com/pratapsingh123om/WQAM-FINAL/internal/usecase"
)

// StoreFactory binds a credential store to the exchange being served.
type StoreFactory func(c echo.Context) domain.CredentialStore

// RequireRole guards a surface behind the given role. The decision is made
// fresh on every request from whatever the store holds right now, so a
// session evicted mid-browse is caught on the next navigation.
//
// Page requests are redirected (no session to the role's login surface, a
// role mismatch to home). API requests get the matching JSON status instead.
func RequireRole(required domain.Role, stores StoreFactory) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, ok := stores(c).Get()
			decision := usecase.Guard(required, s, ok)
			if decision.Allow {
				return next(c)
			}

			if wantsJSON(c) {
				if decision.Redirect == usecase.PathHome {
					return echo.NewHTTPError(http.StatusForbidden, "not authorized")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return c.Redirect(http.StatusFound, decision.Redirect)
		}
	}
}

func wantsJSON(c echo.Context) bool {
	if len(c.Path()) >= 5 && c.Path()[:5] == "/api/" {
		return true
	}
	return c.Request().Header.Get("Accept") == "application/json"
}
