package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pratapsingh123om/WQAM-FINAL/internal/domain"
)

// mapDomainError converts a domain error into an appropriate echo.HTTPError.
// Authentication failures arrive here only after the gateway has already
// evicted the session; this mapper never touches state.
func mapDomainError(err error) *echo.HTTPError {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, map[string]any{
			"detail": verr.Fields,
		})
	}

	switch {
	case errors.Is(err, domain.ErrNoSession),
		errors.Is(err, domain.ErrAuthenticationFailed):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")

	case errors.Is(err, domain.ErrNotAuthorized):
		return echo.NewHTTPError(http.StatusForbidden, "not authorized")

	case errors.Is(err, domain.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")

	case errors.Is(err, domain.ErrUnavailable):
		return echo.NewHTTPError(http.StatusGatewayTimeout, "backend unavailable, try again")

	case errors.Is(err, domain.ErrUpstream):
		return echo.NewHTTPError(http.StatusBadGateway, "backend error")

	case errors.Is(err, domain.ErrRateLimited):
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
