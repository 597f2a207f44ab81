package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pratapsingh123om/WQAM-FINAL/internal/domain"
	"github.com/pratapsingh123om/WQAM-FINAL/internal/usecase"
)

// PageHandler serves the navigable route surface. The decorative UI is not
// this service's concern: pages are minimal shell payloads, and the dashboard
// routes exist to be guarded.
type PageHandler struct {
	resolver *usecase.ResolveSession
	stores   StoreFactory
}

// NewPageHandler creates the page handler.
func NewPageHandler(resolver *usecase.ResolveSession, stores StoreFactory) *PageHandler {
	return &PageHandler{resolver: resolver, stores: stores}
}

type pagePayload struct {
	Page  string `json:"page"`
	Login string `json:"login,omitempty"`
}

// HandleHome serves GET /.
func (h *PageHandler) HandleHome(c echo.Context) error {
	return c.JSON(http.StatusOK, pagePayload{Page: "home"})
}

// HandleAuth serves GET /auth, the tabbed user/validator login+register page.
func (h *PageHandler) HandleAuth(c echo.Context) error {
	return c.JSON(http.StatusOK, pagePayload{Page: "auth"})
}

// HandleAdminLogin serves GET /admin/login.
func (h *PageHandler) HandleAdminLogin(c echo.Context) error {
	return c.JSON(http.StatusOK, pagePayload{Page: "admin-login"})
}

// Dashboard returns a handler for one role dashboard. The route guard has
// already admitted the session; the resolver still validates the token on
// entry, so a dashboard can never render against a dead or unapproved
// session.
func (h *PageHandler) Dashboard(role domain.Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, err := h.resolver.Execute(c.Request().Context(), h.stores(c))
		if err != nil {
			return c.Redirect(http.StatusFound, usecase.LoginPath(role))
		}

		return c.JSON(http.StatusOK, map[string]any{
			"page": role.String() + "-dashboard",
			"user": sessionUser{
				ID:           identity.ID,
				Name:         identity.Name,
				Email:        identity.Email,
				Role:         identity.Role.String(),
				Status:       string(identity.Status),
				Organisation: identity.Organisation,
			},
		})
	}
}

// HandleNotFound sends unknown paths back to the landing page.
func (h *PageHandler) HandleNotFound(c echo.Context) error {
	return c.Redirect(http.StatusFound, usecase.PathHome)
}
