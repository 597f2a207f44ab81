package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pratapsingh123om/WQAM-FINAL/internal/usecase"
)

// SessionHandler serves GET /api/session: the identity behind the stored
// session, or 401 once the resolver has concluded unauthenticated.
type SessionHandler struct {
	resolver *usecase.ResolveSession
	stores   StoreFactory
}

// NewSessionHandler creates the session handler.
func NewSessionHandler(resolver *usecase.ResolveSession, stores StoreFactory) *SessionHandler {
	return &SessionHandler{resolver: resolver, stores: stores}
}

type sessionUser struct {
	ID           int64  `json:"id"`
	Name         string `json:"name,omitempty"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Status       string `json:"status"`
	Organisation string `json:"organisation,omitempty"`
}

type sessionResponse struct {
	OK        bool        `json:"ok"`
	User      sessionUser `json:"user"`
	Dashboard string      `json:"dashboard"`
}

// Handle resolves the current session.
func (h *SessionHandler) Handle(c echo.Context) error {
	identity, err := h.resolver.Execute(c.Request().Context(), h.stores(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	return c.JSON(http.StatusOK, sessionResponse{
		OK: true,
		User: sessionUser{
			ID:           identity.ID,
			Name:         identity.Name,
			Email:        identity.Email,
			Role:         identity.Role.String(),
			Status:       string(identity.Status),
			Organisation: identity.Organisation,
		},
		Dashboard: usecase.DashboardPath(identity.Role),
	})
}
