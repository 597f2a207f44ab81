package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pratapsingh123om/WQAM-FINAL/internal/domain"
	"github.com/pratapsingh123om/WQAM-FINAL/internal/usecase"
)

// StoreFactory binds a credential store to the exchange being served.
type StoreFactory func(c echo.Context) domain.CredentialStore

// AuthHandler serves the login, logout and registration endpoints.
type AuthHandler struct {
	login    *usecase.Login
	register *usecase.Register
	stores   StoreFactory
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(login *usecase.Login, register *usecase.Register, stores StoreFactory) *AuthHandler {
	return &AuthHandler{login: login, register: register, stores: stores}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginResponse struct {
	OK       bool   `json:"ok"`
	Role     string `json:"role"`
	Redirect string `json:"redirect"`
}

// HandleLogin processes POST /api/auth/login for users and validators.
func (h *AuthHandler) HandleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil || role == domain.RoleAdmin {
		// Admins authenticate on their own endpoint.
		return mapDomainError(domain.NewValidationError("role", "role must be user or validator"))
	}

	return h.completeLogin(c, usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	})
}

// HandleAdminLogin processes POST /api/auth/admin-login. Distinct credential
// namespace, same post-success contract.
func (h *AuthHandler) HandleAdminLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	return h.completeLogin(c, usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.RoleAdmin,
	})
}

func (h *AuthHandler) completeLogin(c echo.Context, in usecase.LoginInput) error {
	result, err := h.login.Execute(c.Request().Context(), h.stores(c), in)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, loginResponse{
		OK:       true,
		Role:     result.Session.Role.String(),
		Redirect: result.Redirect,
	})
}

// HandleLogout processes POST /api/auth/logout.
func (h *AuthHandler) HandleLogout(c echo.Context) error {
	h.login.Logout(c.Request().Context(), h.stores(c))
	return c.NoContent(http.StatusNoContent)
}

type registerResponse struct {
	OK      bool   `json:"ok"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HandleRegister processes POST /api/register?role={user|validator}.
// Success never yields a session; the response says so explicitly.
func (h *AuthHandler) HandleRegister(c echo.Context) error {
	role, err := domain.ParseRole(c.QueryParam("role"))
	if err != nil {
		return mapDomainError(domain.NewValidationError("role", "role must be user or validator"))
	}

	var form domain.RegistrationForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	if err := h.register.Execute(c.Request().Context(), h.stores(c), form, role); err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, registerResponse{
		OK:      true,
		Status:  string(domain.StatusPending),
		Message: "registration submitted, awaiting admin approval",
	})
}
