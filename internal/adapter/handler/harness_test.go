package handler

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pratapsingh123om/WQAM-FINAL/internal/adapter/gateway"
	"github.com/pratapsingh123om/WQAM-FINAL/internal/domain"
	"github.com/pratapsingh123om/WQAM-FINAL/internal/infrastructure/cache"
	"github.com/pratapsingh123om/WQAM-FINAL/internal/infrastructure/credstore"
	"github.com/pratapsingh123om/WQAM-FINAL/internal/usecase"
	appmiddleware "github.com/pratapsingh123om/WQAM-FINAL/middleware"
)

// harness wires real usecases and the real gateway against a stub WQAM API,
// the same shape as the wiring in cmd/wqam-web.
type harness struct {
	e       *echo.Echo
	backend *httptest.Server
	cache   *cache.IdentityCache
}

func newHarness(t *testing.T, backend http.Handler) *harness {
	t.Helper()

	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	identityCache := cache.NewIdentityCache(30 * time.Second)
	t.Cleanup(identityCache.Close)

	logger := slog.Default()
	gw := gateway.NewBackend(server.URL, 5*time.Second, logger,
		gateway.WithEvictionHook(identityCache.Evict))

	stores := func(c echo.Context) domain.CredentialStore {
		return credstore.NewCookies(c, false)
	}

	loginUC := usecase.NewLogin(gw, logger)
	registerUC := usecase.NewRegister(gw, logger)
	resolverUC := usecase.NewResolveSession(gw, identityCache, logger)
	approvalsUC := usecase.NewApprovals(gw, logger)

	authHandler := NewAuthHandler(loginUC, registerUC, StoreFactory(stores))
	sessionHandler := NewSessionHandler(resolverUC, StoreFactory(stores))
	adminHandler := NewAdminHandler(approvalsUC, StoreFactory(stores))
	pageHandler := NewPageHandler(resolverUC, StoreFactory(stores))

	e := echo.New()
	e.POST("/api/auth/login", authHandler.HandleLogin)
	e.POST("/api/auth/admin-login", authHandler.HandleAdminLogin)
	e.POST("/api/auth/logout", authHandler.HandleLogout)
	e.POST("/api/register", authHandler.HandleRegister)
	e.GET("/api/session", sessionHandler.Handle)

	adminGuard := appmiddleware.RequireRole(domain.RoleAdmin, appmiddleware.StoreFactory(stores))
	e.GET("/api/admin/pending", adminHandler.HandlePending, adminGuard)
	e.POST("/api/admin/approve/:id", adminHandler.HandleApprove, adminGuard)
	e.POST("/api/admin/reject/:id", adminHandler.HandleReject, adminGuard)

	e.GET(usecase.PathHome, pageHandler.HandleHome)
	e.GET(usecase.PathAdminDashboard, pageHandler.Dashboard(domain.RoleAdmin),
		appmiddleware.RequireRole(domain.RoleAdmin, appmiddleware.StoreFactory(stores)))
	e.GET(usecase.PathUserDashboard, pageHandler.Dashboard(domain.RoleUser),
		appmiddleware.RequireRole(domain.RoleUser, appmiddleware.StoreFactory(stores)))

	return &harness{e: e, backend: server, cache: identityCache}
}

// do serves one request, carrying the given session as cookies.
func (h *harness) do(method, target, body string, session *domain.Session) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if session != nil {
		req.AddCookie(&http.Cookie{Name: credstore.TokenCookie, Value: session.Token})
		req.AddCookie(&http.Cookie{Name: credstore.RoleCookie, Value: session.Role.String()})
	}
	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)
	return rec
}

func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}
