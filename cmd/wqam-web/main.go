package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pratapsingh123om/WQAM-FINAL/internal/adapter/gateway"
	adapterhandler "github.com/pratapsingh123om/WQAM-FINAL/internal/adapter/handler"
	"github.com/pratapsingh123om/WQAM-FINAL/internal/domain"
	infracache "github.com/pratapsingh123om/WQAM-FINAL/internal/infrastructure/cache"
	"github.com/pratapsingh123om/WQAM-FINAL/internal/infrastructure/credstore"
	"github.com/pratapsingh123om/WQAM-FINAL/internal/usecase"

	"github.com/pratapsingh123om/WQAM-FINAL/config"
	appmiddleware "github.com/pratapsingh123om/WQAM-FINAL/middleware"
	"github.com/pratapsingh123om/WQAM-FINAL/utils/logger"
	"github.com/pratapsingh123om/WQAM-FINAL/utils/otel"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

func main() {
	// Handle healthcheck subcommand (for Docker healthcheck in distroless image)
	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		if err := runHealthcheck(); err != nil {
			fmt.Fprintf(os.Stderr, "Healthcheck failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Initialize OpenTelemetry
	otelCfg := otel.ConfigFromEnv()
	otelShutdown, err := otel.InitProvider(ctx, otelCfg)
	if err != nil {
		slog.Warn("failed to initialize OpenTelemetry, continuing without tracing", "error", err)
		otelCfg.Enabled = false
		otelShutdown = func(context.Context) error { return nil }
	}

	// Initialize structured logger
	logger.Init(otelCfg.Enabled)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.InfoContext(ctx, "configuration loaded",
		"api_base_url", cfg.APIBaseURL,
		"port", cfg.Port,
		"session_cache_ttl", cfg.SessionCacheTTL)

	// Infrastructure
	identityCache := infracache.NewIdentityCache(cfg.SessionCacheTTL)
	defer identityCache.Close()

	backend := gateway.NewBackend(cfg.APIBaseURL, cfg.APITimeout, slog.Default(),
		gateway.WithEvictionHook(identityCache.Evict))

	stores := func(c echo.Context) domain.CredentialStore {
		return credstore.NewCookies(c, cfg.SecureCookies)
	}

	// Usecases
	loginUC := usecase.NewLogin(backend, slog.Default())
	registerUC := usecase.NewRegister(backend, slog.Default())
	resolverUC := usecase.NewResolveSession(backend, identityCache, slog.Default())
	approvalsUC := usecase.NewApprovals(backend, slog.Default())

	// Handlers
	authHandler := adapterhandler.NewAuthHandler(loginUC, registerUC, stores)
	sessionHandler := adapterhandler.NewSessionHandler(resolverUC, stores)
	adminHandler := adapterhandler.NewAdminHandler(approvalsUC, stores)
	pageHandler := adapterhandler.NewPageHandler(resolverUC, stores)
	healthHandler := adapterhandler.NewHealthHandler()

	// Setup Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Security middleware
	e.Use(appmiddleware.SecurityHeaders())

	// OpenTelemetry tracing
	if otelCfg.Enabled {
		e.Use(otelecho.Middleware(otelCfg.ServiceName))
	}

	// Request logging
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			rctx := c.Request().Context()
			if v.Error == nil {
				slog.InfoContext(rctx, "request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				slog.ErrorContext(rctx, "request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))

	e.Use(middleware.Recover())

	// Rate limiter for credential-bearing endpoints
	authRL := appmiddleware.NewRateLimiter(rate.Limit(cfg.LoginRate), cfg.LoginBurst)
	defer authRL.Close()

	// Auth and registration API
	e.POST("/api/auth/login", authHandler.HandleLogin, authRL.Middleware())
	e.POST("/api/auth/admin-login", authHandler.HandleAdminLogin, authRL.Middleware())
	e.POST("/api/auth/logout", authHandler.HandleLogout)
	e.POST("/api/register", authHandler.HandleRegister, authRL.Middleware())
	e.GET("/api/session", sessionHandler.Handle)
	e.GET("/health", healthHandler.Handle)

	// Admin approval API (admin session required)
	adminGuard := appmiddleware.RequireRole(domain.RoleAdmin, stores)
	e.GET("/api/admin/pending", adminHandler.HandlePending, adminGuard)
	e.POST("/api/admin/approve/:id", adminHandler.HandleApprove, adminGuard)
	e.POST("/api/admin/reject/:id", adminHandler.HandleReject, adminGuard)

	// Pages
	e.GET(usecase.PathHome, pageHandler.HandleHome)
	e.GET(usecase.PathAuth, pageHandler.HandleAuth)
	e.GET(usecase.PathAdminLogin, pageHandler.HandleAdminLogin)
	e.GET(usecase.PathAdminDashboard, pageHandler.Dashboard(domain.RoleAdmin),
		appmiddleware.RequireRole(domain.RoleAdmin, stores))
	e.GET(usecase.PathUserDashboard, pageHandler.Dashboard(domain.RoleUser),
		appmiddleware.RequireRole(domain.RoleUser, stores))
	e.GET(usecase.PathValidatorDashboard, pageHandler.Dashboard(domain.RoleValidator),
		appmiddleware.RequireRole(domain.RoleValidator, stores))
	e.RouteNotFound("/*", pageHandler.HandleNotFound)

	// Start server with errgroup for graceful shutdown
	address := fmt.Sprintf(":%s", cfg.Port)
	slog.InfoContext(ctx, "starting wqam-web server", "address", address)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return otelShutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited properly")
}

// runHealthcheck performs a health check against the local server.
func runHealthcheck() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://127.0.0.1:%s/health", port))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health endpoint returned status: %d", resp.StatusCode)
	}
	return nil
}
