package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/todoapp/todo-api/docs"
	"github.com/todoapp/todo-api/internal/api/handler"
	"github.com/todoapp/todo-api/internal/api/middleware"
	"github.com/todoapp/todo-api/internal/core/ports"
)

// Deps are the wired services the router exposes.
type Deps struct {
	Auth   ports.AuthService
	Todos  ports.TodoService
	Admin  ports.AdminService
	Users  ports.UserService
	Tokens ports.TokenVerifier
	// Denylist is nil when token revocation is disabled.
	Denylist ports.TokenDenylist
	// Checks feed the readiness probe, keyed by dependency name.
	Checks map[string]handler.Check
	Logger zerolog.Logger
	// SecureCookies marks the access token cookie Secure.
	SecureCookies bool
	// Registry collects HTTP metrics. A fresh registry is used when nil.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	registry := d.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "todo",
		Subsystem:  "http",
		Registerer: registry,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health"
		},
	}))

	authCfg := middleware.AuthConfig{Verifier: d.Tokens, Denylist: d.Denylist, Logger: d.Logger}
	bearer := middleware.Auth(authCfg)

	authHandler := handler.NewAuthHandler(d.Auth, d.SecureCookies)
	todoHandler := handler.NewTodoHandler(d.Todos)
	adminHandler := handler.NewAdminHandler(d.Admin)
	userHandler := handler.NewUserHandler(d.Users)
	pageHandler := handler.NewPageHandler(d.Todos)

	// --- Auth routes ---
	authGroup := e.Group("/auth")
	authGroup.POST("/", authHandler.Register)
	authGroup.POST("/token", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout, middleware.AuthOrCookie(authCfg))
	authGroup.GET("/login-page", pageHandler.LoginPage)
	authGroup.GET("/register-page", pageHandler.RegisterPage)

	// --- Todo routes (owner scoped) ---
	todos := e.Group("/todos")
	todos.GET("/", todoHandler.List, bearer)
	todos.POST("/todo", todoHandler.Create, bearer)
	todos.GET("/todo/:id", todoHandler.Get, bearer)
	todos.PUT("/todo/:id", todoHandler.Update, bearer)
	todos.DELETE("/todo/:id", todoHandler.Delete, bearer)
	todos.GET("/todo-page", pageHandler.TodoPage, middleware.PageAuth(authCfg, handler.LoginPagePath))

	// --- Admin routes ---
	admin := e.Group("/admin", bearer, middleware.RequireAdmin())
	admin.GET("/todos", adminHandler.ListAll)
	admin.DELETE("/todo/:id", adminHandler.Delete)

	// --- User routes ---
	users := e.Group("/users", bearer)
	users.GET("/", userHandler.Profile)
	users.PUT("/password", userHandler.ChangePassword)
	users.PUT("/change_phone_number/:phone_number", userHandler.ChangePhoneNumber)

	// --- Health probes (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(d.Checks).Readiness)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{registry, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog event per request. The query string is
// never logged.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			var event *zerolog.Event
			switch {
			case v.Status >= 500:
				event = log.Error().Err(v.Error)
			case v.Status >= 400:
				event = log.Warn()
			default:
				event = log.Info()
			}
			event.
				Str("method", v.Method).
				Str("path", v.URIPath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
