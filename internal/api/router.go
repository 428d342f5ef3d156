package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/ait/forum/docs"
	"github.com/ait/forum/internal/api/handler"
	"github.com/ait/forum/internal/api/middleware"
	"github.com/ait/forum/internal/core/domain"
	"github.com/ait/forum/internal/core/ports"
)

// Dependencies are the use cases and probes the router exposes.
type Dependencies struct {
	Accounts ports.AccountService
	Auth     ports.AuthService
	Posts    ports.PostService

	// Readiness is optional; /health/ready is only registered when set.
	Readiness *handler.HealthDependenciesHandler

	// Registerer receives the HTTP request metrics. Defaults to the
	// Prometheus default registerer.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "forum",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	accountHandler := handler.NewAccountHandler(deps.Accounts, deps.Auth)
	postHandler := handler.NewPostHandler(deps.Posts)
	auth := middleware.Auth(deps.Auth)

	// --- Account routes ---
	account := e.Group("/account")
	account.POST("/register", accountHandler.Register)
	account.POST("/login", accountHandler.Login, auth)
	account.GET("/user/:login", accountHandler.Get, auth)
	account.PUT("/user/:login", accountHandler.Update, auth, middleware.Self("login"))
	account.DELETE("/user/:login", accountHandler.Remove, auth, middleware.SelfOrRole("login", domain.RoleAdministrator))
	account.PUT("/user/:login/role/:role", accountHandler.AddRole, auth, middleware.RBAC(domain.RoleAdministrator))
	account.DELETE("/user/:login/role/:role", accountHandler.RemoveRole, auth, middleware.RBAC(domain.RoleAdministrator))
	account.PUT("/password", accountHandler.ChangePassword, auth)

	// --- Post routes ---
	forum := e.Group("/forum")
	forum.POST("/post/:author", postHandler.Create, auth, middleware.Self("author"))
	forum.GET("/post/:id", postHandler.Get)
	forum.PUT("/post/:id", postHandler.Update, auth, middleware.PostOwnerOrRole(deps.Posts, "id"))
	forum.DELETE("/post/:id", postHandler.Remove, auth, middleware.PostOwnerOrRole(deps.Posts, "id", domain.RoleModerator))
	forum.PUT("/post/:id/comment/:author", postHandler.AddComment, auth, middleware.Self("author"))
	forum.PUT("/post/:id/like", postHandler.AddLike, auth)

	// --- Post queries (no auth required) ---
	forum.GET("/posts/author/:author", postHandler.FindByAuthor)
	forum.POST("/posts/tags", postHandler.FindByTags)
	forum.POST("/posts/period", postHandler.FindByPeriod)

	// --- Health probes, metrics, docs (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	if deps.Readiness != nil {
		e.GET("/health/ready", deps.Readiness.Readiness)
	}
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one structured access log line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
