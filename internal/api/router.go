package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/summercamp/camp-api/internal/api/handler"
	"github.com/summercamp/camp-api/internal/api/middleware"
	"github.com/summercamp/camp-api/internal/core/domain"
	"github.com/summercamp/camp-api/internal/core/ports"
)

// Deps are the services the HTTP layer is built on.
type Deps struct {
	Tokens   ports.TokenService
	Users    ports.UserService
	Classes  ports.ClassService
	Carts    ports.CartService
	Payments ports.PaymentService

	// Readiness checks keyed by dependency name, e.g. "mongodb".
	Checks map[string]handler.Check
	Logger zerolog.Logger

	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echomiddleware.CORS())
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "camp",
		Registerer: registerer,
	}))

	// --- Gate ---
	auth := middleware.Auth(d.Tokens, d.Logger)
	admin := middleware.RequireRole(d.Users, domain.RoleAdmin, d.Logger)
	instructor := middleware.RequireRole(d.Users, domain.RoleInstructor, d.Logger)
	selfParam := middleware.RequireSelf(middleware.EmailParam("email"), d.Logger)
	selfQuery := middleware.RequireSelf(middleware.EmailQuery("email"), d.Logger)

	tokens := handler.NewTokenHandler(d.Tokens)
	users := handler.NewUserHandler(d.Users)
	classes := handler.NewClassHandler(d.Classes)
	carts := handler.NewCartHandler(d.Carts)
	payments := handler.NewPaymentHandler(d.Payments)

	e.GET("/", handler.Banner)
	e.POST("/jwt", tokens.Issue)

	// --- Classes & instructors ---
	e.GET("/classes", classes.List)
	e.POST("/classes", classes.Create, auth, instructor)
	e.GET("/instructor", classes.Instructors)

	// --- Users ---
	e.GET("/users", users.List, auth, admin)
	e.POST("/users", users.Register)
	e.GET("/users/admin/:email", users.IsAdmin, auth, selfParam)
	e.GET("/users/instructor/:email", users.IsInstructor, auth, selfParam)
	e.PATCH("/users/admin/:id", users.Promote(domain.RoleAdmin), auth, admin)
	e.PATCH("/users/instructor/:id", users.Promote(domain.RoleInstructor), auth, admin)

	// --- Cart ---
	e.GET("/carts", carts.List, auth, selfQuery)
	e.POST("/carts", carts.Add)
	e.DELETE("/carts/:id", carts.Remove, auth)

	// --- Payments ---
	e.POST("/create-payment-intent", payments.CreateIntent, auth)
	e.POST("/payments", payments.Record, auth)
	e.GET("/payments/:email", payments.List, auth, selfParam)

	// --- Operations (no auth required) ---
	health := handler.NewHealthHandler()
	ready := handler.NewReadinessHandler(d.Checks)

	e.GET("/health", health.Liveness)      // liveness  – is the process alive?
	e.GET("/health/ready", ready.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger emits one zerolog line per request.
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
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
