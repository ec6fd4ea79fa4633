package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/codeK2004/Recruiters-Candidates-Chat-Application/docs"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/api/handler"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/api/middleware"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/domain"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/core/ports"
	"github.com/codeK2004/Recruiters-Candidates-Chat-Application/internal/infrastructure/token"
)

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Directory     ports.DirectoryService
	Conversations ports.ConversationService
	Bulk          ports.BulkService
	Events        ports.EventSubscriber
	Tokens        *token.Manager
	Readiness     map[string]handler.Pinger
	Log           zerolog.Logger
	// Registry receives the HTTP metrics; nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	var (
		reg    prometheus.Registerer = prometheus.DefaultRegisterer
		gather prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		reg, gather = d.Registry, d.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "chat",
		Registerer: reg,
	}))

	authHandler := handler.NewAuthHandler(d.Directory, d.Tokens)
	userHandler := handler.NewUserHandler(d.Directory, d.Conversations)
	messageHandler := handler.NewMessageHandler(d.Conversations)
	bulkHandler := handler.NewBulkHandler(d.Bulk)
	streamHandler := handler.NewStreamHandler(d.Events, d.Log)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", middleware.Auth(d.Tokens))
	v1.GET("/me", userHandler.Me)
	v1.GET("/recruiters", userHandler.ListRecruiters)
	v1.GET("/users/:id", userHandler.GetUser)
	v1.GET("/partners", userHandler.Partners)
	v1.GET("/conversations/:partnerID/messages", messageHandler.List)
	v1.POST("/conversations/:partnerID/messages", messageHandler.Send)
	v1.POST("/conversations/:partnerID/read", messageHandler.MarkRead)
	v1.GET("/conversations/:partnerID/unread", messageHandler.Unread)

	// --- Recruiter-only routes ---
	recruiterOnly := middleware.RBAC(domain.RoleRecruiter)
	v1.GET("/candidates", userHandler.ListCandidates, recruiterOnly)
	v1.PUT("/candidates/:id/status", userHandler.SetStatus, recruiterOnly)
	v1.POST("/bulk/messages", bulkHandler.SendToStatus, recruiterOnly)
	v1.POST("/bulk/status", bulkHandler.ApplyStatus, recruiterOnly)

	// The stream is the only route that takes the token from the query.
	e.GET("/v1/stream", streamHandler.Stream, middleware.StreamAuth(d.Tokens))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Readiness)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gather}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger logs one zerolog line per request. Only the path is logged;
// the query may carry a stream token.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURIPath:   true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
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
