package httpserver

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/threat0512/HealthFactAI/internal/core/ports"
	customMiddleware "github.com/threat0512/HealthFactAI/internal/infrastructure/httpserver/middleware"
)

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type ServerDeps struct {
	AuthService        ports.AuthService
	SearchService      ports.SearchService
	QuizService        ports.QuizService
	ProgressService    ports.ProgressService
	FactCardService    ports.FactCardService
	RateLimiterService ports.RateLimiterService
	HealthCheckers     []ports.HealthChecker
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	logger         *logrus.Logger
	authSvc        ports.AuthService
	searchSvc      ports.SearchService
	quizSvc        ports.QuizService
	progressSvc    ports.ProgressService
	factCardSvc    ports.FactCardService
	middleware     *customMiddleware.MiddlewareCollection
	healthCheckers []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()

	server := &Server{
		echo:           e,
		config:         serverConfig,
		logger:         logger,
		authSvc:        deps.AuthService,
		searchSvc:      deps.SearchService,
		quizSvc:        deps.QuizService,
		progressSvc:    deps.ProgressService,
		factCardSvc:    deps.FactCardService,
		healthCheckers: deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			deps.AuthService,
			deps.RateLimiterService,
			logger,
			GetRequestsTotal(),
			GetRequestDuration(),
		),
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
