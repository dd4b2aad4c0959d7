package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/folderguard/folderguard/internal/api/middleware"
	"github.com/folderguard/folderguard/internal/archive"
	"github.com/folderguard/folderguard/internal/backup"
	"github.com/folderguard/folderguard/internal/config"
	fghttp "github.com/folderguard/folderguard/internal/http"
	"github.com/folderguard/folderguard/internal/inventory"
	"github.com/folderguard/folderguard/internal/logging"
	"github.com/folderguard/folderguard/internal/monitoring"
	"github.com/folderguard/folderguard/internal/organize"
	"github.com/folderguard/folderguard/internal/providers"
	"github.com/folderguard/folderguard/internal/scan"
	"github.com/folderguard/folderguard/internal/service"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	http     *http.Server
	registry *service.Registry
	store    *backup.Store
	metrics  *monitoring.Metrics
	logger   *logging.Logger
	cfg      *config.Config
}

// New creates a new server instance
func New(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	store, err := backup.NewStore(cfg.BackupRoot(), logger)
	if err != nil {
		return nil, err
	}

	registry := service.NewRegistry()
	registerProviders(registry, store, logger)

	stats := registry.Stats()
	logger.Info("service providers registered",
		zap.Any("total_services", stats["total_services"]),
		zap.Any("total_tools", stats["total_tools"]),
	)

	metrics := monitoring.NewMetrics()

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	router.Use(monitoring.Middleware(metrics))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := fghttp.NewHandlers(registry, metrics)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/status", handlers.Status)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/services", handlers.ListServices)
	router.POST("/services/execute", handlers.ExecuteService)

	return &Server{
		router:   router,
		registry: registry,
		store:    store,
		metrics:  metrics,
		logger:   logger,
		cfg:      cfg,
	}, nil
}

// Run starts the server and blocks until it stops
func (s *Server) Run() error {
	addr := s.cfg.Server.Host + ":" + s.cfg.Server.Port
	s.logger.Info("starting server", zap.String("addr", addr))

	s.http = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	if s.http == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return s.http.Shutdown(ctx)
}

// Registry exposes the service registry, mainly for tests
func (s *Server) Registry() *service.Registry {
	return s.registry
}

func registerProviders(registry *service.Registry, store *backup.Store, logger *logging.Logger) {
	lister := inventory.NewLister(logger)
	organizer := organize.New(store, lister, logger)
	scanner := scan.NewScanner(store.Root(), logger)
	archiver := archive.New(logger)

	register := func(p service.Provider) {
		if err := registry.Register(p); err != nil {
			logger.Warn("failed to register provider", zap.Error(err))
		}
	}

	register(providers.NewFiles(lister))
	register(providers.NewOrganizer(organizer))
	register(providers.NewBackup(store))
	register(providers.NewScanner(scanner))
	register(providers.NewArchive(archiver))
	register(providers.NewSystem())
}
