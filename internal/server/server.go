package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/finalfeedback/finalfeedback/internal/config"
	"github.com/finalfeedback/finalfeedback/internal/handler"
	"github.com/finalfeedback/finalfeedback/internal/middleware"
	"github.com/finalfeedback/finalfeedback/internal/notify"
	"github.com/finalfeedback/finalfeedback/internal/ratelimit"
	"github.com/finalfeedback/finalfeedback/internal/repository"
	"github.com/finalfeedback/finalfeedback/internal/service"
	"github.com/finalfeedback/finalfeedback/internal/storage"
	"github.com/finalfeedback/finalfeedback/web"
)

type Server struct {
	router          *gin.Engine
	config          *config.Config
	db              *storage.SQLite
	logger          *zap.Logger
	feedbackHandler *handler.FeedbackHandler
	adminHandler    *handler.AdminHandler
	systemHandler   *handler.SystemHandler
	httpServer      *http.Server
}

func New(cfg *config.Config, db *storage.SQLite, logger *zap.Logger) *Server {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	// ClientIP trusts forwarded headers only from these proxies; an empty
	// list means the peer address is always the client key.
	_ = router.SetTrustedProxies(cfg.Server.TrustedProxies)
	router.SetHTMLTemplate(web.Templates())

	feedbackRepo := repository.NewFeedbackRepository(db)
	cooldown := ratelimit.NewCooldown(cfg.RateLimit.Window)
	attempts := ratelimit.NewAttempts(cfg.RateLimit.MaxAttemptsPerHour, time.Hour)
	notifier := notify.NewDiscord(cfg.Discord.WebhookURL, logger)
	feedbackService := service.NewFeedbackService(feedbackRepo, cooldown, attempts, notifier, logger)

	s := &Server{
		router:          router,
		config:          cfg,
		db:              db,
		logger:          logger,
		feedbackHandler: handler.NewFeedbackHandler(feedbackService, cfg.Player),
		adminHandler:    handler.NewAdminHandler(feedbackService, cfg.Admin, cfg.Player),
		systemHandler:   handler.NewSystemHandler(db, logger),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recovery(s.logger))
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.Logger(s.logger))
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.systemHandler.Health)

	// Public routes
	s.router.GET("/", s.feedbackHandler.Index)
	s.router.POST("/submit", s.feedbackHandler.Submit)

	// Admin routes (not linked from the main site)
	s.router.GET("/admin", s.adminHandler.Login)
	s.router.GET("/admin/panel",
		s.adminHandler.DefaultPasswordGuard,
		middleware.RequireAdmin(s.config.Admin),
		s.adminHandler.Panel)
	s.router.DELETE("/admin/delete/:id",
		s.adminHandler.DefaultPasswordGuard,
		middleware.RequireAdmin(s.config.Admin),
		s.adminHandler.Delete)

	// Static files: bundled stylesheet plus operator-supplied images
	s.router.StaticFS("/static", http.FS(web.Static()))
	s.router.Static("/assets", "web/assets")
}

func (s *Server) Run(addr string) error {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting FinalFeedback server",
		zap.String("addr", addr),
		zap.String("environment", s.config.Server.Environment))

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

func (s *Server) Router() *gin.Engine {
	return s.router
}
