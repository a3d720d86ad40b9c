package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/IJTechs/namedu-backend/internal/bot"
	"github.com/IJTechs/namedu-backend/internal/config"
	"github.com/IJTechs/namedu-backend/internal/handler"
	"github.com/IJTechs/namedu-backend/internal/infrastructure/database"
	"github.com/IJTechs/namedu-backend/internal/logger"
	"github.com/IJTechs/namedu-backend/internal/media"
	"github.com/IJTechs/namedu-backend/internal/metrics"
	"github.com/IJTechs/namedu-backend/internal/middleware"
	"github.com/IJTechs/namedu-backend/internal/repository"
	"github.com/IJTechs/namedu-backend/internal/service"
	"github.com/IJTechs/namedu-backend/internal/telegram"
	"github.com/IJTechs/namedu-backend/internal/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration",
			slog.String("error", err.Error()))
	}

	// Connect to database
	pool, err := database.NewPostgres(context.Background(), database.PoolConfig{
		Host:              cfg.DBHost,
		Port:              cfg.DBPort,
		User:              cfg.DBUser,
		Password:          cfg.DBPassword,
		Database:          cfg.DBName,
		SSLMode:           cfg.DBSSLMode,
		MaxConns:          cfg.DBMaxConns,
		MinConns:          cfg.DBMinConns,
		MaxConnLifetime:   cfg.DBMaxConnLifetime,
		MaxConnIdleTime:   cfg.DBMaxConnIdleTime,
		HealthCheckPeriod: cfg.DBHealthCheckPeriod,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database",
			slog.String("error", err.Error()))
	}
	defer pool.Close()

	// Start database pool metrics collector
	poolStatsCollector := metrics.NewPoolStatsCollector(pool)
	poolStatsCollector.Start(15 * time.Second)
	defer poolStatsCollector.Stop()

	// Initialize repositories
	newsRepo := repository.NewPostgresNewsRepository(pool)
	adminRepo := repository.NewPostgresAdminRepository(pool)
	channelRepo := repository.NewPostgresChannelRepository(pool)

	// Initialize validator
	v := validator.NewValidator()

	// Initialize publishing pipeline. Each article author publishes through
	// their own bot token, so senders are created per token on demand.
	senderFactory := func(botToken string) (service.ChannelSender, error) {
		return telegram.NewClient(botToken)
	}
	publisher := service.NewPublisher(newsRepo, channelRepo, senderFactory, cfg.WebsiteURL)

	// Initialize services
	newsService := service.NewNewsService(newsRepo, publisher, v)
	channelService := service.NewChannelService(channelRepo, v)
	adminService := service.NewAdminService(adminRepo, v)

	// Initialize the bot dialogue engines, one per bound admin
	uploader := media.NewCloudinaryUploader(cfg.CloudinaryCloudName, cfg.CloudinaryUploadPreset, cfg.CloudinaryFolder)
	botManager := bot.NewManager(adminRepo, channelRepo, uploader, newsService, cfg.SessionTTL)
	if err := botManager.Start(context.Background()); err != nil {
		logger.Fatal("Failed to start bot manager",
			slog.String("error", err.Error()))
	}

	// Initialize handlers
	newsHandler := handler.NewNewsHandler(newsService)
	channelHandler := handler.NewChannelHandler(channelService)
	adminHandler := handler.NewAdminHandler(adminService)
	healthHandler := handler.NewHealthHandler(pool)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(gin.Logger())

	// Health and metrics endpoints
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/live", healthHandler.Live)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		news := v1.Group("/news")
		{
			news.POST("", newsHandler.CreateNews)
			news.GET("", newsHandler.ListNews)
			news.GET("/:id", newsHandler.GetNews)
			news.PUT("/:id", newsHandler.UpdateNews)
			news.DELETE("/:id", newsHandler.DeleteNews)
		}

		channels := v1.Group("/channels")
		{
			channels.POST("", channelHandler.CreateChannel)
			channels.GET("", channelHandler.ListChannels)
			channels.GET("/:id", channelHandler.GetChannel)
			channels.PUT("/:id", channelHandler.UpdateChannel)
			channels.DELETE("/:id", channelHandler.DeleteChannel)
		}

		admins := v1.Group("/admins")
		{
			admins.POST("", adminHandler.CreateAdmin)
			admins.GET("", adminHandler.ListAdmins)
			admins.GET("/:id", adminHandler.GetAdmin)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting server",
			slog.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server",
				slog.String("error", err.Error()))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	// Stop the bots first so no dialogue is mid-flight during shutdown
	logger.Info("Stopping bot manager")
	botManager.Stop()

	// Shutdown HTTP server
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error",
			slog.String("error", err.Error()))
	}

	logger.Info("Server exited")
}
