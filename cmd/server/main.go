package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"slotbot-backend/internal/common/cache"
	"slotbot-backend/internal/common/config"
	"slotbot-backend/internal/common/logger"
	"slotbot-backend/internal/common/middleware"
	alertHTTP "slotbot-backend/internal/features/alert/delivery/http"
	alertRepo "slotbot-backend/internal/features/alert/repository/postgres"
	alertService "slotbot-backend/internal/features/alert/service"
	authHTTP "slotbot-backend/internal/features/auth/delivery/http"
	authRepo "slotbot-backend/internal/features/auth/repository/redis"
	authService "slotbot-backend/internal/features/auth/service"
	casinoHTTP "slotbot-backend/internal/features/casino/delivery/http"
	casinoRepo "slotbot-backend/internal/features/casino/repository/postgres"
	casinoService "slotbot-backend/internal/features/casino/service"
	clicktrackHTTP "slotbot-backend/internal/features/clicktrack/delivery/http"
	clicktrackRepo "slotbot-backend/internal/features/clicktrack/repository/postgres"
	clicktrackService "slotbot-backend/internal/features/clicktrack/service"
	storyHTTP "slotbot-backend/internal/features/story/delivery/http"
	storyRepo "slotbot-backend/internal/features/story/repository/postgres"
	storyService "slotbot-backend/internal/features/story/service"
	userHTTP "slotbot-backend/internal/features/user/delivery/http"
	userRepo "slotbot-backend/internal/features/user/repository/postgres"
	userService "slotbot-backend/internal/features/user/service"
	"slotbot-backend/internal/platform/db"
	"slotbot-backend/internal/platform/mailer"
	"slotbot-backend/internal/platform/postback"
	"slotbot-backend/internal/platform/push"
	"slotbot-backend/internal/platform/recaptcha"
	platformredis "slotbot-backend/internal/platform/redis"
	"slotbot-backend/internal/workers"
)

func main() {
	cfg := config.Load()
	logger.Init("slotbot-backend", cfg.Debug)

	logger.Info().Bool("debug", cfg.Debug).Msg("Starting SlotBot backend")

	ctx := context.Background()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Info().Msg("Database ready")

	redisClient, err := platformredis.Open(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	cacheService := cache.NewCacheService(redisClient)

	// Platform clients.
	mailClient := mailer.NewClient(cfg.Mail.APIURL, cfg.Mail.APIKey, cfg.Mail.From)
	pushClient := push.NewClient(cfg.Push.VAPIDPublicKey, cfg.Push.VAPIDPrivateKey, cfg.Push.VAPIDSubject)
	captchaClient := recaptcha.NewClient(cfg.RecaptchaSecret)
	postbackClient := postback.NewClient(cfg.PostbackURL)

	// Repositories.
	users := userRepo.NewPostgresRepository(database)
	alerts := alertRepo.NewPostgresRepository(database)
	casinos := casinoRepo.NewPostgresRepository(database)
	clicktracks := clicktrackRepo.NewPostgresRepository(database)
	stories := storyRepo.NewPostgresRepository(database)
	sessions := authRepo.NewSessionRepository(redisClient)

	// Services.
	dispatcher := alertService.NewDispatcher(alerts, mailClient, cfg.BaseURL)
	alertSvc := alertService.NewAlertService(alerts, users, casinos, dispatcher, pushClient, cacheService)
	casinoSvc := casinoService.NewCasinoService(casinos, cacheService, cfg.Cache.CasinoTTL)
	userSvc := userService.NewUserService(users)
	authSvc := authService.NewAuthService(sessions, users, cfg.SessionTTL)
	clicktrackSvc := clicktrackService.NewClickTrackService(clicktracks, postbackClient)
	storySvc := storyService.NewStoryService(stories, captchaClient)

	// Background jobs.
	scheduler, err := workers.NewScheduler(users, alerts, mailClient, cacheService, cfg.Cache.ClickStatsTTL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create scheduler")
	}
	if err := scheduler.Start(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start scheduler")
	}
	defer func() {
		if err := scheduler.Stop(); err != nil {
			logger.Error().Err(err).Msg("Scheduler shutdown failed")
		}
	}()

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.SessionAuth(authSvc))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept"}
	router.Use(cors.New(corsConfig))

	alertHandler := alertHTTP.NewAlertHandler(alertSvc, cfg)
	api := router.Group("/api")
	{
		authHTTP.NewAuthHandler(authSvc).RegisterRoutes(api)
		userHTTP.NewUserHandler(userSvc).RegisterRoutes(api)
		alertHandler.RegisterRoutes(api)
		casinoHTTP.NewCasinoHandler(casinoSvc, cfg).RegisterRoutes(api)
		clicktrackHTTP.NewClickTrackHandler(clicktrackSvc).RegisterRoutes(api)
		storyHTTP.NewStoryHandler(storySvc, cfg).RegisterRoutes(api)
	}
	alertHandler.RegisterRedirectRoutes(router)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	logger.Info().Msg("Server exited")
}
