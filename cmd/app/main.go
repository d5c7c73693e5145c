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
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"birthday-backend/internal/common/config"
	"birthday-backend/internal/common/logger"
	"birthday-backend/internal/common/middleware"
	contentredis "birthday-backend/internal/features/content/repository/redis"
	contentservice "birthday-backend/internal/features/content/service"
	giftredis "birthday-backend/internal/features/gift/repository/redis"
	giftservice "birthday-backend/internal/features/gift/service"
	mediaservice "birthday-backend/internal/features/media/service"
	selectionredis "birthday-backend/internal/features/selection/repository/redis"
	selectionservice "birthday-backend/internal/features/selection/service"
	"birthday-backend/internal/platform/cloudinary"
	redisplatform "birthday-backend/internal/platform/redis"

	contenthttp "birthday-backend/internal/features/content/delivery/http"
	gifthttp "birthday-backend/internal/features/gift/delivery/http"
	luckhttp "birthday-backend/internal/features/luckgame/delivery/http"
	mediahttp "birthday-backend/internal/features/media/delivery/http"
	selectionhttp "birthday-backend/internal/features/selection/delivery/http"
)

// @title           Birthday Website API
// @version         1.0
// @description     Backend for a single-tenant birthday celebration site: page content, gift catalog, choice log, media uploads and the luck game.

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey AdminPassword
// @in header
// @name X-Admin-Password
// @description Shared admin panel password

func main() {
	cfg := config.Load()

	logger.Init("birthday-backend", cfg.Debug)

	log.Info().Bool("debug", cfg.Debug).Msg("Starting birthday backend")

	redisClient, err := redisplatform.NewClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	log.Info().Msg("Redis connection established")

	cloudinaryClient, err := cloudinary.NewClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to init Cloudinary client")
	}

	contentRepo := contentredis.NewContentRepository(redisClient)
	giftRepo := giftredis.NewGiftRepository(redisClient)
	selectionRepo := selectionredis.NewSelectionRepository(redisClient)

	contentSvc := contentservice.NewContentService(contentRepo)
	giftSvc := giftservice.NewGiftService(giftRepo)
	selectionSvc := selectionservice.NewSelectionService(selectionRepo)
	mediaSvc := mediaservice.NewMediaService(cloudinaryClient)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler(log.Logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Accept", "X-Admin-Password", "X-Request-ID"}
	router.Use(cors.New(corsConfig))

	adminAuth := middleware.AdminAuth(cfg.Admin.Password)

	api := router.Group("/api")
	contenthttp.NewContentHandler(contentSvc).RegisterRoutes(api, adminAuth)
	gifthttp.NewGiftHandler(giftSvc).RegisterRoutes(api, adminAuth)
	selectionhttp.NewSelectionHandler(selectionSvc).RegisterRoutes(api, adminAuth)
	mediahttp.NewMediaHandler(mediaSvc).RegisterRoutes(api, adminAuth)
	luckhttp.NewLuckGameHandler(giftSvc, selectionSvc).RegisterRoutes(api)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "birthday-backend",
		})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
