package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shopmate/shopmate-bot/internal/bot"
	"github.com/shopmate/shopmate-bot/internal/cache"
	"github.com/shopmate/shopmate-bot/internal/config"
	"github.com/shopmate/shopmate-bot/internal/database"
	"github.com/shopmate/shopmate-bot/internal/handler"
	"github.com/shopmate/shopmate-bot/internal/middleware"
	"github.com/shopmate/shopmate-bot/internal/repository"
	"github.com/shopmate/shopmate-bot/internal/service"
	"github.com/shopmate/shopmate-bot/internal/sse"
	"github.com/shopmate/shopmate-bot/internal/worker"
)

// main is the application entrypoint for the ShopMate catalog bot.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting shopmate bot")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	// 3c. Initialize caches
	sessions := cache.NewSessionCache(redisClient, cfg.Telegram.SessionTTL)
	viewCounter := cache.NewViewCounter(redisClient)

	// 4. Initialize Telegram bot API
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error().Err(err).Msg("telegram bot initialization failed")
		fmt.Fprintf(os.Stderr, "telegram bot initialization failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Str("bot", api.Self.UserName).Msg("telegram bot authorized")

	// 5. Initialize repositories
	productRepo := repository.NewProductRepository(db)
	dealRepo := repository.NewDealRepository(db)
	queryRepo := repository.NewQueryRepository(db)
	viewRepo := repository.NewViewRepository(db)
	userRepo := repository.NewUserRepository(db)

	// 5a. SSE hub for live dashboard activity
	hub := sse.NewHub()
	notifier := sse.NewHubNotifier(hub)

	// 6. Initialize services
	catalogSvc := service.NewCatalogService(productRepo, dealRepo)
	searchSvc := service.NewSearchService(catalogSvc)
	analyticsSvc := service.NewAnalyticsService(queryRepo, viewRepo, viewCounter, notifier)
	userSvc := service.NewUserService(userRepo)
	broadcastSvc := service.NewBroadcastService(bot.NewSender(api))
	authSvc, err := service.NewAuthService(cfg)
	if err != nil {
		log.Error().Err(err).Msg("auth service initialization failed")
		os.Exit(1)
	}

	// 6a. Bot
	tgBot := bot.New(api, catalogSvc, searchSvc, analyticsSvc, userSvc, sessions,
		cfg.Telegram.WelcomeDelay, cfg.Telegram.HelpContact)

	// 7. Initialize handlers
	handlers := &Handlers{
		Health:       handler.NewHealthHandler(db),
		Auth:         handler.NewAuthHandler(authSvc),
		Product:      handler.NewProductHandler(catalogSvc),
		Deal:         handler.NewDealHandler(catalogSvc),
		Analytics:    handler.NewAnalyticsHandler(analyticsSvc),
		Notification: handler.NewNotificationHandler(broadcastSvc, userSvc),
		Webhook:      handler.NewWebhookHandler(tgBot),
		SSE:          handler.NewSSEHandler(hub, cfg.JWTSecret),
	}

	// 8. Initialize middleware
	jwtMw := middleware.NewJWTMiddleware(cfg.JWTSecret)

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, jwtMw)

	// 10. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 11. Start workers and update intake
	go worker.NewViewSyncWorker(viewCounter, viewRepo, cfg.Worker.ViewSyncInterval).Start(ctx)

	if cfg.Telegram.WebhookURL != "" {
		wh, err := tgbotapi.NewWebhook(cfg.Telegram.WebhookURL + "/webhook/telegram")
		if err != nil {
			log.Fatal().Err(err).Msg("invalid webhook URL")
		}
		if _, err := api.Request(wh); err != nil {
			log.Fatal().Err(err).Msg("failed to register telegram webhook")
		}
		log.Info().Str("url", cfg.Telegram.WebhookURL).Msg("telegram webhook registered")
	} else {
		go tgBot.Run(ctx)
	}

	// 12. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 13. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 14. Cancel context to stop workers and polling
	cancel()

	// 15. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health       *handler.HealthHandler
	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	Deal         *handler.DealHandler
	Analytics    *handler.AnalyticsHandler
	Notification *handler.NotificationHandler
	Webhook      *handler.WebhookHandler
	SSE          *handler.SSEHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware) {
	router.GET("/health", handlers.Health.GetHealth)
	router.POST("/webhook/telegram", handlers.Webhook.HandleTelegramUpdate)
	router.POST("/api/auth/login", handlers.Auth.Login)

	// SSE authenticates via token query param (EventSource can't set headers).
	router.GET("/api/analytics/stream", handlers.SSE.Stream)

	// Dashboard API (JWT protected)
	api := router.Group("/api")
	api.Use(jwtMiddleware.Handle())
	{
		api.GET("/products", handlers.Product.ListProducts)
		api.POST("/products", handlers.Product.CreateProduct)
		api.DELETE("/products/:id", handlers.Product.DeleteProduct)

		api.GET("/analytics", handlers.Analytics.GetAnalytics)

		api.GET("/today-deals", handlers.Deal.ListDeals)
		api.POST("/today-deals", handlers.Deal.ReplaceDeals)

		api.POST("/send-message", handlers.Notification.SendNotification)
	}

	// Legacy dashboard route, same handler as /api/send-message.
	router.POST("/admin/send-notification", jwtMiddleware.Handle(), handlers.Notification.SendNotification)
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
