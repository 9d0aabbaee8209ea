package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/catalog_api/internal/config"
	"github.com/GTDGit/catalog_api/internal/database"
	"github.com/GTDGit/catalog_api/internal/handler"
	"github.com/GTDGit/catalog_api/internal/metrics"
	"github.com/GTDGit/catalog_api/internal/middleware"
	"github.com/GTDGit/catalog_api/internal/pubsub"
	"github.com/GTDGit/catalog_api/internal/repository"
	"github.com/GTDGit/catalog_api/internal/service"
	"github.com/GTDGit/catalog_api/internal/sse"
	"github.com/GTDGit/catalog_api/internal/worker"
)

// main is the application entrypoint for the catalog admin API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting catalog api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := database.Migrate(db.DB, cfg.DB.MigrationsPath); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 4. Product events: in-process hub, relayed through Redis when configured
	hub := sse.NewHub()
	var publisher service.EventPublisher = sse.NewHubPublisher(hub)
	var redisClient *pubsub.RedisClient
	if cfg.Redis.Enabled() {
		redisClient, err = pubsub.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Error().Err(err).Msg("redis connection failed")
			fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		log.Info().Msg("redis connected successfully")

		publisher = pubsub.NewRedisPublisher(redisClient, cfg.Events.Channel)
		go worker.NewEventRelayWorker(redisClient, hub, cfg.Events.Channel).Start(ctx)
	} else {
		log.Info().Msg("REDIS_HOST not set, product events stay in-process")
	}

	// 5. Initialize repositories
	productRepo := repository.NewProductRepository(db)
	lookupRepo := repository.NewLookupRepository(db)
	pathRepo := repository.NewLearningPathRepository(db)

	// 6. Initialize services
	validator := service.NewValidator()
	productSvc := service.NewProductService(productRepo, validator, publisher)
	pathSvc := service.NewLearningPathService(pathRepo, productRepo, validator)

	// 7. Initialize handlers
	handlers := &Handlers{
		Health:       handler.NewHealthHandler(db, redisClient, hub),
		Product:      handler.NewProductHandler(productSvc),
		Lookup:       handler.NewLookupHandler(lookupRepo),
		LearningPath: handler.NewLearningPathHandler(pathSvc),
		Event:        handler.NewEventHandler(hub, cfg.Events.Heartbeat),
	}

	// 8. Setup router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.HTTP.AllowedOrigins))
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	setupRoutes(router, handlers)

	// 9. Start HTTP server
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

	// 10. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 11. Stop the relay, then drain HTTP with timeout
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health       *handler.HealthHandler
	Product      *handler.ProductHandler
	Lookup       *handler.LookupHandler
	LearningPath *handler.LearningPathHandler
	Event        *handler.EventHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers) {
	router.GET("/health", handlers.Health.GetHealth)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api")
	{
		// Products
		api.GET("/products", handlers.Product.ListProducts)
		api.POST("/products", handlers.Product.CreateProduct)
		api.GET("/products/:id", handlers.Product.GetProduct)
		api.PUT("/products/:id", handlers.Product.UpdateProduct)
		api.DELETE("/products/:id", handlers.Product.DeleteProduct)
		api.POST("/products/:id/clone", handlers.Product.CloneProduct)
		api.POST("/products/:id/versions", handlers.Product.AddVersion)

		// Lookups
		api.GET("/brands", handlers.Lookup.ListBrands)
		api.GET("/ecosystems", handlers.Lookup.ListEcosystems)
		api.GET("/fulfillment-platforms", handlers.Lookup.ListFulfillmentPlatforms)
		api.GET("/product-features", handlers.Lookup.ListFeatures)
		api.GET("/languages", handlers.Lookup.ListLanguages)
		api.GET("/cost-centers", handlers.Lookup.ListCostCenters)

		// Learning paths
		api.GET("/learning-paths", handlers.LearningPath.ListPaths)
		api.POST("/learning-paths", handlers.LearningPath.CreatePath)
		api.POST("/learning-paths/:id/items", handlers.LearningPath.AddItem)
		api.DELETE("/learning-paths/:id/items/:itemId", handlers.LearningPath.RemoveItem)

		// Change notifications
		api.GET("/events", handlers.Event.Stream)
	}
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
