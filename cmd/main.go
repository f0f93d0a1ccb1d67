package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rate-engine-service/internal/config"
	"rate-engine-service/internal/events"
	"rate-engine-service/internal/handlers"
	"rate-engine-service/internal/middleware"
	"rate-engine-service/internal/models"
	"rate-engine-service/internal/repository"
	"rate-engine-service/internal/services"
)

func main() {
	log.Println("Starting Rate Engine Service...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded successfully")

	// Connect to database
	db, err := connectDatabase(cfg.GetDatabaseDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Database connected successfully")

	// Run migrations
	if err := runMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Seed box templates
	if err := repository.SeedBoxTemplates(db); err != nil {
		log.Printf("Warning: Failed to seed box templates: %v", err)
	}

	// Initialize Redis client (optional - graceful degradation if Redis unavailable)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Failed to parse Redis URL: %v", err)
			log.Println("Continuing without Redis caching...")
		} else {
			redisClient = redis.NewClient(opt)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := redisClient.Ping(ctx).Err(); err != nil {
				log.Printf("Warning: Failed to connect to Redis: %v", err)
				log.Println("Continuing without Redis caching...")
				redisClient = nil
			} else {
				log.Println("✓ Connected to Redis for caching")
			}
		}
	} else {
		log.Println("REDIS_URL not configured, caching disabled")
	}

	// Application logger
	appLogger := logrus.New()
	appLogger.SetFormatter(&logrus.JSONFormatter{})
	appLogger.SetLevel(logrus.InfoLevel)

	// Initialize NATS events publisher
	var eventsPublisher *events.Publisher
	if cfg.NATSURL != "" {
		eventsPublisher, err = events.NewPublisher(appLogger)
		if err != nil {
			log.Printf("WARNING: Failed to initialize events publisher: %v (events won't be published)", err)
			eventsPublisher = nil
		} else {
			defer eventsPublisher.Close()
			log.Println("✓ NATS events publisher initialized")
		}
	} else {
		log.Println("NATS_URL not configured, events disabled")
	}

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepository(db, redisClient)
	policyRepo := repository.NewPolicyRepository(db, redisClient)
	log.Println("Repositories initialized")

	// Initialize quote service
	var publisher services.EventPublisher
	if eventsPublisher != nil {
		publisher = eventsPublisher
	}
	quoteService := services.NewQuoteService(catalogRepo, policyRepo, publisher, appLogger)
	log.Println("Quote service initialized")

	// Initialize handlers
	quoteHandler := handlers.NewQuoteHandler(quoteService)
	configHandler := handlers.NewConfigHandler(catalogRepo, policyRepo)
	log.Println("Handlers initialized")

	// Setup router
	router := setupRouter(quoteHandler, configHandler, cfg)
	log.Printf("Router configured")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Starting server on %s (environment: %s)", addr, cfg.Server.Env)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// connectDatabase establishes a connection to the PostgreSQL database
func connectDatabase(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Item{},
		&models.Box{},
		&models.BoxTemplate{},
		&models.ShippingRule{},
		&models.CompanyShippingPrefs{},
	)
}

// setupRouter configures the Gin router with routes and middleware
func setupRouter(quoteHandler *handlers.QuoteHandler, configHandler *handlers.ConfigHandler, cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORS())
	router.Use(middleware.CompanyMiddleware())
	router.Use(middleware.ErrorHandler())

	// Health check
	router.GET("/health", quoteHandler.HealthCheck)

	// API routes
	api := router.Group("/api/shipping")
	{
		// Packing and quoting
		api.POST("/pack", quoteHandler.PackOrder)
		api.POST("/quotes", quoteHandler.GetQuotes)

		// Box catalog
		api.GET("/boxes", configHandler.ListBoxes)
		api.POST("/boxes", configHandler.CreateBox)
		api.PUT("/boxes/:id", configHandler.UpdateBox)
		api.DELETE("/boxes/:id", configHandler.DeleteBox)
		api.GET("/boxes/templates", configHandler.ListBoxTemplates)
		api.POST("/boxes/from-template", configHandler.CreateBoxFromTemplate)

		// Shipping rules
		api.GET("/rules", configHandler.ListRules)
		api.POST("/rules", configHandler.CreateRule)
		api.DELETE("/rules/:id", configHandler.DeleteRule)

		// Shipping settings
		api.GET("/settings", configHandler.GetSettings)
		api.PUT("/settings", configHandler.UpdateSettings)
	}

	return router
}
