package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"halifax-hub/internal/cache"
	"halifax-hub/internal/cache/memory"
	rediscache "halifax-hub/internal/cache/redis"
	"halifax-hub/internal/config"
	"halifax-hub/internal/handlers"
	"halifax-hub/internal/services"
	"halifax-hub/internal/session"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using the process environment")
	}

	// 2. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	// 3. Logger
	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// 4. Geocode Cache
	// Redis when an address is configured, in-process otherwise.
	geoCache := buildCache(cfg, logger)
	defer geoCache.Close()

	// 5. Initialize Core Services (Dependencies)
	var geocoder services.Geocoder
	if cfg.GeocodingEnabled {
		geocoder = services.NewGeoService(geoCache, cfg.CacheTTL, logger)
		log.Println("✅ Geocoding enabled via OpenStreetMap Nominatim.")
	} else {
		geocoder = services.NoopGeocoder{}
		log.Println("⚠️  Geocoding disabled, pins keep their submitted coordinates.")
	}
	careerModel := services.NewCareerModel(cfg, logger)
	pinService := services.NewPinService(geocoder, cfg, logger)
	careerService := services.NewCareerService(careerModel, logger)

	// 6. Sessions
	sessionManager := session.NewManager(cfg.SessionSecret, cfg.SessionTTL, logger)

	// 7. Initialize Handlers
	pinHandler := handlers.NewPinHandler(pinService)
	careerHandler := handlers.NewCareerHandler(careerService)

	// 8. Setup Router & CORS
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true // For development only
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))
	r.Use(sessionManager.Middleware())

	// 9. Define Routes
	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		// Pin Routes
		pins := api.Group("/pins")
		{
			pins.POST("", pinHandler.CreatePin)
			pins.GET("", pinHandler.ListPins)
			pins.POST("/like", pinHandler.LikePin)
			pins.GET("/export", pinHandler.ExportPins)
			pins.POST("/import", pinHandler.ImportPins)
			pins.GET("/map", pinHandler.MapView)
			pins.GET("/categories", pinHandler.Categories)
		}

		// Career Routes
		careers := api.Group("/careers")
		{
			careers.GET("/options", careerHandler.Options)
			careers.POST("/generate", careerHandler.Generate)
			careers.GET("/export", careerHandler.Export)
		}
	}

	log.Println("🚀 Server starting on port " + cfg.Port + "...")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func buildCache(cfg *config.Config, logger *zap.Logger) cache.Cache {
	opts := cache.DefaultOptions()
	opts.DefaultTTL = cfg.CacheTTL
	if cfg.RedisAddr != "" {
		opts.RedisAddr = cfg.RedisAddr
		opts.RedisPassword = cfg.RedisPassword
		opts.RedisDB = cfg.RedisDB
		logger.Info("using Redis for the geocode cache", zap.String("addr", cfg.RedisAddr))
		return rediscache.New(opts)
	}
	return memory.New(opts)
}
