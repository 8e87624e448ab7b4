package api

import (
	"net/http"
	"time"

	authHandler "smart-pantry-chef/internal/api/handlers/auth"
	"smart-pantry-chef/internal/api/handlers/health"
	mlHandler "smart-pantry-chef/internal/api/handlers/ml"
	recipeHandler "smart-pantry-chef/internal/api/handlers/recipe"
	translateHandler "smart-pantry-chef/internal/api/handlers/translate"
	"smart-pantry-chef/internal/api/middleware"
	"smart-pantry-chef/internal/core/auth"
	"smart-pantry-chef/internal/core/image"
	"smart-pantry-chef/internal/core/ml"
	"smart-pantry-chef/internal/core/recipe"
	"smart-pantry-chef/internal/core/translation"
	"smart-pantry-chef/internal/infrastructure/config"
	"smart-pantry-chef/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// room for multipart headers around an upload of the maximum size
	multipartOverhead = 1 << 20
	bannerText        = "Smart Pantry Chef API is running..."
)

// SetupRouter wires services and routes
func SetupRouter(cfg *config.Config, store auth.UserStore) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())
	router.Use(middleware.RequestContext(cfg.IsDevelopment()))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORS.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Upload.MaxBytes + multipartOverhead))

	translationClient := translation.NewClient(cfg.Translation)
	normalizer := translation.NewNormalizer(
		translation.NewTranslator(translationClient, cfg.Translation.SourceLanguage),
		cfg.Translation.TargetLanguage,
		cfg.Translation.Concurrency,
	)
	gateway := recipe.NewGateway(cfg.Recipe, normalizer)
	authService := auth.NewService(store, cfg.Auth)

	authH := authHandler.NewHandler(authService)
	recipeH := recipeHandler.NewHandler(gateway)
	translateH := translateHandler.NewHandler(translationClient)
	mlH := mlHandler.NewHandler(ml.NewClient(cfg.ML), image.NewService(cfg.Upload.MaxBytes), cfg.Upload.MaxBytes)
	healthH := health.NewHandler(cfg.App.Version, store)

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, bannerText)
	})
	router.GET("/health", healthH.HealthCheck)
	router.GET("/ready", healthH.ReadinessCheck)
	router.GET("/live", healthH.LivenessCheck)

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authH.Register)
			authGroup.POST("/login", authH.Login)
		}

		api.POST("/ml/predict-image", mlH.PredictImage)

		recipeGroup := api.Group("/recipes")
		{
			recipeGroup.POST("/by-ingredients", recipeH.FindByIngredients)
			recipeGroup.GET("/:id", recipeH.GetByID)
		}

		api.POST("/translate", translateH.Translate)
	}

	router.NoRoute(func(c *gin.Context) {
		common.RespondError(c, http.StatusNotFound, "API endpoint not found", nil)
	})

	common.LogInfo("Router setup completed",
		zap.String("frontend_url", cfg.CORS.FrontendURL),
		zap.Int("translation_concurrency", cfg.Translation.Concurrency),
		zap.Int64("max_upload_bytes", cfg.Upload.MaxBytes),
	)

	return router
}
