package routes

import (
	"io"
	"os"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"meals_on_wheels/internal/config"
	"meals_on_wheels/internal/controllers"
	"meals_on_wheels/internal/events"
	"meals_on_wheels/internal/metrics"
	"meals_on_wheels/internal/middleware"
	"meals_on_wheels/internal/repository"
	"meals_on_wheels/internal/storage"
)

// Deps carries everything the router needs from main.
type Deps struct {
	Config    *config.Config
	DB        *gorm.DB
	Events    events.Publisher
	AccessLog io.Writer
}

func SetupRouter(deps Deps) *gin.Engine {
	cfg := deps.Config
	if deps.Events == nil {
		deps.Events = events.NopPublisher{}
	}
	if deps.AccessLog == nil {
		deps.AccessLog = os.Stdout
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(ginlog.SetLogger(
		ginlog.WithWriter(deps.AccessLog),
		ginlog.WithUTC(true),
		ginlog.WithSkipPath([]string{"/health", "/metrics"}),
	))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	images := storage.NewImageStore(cfg.UploadDir, cfg.MaxImageBytes)
	jwtManager := middleware.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL, repository.NewTokenRepository(deps.DB))

	authController := controllers.NewAuthController(repository.NewUserRepository(deps.DB), jwtManager, images)
	mealController := controllers.NewMealController(repository.NewMealRepository(deps.DB), images, deps.Events)
	healthController := &controllers.HealthController{DB: deps.DB}

	AuthRoutes(r, authController, jwtManager)
	MealRoutes(r, mealController)

	r.Static("/uploads", cfg.UploadDir)
	r.GET("/health", healthController.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	return r
}
