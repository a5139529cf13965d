package api

import (
	"github.com/gin-gonic/gin"
	"github.com/traymate/mealmenu/internal/api/handler"
	"github.com/traymate/mealmenu/internal/api/middleware"
	"github.com/traymate/mealmenu/internal/config"
	"github.com/traymate/mealmenu/internal/logger"
	"github.com/traymate/mealmenu/internal/service"
)

// SetupRouter configures the Gin router with all routes.
// Parameters:
//   - cfg: server configuration (mode, CORS).
//   - mealService: backs GET /meals.
//   - db: checked by GET /health.
//   - log: base logger for request-scoped loggers.
//
// Returns:
//   - *gin.Engine: router ready to be served.
func SetupRouter(
	cfg *config.ServerConfig,
	mealService *service.MealService,
	db handler.HealthChecker,
	log *logger.Logger,
) *gin.Engine {
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(cfg.CORS))

	healthHandler := handler.NewHealthHandler(db)
	mealHandler := handler.NewMealHandler(mealService)

	r.GET("/health", healthHandler.Health)
	r.GET("/meals", mealHandler.ListMeals)

	return r
}
