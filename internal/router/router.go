package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/cartchef/backend/config"
	"github.com/pageza/cartchef/backend/internal/api"
	"github.com/pageza/cartchef/backend/internal/middleware"
	"github.com/pageza/cartchef/backend/internal/service"
)

// Dependencies is everything the routes need. Redis may be nil.
type Dependencies struct {
	Config            *config.Config
	DB                *gorm.DB
	Redis             *redis.Client
	AuthService       service.IAuthService
	CartService       service.ICartService
	SuggestionService service.ISuggestionService
	Logger            *zap.Logger
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(
		middleware.Recovery(log),
		middleware.RequestLogger(log),
		middleware.CORS(deps.Config.CORSOrigins),
		middleware.ErrorHandler(log),
	)

	api.NewHealthHandler(deps.DB, deps.Redis).RegisterRoutes(router)

	var limiter *middleware.RateLimiter
	if deps.Redis != nil && deps.Config.RecipeRateLimit > 0 {
		limiter = middleware.NewRecipeSuggestionRateLimiter(deps.Redis, deps.Config.RecipeRateLimit, log)
	} else {
		log.Info("recipe suggestion rate limiting disabled")
	}

	v1 := router.Group("/api")
	cartHandler := api.NewCartHandler(deps.CartService, deps.SuggestionService, deps.AuthService, limiter, log)
	cartHandler.RegisterRoutes(v1)

	return router
}
