package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/cartchef/backend/internal/middleware"
	"github.com/pageza/cartchef/backend/internal/service"
)

// CartHandler serves the cart panel and its recipe helper
type CartHandler struct {
	cartService       service.ICartService
	suggestionService service.ISuggestionService
	authService       middleware.TokenValidator
	limiter           *middleware.RateLimiter
	log               *zap.Logger
}

// NewCartHandler creates a new CartHandler. limiter may be nil when Redis is unavailable.
func NewCartHandler(cartService service.ICartService, suggestionService service.ISuggestionService, authService middleware.TokenValidator, limiter *middleware.RateLimiter, log *zap.Logger) *CartHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &CartHandler{
		cartService:       cartService,
		suggestionService: suggestionService,
		authService:       authService,
		limiter:           limiter,
		log:               log,
	}
}

// RegisterRoutes registers the cart routes
func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup) {
	cart := router.Group("/cart")
	cart.Use(middleware.AuthMiddleware(h.authService))
	{
		cart.GET("", h.GetCart)

		recipe := []gin.HandlerFunc{h.GenerateRecipe}
		if h.limiter != nil {
			recipe = append([]gin.HandlerFunc{h.limiter.RateLimitMiddleware()}, recipe...)
		}
		cart.GET("/generate-recipe", recipe...)
	}
}

// GetCart returns the cart panel for the authenticated user
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	panel, err := h.cartService.GetPanel(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("failed to load cart", zap.String("user_id", userID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to load cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": panel})
}

// GenerateRecipe asks the model what to cook with a product from the cart.
// A failed generation still answers 200 with the fallback suggestion.
func (h *CartHandler) GenerateRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var productID *uuid.UUID
	if raw := c.Query("product_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid product_id"})
			return
		}
		productID = &id
	}

	product, err := h.cartService.PickProduct(c.Request.Context(), userID, productID)
	switch {
	case errors.Is(err, service.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	case errors.Is(err, service.ErrItemNotInCart):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
		return
	case err != nil:
		h.log.Error("failed to pick cart product", zap.String("user_id", userID.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to load cart"})
		return
	}

	suggestion := h.suggestionService.Suggest(c.Request.Context(), product.Name)
	c.JSON(http.StatusOK, gin.H{"success": true, "suggestion": suggestion})
}
