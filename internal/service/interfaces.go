package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/cartchef/backend/internal/models"
	"github.com/pageza/cartchef/backend/internal/types"
)

var (
	ErrEmptyCart     = errors.New("your cart is empty")
	ErrItemNotInCart = errors.New("product is not in your cart")
)

// IAuthService defines the interface for token operations
type IAuthService interface {
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(userID uuid.UUID, name string) (string, error)
}

// ICartService defines the interface for reading a user's cart
type ICartService interface {
	ListItems(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	GetPanel(ctx context.Context, userID uuid.UUID) (*types.CartPanel, error)
	PickProduct(ctx context.Context, userID uuid.UUID, productID *uuid.UUID) (*models.Product, error)
}

// ISuggestionService defines the interface for recipe suggestions
type ISuggestionService interface {
	Suggest(ctx context.Context, product string) *types.RecipeSuggestion
}

// ImageSigner turns stored image references into URLs a browser can load
type ImageSigner interface {
	SignImageURL(ctx context.Context, ref string) (string, error)
}

// SuggestionCache stores successful suggestions by normalized product name
type SuggestionCache interface {
	Get(ctx context.Context, key string) (*types.RecipeSuggestion, bool, error)
	Set(ctx context.Context, key string, s *types.RecipeSuggestion, ttl time.Duration) error
}
