package testhelpers

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/cartchef/backend/internal/models"
	"github.com/pageza/cartchef/backend/internal/types"
)

// MockAuthService is a mock implementation of the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

func (m *MockAuthService) GenerateToken(userID uuid.UUID, name string) (string, error) {
	args := m.Called(userID, name)
	return args.String(0), args.Error(1)
}

// MockCartService is a mock implementation of the CartService interface
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) ListItems(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartItem), args.Error(1)
}

func (m *MockCartService) GetPanel(ctx context.Context, userID uuid.UUID) (*types.CartPanel, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.CartPanel), args.Error(1)
}

func (m *MockCartService) PickProduct(ctx context.Context, userID uuid.UUID, productID *uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

// MockSuggestionService is a mock implementation of the SuggestionService interface
type MockSuggestionService struct {
	mock.Mock
}

func (m *MockSuggestionService) Suggest(ctx context.Context, product string) *types.RecipeSuggestion {
	args := m.Called(ctx, product)
	return args.Get(0).(*types.RecipeSuggestion)
}
