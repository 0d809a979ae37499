package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/cartchef/backend/internal/models"
	"github.com/pageza/cartchef/backend/internal/pricing"
	"github.com/pageza/cartchef/backend/internal/types"
)

const (
	checkoutPath = "/checkout"
	shopPath     = "/"
)

// CartService reads carts and shapes them into the cart panel
type CartService struct {
	db     *gorm.DB
	images ImageSigner
	logger *zap.Logger
}

// NewCartService creates a new CartService. images may be nil, in which case
// stored image references are returned as-is.
func NewCartService(db *gorm.DB, images ImageSigner, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{db: db, images: images, logger: logger}
}

// ListItems returns the user's cart lines with their products, oldest first
func (s *CartService) ListItems(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	err := s.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ? AND quantity > 0", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}

	// Products deleted from the catalogue preload as zero values
	live := items[:0]
	for _, item := range items {
		if item.Product.ID != uuid.Nil {
			live = append(live, item)
		}
	}
	return live, nil
}

// GetPanel builds the cart panel view model for userID
func (s *CartService) GetPanel(ctx context.Context, userID uuid.UUID) (*types.CartPanel, error) {
	items, err := s.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	panel := &types.CartPanel{
		Items:        make([]types.CartLine, 0, len(items)),
		Empty:        len(items) == 0,
		CheckoutPath: checkoutPath,
		ShopPath:     shopPath,
	}
	if panel.Empty {
		panel.DisplayTotalSavings = pricing.FormatRupees(0)
		return panel, nil
	}

	lines := make([]pricing.Line, 0, len(items))
	for _, item := range items {
		p := item.Product
		unitPrice := pricing.PriceWithDiscount(p.Price, p.Discount)
		panel.Items = append(panel.Items, types.CartLine{
			ID:           item.ID,
			ProductID:    p.ID,
			Name:         p.Name,
			Unit:         p.Unit,
			Image:        s.imageURL(ctx, p.FirstImage()),
			Price:        p.Price,
			Discount:     p.Discount,
			UnitPrice:    unitPrice,
			DisplayPrice: pricing.FormatRupees(unitPrice),
			Quantity:     item.Quantity,
			LineTotal:    unitPrice * float64(item.Quantity),
		})
		lines = append(lines, pricing.Line{Price: p.Price, Discount: p.Discount, Quantity: item.Quantity})
	}

	sum := pricing.Totals(lines)
	panel.TotalSavings = sum.Savings
	panel.DisplayTotalSavings = pricing.FormatRupees(sum.Savings)
	panel.Bill = &types.BillDetails{
		ItemsTotalOriginal:        sum.NotDiscountTotalPrice,
		DisplayItemsTotalOriginal: pricing.FormatRupees(sum.NotDiscountTotalPrice),
		ItemsTotal:                sum.TotalPrice,
		DisplayItemsTotal:         pricing.FormatRupees(sum.TotalPrice),
		TotalQty:                  sum.TotalQty,
		DeliveryCharge:            0,
		DeliveryDisplay:           "Free",
		GrandTotal:                sum.TotalPrice,
		DisplayGrandTotal:         pricing.FormatRupees(sum.TotalPrice),
	}
	return panel, nil
}

// PickProduct chooses the cart product to ask the model about: productID when
// given, otherwise the most recently added line.
func (s *CartService) PickProduct(ctx context.Context, userID uuid.UUID, productID *uuid.UUID) (*models.Product, error) {
	items, err := s.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	if productID == nil {
		p := items[len(items)-1].Product
		return &p, nil
	}
	for _, item := range items {
		if item.ProductID == *productID {
			p := item.Product
			return &p, nil
		}
	}
	return nil, ErrItemNotInCart
}

func (s *CartService) imageURL(ctx context.Context, ref string) string {
	if s.images == nil || ref == "" {
		return ref
	}
	url, err := s.images.SignImageURL(ctx, ref)
	if err != nil {
		s.logger.Warn("failed to sign product image", zap.String("ref", ref), zap.Error(err))
		return ""
	}
	return url
}
