package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/cartchef/backend/internal/models"
)

const DemoUserEmail = "demo@cartchef.local"

type seedProduct struct {
	name     string
	unit     string
	price    float64
	discount float64
	image    string
	qty      int
}

var demoCatalogue = []seedProduct{
	{"Basmati Rice", "1 kg", 180, 10, "products/basmati-rice.png", 1},
	{"Toor Dal", "1 kg", 160, 8, "products/toor-dal.png", 2},
	{"Tomato", "1 kg", 40, 15, "products/tomato.png", 3},
	{"Paneer", "200 g", 90, 0, "products/paneer.png", 1},
	{"Amul Butter", "500 g", 275, 5, "products/amul-butter.png", 0},
}

// Seed creates the demo catalogue and fills the demo user's cart. Running it
// again resets that cart rather than duplicating anything.
func Seed(ctx context.Context, db *gorm.DB, log *zap.Logger) (*models.User, error) {
	var user models.User
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(models.User{Email: DemoUserEmail}).
			Attrs(models.User{Name: "Demo Shopper"}).
			FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("failed to create demo user: %w", err)
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear demo cart: %w", err)
		}

		// Spread creation times so cart order matches catalogue order
		addedAt := time.Now().Add(-time.Duration(len(demoCatalogue)) * time.Minute)
		for _, sp := range demoCatalogue {
			var product models.Product
			if err := tx.Where(models.Product{Name: sp.name}).
				Attrs(models.Product{
					Unit:     sp.unit,
					Price:    sp.price,
					Discount: sp.discount,
					Images:   models.JSONBStringArray{sp.image},
				}).
				FirstOrCreate(&product).Error; err != nil {
				return fmt.Errorf("failed to create product %s: %w", sp.name, err)
			}

			addedAt = addedAt.Add(time.Minute)
			if sp.qty == 0 {
				continue
			}
			item := models.CartItem{
				CreatedAt: addedAt,
				UpdatedAt: addedAt,
				UserID:    user.ID,
				ProductID: product.ID,
				Quantity:  sp.qty,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to add %s to cart: %w", sp.name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("seeded demo data", zap.String("user_id", user.ID.String()), zap.Int("products", len(demoCatalogue)))
	return &user, nil
}
