package testhelpers

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/pageza/cartchef/backend/internal/models"
)

// CreateUser inserts a user with a unique email
func CreateUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: name + "-" + time.Now().Format("150405.000000000") + "@example.com"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// CreateProduct inserts a catalogue product
func CreateProduct(t *testing.T, db *gorm.DB, name string, price, discount float64, images ...string) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:     name,
		Unit:     "1 pc",
		Price:    price,
		Discount: discount,
		Images:   models.JSONBStringArray(images),
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	return product
}

// AddToCart puts qty of product in the user's cart. addedAt orders lines
// deterministically.
func AddToCart(t *testing.T, db *gorm.DB, user *models.User, product *models.Product, qty int, addedAt time.Time) *models.CartItem {
	t.Helper()
	item := &models.CartItem{
		CreatedAt: addedAt,
		UpdatedAt: addedAt,
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  qty,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to add to cart: %v", err)
	}
	return item
}
