package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/cartchef/backend/internal/api"
	"github.com/pageza/cartchef/backend/internal/llm"
	"github.com/pageza/cartchef/backend/internal/models"
	"github.com/pageza/cartchef/backend/internal/service"
	"github.com/pageza/cartchef/backend/internal/testhelpers"
	"github.com/pageza/cartchef/backend/internal/types"
)

type cartEnv struct {
	router  *gin.Engine
	db      *gorm.DB
	auth    *service.AuthService
	prompts []string
}

func setupCartTest(t *testing.T, gen llm.Generator) *cartEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &cartEnv{
		db:   testhelpers.SetupSQLite(t),
		auth: service.NewAuthService("test-secret"),
	}
	if gen == nil {
		gen = llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
			env.prompts = append(env.prompts, prompt)
			return "## Rajma Chawal\n\n**Ingredients:**\n- kidney beans\n- rice\n\nhttps://youtu.be/rajma", nil
		})
	}

	cartSvc := service.NewCartService(env.db, nil, zap.NewNop())
	suggestSvc := service.NewSuggestionService(gen, nil, service.SuggestionOptions{}, zap.NewNop())
	handler := api.NewCartHandler(cartSvc, suggestSvc, env.auth, nil, zap.NewNop())

	env.router = gin.New()
	handler.RegisterRoutes(env.router.Group("/api"))
	return env
}

func (e *cartEnv) get(t *testing.T, path string, user *models.User) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if user != nil {
		token, err := e.auth.GenerateToken(user.ID, user.Name)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w, body
}

func TestGetCart(t *testing.T) {
	env := setupCartTest(t, nil)
	user := testhelpers.CreateUser(t, env.db, "neha")
	dal := testhelpers.CreateProduct(t, env.db, "Moong Dal", 200, 10, "https://images.test/dal.png")
	testhelpers.AddToCart(t, env.db, user, dal, 2, time.Now())

	w, body := env.get(t, "/api/cart", user)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, false, data["empty"])
	assert.Equal(t, "₹40.00", data["display_total_savings"])

	items := data["items"].([]interface{})
	require.Len(t, items, 1)
	line := items[0].(map[string]interface{})
	assert.Equal(t, "Moong Dal", line["name"])
	assert.Equal(t, "₹180.00", line["display_price"])
	assert.Equal(t, "https://images.test/dal.png", line["image"])

	bill := data["bill"].(map[string]interface{})
	assert.EqualValues(t, 2, bill["total_qty"])
	assert.EqualValues(t, 360, bill["grand_total"])
	assert.Equal(t, "₹360.00", bill["display_grand_total"])
}

func TestGetCartEmpty(t *testing.T) {
	env := setupCartTest(t, nil)
	user := testhelpers.CreateUser(t, env.db, "empty")

	w, body := env.get(t, "/api/cart", user)
	require.Equal(t, http.StatusOK, w.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["empty"])
	assert.NotContains(t, data, "bill")
	assert.Equal(t, "/", data["shop_path"])
}

func TestCartRequiresAuth(t *testing.T) {
	env := setupCartTest(t, nil)

	for _, path := range []string{"/api/cart", "/api/cart/generate-recipe"} {
		w, body := env.get(t, path, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Contains(t, body, "error")
	}
}

func TestGenerateRecipe(t *testing.T) {
	env := setupCartTest(t, nil)
	user := testhelpers.CreateUser(t, env.db, "arjun")
	base := time.Now().Add(-time.Hour)
	rice := testhelpers.CreateProduct(t, env.db, "Basmati Rice", 180, 0)
	rajma := testhelpers.CreateProduct(t, env.db, "Rajma", 140, 5)
	testhelpers.AddToCart(t, env.db, user, rice, 1, base)
	testhelpers.AddToCart(t, env.db, user, rajma, 1, base.Add(time.Minute))

	w, body := env.get(t, "/api/cart/generate-recipe", user)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])

	s := body["suggestion"].(map[string]interface{})
	assert.Equal(t, "Rajma", s["product"])
	assert.Equal(t, "Rajma Chawal", s["dish"])
	assert.Equal(t, []interface{}{"kidney beans", "rice"}, s["requiredIngredients"])
	assert.Equal(t, "https://youtu.be/rajma", s["youtubeLink"])
	assert.Equal(t, false, s["fallback"])
	require.Len(t, env.prompts, 1)
	assert.Equal(t, "I added Rajma to my cart. What recipes can I make? Suggest ingredients.", env.prompts[0])

	w, body = env.get(t, "/api/cart/generate-recipe?product_id="+rice.ID.String(), user)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Basmati Rice", body["suggestion"].(map[string]interface{})["product"])
}

func TestGenerateRecipeErrors(t *testing.T) {
	env := setupCartTest(t, nil)
	user := testhelpers.CreateUser(t, env.db, "ira")
	other := testhelpers.CreateProduct(t, env.db, "Jaggery", 90, 0)

	w, body := env.get(t, "/api/cart/generate-recipe", user)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "your cart is empty", body["message"])

	testhelpers.AddToCart(t, env.db, user, testhelpers.CreateProduct(t, env.db, "Curd", 50, 0), 1, time.Now())

	w, body = env.get(t, "/api/cart/generate-recipe?product_id="+other.ID.String(), user)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "product is not in your cart", body["message"])

	w, body = env.get(t, "/api/cart/generate-recipe?product_id=nope", user)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid product_id", body["message"])
}

func TestGenerateRecipeFallback(t *testing.T) {
	env := setupCartTest(t, llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("quota exceeded")
	}))
	user := testhelpers.CreateUser(t, env.db, "sam")
	testhelpers.AddToCart(t, env.db, user, testhelpers.CreateProduct(t, env.db, "Besan", 80, 0), 1, time.Now())

	w, body := env.get(t, "/api/cart/generate-recipe", user)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])

	s := body["suggestion"].(map[string]interface{})
	assert.Equal(t, llm.FallbackText, s["text"])
	assert.Equal(t, true, s["fallback"])
	assert.Equal(t, []interface{}{}, s["requiredIngredients"])
}

func TestCartHandlerServiceFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	auth := new(testhelpers.MockAuthService)
	auth.On("ValidateToken", "tok").Return(&types.TokenClaims{UserID: userID}, nil)

	carts := new(testhelpers.MockCartService)
	carts.On("GetPanel", mock.Anything, userID).Return(nil, errors.New("db gone"))
	carts.On("PickProduct", mock.Anything, userID, (*uuid.UUID)(nil)).Return(nil, errors.New("db gone"))

	suggestions := new(testhelpers.MockSuggestionService)

	router := gin.New()
	api.NewCartHandler(carts, suggestions, auth, nil, nil).RegisterRoutes(router.Group("/api"))

	for _, path := range []string{"/api/cart", "/api/cart/generate-recipe"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer tok")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		assert.JSONEq(t, `{"success":false,"message":"failed to load cart"}`, w.Body.String())
	}

	carts.AssertExpectations(t)
	suggestions.AssertNotCalled(t, "Suggest", mock.Anything, mock.Anything)
}
