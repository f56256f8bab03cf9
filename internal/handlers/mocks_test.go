package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/oma0256/store-manager-api/internal/middleware"
	"github.com/oma0256/store-manager-api/internal/models"
	"github.com/oma0256/store-manager-api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// =============================================================================
// Mock Services
// =============================================================================

type mockAuthService struct {
	loginFunc   func(ctx context.Context, email, password string) (*service.LoginResponse, error)
	signupFunc  func(ctx context.Context, caller *models.User, req service.SignupRequest) (*models.User, error)
	logoutFunc  func(ctx context.Context, token string) error
	refreshFunc func(ctx context.Context, refreshToken string) (*service.LoginResponse, error)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*service.LoginResponse, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, email, password)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) Signup(ctx context.Context, caller *models.User, req service.SignupRequest) (*models.User, error) {
	if m.signupFunc != nil {
		return m.signupFunc(ctx, caller, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) Logout(ctx context.Context, token string) error {
	if m.logoutFunc != nil {
		return m.logoutFunc(ctx, token)
	}
	return errors.New("not implemented")
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (*service.LoginResponse, error) {
	if m.refreshFunc != nil {
		return m.refreshFunc(ctx, refreshToken)
	}
	return nil, errors.New("not implemented")
}

type mockCatalogService struct {
	createCategoryFunc func(ctx context.Context, caller *models.User, name, description string) (*models.Category, error)
	updateCategoryFunc func(ctx context.Context, caller *models.User, id int64, name, description string) (*models.Category, error)
	deleteCategoryFunc func(ctx context.Context, caller *models.User, id int64) error
	listCategoriesFunc func(ctx context.Context) ([]models.Category, error)
	createProductFunc  func(ctx context.Context, caller *models.User, in service.ProductInput) (*models.Product, error)
	updateProductFunc  func(ctx context.Context, caller *models.User, id int64, in service.ProductInput) (*models.Product, error)
	deleteProductFunc  func(ctx context.Context, caller *models.User, id int64) error
	getProductFunc     func(ctx context.Context, id int64) (*models.Product, error)
	listProductsFunc   func(ctx context.Context) ([]models.Product, error)
}

func (m *mockCatalogService) CreateCategory(ctx context.Context, caller *models.User, name, description string) (*models.Category, error) {
	if m.createCategoryFunc != nil {
		return m.createCategoryFunc(ctx, caller, name, description)
	}
	return nil, errors.New("not implemented")
}

func (m *mockCatalogService) UpdateCategory(ctx context.Context, caller *models.User, id int64, name, description string) (*models.Category, error) {
	if m.updateCategoryFunc != nil {
		return m.updateCategoryFunc(ctx, caller, id, name, description)
	}
	return nil, errors.New("not implemented")
}

func (m *mockCatalogService) DeleteCategory(ctx context.Context, caller *models.User, id int64) error {
	if m.deleteCategoryFunc != nil {
		return m.deleteCategoryFunc(ctx, caller, id)
	}
	return errors.New("not implemented")
}

func (m *mockCatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	if m.listCategoriesFunc != nil {
		return m.listCategoriesFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockCatalogService) CreateProduct(ctx context.Context, caller *models.User, in service.ProductInput) (*models.Product, error) {
	if m.createProductFunc != nil {
		return m.createProductFunc(ctx, caller, in)
	}
	return nil, errors.New("not implemented")
}

func (m *mockCatalogService) UpdateProduct(ctx context.Context, caller *models.User, id int64, in service.ProductInput) (*models.Product, error) {
	if m.updateProductFunc != nil {
		return m.updateProductFunc(ctx, caller, id, in)
	}
	return nil, errors.New("not implemented")
}

func (m *mockCatalogService) DeleteProduct(ctx context.Context, caller *models.User, id int64) error {
	if m.deleteProductFunc != nil {
		return m.deleteProductFunc(ctx, caller, id)
	}
	return errors.New("not implemented")
}

func (m *mockCatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	if m.getProductFunc != nil {
		return m.getProductFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockCatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	if m.listProductsFunc != nil {
		return m.listProductsFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

type mockSaleService struct {
	createSaleFunc func(ctx context.Context, caller *models.User, productID, quantity int64) (*models.Sale, error)
	listSalesFunc  func(ctx context.Context, caller *models.User, reverted bool) ([]models.Sale, error)
	getSaleFunc    func(ctx context.Context, caller *models.User, id int64) (*models.Sale, error)
	revertSaleFunc func(ctx context.Context, caller *models.User, id int64) (*models.Sale, error)
}

func (m *mockSaleService) CreateSale(ctx context.Context, caller *models.User, productID, quantity int64) (*models.Sale, error) {
	if m.createSaleFunc != nil {
		return m.createSaleFunc(ctx, caller, productID, quantity)
	}
	return nil, errors.New("not implemented")
}

func (m *mockSaleService) ListSales(ctx context.Context, caller *models.User, reverted bool) ([]models.Sale, error) {
	if m.listSalesFunc != nil {
		return m.listSalesFunc(ctx, caller, reverted)
	}
	return nil, errors.New("not implemented")
}

func (m *mockSaleService) GetSale(ctx context.Context, caller *models.User, id int64) (*models.Sale, error) {
	if m.getSaleFunc != nil {
		return m.getSaleFunc(ctx, caller, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockSaleService) RevertSale(ctx context.Context, caller *models.User, id int64) (*models.Sale, error) {
	if m.revertSaleFunc != nil {
		return m.revertSaleFunc(ctx, caller, id)
	}
	return nil, errors.New("not implemented")
}

type mockUserService struct {
	listUsersFunc    func(ctx context.Context, caller *models.User) ([]models.User, error)
	getUserFunc      func(ctx context.Context, id int64) (*models.User, []models.Sale, error)
	toggleRightsFunc func(ctx context.Context, caller *models.User, id int64) (*models.User, error)
}

func (m *mockUserService) ListUsers(ctx context.Context, caller *models.User) ([]models.User, error) {
	if m.listUsersFunc != nil {
		return m.listUsersFunc(ctx, caller)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserService) GetUser(ctx context.Context, id int64) (*models.User, []models.Sale, error) {
	if m.getUserFunc != nil {
		return m.getUserFunc(ctx, id)
	}
	return nil, nil, errors.New("not implemented")
}

func (m *mockUserService) ToggleRights(ctx context.Context, caller *models.User, id int64) (*models.User, error) {
	if m.toggleRightsFunc != nil {
		return m.toggleRightsFunc(ctx, caller, id)
	}
	return nil, errors.New("not implemented")
}

// =============================================================================
// Test Helpers
// =============================================================================

// asUser injects the given user the way RequireAuth would.
func asUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user != nil {
			middleware.SetCurrentUser(c, user)
		}
		c.Next()
	}
}

func performRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
	return body
}
