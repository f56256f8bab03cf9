package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/oma0256/store-manager-api/internal/models"
	"github.com/oma0256/store-manager-api/internal/repository"
)

// notFound mimics the repository layer's wrapping of gorm.ErrRecordNotFound.
func notFound(what string) error {
	return fmt.Errorf("failed to find %s: %w", what, gorm.ErrRecordNotFound)
}

// =============================================================================
// Mock UserRepository
// =============================================================================

type mockUserRepository struct {
	findByEmailFunc func(ctx context.Context, email string) (*models.User, error)
	findByIDFunc    func(ctx context.Context, id int64) (*models.User, error)
	createFunc      func(ctx context.Context, user *models.User) error
	updateFunc      func(ctx context.Context, user *models.User) error
	listFunc        func(ctx context.Context) ([]models.User, error)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return errors.New("not implemented")
}

func (m *mockUserRepository) Update(ctx context.Context, user *models.User) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, user)
	}
	return errors.New("not implemented")
}

func (m *mockUserRepository) List(ctx context.Context) ([]models.User, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

// =============================================================================
// Mock CategoryRepository
// =============================================================================

type mockCategoryRepository struct {
	findByNameFunc func(ctx context.Context, name string) (*models.Category, error)
	findByIDFunc   func(ctx context.Context, id int64) (*models.Category, error)
	createFunc     func(ctx context.Context, category *models.Category) error
	updateFunc     func(ctx context.Context, category *models.Category) error
	deleteFunc     func(ctx context.Context, id int64) error
	listFunc       func(ctx context.Context) ([]models.Category, error)
}

func (m *mockCategoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	if m.findByNameFunc != nil {
		return m.findByNameFunc(ctx, name)
	}
	return nil, notFound("category by name " + name)
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, notFound("category")
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, category)
	}
	return errors.New("not implemented")
}

func (m *mockCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, category)
	}
	return errors.New("not implemented")
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errors.New("not implemented")
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

// =============================================================================
// Mock ProductRepository
// =============================================================================

type mockProductRepository struct {
	findByNameFunc func(ctx context.Context, name string) (*models.Product, error)
	findByIDFunc   func(ctx context.Context, id int64) (*models.Product, error)
	createFunc     func(ctx context.Context, product *models.Product) error
	updateFunc     func(ctx context.Context, product *models.Product) error
	softDeleteFunc func(ctx context.Context, id int64) error
	listActiveFunc func(ctx context.Context) ([]models.Product, error)
}

func (m *mockProductRepository) FindByName(ctx context.Context, name string) (*models.Product, error) {
	if m.findByNameFunc != nil {
		return m.findByNameFunc(ctx, name)
	}
	return nil, notFound("product by name " + name)
}

func (m *mockProductRepository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, notFound("product")
}

func (m *mockProductRepository) Create(ctx context.Context, product *models.Product) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, product)
	}
	return errors.New("not implemented")
}

func (m *mockProductRepository) Update(ctx context.Context, product *models.Product) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, product)
	}
	return errors.New("not implemented")
}

func (m *mockProductRepository) SoftDelete(ctx context.Context, id int64) error {
	if m.softDeleteFunc != nil {
		return m.softDeleteFunc(ctx, id)
	}
	return errors.New("not implemented")
}

func (m *mockProductRepository) ListActive(ctx context.Context) ([]models.Product, error) {
	if m.listActiveFunc != nil {
		return m.listActiveFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

// =============================================================================
// Fake SaleRepository
//
// Stateful in-memory double mirroring the transactional contract of the
// real repository: stock check, decrement and insert happen as one unit,
// revert restores stock exactly once.
// =============================================================================

type fakeSaleRepository struct {
	products map[int64]*models.Product
	sales    map[int64]*models.Sale
	nextID   int64
}

func newFakeSaleRepository(products ...*models.Product) *fakeSaleRepository {
	f := &fakeSaleRepository{
		products: make(map[int64]*models.Product),
		sales:    make(map[int64]*models.Sale),
		nextID:   1,
	}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeSaleRepository) Create(ctx context.Context, attendantID, productID, quantity int64) (*models.Sale, error) {
	product, ok := f.products[productID]
	if !ok || product.Deleted {
		return nil, notFound("product")
	}
	if product.Quantity < quantity {
		return nil, &repository.InsufficientStockError{Available: product.Quantity}
	}
	product.Quantity -= quantity
	sale := &models.Sale{
		ID:          f.nextID,
		AttendantID: attendantID,
		ProductID:   productID,
		Quantity:    quantity,
		Total:       product.UnitCost * quantity,
	}
	f.nextID++
	f.sales[sale.ID] = sale
	return sale, nil
}

func (f *fakeSaleRepository) FindByID(ctx context.Context, id int64) (*models.Sale, error) {
	sale, ok := f.sales[id]
	if !ok {
		return nil, notFound("sale")
	}
	return sale, nil
}

func (f *fakeSaleRepository) List(ctx context.Context, reverted bool) ([]models.Sale, error) {
	var out []models.Sale
	for _, sale := range f.sales {
		if sale.Reverted == reverted {
			out = append(out, *sale)
		}
	}
	return out, nil
}

func (f *fakeSaleRepository) ListByAttendant(ctx context.Context, attendantID int64, reverted bool) ([]models.Sale, error) {
	var out []models.Sale
	for _, sale := range f.sales {
		if sale.AttendantID == attendantID && sale.Reverted == reverted {
			out = append(out, *sale)
		}
	}
	return out, nil
}

func (f *fakeSaleRepository) Revert(ctx context.Context, id int64) (*models.Sale, error) {
	sale, ok := f.sales[id]
	if !ok {
		return nil, notFound("sale")
	}
	if sale.Reverted {
		return nil, repository.ErrSaleAlreadyReverted
	}
	f.products[sale.ProductID].Quantity += sale.Quantity
	sale.Reverted = true
	return sale, nil
}

// =============================================================================
// Test Helpers
// =============================================================================

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to create miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, mr
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	return string(hash)
}
