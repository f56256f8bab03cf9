package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/oma0256/store-manager-api/internal/models"
)

// ProductRepository defines the interface for product data operations.
// Lookups exclude soft-deleted rows; FindByName does not, so that a name
// stays reserved by its sale history.
type ProductRepository interface {
	FindByName(ctx context.Context, name string) (*models.Product, error)
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	SoftDelete(ctx context.Context, id int64) error
	ListActive(ctx context.Context) ([]models.Product, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new ProductRepository instance.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) FindByName(ctx context.Context, name string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&product).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find product by name %s: %w", name, err)
	}
	return &product, nil
}

func (r *productRepository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Where("id = ? AND deleted = ?", id, false).First(&product).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find product by id %d: %w", id, err)
	}
	return &product, nil
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return fmt.Errorf("failed to update product id %d: %w", product.ID, err)
	}
	return nil
}

func (r *productRepository) SoftDelete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND deleted = ?", id, false).
		Update("deleted", true)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product id %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to delete product id %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *productRepository) ListActive(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("deleted = ?", false).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}
