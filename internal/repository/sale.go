package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oma0256/store-manager-api/internal/models"
)

// InsufficientStockError is returned when a sale asks for more units
// than the product has in stock.
type InsufficientStockError struct {
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Only %d units are available in stock", e.Available)
}

// ErrSaleAlreadyReverted is returned on attempts to revert a sale twice.
var ErrSaleAlreadyReverted = errors.New("This sale has already been reverted")

// SaleRepository defines the interface for sale data operations.
// Create and Revert adjust product stock and write the sale row inside
// one transaction, locking the product row so two concurrent sales of
// the last unit cannot both succeed.
type SaleRepository interface {
	Create(ctx context.Context, attendantID, productID, quantity int64) (*models.Sale, error)
	FindByID(ctx context.Context, id int64) (*models.Sale, error)
	List(ctx context.Context, reverted bool) ([]models.Sale, error)
	ListByAttendant(ctx context.Context, attendantID int64, reverted bool) ([]models.Sale, error)
	Revert(ctx context.Context, id int64) (*models.Sale, error)
}

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new SaleRepository instance.
func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepository{db: db}
}

// Create decrements the product's stock by quantity and inserts the sale
// row with the total frozen at the product's current unit cost.
func (r *saleRepository) Create(ctx context.Context, attendantID, productID, quantity int64) (*models.Sale, error) {
	var sale *models.Sale
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND deleted = ?", productID, false).
			First(&product).Error
		if err != nil {
			return err
		}

		if product.Quantity < quantity {
			return &InsufficientStockError{Available: product.Quantity}
		}

		if err := tx.Model(&product).
			Update("quantity", product.Quantity-quantity).Error; err != nil {
			return err
		}

		sale = &models.Sale{
			AttendantID: attendantID,
			ProductID:   productID,
			Quantity:    quantity,
			Total:       product.UnitCost * quantity,
		}
		return tx.Create(sale).Error
	})
	if err != nil {
		var stockErr *InsufficientStockError
		if errors.As(err, &stockErr) {
			return nil, stockErr
		}
		return nil, fmt.Errorf("failed to create sale: %w", err)
	}
	return sale, nil
}

func (r *saleRepository) FindByID(ctx context.Context, id int64) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.WithContext(ctx).First(&sale, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find sale by id %d: %w", id, err)
	}
	return &sale, nil
}

func (r *saleRepository) List(ctx context.Context, reverted bool) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.WithContext(ctx).
		Where("reverted = ?", reverted).
		Order("created_at DESC").
		Find(&sales).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}

func (r *saleRepository) ListByAttendant(ctx context.Context, attendantID int64, reverted bool) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.WithContext(ctx).
		Where("attendant_id = ? AND reverted = ?", attendantID, reverted).
		Order("created_at DESC").
		Find(&sales).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sales for attendant %d: %w", attendantID, err)
	}
	return sales, nil
}

// Revert restores the product's stock by the sale's recorded quantity
// and marks the sale reverted. A sale can only be reverted once.
func (r *saleRepository) Revert(ctx context.Context, id int64) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&sale, id).Error; err != nil {
			return err
		}
		if sale.Reverted {
			return ErrSaleAlreadyReverted
		}

		var product models.Product
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, sale.ProductID).Error
		if err != nil {
			return err
		}

		if err := tx.Model(&product).
			Update("quantity", product.Quantity+sale.Quantity).Error; err != nil {
			return err
		}

		sale.Reverted = true
		return tx.Save(&sale).Error
	})
	if err != nil {
		if errors.Is(err, ErrSaleAlreadyReverted) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to revert sale id %d: %w", id, err)
	}
	return &sale, nil
}
