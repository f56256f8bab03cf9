package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/oma0256/store-manager-api/internal/models"
	"github.com/oma0256/store-manager-api/internal/policy"
	"github.com/oma0256/store-manager-api/internal/repository"
)

// SaleService records, lists and reverts sales.
type SaleService interface {
	CreateSale(ctx context.Context, caller *models.User, productID, quantity int64) (*models.Sale, error)
	ListSales(ctx context.Context, caller *models.User, reverted bool) ([]models.Sale, error)
	GetSale(ctx context.Context, caller *models.User, id int64) (*models.Sale, error)
	RevertSale(ctx context.Context, caller *models.User, id int64) (*models.Sale, error)
}

type saleService struct {
	saleRepo repository.SaleRepository
}

// NewSaleService creates a new SaleService instance.
func NewSaleService(saleRepo repository.SaleRepository) SaleService {
	return &saleService{saleRepo: saleRepo}
}

// CreateSale records a sale for the calling attendant. The stock check,
// the decrement and the sale insert run in one transaction inside the
// repository; the total is frozen at the product's current unit cost.
func (s *saleService) CreateSale(ctx context.Context, caller *models.User, productID, quantity int64) (*models.Sale, error) {
	if err := policy.MustBeAttendant(caller); err != nil {
		return nil, err
	}
	if productID <= 0 {
		return nil, validationErrorf("Product id must be a positive integer")
	}
	if quantity <= 0 {
		return nil, validationErrorf("Sale quantity must be a positive integer")
	}

	sale, err := s.saleRepo.Create(ctx, caller.ID, productID, quantity)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return sale, nil
}

// ListSales returns sales scoped by role: admins see every sale,
// attendants only their own. The reverted flag selects the reverted
// subset instead of the active ledger.
func (s *saleService) ListSales(ctx context.Context, caller *models.User, reverted bool) ([]models.Sale, error) {
	if caller.IsAdmin {
		return s.saleRepo.List(ctx, reverted)
	}
	return s.saleRepo.ListByAttendant(ctx, caller.ID, reverted)
}

func (s *saleService) GetSale(ctx context.Context, caller *models.User, id int64) (*models.Sale, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	if err := policy.MayViewSale(caller, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// RevertSale restores the product's stock by the sale's recorded
// quantity and marks the sale reverted. Reverting twice is rejected.
func (s *saleService) RevertSale(ctx context.Context, caller *models.User, id int64) (*models.Sale, error) {
	if err := policy.MustBeAdmin(caller); err != nil {
		return nil, err
	}

	sale, err := s.saleRepo.Revert(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	return sale, nil
}
