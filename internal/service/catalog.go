package service

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"gorm.io/gorm"

	"github.com/oma0256/store-manager-api/internal/models"
	"github.com/oma0256/store-manager-api/internal/policy"
	"github.com/oma0256/store-manager-api/internal/repository"
)

// ProductInput carries the fields for creating or updating a product.
type ProductInput struct {
	Name       string `json:"name"`
	UnitCost   int64  `json:"unit_cost"`
	Quantity   int64  `json:"quantity"`
	CategoryID *int64 `json:"category_id"`
}

// CatalogService manages categories and products.
type CatalogService interface {
	CreateCategory(ctx context.Context, caller *models.User, name, description string) (*models.Category, error)
	UpdateCategory(ctx context.Context, caller *models.User, id int64, name, description string) (*models.Category, error)
	DeleteCategory(ctx context.Context, caller *models.User, id int64) error
	ListCategories(ctx context.Context) ([]models.Category, error)

	CreateProduct(ctx context.Context, caller *models.User, in ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, caller *models.User, id int64, in ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, caller *models.User, id int64) error
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCatalogService creates a new CatalogService instance.
func NewCatalogService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

func (s *catalogService) CreateCategory(ctx context.Context, caller *models.User, name, description string) (*models.Category, error) {
	if err := policy.MustBeAdmin(caller); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationErrorf("The category name is required")
	}

	if _, err := s.categoryRepo.FindByName(ctx, name); err == nil {
		return nil, ErrCategoryExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := &models.Category{Name: name, Description: description}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, caller *models.User, id int64, name, description string) (*models.Category, error) {
	if err := policy.MustBeAdmin(caller); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationErrorf("The category name is required")
	}

	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if other, err := s.categoryRepo.FindByName(ctx, name); err == nil && other.ID != id {
		return nil, ErrCategoryExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category.Name = name
	category.Description = description
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, caller *models.User, id int64) error {
	if err := policy.MustBeAdmin(caller); err != nil {
		return err
	}

	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return s.categoryRepo.Delete(ctx, id)
}

func (s *catalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.List(ctx)
}

// validateProductInput enforces the catalog rules: alphabetic name,
// positive unit cost, positive quantity (a product cannot be created
// with zero initial stock) and, when set, an existing category.
func (s *catalogService) validateProductInput(ctx context.Context, in *ProductInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return validationErrorf("Product name is required")
	}
	if !isAlphabetic(in.Name) {
		return validationErrorf("Product name must contain letters only")
	}
	if in.UnitCost <= 0 {
		return validationErrorf("Product unit cost must be a positive integer")
	}
	if in.Quantity <= 0 {
		return validationErrorf("Product quantity must be a positive integer")
	}
	if in.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *in.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
	}
	return nil
}

func isAlphabetic(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && r != ' ' {
			return false
		}
	}
	return true
}

func (s *catalogService) CreateProduct(ctx context.Context, caller *models.User, in ProductInput) (*models.Product, error) {
	if err := policy.MustBeAdmin(caller); err != nil {
		return nil, err
	}
	if err := s.validateProductInput(ctx, &in); err != nil {
		return nil, err
	}

	if _, err := s.productRepo.FindByName(ctx, in.Name); err == nil {
		return nil, ErrProductExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	product := &models.Product{
		Name:       in.Name,
		UnitCost:   in.UnitCost,
		Quantity:   in.Quantity,
		CategoryID: in.CategoryID,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, caller *models.User, id int64, in ProductInput) (*models.Product, error) {
	if err := policy.MustBeAdmin(caller); err != nil {
		return nil, err
	}
	if err := s.validateProductInput(ctx, &in); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if other, err := s.productRepo.FindByName(ctx, in.Name); err == nil && other.ID != id {
		return nil, ErrProductExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	product.Name = in.Name
	product.UnitCost = in.UnitCost
	product.Quantity = in.Quantity
	product.CategoryID = in.CategoryID
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, caller *models.User, id int64) error {
	if err := policy.MustBeAdmin(caller); err != nil {
		return err
	}

	if err := s.productRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

func (s *catalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *catalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.productRepo.ListActive(ctx)
}
