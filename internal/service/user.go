package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/oma0256/store-manager-api/internal/models"
	"github.com/oma0256/store-manager-api/internal/policy"
	"github.com/oma0256/store-manager-api/internal/repository"
)

// UserService manages store accounts.
type UserService interface {
	ListUsers(ctx context.Context, caller *models.User) ([]models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, []models.Sale, error)
	ToggleRights(ctx context.Context, caller *models.User, id int64) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	saleRepo repository.SaleRepository
}

// NewUserService creates a new UserService instance.
func NewUserService(userRepo repository.UserRepository, saleRepo repository.SaleRepository) UserService {
	return &userService{
		userRepo: userRepo,
		saleRepo: saleRepo,
	}
}

func (s *userService) ListUsers(ctx context.Context, caller *models.User) ([]models.User, error) {
	if err := policy.MustBeAdmin(caller); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx)
}

// GetUser returns the user together with their active sale history.
func (s *userService) GetUser(ctx context.Context, id int64) (*models.User, []models.Sale, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	sales, err := s.saleRepo.ListByAttendant(ctx, user.ID, false)
	if err != nil {
		return nil, nil, err
	}
	return user, sales, nil
}

// ToggleRights flips a user between store owner and attendant. The seed
// admin's rights can never be changed.
func (s *userService) ToggleRights(ctx context.Context, caller *models.User, id int64) (*models.User, error) {
	if err := policy.MustBeAdmin(caller); err != nil {
		return nil, err
	}

	target, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := policy.MayToggleRights(caller, target); err != nil {
		return nil, err
	}

	target.IsAdmin = !target.IsAdmin
	if err := s.userRepo.Update(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}
