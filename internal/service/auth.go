// Package service implements the business logic of the store manager API.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/oma0256/store-manager-api/internal/models"
	"github.com/oma0256/store-manager-api/internal/policy"
	"github.com/oma0256/store-manager-api/internal/repository"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// LoginResponse is returned on successful login or token refresh.
type LoginResponse struct {
	Message      string `json:"message"`
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	AttendantID  *int64 `json:"attendant_id,omitempty"`
}

// SignupRequest carries the fields for registering a store attendant.
type SignupRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// AuthService resolves and manages caller identities.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	Signup(ctx context.Context, caller *models.User, req SignupRequest) (*models.User, error)
	Logout(ctx context.Context, token string) error
	Refresh(ctx context.Context, refreshToken string) (*LoginResponse, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService JWTService
	redis      *redis.Client
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(userRepo repository.UserRepository, jwtService JWTService, redisClient *redis.Client) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		redis:      redisClient,
	}
}

func refreshTokenKey(userID int64) string {
	return fmt.Sprintf("refresh_token:%d", userID)
}

func denylistKey(token string) string {
	return fmt.Sprintf("denylist:%s", token)
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotRegistered
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*LoginResponse, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	if err := s.redis.Set(ctx, refreshTokenKey(user.ID), refreshToken, 7*24*time.Hour).Err(); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	resp := &LoginResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
	}
	if user.IsAdmin {
		resp.Message = "Store owner logged in successfully"
	} else {
		resp.Message = "Store attendant logged in successfully"
		id := user.ID
		resp.AttendantID = &id
	}
	return resp, nil
}

// Signup registers a store attendant. Only a store owner may call it.
func (s *authService) Signup(ctx context.Context, caller *models.User, req SignupRequest) (*models.User, error) {
	if err := policy.MustBeAdmin(caller); err != nil {
		return nil, err
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	if req.FirstName == "" || req.LastName == "" || req.Password == "" {
		return nil, validationErrorf("This field is required")
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, validationErrorf("Please enter a valid email")
	}

	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hash),
		IsAdmin:   false,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout invalidates the access token for its remaining lifetime and
// drops the stored refresh token.
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return ErrInvalidToken
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl > 0 {
		if err := s.redis.Set(ctx, denylistKey(token), "1", ttl).Err(); err != nil {
			return fmt.Errorf("failed to denylist token: %w", err)
		}
	}

	if err := s.redis.Del(ctx, refreshTokenKey(claims.UserID)).Err(); err != nil {
		return fmt.Errorf("failed to drop refresh token: %w", err)
	}
	return nil
}

// Refresh exchanges a valid refresh token for a new token pair and
// rotates the stored refresh token.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*LoginResponse, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	stored, err := s.redis.Get(ctx, refreshTokenKey(claims.UserID)).Result()
	if err != nil || stored != refreshToken {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return s.issueTokens(ctx, user)
}
