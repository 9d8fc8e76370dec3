package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"storehub/internal/auth"
	"storehub/internal/cache"
	apperrors "storehub/internal/errors"
	"storehub/internal/model"
	"storehub/internal/repository"
)

const (
	dashboardCacheKey = "admin:dashboard"
	dashboardCacheTTL = 30 * time.Second
)

// DashboardStats are the platform-wide totals on the admin dashboard.
type DashboardStats struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
}

// AdminUser is one row of the admin user listing; StoreRating is set only for
// store owners.
type AdminUser struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Address     *string    `json:"address"`
	Role        model.Role `json:"role"`
	CreatedAt   time.Time  `json:"created_at"`
	StoreRating *string    `json:"store_rating"`
}

// AdminStore is one row of the admin store listing.
type AdminStore struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	OwnerID       uint      `json:"owner_id"`
	CreatedAt     time.Time `json:"created_at"`
	AverageRating string    `json:"average_rating"`
	TotalRatings  int64     `json:"total_ratings"`
	OwnerName     string    `json:"owner_name"`
}

// AdminService handles admin dashboard and directory operations.
type AdminService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	CreateUser(ctx context.Context, name, email, password string, address *string, role model.Role) (*model.User, error)
	ListUsers(ctx context.Context) ([]AdminUser, error)
	ListStores(ctx context.Context) ([]AdminStore, error)
}

type adminService struct {
	userRepo   repository.UserRepository
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
	cache      *cache.Client
}

// NewAdminService creates a new admin service.
func NewAdminService(
	userRepo repository.UserRepository,
	storeRepo repository.StoreRepository,
	ratingRepo repository.RatingRepository,
	cache *cache.Client,
) AdminService {
	return &adminService{
		userRepo:   userRepo,
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
		cache:      cache,
	}
}

// Dashboard returns the global totals. The result is cached briefly and the
// cache is invalidated on every user, store, and rating write; a cache miss
// or unreachable redis just recounts.
func (s *adminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	if data, _ := s.cache.Get(ctx, dashboardCacheKey); data != nil {
		var cached DashboardStats
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	totalStores, err := s.storeRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count stores: %w", err)
	}
	totalRatings, err := s.ratingRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count ratings: %w", err)
	}

	stats := &DashboardStats{
		TotalUsers:   totalUsers,
		TotalStores:  totalStores,
		TotalRatings: totalRatings,
	}
	if payload, err := json.Marshal(stats); err == nil {
		_ = s.cache.Set(ctx, dashboardCacheKey, payload, dashboardCacheTTL)
	}
	return stats, nil
}

// CreateUser creates an account with an admin-chosen role.
func (s *adminService) CreateUser(ctx context.Context, name, email, password string, address *string, role model.Role) (*model.User, error) {
	if !role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	if address != nil {
		if err := ValidateAddress(*address); err != nil {
			return nil, err
		}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Address:      address,
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	_ = s.cache.Delete(ctx, dashboardCacheKey)

	return user, nil
}

// ListUsers lists all users with the store-owner aggregate column.
func (s *adminService) ListUsers(ctx context.Context) ([]AdminUser, error) {
	rows, err := s.userRepo.ListWithStoreRating(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]AdminUser, 0, len(rows))
	for _, row := range rows {
		u := AdminUser{
			ID:        row.ID,
			Name:      row.Name,
			Email:     row.Email,
			Address:   row.Address,
			Role:      row.Role,
			CreatedAt: row.CreatedAt,
		}
		if row.StoreRating != nil {
			formatted := FormatAverage(*row.StoreRating)
			u.StoreRating = &formatted
		}
		out = append(out, u)
	}
	return out, nil
}

// ListStores lists all stores with aggregates and owner names.
func (s *adminService) ListStores(ctx context.Context) ([]AdminStore, error) {
	rows, err := s.storeRepo.ListWithRatings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}

	out := make([]AdminStore, 0, len(rows))
	for _, row := range rows {
		out = append(out, AdminStore{
			ID:            row.ID,
			Name:          row.Name,
			Email:         row.Email,
			Address:       row.Address,
			OwnerID:       row.OwnerID,
			CreatedAt:     row.CreatedAt,
			AverageRating: FormatAverage(row.AverageRating),
			TotalRatings:  row.TotalRatings,
			OwnerName:     row.OwnerName,
		})
	}
	return out, nil
}
