package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storehub/internal/auth"
	"storehub/internal/cache"
	apperrors "storehub/internal/errors"
	"storehub/internal/model"
	"storehub/internal/repository"
)

// StoreSummary is one row of the browse listing.
type StoreSummary struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	AverageRating string `json:"average_rating"`
	TotalRatings  int64  `json:"total_ratings"`
	UserRating    *int   `json:"user_rating"`
}

// OwnerDashboard is the store-owner dashboard payload.
type OwnerDashboard struct {
	Store         *model.Store                `json:"store"`
	AverageRating string                      `json:"average_rating"`
	Ratings       []repository.RatingWithUser `json:"ratings"`
	TotalRatings  int                         `json:"total_ratings"`
}

// CreateStoreInput carries the admin create-store request fields.
type CreateStoreInput struct {
	Name          string
	Email         string
	Address       string
	OwnerName     string
	OwnerPassword string
}

// StoreService handles store browsing, the owner dashboard, and the
// store-with-owner creation flow.
type StoreService interface {
	ListForUser(ctx context.Context, userID uint, search string) ([]StoreSummary, error)
	OwnerDashboard(ctx context.Context, ownerID uint) (*OwnerDashboard, error)
	// CreateStoreWithOwner creates the owning store_owner account and the
	// store inside one transaction: a store-insert failure rolls the owner
	// insert back too, leaving no orphaned account.
	CreateStoreWithOwner(ctx context.Context, in CreateStoreInput) (*model.Store, *model.User, error)
}

type storeService struct {
	storeRepo  repository.StoreRepository
	userRepo   repository.UserRepository
	ratingRepo repository.RatingRepository
	cache      *cache.Client
}

// NewStoreService creates a new store service.
func NewStoreService(
	storeRepo repository.StoreRepository,
	userRepo repository.UserRepository,
	ratingRepo repository.RatingRepository,
	cache *cache.Client,
) StoreService {
	return &storeService{
		storeRepo:  storeRepo,
		userRepo:   userRepo,
		ratingRepo: ratingRepo,
		cache:      cache,
	}
}

// ListForUser lists stores with live aggregates and the caller's own rating.
func (s *storeService) ListForUser(ctx context.Context, userID uint, search string) ([]StoreSummary, error) {
	rows, err := s.storeRepo.ListForUser(ctx, userID, search)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}

	out := make([]StoreSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, StoreSummary{
			ID:            row.ID,
			Name:          row.Name,
			Email:         row.Email,
			Address:       row.Address,
			AverageRating: FormatAverage(row.AverageRating),
			TotalRatings:  row.TotalRatings,
			UserRating:    row.UserRating,
		})
	}
	return out, nil
}

// OwnerDashboard returns the caller's store with its ratings, newest first.
func (s *storeService) OwnerDashboard(ctx context.Context, ownerID uint) (*OwnerDashboard, error) {
	store, err := s.storeRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoStoreForOwner
		}
		return nil, fmt.Errorf("find store for owner: %w", err)
	}

	ratings, err := s.ratingRepo.ListForStore(ctx, store.ID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}

	average, _, err := s.ratingRepo.AggregateForStore(ctx, store.ID)
	if err != nil {
		return nil, fmt.Errorf("aggregate ratings: %w", err)
	}

	return &OwnerDashboard{
		Store:         store,
		AverageRating: FormatAverage(average),
		Ratings:       ratings,
		TotalRatings:  len(ratings),
	}, nil
}

// CreateStoreWithOwner validates fields, pre-checks email uniqueness across
// both stores and users, then writes the owner account and the store inside
// one transaction. The pre-checks are a fast path: a race past them still
// surfaces the constraint violation as the duplicate-email error.
func (s *storeService) CreateStoreWithOwner(ctx context.Context, in CreateStoreInput) (*model.Store, *model.User, error) {
	if err := ValidateName(in.OwnerName); err != nil {
		return nil, nil, err
	}
	if err := ValidatePassword(in.OwnerPassword); err != nil {
		return nil, nil, err
	}
	if err := ValidateAddress(in.Address); err != nil {
		return nil, nil, err
	}

	if existing, err := s.storeRepo.FindByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, nil, apperrors.ErrEmailExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("check store email: %w", err)
	}
	if existing, err := s.userRepo.FindByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, nil, apperrors.ErrEmailExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("check owner email: %w", err)
	}

	hash, err := auth.HashPassword(in.OwnerPassword)
	if err != nil {
		return nil, nil, fmt.Errorf("hash owner password: %w", err)
	}

	address := in.Address
	owner := &model.User{
		Name:         in.OwnerName,
		Email:        in.Email,
		PasswordHash: hash,
		Address:      &address,
		Role:         model.RoleStoreOwner,
	}
	var store *model.Store

	// Owner first: the store row references owner_id. Any failure inside
	// rolls back both inserts.
	err = s.storeRepo.WithTransaction(ctx, func(ctx context.Context, users repository.UserRepository, stores repository.StoreRepository) error {
		if err := users.Create(ctx, owner); err != nil {
			return fmt.Errorf("create owner: %w", err)
		}
		store = &model.Store{
			Name:    in.Name,
			Email:   in.Email,
			Address: in.Address,
			OwnerID: owner.ID,
		}
		if err := stores.Create(ctx, store); err != nil {
			return fmt.Errorf("create store: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, apperrors.ErrEmailExists
		}
		return nil, nil, err
	}

	_ = s.cache.Delete(ctx, dashboardCacheKey)

	return store, owner, nil
}
