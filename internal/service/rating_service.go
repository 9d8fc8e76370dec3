package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storehub/internal/cache"
	apperrors "storehub/internal/errors"
	"storehub/internal/model"
	"storehub/internal/repository"
)

// StoreAggregate is the live aggregate for one store. Average is rendered
// with one decimal place ("0.0" when there are no ratings).
type StoreAggregate struct {
	Average string `json:"average"`
	Count   int64  `json:"count"`
}

// RatingService is the rating ledger: at most one rating per (user, store)
// pair, enforced by the datastore's unique constraint, never by in-process
// locks.
type RatingService interface {
	Submit(ctx context.Context, raterID, storeID uint, value int) (*model.Rating, error)
	AggregateForStore(ctx context.Context, storeID uint) (*StoreAggregate, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	storeRepo  repository.StoreRepository
	cache      *cache.Client
}

// NewRatingService creates a new rating service.
func NewRatingService(ratingRepo repository.RatingRepository, storeRepo repository.StoreRepository, cache *cache.Client) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		storeRepo:  storeRepo,
		cache:      cache,
	}
}

// Submit validates and upserts a rating. A resubmission for the same
// (rater, store) pair overwrites the value and bumps updated_at, leaving
// created_at untouched.
func (s *ratingService) Submit(ctx context.Context, raterID, storeID uint, value int) (*model.Rating, error) {
	if value < 1 || value > 5 {
		return nil, apperrors.ErrInvalidRating
	}

	if _, err := s.storeRepo.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStoreNotFound
		}
		return nil, fmt.Errorf("find store: %w", err)
	}

	rating, err := s.ratingRepo.Upsert(ctx, &model.Rating{
		UserID:  raterID,
		StoreID: storeID,
		Rating:  value,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert rating: %w", err)
	}

	_ = s.cache.Delete(ctx, dashboardCacheKey)

	return rating, nil
}

// AggregateForStore recomputes {average, count} from the live rows on every
// call.
func (s *ratingService) AggregateForStore(ctx context.Context, storeID uint) (*StoreAggregate, error) {
	average, count, err := s.ratingRepo.AggregateForStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("aggregate ratings: %w", err)
	}
	return &StoreAggregate{
		Average: FormatAverage(average),
		Count:   count,
	}, nil
}
