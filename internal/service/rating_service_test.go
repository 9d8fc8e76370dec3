package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "storehub/internal/errors"
	"storehub/internal/model"
)

func TestRatingService_Submit(t *testing.T) {
	tests := []struct {
		name          string
		value         int
		setupMocks    func(*MockRatingRepository, *MockStoreRepository)
		expectedError error
	}{
		{
			name:  "successful submission",
			value: 4,
			setupMocks: func(ratings *MockRatingRepository, stores *MockStoreRepository) {
				stores.On("FindByID", mock.Anything, uint(7)).Return(&model.Store{ID: 7}, nil)
				ratings.On("Upsert", mock.Anything, mock.AnythingOfType("*model.Rating")).Return(&model.Rating{
					ID:      1,
					UserID:  2,
					StoreID: 7,
					Rating:  4,
				}, nil)
			},
		},
		{
			name:          "rating below range",
			value:         0,
			setupMocks:    func(*MockRatingRepository, *MockStoreRepository) {},
			expectedError: apperrors.ErrInvalidRating,
		},
		{
			name:          "rating above range",
			value:         6,
			setupMocks:    func(*MockRatingRepository, *MockStoreRepository) {},
			expectedError: apperrors.ErrInvalidRating,
		},
		{
			name:  "store not found",
			value: 3,
			setupMocks: func(ratings *MockRatingRepository, stores *MockStoreRepository) {
				stores.On("FindByID", mock.Anything, uint(7)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrStoreNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ratingRepo := new(MockRatingRepository)
			storeRepo := new(MockStoreRepository)
			tt.setupMocks(ratingRepo, storeRepo)

			svc := NewRatingService(ratingRepo, storeRepo, nil)
			rating, err := svc.Submit(context.Background(), 2, 7, tt.value)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, rating)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, rating)
				assert.Equal(t, tt.value, rating.Rating)
			}

			ratingRepo.AssertExpectations(t)
			storeRepo.AssertExpectations(t)
		})
	}
}

func TestRatingService_Submit_ResubmissionKeepsCreatedAt(t *testing.T) {
	created := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	ratingRepo := new(MockRatingRepository)
	storeRepo := new(MockStoreRepository)
	storeRepo.On("FindByID", mock.Anything, uint(7)).Return(&model.Store{ID: 7}, nil)
	ratingRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*model.Rating")).Return(&model.Rating{
		ID:        1,
		UserID:    2,
		StoreID:   7,
		Rating:    5,
		CreatedAt: created,
		UpdatedAt: created.Add(48 * time.Hour),
	}, nil)

	svc := NewRatingService(ratingRepo, storeRepo, nil)
	rating, err := svc.Submit(context.Background(), 2, 7, 5)

	assert.NoError(t, err)
	assert.Equal(t, 5, rating.Rating)
	assert.Equal(t, created, rating.CreatedAt)
	assert.True(t, rating.UpdatedAt.After(rating.CreatedAt))
}

func TestRatingService_AggregateForStore(t *testing.T) {
	tests := []struct {
		name            string
		average         float64
		count           int64
		expectedAverage string
	}{
		{name: "no ratings", average: 0, count: 0, expectedAverage: "0.0"},
		{name: "integer average", average: 4, count: 2, expectedAverage: "4.0"},
		{name: "rounded average", average: 3.6666666, count: 3, expectedAverage: "3.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ratingRepo := new(MockRatingRepository)
			ratingRepo.On("AggregateForStore", mock.Anything, uint(7)).Return(tt.average, tt.count, nil)

			svc := NewRatingService(ratingRepo, new(MockStoreRepository), nil)
			agg, err := svc.AggregateForStore(context.Background(), 7)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedAverage, agg.Average)
			assert.Equal(t, tt.count, agg.Count)
			ratingRepo.AssertExpectations(t)
		})
	}
}
