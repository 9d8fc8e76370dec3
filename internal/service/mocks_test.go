package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storehub/internal/model"
	"storehub/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmailAndRole(ctx context.Context, email string, role model.Role) (*model.User, error) {
	args := m.Called(ctx, email, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) ListWithStoreRating(ctx context.Context) ([]repository.UserWithStoreRating, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.UserWithStoreRating), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockStoreRepository is a mock implementation of StoreRepository. TxUsers and
// TxStores stand in for the tx-scoped repositories handed to a
// WithTransaction callback.
type MockStoreRepository struct {
	mock.Mock
	TxUsers  repository.UserRepository
	TxStores repository.StoreRepository
}

func (m *MockStoreRepository) Create(ctx context.Context, store *model.Store) error {
	args := m.Called(ctx, store)
	return args.Error(0)
}

func (m *MockStoreRepository) FindByID(ctx context.Context, id uint) (*model.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Store), args.Error(1)
}

func (m *MockStoreRepository) FindByEmail(ctx context.Context, email string) (*model.Store, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Store), args.Error(1)
}

func (m *MockStoreRepository) FindByOwnerID(ctx context.Context, ownerID uint) (*model.Store, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Store), args.Error(1)
}

func (m *MockStoreRepository) ListWithRatings(ctx context.Context) ([]repository.StoreWithRatings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.StoreWithRatings), args.Error(1)
}

func (m *MockStoreRepository) ListForUser(ctx context.Context, userID uint, search string) ([]repository.StoreForUser, error) {
	args := m.Called(ctx, userID, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.StoreForUser), args.Error(1)
}

func (m *MockStoreRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStoreRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, users repository.UserRepository, stores repository.StoreRepository) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m.TxUsers, m.TxStores)
}

// MockRatingRepository is a mock implementation of RatingRepository.
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Upsert(ctx context.Context, rating *model.Rating) (*model.Rating, error) {
	args := m.Called(ctx, rating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Rating), args.Error(1)
}

func (m *MockRatingRepository) FindByUserAndStore(ctx context.Context, userID, storeID uint) (*model.Rating, error) {
	args := m.Called(ctx, userID, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Rating), args.Error(1)
}

func (m *MockRatingRepository) AggregateForStore(ctx context.Context, storeID uint) (float64, int64, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

func (m *MockRatingRepository) ListForStore(ctx context.Context, storeID uint) ([]repository.RatingWithUser, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.RatingWithUser), args.Error(1)
}

func (m *MockRatingRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
