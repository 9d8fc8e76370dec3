package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "storehub/internal/errors"
	"storehub/internal/model"
	"storehub/internal/repository"
)

func TestAdminService_Dashboard(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("Count", mock.Anything).Return(int64(12), nil)
	storeRepo := new(MockStoreRepository)
	storeRepo.On("Count", mock.Anything).Return(int64(4), nil)
	ratingRepo := new(MockRatingRepository)
	ratingRepo.On("Count", mock.Anything).Return(int64(31), nil)

	svc := NewAdminService(userRepo, storeRepo, ratingRepo, nil)
	stats, err := svc.Dashboard(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(12), stats.TotalUsers)
	assert.Equal(t, int64(4), stats.TotalStores)
	assert.Equal(t, int64(31), stats.TotalRatings)
	userRepo.AssertExpectations(t)
	storeRepo.AssertExpectations(t)
	ratingRepo.AssertExpectations(t)
}

func TestAdminService_CreateUser(t *testing.T) {
	validName := strings.Repeat("a", 25)

	tests := []struct {
		name          string
		userName      string
		password      string
		role          model.Role
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "admin account created",
			userName: validName,
			password: "Admin@123",
			role:     model.RoleSystemAdmin,
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:          "unknown role rejected",
			userName:      validName,
			password:      "Admin@123",
			role:          model.Role("superuser"),
			setupMock:     func(*MockUserRepository) {},
			expectedError: apperrors.ErrInvalidRole,
		},
		{
			name:          "name rules apply to admin-created accounts",
			userName:      "short",
			password:      "Admin@123",
			role:          model.RoleNormalUser,
			setupMock:     func(*MockUserRepository) {},
			expectedError: apperrors.NewValidationError("Name must be between 20-60 characters"),
		},
		{
			name:     "duplicate email surfaces from the constraint",
			userName: validName,
			password: "Admin@123",
			role:     model.RoleNormalUser,
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrEmailExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			tt.setupMock(userRepo)

			svc := NewAdminService(userRepo, new(MockStoreRepository), new(MockRatingRepository), nil)
			user, err := svc.CreateUser(context.Background(), tt.userName, "created@example.com", tt.password, nil, tt.role)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.EqualError(t, err, tt.expectedError.Error())
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.role, user.Role)
				assert.NotEqual(t, tt.password, user.PasswordHash)
			}
			userRepo.AssertExpectations(t)
		})
	}
}

func TestAdminService_ListUsers_FormatsOwnerRating(t *testing.T) {
	avg := 4.5
	userRepo := new(MockUserRepository)
	userRepo.On("ListWithStoreRating", mock.Anything).Return([]repository.UserWithStoreRating{
		{ID: 1, Name: strings.Repeat("a", 20), Email: "a@example.com", Role: model.RoleNormalUser, CreatedAt: time.Now()},
		{ID: 2, Name: strings.Repeat("b", 20), Email: "b@example.com", Role: model.RoleStoreOwner, CreatedAt: time.Now(), StoreRating: &avg},
	}, nil)

	svc := NewAdminService(userRepo, new(MockStoreRepository), new(MockRatingRepository), nil)
	users, err := svc.ListUsers(context.Background())

	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Nil(t, users[0].StoreRating)
	if assert.NotNil(t, users[1].StoreRating) {
		assert.Equal(t, "4.5", *users[1].StoreRating)
	}
	userRepo.AssertExpectations(t)
}

func TestAdminService_ListStores(t *testing.T) {
	storeRepo := new(MockStoreRepository)
	storeRepo.On("ListWithRatings", mock.Anything).Return([]repository.StoreWithRatings{
		{ID: 1, Name: "Corner Grocery", Email: "corner@example.com", Address: "12 Main Street", OwnerID: 9, AverageRating: 3.25, TotalRatings: 4, OwnerName: strings.Repeat("o", 20)},
	}, nil)

	svc := NewAdminService(new(MockUserRepository), storeRepo, new(MockRatingRepository), nil)
	stores, err := svc.ListStores(context.Background())

	assert.NoError(t, err)
	assert.Len(t, stores, 1)
	assert.Equal(t, "3.3", stores[0].AverageRating)
	assert.Equal(t, int64(4), stores[0].TotalRatings)
	assert.Equal(t, strings.Repeat("o", 20), stores[0].OwnerName)
	storeRepo.AssertExpectations(t)
}
