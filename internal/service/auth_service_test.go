package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"storehub/internal/auth"
	apperrors "storehub/internal/errors"
	"storehub/internal/model"
)

func TestAuthService_Register(t *testing.T) {
	validName := strings.Repeat("a", 25)

	tests := []struct {
		name          string
		userName      string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			userName: validName,
			email:    "new@example.com",
			password: "Abc@1234",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:          "name too short",
			userName:      strings.Repeat("a", 19),
			email:         "new@example.com",
			password:      "Abc@1234",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.NewValidationError("Name must be between 20-60 characters"),
		},
		{
			name:          "password without special character",
			userName:      validName,
			email:         "new@example.com",
			password:      "Abc12345",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.NewValidationError("Password must contain at least one special character"),
		},
		{
			name:     "email already registered",
			userName: validName,
			email:    "taken@example.com",
			password: "Abc@1234",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{Email: "taken@example.com"}, nil)
			},
			expectedError: apperrors.ErrEmailExists,
		},
		{
			name:     "pre-check race still maps constraint violation",
			userName: validName,
			email:    "race@example.com",
			password: "Abc@1234",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "race@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrEmailExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			svc := NewAuthService(mockRepo, jwtService)

			user, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password, nil)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.EqualError(t, err, tt.expectedError.Error())
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, model.RoleNormalUser, user.Role)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := auth.HashPassword("Abc@1234")
	assert.NoError(t, err)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "user@example.com",
			password: "Abc@1234",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "user@example.com").Return(&model.User{
					ID:           3,
					Email:        "user@example.com",
					PasswordHash: hash,
					Role:         model.RoleNormalUser,
				}, nil)
			},
		},
		{
			name:     "unknown email",
			email:    "absent@example.com",
			password: "Abc@1234",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "absent@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "user@example.com",
			password: "Wrong@123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "user@example.com").Return(&model.User{
					ID:           3,
					Email:        "user@example.com",
					PasswordHash: hash,
					Role:         model.RoleNormalUser,
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			svc := NewAuthService(mockRepo, jwtService)

			token, user, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.NotNil(t, user)

				// Issued token carries the identity claims.
				claims, err := jwtService.ValidateToken(token)
				assert.NoError(t, err)
				assert.Equal(t, user.ID, claims.UserID)
				assert.Equal(t, user.Email, claims.Email)
				assert.Equal(t, user.Role, claims.Role)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_AdminLogin_FiltersOnRole(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmailAndRole", mock.Anything, "user@example.com", model.RoleSystemAdmin).
		Return(nil, gorm.ErrRecordNotFound)

	svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret"))

	token, user, err := svc.AdminLogin(context.Background(), "user@example.com", "Abc@1234")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Empty(t, token)
	assert.Nil(t, user)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ChangePassword(t *testing.T) {
	hash, err := auth.HashPassword("Old@1234")
	assert.NoError(t, err)

	tests := []struct {
		name            string
		currentPassword string
		newPassword     string
		setupMock       func(*MockUserRepository)
		expectedError   error
	}{
		{
			name:            "successful change",
			currentPassword: "Old@1234",
			newPassword:     "New@1234",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(&model.User{ID: 5, PasswordHash: hash}, nil)
				m.On("UpdatePassword", mock.Anything, uint(5), mock.AnythingOfType("string")).Return(nil)
			},
		},
		{
			name:            "wrong current password",
			currentPassword: "Bad@1234",
			newPassword:     "New@1234",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(&model.User{ID: 5, PasswordHash: hash}, nil)
			},
			expectedError: apperrors.ErrWrongPassword,
		},
		{
			name:            "new password fails validation",
			currentPassword: "Old@1234",
			newPassword:     "weakpass",
			setupMock:       func(m *MockUserRepository) {},
			expectedError:   apperrors.NewValidationError("Password must contain at least one uppercase letter"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret"))
			err := svc.ChangePassword(context.Background(), 5, tt.currentPassword, tt.newPassword)

			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}
