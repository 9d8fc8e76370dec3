package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storehub/internal/auth"
	apperrors "storehub/internal/errors"
	"storehub/internal/model"
	"storehub/internal/repository"
)

// AuthService handles registration, login, and password changes.
type AuthService interface {
	Register(ctx context.Context, name, email, password string, address *string) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	// AdminLogin is the legacy admin-scoped login: identical to Login but
	// only matches system_admin accounts.
	AdminLogin(ctx context.Context, email, password string) (token string, user *model.User, err error)
	ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a normal_user account after field validation. The email
// pre-check is a fast path only; the unique index is the authoritative guard
// and a constraint violation still maps to the duplicate-email error.
func (s *authService) Register(ctx context.Context, name, email, password string, address *string) (*model.User, error) {
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

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
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
		Role:         model.RoleNormalUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates any account and issues a 24h token carrying the
// identity claims.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}
	return s.issueFor(user, password)
}

// AdminLogin authenticates only system_admin accounts.
func (s *authService) AdminLogin(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmailAndRole(ctx, email, model.RoleSystemAdmin)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}
	return s.issueFor(user, password)
}

func (s *authService) issueFor(user *model.User, password string) (string, *model.User, error) {
	if !auth.VerifyPassword(password, user.PasswordHash) {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}

// ChangePassword verifies the current password and stores a new hash. Tokens
// issued before the change stay valid until expiry.
func (s *authService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if !auth.VerifyPassword(currentPassword, user.PasswordHash) {
		return apperrors.ErrWrongPassword
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
