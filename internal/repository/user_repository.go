package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"storehub/internal/model"
)

// UserWithStoreRating is an admin-listing row: a user plus, for store owners,
// the average rating across their stores.
type UserWithStoreRating struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Address     *string    `json:"address"`
	Role        model.Role `json:"role"`
	CreatedAt   time.Time  `json:"created_at"`
	StoreRating *float64   `json:"-"`
}

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByEmailAndRole(ctx context.Context, email string, role model.Role) (*model.User, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	ListWithStoreRating(ctx context.Context) ([]UserWithStoreRating, error)
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmailAndRole(ctx context.Context, email string, role model.Role) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ? AND role = ?", email, role).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("password", passwordHash).Error
}

// ListWithStoreRating lists all users ordered by name. Store owners carry the
// average rating of their stores; everyone else carries NULL.
func (r *userRepository) ListWithStoreRating(ctx context.Context) ([]UserWithStoreRating, error) {
	var rows []UserWithStoreRating
	err := r.db.WithContext(ctx).Table("users u").
		Select(`u.id, u.name, u.email, u.address, u.role, u.created_at,
			CASE WHEN u.role = 'store_owner' THEN (
				SELECT COALESCE(AVG(r2.rating), 0)
				FROM stores s
				LEFT JOIN ratings r2 ON s.id = r2.store_id
				WHERE s.owner_id = u.id
			) ELSE NULL END AS store_rating`).
		Order("u.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
