package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"storehub/internal/model"
)

// StoreWithRatings is an admin-listing row: a store plus its live aggregate
// rating figures and the owner's name.
type StoreWithRatings struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	OwnerID       uint      `json:"owner_id"`
	CreatedAt     time.Time `json:"created_at"`
	AverageRating float64   `json:"-"`
	TotalRatings  int64     `json:"total_ratings"`
	OwnerName     string    `json:"owner_name"`
}

// StoreForUser is a browse-listing row: a store plus aggregates and the
// calling user's own rating, if any.
type StoreForUser struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Address       string  `json:"address"`
	AverageRating float64 `json:"-"`
	TotalRatings  int64   `json:"total_ratings"`
	UserRating    *int    `json:"user_rating"`
}

// StoreRepository defines store persistence operations.
type StoreRepository interface {
	Create(ctx context.Context, store *model.Store) error
	FindByID(ctx context.Context, id uint) (*model.Store, error)
	FindByEmail(ctx context.Context, email string) (*model.Store, error)
	FindByOwnerID(ctx context.Context, ownerID uint) (*model.Store, error)
	ListWithRatings(ctx context.Context) ([]StoreWithRatings, error)
	ListForUser(ctx context.Context, userID uint, search string) ([]StoreForUser, error)
	Count(ctx context.Context) (int64, error)
	// WithTransaction runs fn with tx-scoped user and store repositories.
	// Either every write inside fn commits or none do.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, users UserRepository, stores StoreRepository) error) error
}

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository creates a new store repository.
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(ctx context.Context, store *model.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}

func (r *storeRepository) FindByID(ctx context.Context, id uint) (*model.Store, error) {
	var store model.Store
	if err := r.db.WithContext(ctx).First(&store, id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) FindByEmail(ctx context.Context, email string) (*model.Store, error) {
	var store model.Store
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) FindByOwnerID(ctx context.Context, ownerID uint) (*model.Store, error) {
	var store model.Store
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// ListWithRatings lists all stores with aggregate ratings and owner names,
// ordered by store name. Aggregates come from the live rating rows.
func (r *storeRepository) ListWithRatings(ctx context.Context) ([]StoreWithRatings, error) {
	var rows []StoreWithRatings
	err := r.db.WithContext(ctx).Table("stores s").
		Select(`s.id, s.name, s.email, s.address, s.owner_id, s.created_at,
			COALESCE(AVG(r.rating), 0) AS average_rating,
			COUNT(r.rating) AS total_ratings,
			u.name AS owner_name`).
		Joins("LEFT JOIN ratings r ON s.id = r.store_id").
		Joins("LEFT JOIN users u ON s.owner_id = u.id").
		Group("s.id, s.name, s.email, s.address, s.owner_id, s.created_at, u.name").
		Order("s.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListForUser lists stores for the browse view, with aggregates and the
// caller's own rating. search, when non-empty, filters on name or address as
// a case-insensitive substring match.
func (r *storeRepository) ListForUser(ctx context.Context, userID uint, search string) ([]StoreForUser, error) {
	q := r.db.WithContext(ctx).Table("stores s").
		Select(`s.id, s.name, s.email, s.address,
			COALESCE(AVG(r.rating), 0) AS average_rating,
			COUNT(r.rating) AS total_ratings,
			ur.rating AS user_rating`).
		Joins("LEFT JOIN ratings r ON s.id = r.store_id").
		Joins("LEFT JOIN ratings ur ON s.id = ur.store_id AND ur.user_id = ?", userID)

	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("s.name LIKE ? OR s.address LIKE ?", pattern, pattern)
	}

	var rows []StoreForUser
	err := q.Group("s.id, s.name, s.email, s.address, ur.rating").
		Order("s.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *storeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Store{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// WithTransaction executes fn within a database transaction.
func (r *storeRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, users UserRepository, stores StoreRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &userRepository{db: tx}, &storeRepository{db: tx})
	})
}
