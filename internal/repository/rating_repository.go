package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storehub/internal/model"
)

// RatingWithUser is a store-owner dashboard row: one rating joined with the
// rater's name and email.
type RatingWithUser struct {
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
}

// RatingRepository defines rating persistence operations.
type RatingRepository interface {
	// Upsert atomically inserts or overwrites the rating for the
	// (user_id, store_id) pair and returns the post-upsert row. The composite
	// unique index makes two concurrent submissions collapse to one row.
	Upsert(ctx context.Context, rating *model.Rating) (*model.Rating, error)
	FindByUserAndStore(ctx context.Context, userID, storeID uint) (*model.Rating, error)
	AggregateForStore(ctx context.Context, storeID uint) (average float64, count int64, err error)
	ListForStore(ctx context.Context, storeID uint) ([]RatingWithUser, error)
	Count(ctx context.Context) (int64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new rating repository.
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Upsert(ctx context.Context, rating *model.Rating) (*model.Rating, error) {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "store_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
	}).Create(rating).Error
	if err != nil {
		return nil, err
	}
	// Re-read so the overwrite path returns the original created_at and the
	// row's real primary key.
	return r.FindByUserAndStore(ctx, rating.UserID, rating.StoreID)
}

func (r *ratingRepository) FindByUserAndStore(ctx context.Context, userID, storeID uint) (*model.Rating, error) {
	var rating model.Rating
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

// AggregateForStore recomputes the average and count from the live rows on
// every call; nothing is maintained incrementally. Zero rows yields 0, 0.
func (r *ratingRepository) AggregateForStore(ctx context.Context, storeID uint) (float64, int64, error) {
	var row struct {
		Average float64
		Total   int64
	}
	err := r.db.WithContext(ctx).Model(&model.Rating{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS total").
		Where("store_id = ?", storeID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Average, row.Total, nil
}

// ListForStore lists a store's ratings with rater details, newest first.
func (r *ratingRepository) ListForStore(ctx context.Context, storeID uint) ([]RatingWithUser, error) {
	var rows []RatingWithUser
	err := r.db.WithContext(ctx).Table("ratings r").
		Select("r.rating, r.created_at, u.name AS user_name, u.email AS user_email").
		Joins("JOIN users u ON r.user_id = u.id").
		Where("r.store_id = ?", storeID).
		Order("r.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ratingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Rating{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
