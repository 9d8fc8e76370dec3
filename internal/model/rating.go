package model

import "time"

// Rating represents one user's rating of one store. The composite unique
// index on (user_id, store_id) is the anchor for upsert semantics: a
// resubmission overwrites the value instead of adding a row.
type Rating struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_ratings_user_store"`
	StoreID   uint      `json:"store_id" gorm:"not null;uniqueIndex:idx_ratings_user_store"`
	Rating    int       `json:"rating" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User  User  `json:"-" gorm:"foreignKey:UserID"`
	Store Store `json:"-" gorm:"foreignKey:StoreID"`
}
