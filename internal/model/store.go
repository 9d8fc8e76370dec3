package model

import "time"

// Store represents a rateable store. Every store is created together with
// its owning store_owner account; the owner's email equals the store's email
// at creation time.
type Store struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null;index"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Address   string    `json:"address" gorm:"size:400;not null"`
	OwnerID   uint      `json:"owner_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Owner User `json:"-" gorm:"foreignKey:OwnerID"`
}
