package model

import "time"

// Role is the closed set of account roles. Authorization decisions derive
// from the predicates below, never from ad-hoc string comparison at call
// sites.
type Role string

const (
	RoleNormalUser  Role = "normal_user"
	RoleStoreOwner  Role = "store_owner"
	RoleSystemAdmin Role = "system_admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleNormalUser, RoleStoreOwner, RoleSystemAdmin:
		return true
	}
	return false
}

// IsAdmin reports whether r carries administrator capability.
func (r Role) IsAdmin() bool { return r == RoleSystemAdmin }

// CanRate reports whether r may browse stores and submit ratings.
func (r Role) CanRate() bool { return r == RoleNormalUser || r == RoleSystemAdmin }

// CanViewOwnerDashboard reports whether r may access the store-owner dashboard.
func (r Role) CanViewOwnerDashboard() bool { return r == RoleStoreOwner || r == RoleSystemAdmin }

// User represents an account in the platform.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:60;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"column:password;size:255;not null"` // Never expose in JSON
	Address      *string   `json:"address" gorm:"size:400"`
	Role         Role      `json:"role" gorm:"type:varchar(20);not null;default:'normal_user';index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
