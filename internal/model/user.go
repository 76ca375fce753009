package model

import "time"

// Role values form a closed enumeration; handlers never compare ad hoc strings.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Status values for a user account.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User represents an authenticated user in the system.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:50;not null;default:'user'"`
	Status       string    `json:"status" gorm:"size:50;not null;default:'active'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsActive reports whether the account may authenticate or refresh tokens.
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// ValidRole reports whether role is one of the known role values.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// ValidStatus reports whether status is one of the known status values.
func ValidStatus(status string) bool {
	return status == StatusActive || status == StatusInactive
}
