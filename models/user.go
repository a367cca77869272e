package models

import (
	"time"
)

const UserTable = "rw_users"

// User carries the points balance directly (one integer column, credit-only).
type User struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	FirstName    string `gorm:"size:255;not null" json:"firstName"`
	LastName     string `gorm:"size:255" json:"lastName,omitempty"`
	PasswordHash string `gorm:"size:255" json:"-"`

	Points  int  `gorm:"not null;default:0" json:"points"`
	IsAdmin bool `gorm:"not null;default:false" json:"isAdmin"`

	LastSeenAt *time.Time `gorm:"index" json:"lastSeenAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return UserTable }
