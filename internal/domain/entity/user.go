package entity

import "time"

// User is the identity provider's account record. The portal only reads it.
type User struct {
	ID            string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Name          string    `gorm:"not null" json:"name"`
	Email         string    `gorm:"not null;uniqueIndex" json:"email"`
	EmailVerified bool      `gorm:"not null" json:"emailVerified"`
	IsAdmin       bool      `gorm:"not null" json:"isAdmin"`
}
