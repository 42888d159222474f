package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HackerProfile is created on the first registration and reused across events.
type HackerProfile struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	UserID      string    `gorm:"not null;uniqueIndex;type:text" json:"userId"`
	User        User      `json:"-"`
	FirstName   string    `gorm:"not null" json:"firstName"`
	LastName    string    `gorm:"not null" json:"lastName"`
	PhoneNumber string    `gorm:"not null" json:"phoneNumber"`
	LinkedinURL *string   `json:"linkedinUrl"`
}

func (p *HackerProfile) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
