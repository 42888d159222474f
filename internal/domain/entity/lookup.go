package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type School struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Name       string    `gorm:"not null;uniqueIndex" json:"name"`
	Country    string    `gorm:"not null" json:"country"`
	IsVerified bool      `gorm:"not null" json:"isVerified"`
}

func (s *School) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// Country is keyed by its ISO 3166 alpha-2 code.
type Country struct {
	Code      string    `gorm:"primaryKey;type:text" json:"code"`
	Name      string    `gorm:"not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type DietaryRestriction struct {
	ID   string `gorm:"primaryKey;type:text" json:"id"`
	Name string `gorm:"not null;uniqueIndex" json:"name"`
}

// DietaryRestrictionOtherID tags free-text allergy details submitted without a selected restriction.
const DietaryRestrictionOtherID = "other"
