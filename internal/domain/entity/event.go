package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	ID                   string     `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
	Name                 string     `gorm:"not null;uniqueIndex" json:"name"`
	Year                 int        `gorm:"not null;uniqueIndex" json:"year"`
	StartDate            time.Time  `gorm:"not null" json:"startDate"`
	EndDate              time.Time  `gorm:"not null" json:"endDate"`
	IsActive             bool       `gorm:"not null;index" json:"isActive"`
	RegistrationOpensAt  *time.Time `json:"registrationOpensAt"`
	RegistrationClosesAt *time.Time `json:"registrationClosesAt"`
}

func (e *Event) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// HasEnded reports whether the event's end date is strictly before now.
// An ended event keeps its active flag until another event replaces it.
func (e *Event) HasEnded(now time.Time) bool {
	return e.EndDate.Before(now)
}

// RegistrationOpen reports whether now falls into the optional registration window.
// A missing bound leaves that side of the window open.
func (e *Event) RegistrationOpen(now time.Time) bool {
	if e.RegistrationOpensAt != nil && now.Before(*e.RegistrationOpensAt) {
		return false
	}
	if e.RegistrationClosesAt != nil && now.After(*e.RegistrationClosesAt) {
		return false
	}
	return true
}

// EventState is the single row that points at the active event.
// Version is bumped on every activation so concurrent writers can detect each other.
type EventState struct {
	ID            uint      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	ActiveEventID *string   `json:"activeEventId"`
	Version       int64     `gorm:"not null" json:"version"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// EventStateID is the primary key of the only EventState row.
const EventStateID = 1
