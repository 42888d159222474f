package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventRegistration links a hacker profile to an event. A profile registers at most once per event.
type EventRegistration struct {
	ID              string        `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
	EventID         string        `gorm:"not null;type:uuid;uniqueIndex:idx_event_hacker" json:"eventId"`
	Event           Event         `json:"-"`
	HackerProfileID string        `gorm:"not null;type:uuid;uniqueIndex:idx_event_hacker" json:"hackerProfileId"`
	HackerProfile   HackerProfile `json:"hackerProfile"`
	AgeAtEvent      int           `gorm:"not null" json:"ageAtEvent"`
	QRCode          string        `gorm:"not null;uniqueIndex" json:"qrCode"`
	IsComplete      bool          `gorm:"not null" json:"isComplete"`
	LockedAt        *time.Time    `json:"lockedAt"`

	Education           *EventRegistrationEducation           `gorm:"foreignKey:EventRegistrationID" json:"education"`
	Shipping            *EventRegistrationShipping            `gorm:"foreignKey:EventRegistrationID" json:"shipping"`
	MlhAgreement        *EventRegistrationMlhAgreement        `gorm:"foreignKey:EventRegistrationID" json:"mlhAgreement"`
	DietaryRestrictions []EventRegistrationDietaryRestriction `gorm:"foreignKey:EventRegistrationID" json:"dietaryRestrictions"`
}

func (r *EventRegistration) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

type EventRegistrationEducation struct {
	ID                  string    `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
	EventRegistrationID string    `gorm:"not null;type:uuid;uniqueIndex" json:"eventRegistrationId"`
	SchoolID            string    `gorm:"not null;type:uuid" json:"schoolId"`
	School              School    `json:"school"`
	LevelOfStudy        string    `gorm:"not null" json:"levelOfStudy"`
	Major               *string   `json:"major"`
	GraduationYear      *int      `json:"graduationYear"`
}

func (e *EventRegistrationEducation) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

type EventRegistrationShipping struct {
	ID                  string    `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
	EventRegistrationID string    `gorm:"not null;type:uuid;uniqueIndex" json:"eventRegistrationId"`
	AddressLine1        string    `gorm:"not null" json:"addressLine1"`
	AddressLine2        *string   `json:"addressLine2"`
	City                string    `gorm:"not null" json:"city"`
	State               string    `gorm:"not null" json:"state"`
	Country             string    `gorm:"not null" json:"country"`
	PostalCode          string    `gorm:"not null" json:"postalCode"`
	TshirtSize          *string   `json:"tshirtSize"`
}

func (s *EventRegistrationShipping) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

type EventRegistrationMlhAgreement struct {
	ID                    string    `gorm:"primaryKey;type:uuid" json:"id"`
	EventRegistrationID   string    `gorm:"not null;type:uuid;uniqueIndex" json:"eventRegistrationId"`
	AgreedToCodeOfConduct bool      `gorm:"not null" json:"agreedToCodeOfConduct"`
	AgreedToMlhSharing    bool      `gorm:"not null" json:"agreedToMlhSharing"`
	AgreedToMlhEmails     bool      `gorm:"not null" json:"agreedToMlhEmails"`
	AgreedAt              time.Time `json:"agreedAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

func (a *EventRegistrationMlhAgreement) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// EventRegistrationDietaryRestriction is the junction between a registration and a dietary restriction.
type EventRegistrationDietaryRestriction struct {
	ID                   string             `gorm:"primaryKey;type:uuid" json:"id"`
	EventRegistrationID  string             `gorm:"not null;type:uuid;index" json:"eventRegistrationId"`
	DietaryRestrictionID string             `gorm:"not null;type:text" json:"dietaryRestrictionId"`
	DietaryRestriction   DietaryRestriction `json:"dietaryRestriction"`
	AllergyDetails       *string            `json:"allergyDetails"`
}

func (d *EventRegistrationDietaryRestriction) BeforeCreate(_ *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}
