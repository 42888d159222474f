package dto

import (
	"time"

	"github.com/pickhacks/portal/internal/domain/entity"
)

// RegistrationForm is the full multi-step registration form.
type RegistrationForm struct {
	// Profile
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	PhoneNumber string  `json:"phoneNumber"`
	AgeAtEvent  int     `json:"ageAtEvent"`
	LinkedinURL *string `json:"linkedinUrl,omitempty"`

	// Education
	SchoolID       string  `json:"schoolId"`
	LevelOfStudy   string  `json:"levelOfStudy"`
	Major          *string `json:"major,omitempty"`
	GraduationYear *int    `json:"graduationYear,omitempty"`

	// Shipping
	AddressLine1 string  `json:"addressLine1"`
	AddressLine2 *string `json:"addressLine2,omitempty"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Country      string  `json:"country"`
	PostalCode   string  `json:"postalCode"`
	TshirtSize   *string `json:"tshirtSize,omitempty"`

	// MLH
	AgreedToCodeOfConduct bool `json:"agreedToCodeOfConduct"`
	AgreedToMlhSharing    bool `json:"agreedToMlhSharing"`
	AgreedToMlhEmails     bool `json:"agreedToMlhEmails"`

	// Dietary
	DietaryRestrictionIDs []string `json:"dietaryRestrictionIds,omitempty"`
	AllergyDetails        *string  `json:"allergyDetails,omitempty"`
}

// RegistrationSubmission is everything written in one submission transaction.
type RegistrationSubmission struct {
	UserID              string
	EventID             string
	Profile             entity.HackerProfile
	Registration        entity.EventRegistration
	Education           entity.EventRegistrationEducation
	Shipping            entity.EventRegistrationShipping
	MlhAgreement        entity.EventRegistrationMlhAgreement
	DietaryRestrictions []entity.EventRegistrationDietaryRestriction
}

type SubmitResult struct {
	Success        bool   `json:"success"`
	QRCode         string `json:"qrCode"`
	RegistrationID string `json:"registrationId"`
}

type RegistrationProfile struct {
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	PhoneNumber string  `json:"phoneNumber"`
	LinkedinURL *string `json:"linkedinUrl"`
	AgeAtEvent  int     `json:"ageAtEvent"`
}

type RegistrationData struct {
	Profile             RegistrationProfile                          `json:"profile"`
	Education           *entity.EventRegistrationEducation           `json:"education"`
	Shipping            *entity.EventRegistrationShipping            `json:"shipping"`
	MlhAgreement        *entity.EventRegistrationMlhAgreement        `json:"mlhAgreement"`
	DietaryRestrictions []entity.EventRegistrationDietaryRestriction `json:"dietaryRestrictions"`
}

type RegistrationStatus struct {
	Registered       bool              `json:"registered"`
	QRCode           string            `json:"qrCode,omitempty"`
	LockedAt         *time.Time        `json:"lockedAt,omitempty"`
	RegistrationData *RegistrationData `json:"registrationData,omitempty"`
}

func NewRegistrationStatus(profile entity.HackerProfile, registration entity.EventRegistration) RegistrationStatus {
	return RegistrationStatus{
		Registered: true,
		QRCode:     registration.QRCode,
		LockedAt:   registration.LockedAt,
		RegistrationData: &RegistrationData{
			Profile: RegistrationProfile{
				FirstName:   profile.FirstName,
				LastName:    profile.LastName,
				PhoneNumber: profile.PhoneNumber,
				LinkedinURL: profile.LinkedinURL,
				AgeAtEvent:  registration.AgeAtEvent,
			},
			Education:           registration.Education,
			Shipping:            registration.Shipping,
			MlhAgreement:        registration.MlhAgreement,
			DietaryRestrictions: registration.DietaryRestrictions,
		},
	}
}

type RegistrationStats struct {
	TotalRegistrations    int64 `json:"totalRegistrations"`
	CompleteRegistrations int64 `json:"completeRegistrations"`
}

// AdminRegistration is one row of the admin registrant list.
type AdminRegistration struct {
	ID                  string                                       `json:"id"`
	CreatedAt           time.Time                                    `json:"createdAt"`
	QRCode              string                                       `json:"qrCode"`
	IsComplete          bool                                         `json:"isComplete"`
	AgeAtEvent          int                                          `json:"ageAtEvent"`
	Email               string                                       `json:"email"`
	Profile             entity.HackerProfile                         `json:"hackerProfile"`
	Education           *entity.EventRegistrationEducation           `json:"education"`
	Shipping            *entity.EventRegistrationShipping            `json:"shipping"`
	MlhAgreement        *entity.EventRegistrationMlhAgreement        `json:"mlhAgreement"`
	DietaryRestrictions []entity.EventRegistrationDietaryRestriction `json:"dietaryRestrictions"`
}

func NewAdminRegistrations(registrations []entity.EventRegistration) []AdminRegistration {
	result := make([]AdminRegistration, 0, len(registrations))
	for _, r := range registrations {
		result = append(result, AdminRegistration{
			ID:                  r.ID,
			CreatedAt:           r.CreatedAt,
			QRCode:              r.QRCode,
			IsComplete:          r.IsComplete,
			AgeAtEvent:          r.AgeAtEvent,
			Email:               r.HackerProfile.User.Email,
			Profile:             r.HackerProfile,
			Education:           r.Education,
			Shipping:            r.Shipping,
			MlhAgreement:        r.MlhAgreement,
			DietaryRestrictions: r.DietaryRestrictions,
		})
	}
	return result
}
