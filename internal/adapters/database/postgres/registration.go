package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/pickhacks/portal/internal/domain/common/errorz"
	"github.com/pickhacks/portal/internal/domain/dto"
	"github.com/pickhacks/portal/internal/domain/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// likeEscaper makes LIKE wildcards in a search query match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

type RegistrationStorage struct {
	db *gorm.DB
}

func NewRegistrationStorage(db *gorm.DB) *RegistrationStorage {
	return &RegistrationStorage{
		db: db,
	}
}

// Submit writes a complete registration in one transaction.
//
// The caller's profile is created or updated in place. A complete registration for the same
// event is rejected with errorz.ErrAlreadyRegistered; an incomplete one is completed in place
// and its detail rows are replaced. Any failure rolls back every write.
func (s *RegistrationStorage) Submit(ctx context.Context, sub *dto.RegistrationSubmission) (*entity.EventRegistration, error) {
	registration := sub.Registration

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := upsertProfile(tx, sub.UserID, sub.Profile)
		if err != nil {
			return err
		}

		registration.EventID = sub.EventID
		registration.HackerProfileID = profile.ID

		var existing entity.EventRegistration
		err = tx.Where("event_id = ? AND hacker_profile_id = ?", sub.EventID, profile.ID).First(&existing).Error
		switch {
		case err == nil:
			if existing.IsComplete {
				return errorz.ErrAlreadyRegistered
			}
			if err = deleteDetails(tx, existing.ID); err != nil {
				return err
			}
			registration.ID = existing.ID
			registration.CreatedAt = existing.CreatedAt
			if err = tx.Omit(clause.Associations).Save(&registration).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err = tx.Omit(clause.Associations).Create(&registration).Error; err != nil {
				return err
			}
		default:
			return err
		}

		education := sub.Education
		education.EventRegistrationID = registration.ID
		if err = tx.Omit(clause.Associations).Create(&education).Error; err != nil {
			return err
		}

		shipping := sub.Shipping
		shipping.EventRegistrationID = registration.ID
		if err = tx.Create(&shipping).Error; err != nil {
			return err
		}

		agreement := sub.MlhAgreement
		agreement.EventRegistrationID = registration.ID
		if err = tx.Create(&agreement).Error; err != nil {
			return err
		}

		if len(sub.DietaryRestrictions) > 0 {
			rows := make([]entity.EventRegistrationDietaryRestriction, len(sub.DietaryRestrictions))
			for i, row := range sub.DietaryRestrictions {
				row.EventRegistrationID = registration.ID
				rows[i] = row
			}
			if err = tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
				return err
			}
		}

		registration.HackerProfile = *profile
		registration.Education = &education
		registration.Shipping = &shipping
		registration.MlhAgreement = &agreement
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, s.duplicateSubmission(ctx, sub)
	}
	if err != nil {
		return nil, err
	}
	return &registration, nil
}

// duplicateSubmission classifies a unique violation raised by Submit. Only a committed complete
// registration of the same user for the event counts as already registered; a QR token collision
// or a concurrent first submission that did not commit can be retried.
func (s *RegistrationStorage) duplicateSubmission(ctx context.Context, sub *dto.RegistrationSubmission) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.EventRegistration{}).
		Joins("JOIN hacker_profiles ON hacker_profiles.id = event_registrations.hacker_profile_id").
		Where("hacker_profiles.user_id = ? AND event_registrations.event_id = ? AND event_registrations.is_complete = ?", sub.UserID, sub.EventID, true).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return errorz.ErrAlreadyRegistered
	}
	return errorz.ErrSubmissionConflict
}

func upsertProfile(tx *gorm.DB, userID string, input entity.HackerProfile) (*entity.HackerProfile, error) {
	var profile entity.HackerProfile
	err := tx.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = input
		profile.ID = ""
		profile.UserID = userID
		if err = tx.Omit(clause.Associations).Create(&profile).Error; err != nil {
			return nil, err
		}
		return &profile, nil
	}
	if err != nil {
		return nil, err
	}

	err = tx.Model(&profile).Updates(map[string]interface{}{
		"first_name":   input.FirstName,
		"last_name":    input.LastName,
		"phone_number": input.PhoneNumber,
		"linkedin_url": input.LinkedinURL,
	}).Error
	if err != nil {
		return nil, err
	}
	profile.FirstName = input.FirstName
	profile.LastName = input.LastName
	profile.PhoneNumber = input.PhoneNumber
	profile.LinkedinURL = input.LinkedinURL
	return &profile, nil
}

func deleteDetails(tx *gorm.DB, registrationID string) error {
	for _, model := range []interface{}{
		&entity.EventRegistrationEducation{},
		&entity.EventRegistrationShipping{},
		&entity.EventRegistrationMlhAgreement{},
		&entity.EventRegistrationDietaryRestriction{},
	} {
		if err := tx.Where("event_registration_id = ?", registrationID).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetProfileByUserID returns the hacker profile owned by userID.
func (s *RegistrationStorage) GetProfileByUserID(ctx context.Context, userID string) (*entity.HackerProfile, error) {
	var profile entity.HackerProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	return &profile, err
}

// GetForProfile returns the registration of a profile for an event with its detail rows.
func (s *RegistrationStorage) GetForProfile(ctx context.Context, eventID, profileID string) (*entity.EventRegistration, error) {
	var registration entity.EventRegistration
	err := s.db.WithContext(ctx).
		Preload("Education.School").
		Preload("Shipping").
		Preload("MlhAgreement").
		Preload("DietaryRestrictions.DietaryRestriction").
		Where("event_id = ? AND hacker_profile_id = ?", eventID, profileID).
		First(&registration).Error
	return &registration, err
}

// GetByEventID returns every registration of an event with profile and detail rows, newest first.
// A non-empty query filters case-insensitively by full name, email or QR code.
func (s *RegistrationStorage) GetByEventID(ctx context.Context, eventID, query string) ([]entity.EventRegistration, error) {
	var registrations []entity.EventRegistration

	db := s.db.WithContext(ctx).
		Model(&entity.EventRegistration{}).
		Where("event_registrations.event_id = ?", eventID)

	if query = strings.TrimSpace(query); query != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
		db = db.
			Joins("JOIN hacker_profiles ON hacker_profiles.id = event_registrations.hacker_profile_id").
			Joins("LEFT JOIN users ON users.id = hacker_profiles.user_id").
			Where(
				`LOWER(hacker_profiles.first_name || ' ' || hacker_profiles.last_name) LIKE ? ESCAPE '\' OR LOWER(users.email) LIKE ? ESCAPE '\' OR LOWER(event_registrations.qr_code) LIKE ? ESCAPE '\'`,
				like, like, like,
			)
	}

	err := db.
		Preload("HackerProfile.User").
		Preload("Education.School").
		Preload("Shipping").
		Preload("MlhAgreement").
		Preload("DietaryRestrictions.DietaryRestriction").
		Order("event_registrations.created_at DESC").
		Find(&registrations).Error
	return registrations, err
}

// CountByEventID returns the number of registrations of an event and how many of them are complete.
func (s *RegistrationStorage) CountByEventID(ctx context.Context, eventID string) (total int64, complete int64, err error) {
	err = s.db.WithContext(ctx).Model(&entity.EventRegistration{}).
		Where("event_id = ?", eventID).
		Count(&total).Error
	if err != nil {
		return 0, 0, err
	}

	err = s.db.WithContext(ctx).Model(&entity.EventRegistration{}).
		Where("event_id = ? AND is_complete = ?", eventID, true).
		Count(&complete).Error
	if err != nil {
		return 0, 0, err
	}
	return total, complete, nil
}
