package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pickhacks/portal/internal/domain/common/errorz"
	"github.com/pickhacks/portal/internal/domain/dto"
	"github.com/pickhacks/portal/internal/domain/entity"
	"github.com/pickhacks/portal/internal/domain/utils/validator"
	"github.com/pickhacks/portal/pkg/generator"
	"github.com/pickhacks/portal/pkg/logger/types"
	"github.com/pickhacks/portal/pkg/metrics"
	qr "github.com/pickhacks/portal/pkg/qrcode"
	"gorm.io/gorm"
)

type RegistrationStorage interface {
	Submit(ctx context.Context, sub *dto.RegistrationSubmission) (*entity.EventRegistration, error)
	GetProfileByUserID(ctx context.Context, userID string) (*entity.HackerProfile, error)
	GetForProfile(ctx context.Context, eventID, profileID string) (*entity.EventRegistration, error)
}

type DraftStorage interface {
	Get(ctx context.Context, userID, eventID string) (dto.RegistrationForm, bool, error)
	Set(ctx context.Context, userID, eventID string, form dto.RegistrationForm) error
	Clear(ctx context.Context, userID, eventID string) error
}

type activeEventStorage interface {
	GetActive(ctx context.Context) (*entity.Event, error)
}

type lookupCounter interface {
	CountSchools(ctx context.Context, ids []string) (int64, error)
	CountDietaryRestrictions(ctx context.Context, ids []string) (int64, error)
}

type RegistrationService struct {
	logger              *types.Logger
	registrationStorage RegistrationStorage
	eventStorage        activeEventStorage
	lookupStorage       lookupCounter
	draftStorage        DraftStorage
	qrConfig            qr.Config
	tokenPrefix         string
	now                 func() time.Time
}

func NewRegistrationService(
	logger *types.Logger,
	registrationStorage RegistrationStorage,
	eventStorage activeEventStorage,
	lookupStorage lookupCounter,
	draftStorage DraftStorage,
	qrConfig qr.Config,
	tokenPrefix string,
) *RegistrationService {
	return &RegistrationService{
		logger:              logger,
		registrationStorage: registrationStorage,
		eventStorage:        eventStorage,
		lookupStorage:       lookupStorage,
		draftStorage:        draftStorage,
		qrConfig:            qrConfig,
		tokenPrefix:         tokenPrefix,
		now:                 time.Now,
	}
}

// Submit registers the user for the active event.
func (s *RegistrationService) Submit(ctx context.Context, userID string, form dto.RegistrationForm) (*dto.SubmitResult, error) {
	form = normalizeForm(form)
	if err := validateForm(form); err != nil {
		return nil, err
	}

	event, err := s.eventStorage.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	if err = s.checkReferences(ctx, form); err != nil {
		return nil, err
	}

	token, err := generator.QRToken(generator.EventTag(s.tokenPrefix, event.Year))
	if err != nil {
		return nil, fmt.Errorf("failed to generate qr token: %w", err)
	}

	registration, err := s.registrationStorage.Submit(ctx, buildSubmission(userID, event.ID, token, form, s.now()))
	if err != nil {
		if !errors.Is(err, errorz.ErrAlreadyRegistered) {
			metrics.RegistrationFailures.Inc()
			s.logger.Errorf("(user: %s) failed to submit registration: %v", userID, err)
		}
		return nil, err
	}

	if err = s.draftStorage.Clear(ctx, userID, event.ID); err != nil {
		s.logger.Warnf("(user: %s) failed to clear registration draft: %v", userID, err)
	}

	metrics.RegistrationsSubmitted.Inc()
	s.logger.Infof("(user: %s) registered for %s with code %s", userID, event.Name, registration.QRCode)
	return &dto.SubmitResult{
		Success:        true,
		QRCode:         registration.QRCode,
		RegistrationID: registration.ID,
	}, nil
}

func (s *RegistrationService) checkReferences(ctx context.Context, form dto.RegistrationForm) error {
	count, err := s.lookupStorage.CountSchools(ctx, []string{form.SchoolID})
	if err != nil {
		return err
	}
	if count != 1 {
		return errorz.Invalid("schoolId", "unknown school")
	}

	if len(form.DietaryRestrictionIDs) == 0 {
		return nil
	}
	count, err = s.lookupStorage.CountDietaryRestrictions(ctx, form.DietaryRestrictionIDs)
	if err != nil {
		return err
	}
	if count != int64(len(form.DietaryRestrictionIDs)) {
		return errorz.Invalid("dietaryRestrictionIds", "unknown dietary restriction")
	}
	return nil
}

func normalizeForm(form dto.RegistrationForm) dto.RegistrationForm {
	form.FirstName = strings.TrimSpace(form.FirstName)
	form.LastName = strings.TrimSpace(form.LastName)
	form.PhoneNumber = strings.TrimSpace(form.PhoneNumber)
	form.SchoolID = strings.TrimSpace(form.SchoolID)
	form.LinkedinURL = trimOptional(form.LinkedinURL)
	form.Major = trimOptional(form.Major)
	form.AddressLine2 = trimOptional(form.AddressLine2)
	form.TshirtSize = trimOptional(form.TshirtSize)
	form.AllergyDetails = trimOptional(form.AllergyDetails)

	ids := make([]string, 0, len(form.DietaryRestrictionIDs))
	for _, id := range form.DietaryRestrictionIDs {
		id = strings.TrimSpace(id)
		if id != "" && !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	form.DietaryRestrictionIDs = ids
	return form
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func validateForm(form dto.RegistrationForm) error {
	switch {
	case !validator.Name(form.FirstName):
		return errorz.Invalid("firstName", "is required")
	case !validator.Name(form.LastName):
		return errorz.Invalid("lastName", "is required")
	case !validator.PhoneNumber(form.PhoneNumber):
		return errorz.Invalid("phoneNumber", "is not a valid phone number")
	case !validator.AgeAtEvent(form.AgeAtEvent):
		return errorz.Invalid("ageAtEvent", "must be between 13 and 100")
	case form.LinkedinURL != nil && !validator.URL(*form.LinkedinURL):
		return errorz.Invalid("linkedinUrl", "must be an http(s) link")
	case uuid.Validate(form.SchoolID) != nil:
		return errorz.Invalid("schoolId", "must be a school id")
	case !validator.LevelOfStudy(form.LevelOfStudy):
		return errorz.Invalid("levelOfStudy", "is not a known level of study")
	case !validator.Optional(form.Major, 100):
		return errorz.Invalid("major", "is too long")
	case form.GraduationYear != nil && !validator.GraduationYear(*form.GraduationYear):
		return errorz.Invalid("graduationYear", "is out of range")
	case !validator.Required(form.AddressLine1, 200):
		return errorz.Invalid("addressLine1", "is required")
	case !validator.Optional(form.AddressLine2, 200):
		return errorz.Invalid("addressLine2", "is too long")
	case !validator.Required(form.City, 100):
		return errorz.Invalid("city", "is required")
	case !validator.Required(form.State, 100):
		return errorz.Invalid("state", "is required")
	case !validator.Required(form.Country, 100):
		return errorz.Invalid("country", "is required")
	case !validator.Required(form.PostalCode, 20):
		return errorz.Invalid("postalCode", "is required")
	case form.TshirtSize != nil && !validator.TshirtSize(*form.TshirtSize):
		return errorz.Invalid("tshirtSize", "is not a known size")
	case !form.AgreedToCodeOfConduct:
		return errorz.Invalid("agreedToCodeOfConduct", "must be accepted")
	case !form.AgreedToMlhSharing:
		return errorz.Invalid("agreedToMlhSharing", "must be accepted")
	case !validator.Optional(form.AllergyDetails, 500):
		return errorz.Invalid("allergyDetails", "is too long")
	}
	return nil
}

func buildSubmission(userID, eventID, token string, form dto.RegistrationForm, now time.Time) *dto.RegistrationSubmission {
	sub := &dto.RegistrationSubmission{
		UserID:  userID,
		EventID: eventID,
		Profile: entity.HackerProfile{
			UserID:      userID,
			FirstName:   form.FirstName,
			LastName:    form.LastName,
			PhoneNumber: form.PhoneNumber,
			LinkedinURL: form.LinkedinURL,
		},
		Registration: entity.EventRegistration{
			EventID:    eventID,
			AgeAtEvent: form.AgeAtEvent,
			QRCode:     token,
			IsComplete: true,
			LockedAt:   &now,
		},
		Education: entity.EventRegistrationEducation{
			SchoolID:       form.SchoolID,
			LevelOfStudy:   form.LevelOfStudy,
			Major:          form.Major,
			GraduationYear: form.GraduationYear,
		},
		Shipping: entity.EventRegistrationShipping{
			AddressLine1: strings.TrimSpace(form.AddressLine1),
			AddressLine2: form.AddressLine2,
			City:         strings.TrimSpace(form.City),
			State:        strings.TrimSpace(form.State),
			Country:      strings.TrimSpace(form.Country),
			PostalCode:   strings.TrimSpace(form.PostalCode),
			TshirtSize:   form.TshirtSize,
		},
		MlhAgreement: entity.EventRegistrationMlhAgreement{
			AgreedToCodeOfConduct: form.AgreedToCodeOfConduct,
			AgreedToMlhSharing:    form.AgreedToMlhSharing,
			AgreedToMlhEmails:     form.AgreedToMlhEmails,
			AgreedAt:              now,
		},
	}

	// allergy details travel on every selected restriction, or on the "other" row when none is selected
	if len(form.DietaryRestrictionIDs) == 0 {
		if form.AllergyDetails != nil {
			sub.DietaryRestrictions = []entity.EventRegistrationDietaryRestriction{{
				DietaryRestrictionID: entity.DietaryRestrictionOtherID,
				AllergyDetails:       form.AllergyDetails,
			}}
		}
		return sub
	}
	for _, id := range form.DietaryRestrictionIDs {
		sub.DietaryRestrictions = append(sub.DietaryRestrictions, entity.EventRegistrationDietaryRestriction{
			DietaryRestrictionID: id,
			AllergyDetails:       form.AllergyDetails,
		})
	}
	return sub
}

// Status reports whether the user holds a complete registration for the active event.
func (s *RegistrationService) Status(ctx context.Context, userID string) (*dto.RegistrationStatus, error) {
	event, err := s.eventStorage.GetActive(ctx)
	if errors.Is(err, errorz.ErrNoActiveEvent) {
		return &dto.RegistrationStatus{Registered: false}, nil
	}
	if err != nil {
		return nil, err
	}

	profile, err := s.registrationStorage.GetProfileByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &dto.RegistrationStatus{Registered: false}, nil
	}
	if err != nil {
		return nil, err
	}

	registration, err := s.registrationStorage.GetForProfile(ctx, event.ID, profile.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &dto.RegistrationStatus{Registered: false}, nil
	}
	if err != nil {
		return nil, err
	}
	if !registration.IsComplete {
		return &dto.RegistrationStatus{Registered: false}, nil
	}

	status := dto.NewRegistrationStatus(*profile, *registration)
	return &status, nil
}

// QRCode renders the user's check-in token as a PNG image.
func (s *RegistrationService) QRCode(ctx context.Context, userID string) ([]byte, error) {
	status, err := s.Status(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !status.Registered {
		return nil, errorz.ErrNotRegistered
	}

	png, err := s.qrConfig.Generate(status.QRCode)
	if err != nil {
		return nil, fmt.Errorf("failed to generate qr code: %w", err)
	}
	return png, nil
}

// SaveDraft stores the partially filled form for the active event.
func (s *RegistrationService) SaveDraft(ctx context.Context, userID string, form dto.RegistrationForm) error {
	event, err := s.eventStorage.GetActive(ctx)
	if err != nil {
		return err
	}
	return s.draftStorage.Set(ctx, userID, event.ID, form)
}

// Draft returns the saved form for the active event, or an empty form when there is none.
func (s *RegistrationService) Draft(ctx context.Context, userID string) (dto.RegistrationForm, error) {
	event, err := s.eventStorage.GetActive(ctx)
	if err != nil {
		return dto.RegistrationForm{}, err
	}

	form, _, err := s.draftStorage.Get(ctx, userID, event.ID)
	return form, err
}
