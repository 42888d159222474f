package service

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/pickhacks/portal/internal/domain/common/errorz"
	"github.com/pickhacks/portal/internal/domain/dto"
	"github.com/pickhacks/portal/internal/domain/entity"
	"github.com/pickhacks/portal/pkg/logger"
	qr "github.com/pickhacks/portal/pkg/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRegistrationStorage struct {
	submitted    []*dto.RegistrationSubmission
	submitErr    error
	profile      *entity.HackerProfile
	registration *entity.EventRegistration
}

func (f *fakeRegistrationStorage) Submit(_ context.Context, sub *dto.RegistrationSubmission) (*entity.EventRegistration, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	f.submitted = append(f.submitted, sub)
	registration := sub.Registration
	registration.ID = "r1"
	return &registration, nil
}

func (f *fakeRegistrationStorage) GetProfileByUserID(context.Context, string) (*entity.HackerProfile, error) {
	if f.profile == nil {
		return &entity.HackerProfile{}, gorm.ErrRecordNotFound
	}
	return f.profile, nil
}

func (f *fakeRegistrationStorage) GetForProfile(context.Context, string, string) (*entity.EventRegistration, error) {
	if f.registration == nil {
		return &entity.EventRegistration{}, gorm.ErrRecordNotFound
	}
	return f.registration, nil
}

type fakeLookupCounter struct {
	schools      map[string]bool
	restrictions map[string]bool
}

func count(ids []string, known map[string]bool) int64 {
	var n int64
	for _, id := range ids {
		if known[id] {
			n++
		}
	}
	return n
}

func (f fakeLookupCounter) CountSchools(_ context.Context, ids []string) (int64, error) {
	return count(ids, f.schools), nil
}

func (f fakeLookupCounter) CountDietaryRestrictions(_ context.Context, ids []string) (int64, error) {
	return count(ids, f.restrictions), nil
}

type fakeDraftStorage struct {
	drafts  map[string]dto.RegistrationForm
	cleared []string
}

func (f *fakeDraftStorage) Get(_ context.Context, userID, eventID string) (dto.RegistrationForm, bool, error) {
	form, ok := f.drafts[userID+eventID]
	return form, ok, nil
}

func (f *fakeDraftStorage) Set(_ context.Context, userID, eventID string, form dto.RegistrationForm) error {
	if f.drafts == nil {
		f.drafts = map[string]dto.RegistrationForm{}
	}
	f.drafts[userID+eventID] = form
	return nil
}

func (f *fakeDraftStorage) Clear(_ context.Context, userID, eventID string) error {
	f.cleared = append(f.cleared, userID+eventID)
	delete(f.drafts, userID+eventID)
	return nil
}

const testSchoolID = "0f8b7c1e-6d2a-4a57-9c1e-2b3d4e5f6a7b"

type registrationFixture struct {
	service       *RegistrationService
	registrations *fakeRegistrationStorage
	events        *fakeEventStorage
	drafts        *fakeDraftStorage
}

func newRegistrationFixture() *registrationFixture {
	f := &registrationFixture{
		registrations: &fakeRegistrationStorage{},
		events:        &fakeEventStorage{active: &entity.Event{ID: "e1", Name: "PickHacks 2025", Year: 2025, IsActive: true}},
		drafts:        &fakeDraftStorage{},
	}
	lookups := fakeLookupCounter{
		schools:      map[string]bool{testSchoolID: true},
		restrictions: map[string]bool{"vegan": true, "halal": true, entity.DietaryRestrictionOtherID: true},
	}
	f.service = NewRegistrationService(logger.Nop(), f.registrations, f.events, lookups, f.drafts, qr.Portal, "PickHacks")
	f.service.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	return f
}

func validForm() dto.RegistrationForm {
	return dto.RegistrationForm{
		FirstName:             " Ada ",
		LastName:              "Lovelace",
		PhoneNumber:           "+1 (555) 010-0100",
		AgeAtEvent:            21,
		SchoolID:              testSchoolID,
		LevelOfStudy:          "undergraduate",
		AddressLine1:          "1 Main St",
		City:                  "Rolla",
		State:                 "MO",
		Country:               "US",
		PostalCode:            "65401",
		AgreedToCodeOfConduct: true,
		AgreedToMlhSharing:    true,
	}
}

func TestRegistrationService_Submit(t *testing.T) {
	f := newRegistrationFixture()

	result, err := f.service.Submit(context.Background(), "u1", validForm())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "r1", result.RegistrationID)
	assert.True(t, strings.HasPrefix(result.QRCode, "PICKHACKS2025-"))
	assert.Len(t, result.QRCode, len("PICKHACKS2025-")+12)

	require.Len(t, f.registrations.submitted, 1)
	sub := f.registrations.submitted[0]
	assert.Equal(t, "u1", sub.UserID)
	assert.Equal(t, "e1", sub.EventID)
	assert.Equal(t, "Ada", sub.Profile.FirstName)
	assert.True(t, sub.Registration.IsComplete)
	require.NotNil(t, sub.Registration.LockedAt)
	assert.Equal(t, 21, sub.Registration.AgeAtEvent)
	assert.True(t, sub.MlhAgreement.AgreedToMlhSharing)
	assert.Empty(t, sub.DietaryRestrictions)

	assert.Equal(t, []string{"u1e1"}, f.drafts.cleared)
}

func TestRegistrationService_SubmitAllergyWithoutRestriction(t *testing.T) {
	f := newRegistrationFixture()

	form := validForm()
	details := "  peanuts  "
	form.AllergyDetails = &details

	_, err := f.service.Submit(context.Background(), "u1", form)
	require.NoError(t, err)

	rows := f.registrations.submitted[0].DietaryRestrictions
	require.Len(t, rows, 1)
	assert.Equal(t, entity.DietaryRestrictionOtherID, rows[0].DietaryRestrictionID)
	require.NotNil(t, rows[0].AllergyDetails)
	assert.Equal(t, "peanuts", *rows[0].AllergyDetails)
}

func TestRegistrationService_SubmitRestrictions(t *testing.T) {
	f := newRegistrationFixture()

	form := validForm()
	form.DietaryRestrictionIDs = []string{"vegan", "halal", "vegan"}

	_, err := f.service.Submit(context.Background(), "u1", form)
	require.NoError(t, err)

	rows := f.registrations.submitted[0].DietaryRestrictions
	require.Len(t, rows, 2)
	assert.Equal(t, "vegan", rows[0].DietaryRestrictionID)
	assert.Equal(t, "halal", rows[1].DietaryRestrictionID)
}

func TestRegistrationService_SubmitRejected(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.RegistrationForm)
		field  string
	}{
		{name: "malformed school", mutate: func(f *dto.RegistrationForm) { f.SchoolID = "mst" }, field: "schoolId"},
		{name: "missing first name", mutate: func(f *dto.RegistrationForm) { f.FirstName = "" }, field: "firstName"},
		{name: "bad phone", mutate: func(f *dto.RegistrationForm) { f.PhoneNumber = "call me" }, field: "phoneNumber"},
		{name: "too young", mutate: func(f *dto.RegistrationForm) { f.AgeAtEvent = 12 }, field: "ageAtEvent"},
		{name: "too old", mutate: func(f *dto.RegistrationForm) { f.AgeAtEvent = 101 }, field: "ageAtEvent"},
		{name: "unknown level", mutate: func(f *dto.RegistrationForm) { f.LevelOfStudy = "wizard" }, field: "levelOfStudy"},
		{name: "code of conduct", mutate: func(f *dto.RegistrationForm) { f.AgreedToCodeOfConduct = false }, field: "agreedToCodeOfConduct"},
		{name: "unknown school", mutate: func(f *dto.RegistrationForm) { f.SchoolID = "5b0e7f0e-0000-4000-8000-000000000000" }, field: "schoolId"},
		{name: "unknown restriction", mutate: func(f *dto.RegistrationForm) { f.DietaryRestrictionIDs = []string{"keto"} }, field: "dietaryRestrictionIds"},
		{name: "bad shirt size", mutate: func(f *dto.RegistrationForm) {
			size := "xxxl"
			f.TshirtSize = &size
		}, field: "tshirtSize"},
		{name: "bad linkedin", mutate: func(f *dto.RegistrationForm) {
			link := "linkedin.com/in/ada"
			f.LinkedinURL = &link
		}, field: "linkedinUrl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRegistrationFixture()
			form := validForm()
			tt.mutate(&form)

			_, err := f.service.Submit(context.Background(), "u1", form)
			var invalid *errorz.ValidationError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.field, invalid.Field)
			assert.Empty(t, f.registrations.submitted)
		})
	}
}

func TestRegistrationService_SubmitWithoutActiveEvent(t *testing.T) {
	f := newRegistrationFixture()
	f.events.active = nil

	_, err := f.service.Submit(context.Background(), "u1", validForm())
	assert.ErrorIs(t, err, errorz.ErrNoActiveEvent)
	assert.Equal(t, "No active event found", err.Error())
}

func TestRegistrationService_SubmitAlreadyRegistered(t *testing.T) {
	f := newRegistrationFixture()
	f.registrations.submitErr = errorz.ErrAlreadyRegistered

	_, err := f.service.Submit(context.Background(), "u1", validForm())
	assert.ErrorIs(t, err, errorz.ErrAlreadyRegistered)
	assert.Empty(t, f.drafts.cleared)
}

func TestRegistrationService_Status(t *testing.T) {
	ctx := context.Background()

	t.Run("no profile", func(t *testing.T) {
		f := newRegistrationFixture()
		status, err := f.service.Status(ctx, "u1")
		require.NoError(t, err)
		assert.False(t, status.Registered)
		assert.Nil(t, status.RegistrationData)
	})

	t.Run("no active event", func(t *testing.T) {
		f := newRegistrationFixture()
		f.events.active = nil
		status, err := f.service.Status(ctx, "u1")
		require.NoError(t, err)
		assert.False(t, status.Registered)
	})

	t.Run("incomplete registration", func(t *testing.T) {
		f := newRegistrationFixture()
		f.registrations.profile = &entity.HackerProfile{ID: "p1", FirstName: "Ada"}
		f.registrations.registration = &entity.EventRegistration{ID: "r1", QRCode: "PICKHACKS2025-x"}
		status, err := f.service.Status(ctx, "u1")
		require.NoError(t, err)
		assert.False(t, status.Registered)
	})

	t.Run("complete registration", func(t *testing.T) {
		f := newRegistrationFixture()
		f.registrations.profile = &entity.HackerProfile{ID: "p1", FirstName: "Ada", LastName: "Lovelace"}
		f.registrations.registration = &entity.EventRegistration{
			ID:         "r1",
			QRCode:     "PICKHACKS2025-abcdefghijkl",
			IsComplete: true,
			AgeAtEvent: 21,
			Shipping:   &entity.EventRegistrationShipping{City: "Rolla"},
		}
		status, err := f.service.Status(ctx, "u1")
		require.NoError(t, err)
		assert.True(t, status.Registered)
		assert.Equal(t, "PICKHACKS2025-abcdefghijkl", status.QRCode)
		require.NotNil(t, status.RegistrationData)
		assert.Equal(t, "Ada", status.RegistrationData.Profile.FirstName)
		assert.Equal(t, 21, status.RegistrationData.Profile.AgeAtEvent)
		assert.Equal(t, "Rolla", status.RegistrationData.Shipping.City)
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newRegistrationFixture()
		f.service.registrationStorage = failingProfiles{f.registrations}
		_, err := f.service.Status(ctx, "u1")
		assert.Error(t, err)
	})
}

type failingProfiles struct {
	*fakeRegistrationStorage
}

func (failingProfiles) GetProfileByUserID(context.Context, string) (*entity.HackerProfile, error) {
	return nil, errors.New("connection reset")
}

func TestRegistrationService_QRCode(t *testing.T) {
	ctx := context.Background()
	f := newRegistrationFixture()

	_, err := f.service.QRCode(ctx, "u1")
	assert.ErrorIs(t, err, errorz.ErrNotRegistered)

	f.registrations.profile = &entity.HackerProfile{ID: "p1"}
	f.registrations.registration = &entity.EventRegistration{ID: "r1", QRCode: "PICKHACKS2025-abcdefghijkl", IsComplete: true}

	data, err := f.service.QRCode(ctx, "u1")
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, qr.Portal.Size, img.Bounds().Dx())
}

func TestRegistrationService_Drafts(t *testing.T) {
	ctx := context.Background()
	f := newRegistrationFixture()

	empty, err := f.service.Draft(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, dto.RegistrationForm{}, empty)

	require.NoError(t, f.service.SaveDraft(ctx, "u1", dto.RegistrationForm{FirstName: "Ada"}))

	draft, err := f.service.Draft(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", draft.FirstName)

	f.events.active = nil
	assert.ErrorIs(t, f.service.SaveDraft(ctx, "u1", dto.RegistrationForm{}), errorz.ErrNoActiveEvent)
}
