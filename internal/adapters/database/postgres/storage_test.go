package postgres

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pickhacks/portal/internal/domain/dto"
	"github.com/pickhacks/portal/internal/domain/entity"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "portal.db")), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, Migrate(db))
	require.NoError(t, Seed(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, id, email string) *entity.User {
	t.Helper()
	user, err := NewUserStorage(db).Create(context.Background(), &entity.User{
		ID:            id,
		Name:          id,
		Email:         email,
		EmailVerified: true,
	})
	require.NoError(t, err)
	return user
}

func createEvent(t *testing.T, db *gorm.DB, name string, year int, active bool) *entity.Event {
	t.Helper()
	event := &entity.Event{
		Name:      name,
		Year:      year,
		StartDate: time.Date(year, time.April, 5, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(year, time.April, 6, 0, 0, 0, 0, time.UTC),
		IsActive:  active,
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

func schoolID(t *testing.T, db *gorm.DB) string {
	t.Helper()
	schools, err := NewLookupStorage(db).GetSchools(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, schools)
	return schools[0].ID
}

func submission(userID, eventID, school, token string) *dto.RegistrationSubmission {
	now := time.Now()
	return &dto.RegistrationSubmission{
		UserID:  userID,
		EventID: eventID,
		Profile: entity.HackerProfile{
			FirstName:   "Ada",
			LastName:    "Lovelace",
			PhoneNumber: "+1 555 0100",
		},
		Registration: entity.EventRegistration{
			AgeAtEvent: 21,
			QRCode:     token,
			IsComplete: true,
			LockedAt:   &now,
		},
		Education: entity.EventRegistrationEducation{
			SchoolID:     school,
			LevelOfStudy: "undergraduate",
		},
		Shipping: entity.EventRegistrationShipping{
			AddressLine1: "1 Main St",
			City:         "Rolla",
			State:        "MO",
			Country:      "US",
			PostalCode:   "65401",
		},
		MlhAgreement: entity.EventRegistrationMlhAgreement{
			AgreedToCodeOfConduct: true,
			AgreedToMlhSharing:    true,
			AgreedAt:              now,
		},
	}
}
