package postgres

import (
	"github.com/pickhacks/portal/internal/domain/entity"
	"gorm.io/gorm"
)

// Migrations is a list of all gorm migrations for the database.
var Migrations = []interface{}{
	&entity.User{},
	&entity.School{},
	&entity.Country{},
	&entity.DietaryRestriction{},
	&entity.Event{},
	&entity.EventState{},
	&entity.HackerProfile{},
	&entity.EventRegistration{},
	&entity.EventRegistrationEducation{},
	&entity.EventRegistrationShipping{},
	&entity.EventRegistrationMlhAgreement{},
	&entity.EventRegistrationDietaryRestriction{},
}

// Migrate runs the auto migrations and makes sure the event state row exists.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Migrations...); err != nil {
		return err
	}
	return db.FirstOrCreate(&entity.EventState{}, entity.EventState{ID: entity.EventStateID}).Error
}
