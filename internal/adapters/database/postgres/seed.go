package postgres

import (
	"github.com/pickhacks/portal/internal/domain/entity"
	"gorm.io/gorm"
)

var seedSchools = []entity.School{
	{Name: "Missouri University of Science and Technology", Country: "US", IsVerified: true},
	{Name: "University of Missouri", Country: "US", IsVerified: true},
	{Name: "University of Missouri-Kansas City", Country: "US", IsVerified: true},
	{Name: "University of Missouri-St. Louis", Country: "US", IsVerified: true},
	{Name: "Washington University in St. Louis", Country: "US", IsVerified: true},
	{Name: "Saint Louis University", Country: "US", IsVerified: true},
	{Name: "Missouri State University", Country: "US", IsVerified: true},
	{Name: "University of Illinois Urbana-Champaign", Country: "US", IsVerified: true},
	{Name: "University of Kansas", Country: "US", IsVerified: true},
	{Name: "University of Arkansas", Country: "US", IsVerified: true},
	{Name: "University of Toronto", Country: "CA", IsVerified: true},
	{Name: "Other", Country: "US", IsVerified: false},
}

var seedCountries = []entity.Country{
	{Code: "US", Name: "United States"},
	{Code: "CA", Name: "Canada"},
	{Code: "MX", Name: "Mexico"},
	{Code: "GB", Name: "United Kingdom"},
	{Code: "DE", Name: "Germany"},
	{Code: "FR", Name: "France"},
	{Code: "IN", Name: "India"},
	{Code: "CN", Name: "China"},
	{Code: "JP", Name: "Japan"},
	{Code: "KR", Name: "South Korea"},
	{Code: "BR", Name: "Brazil"},
	{Code: "NG", Name: "Nigeria"},
	{Code: "PK", Name: "Pakistan"},
	{Code: "BD", Name: "Bangladesh"},
	{Code: "AU", Name: "Australia"},
}

var seedDietaryRestrictions = []entity.DietaryRestriction{
	{ID: "vegetarian", Name: "Vegetarian"},
	{ID: "vegan", Name: "Vegan"},
	{ID: "halal", Name: "Halal"},
	{ID: "kosher", Name: "Kosher"},
	{ID: "gluten_free", Name: "Gluten-Free"},
	{ID: "dairy_free", Name: "Dairy-Free"},
	{ID: "nut_allergy", Name: "Nut Allergy"},
	{ID: entity.DietaryRestrictionOtherID, Name: "Other"},
}

// Seed fills the lookup tables. A table that already has rows is left untouched.
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := seedTable(tx, &entity.School{}, seedSchools); err != nil {
			return err
		}
		if err := seedTable(tx, &entity.Country{}, seedCountries); err != nil {
			return err
		}
		if err := seedTable(tx, &entity.DietaryRestriction{}, seedDietaryRestrictions); err != nil {
			return err
		}

		// free-text allergy details always need the sentinel row
		other := entity.DietaryRestriction{ID: entity.DietaryRestrictionOtherID}
		return tx.Where(&other).Attrs(entity.DietaryRestriction{Name: "Other"}).FirstOrCreate(&other).Error
	})
}

func seedTable[T any](tx *gorm.DB, model interface{}, rows []T) error {
	var count int64
	if err := tx.Model(model).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	// copy so the package-level slices never receive generated ids
	batch := append([]T(nil), rows...)
	return tx.Create(&batch).Error
}
