package postgres

import (
	"context"

	"github.com/pickhacks/portal/internal/domain/entity"
	"gorm.io/gorm"
)

type LookupStorage struct {
	db *gorm.DB
}

func NewLookupStorage(db *gorm.DB) *LookupStorage {
	return &LookupStorage{
		db: db,
	}
}

func (s *LookupStorage) GetSchools(ctx context.Context) ([]entity.School, error) {
	var schools []entity.School
	err := s.db.WithContext(ctx).Order("name ASC").Find(&schools).Error
	return schools, err
}

func (s *LookupStorage) GetCountries(ctx context.Context) ([]entity.Country, error) {
	var countries []entity.Country
	err := s.db.WithContext(ctx).Order("name ASC").Find(&countries).Error
	return countries, err
}

func (s *LookupStorage) GetDietaryRestrictions(ctx context.Context) ([]entity.DietaryRestriction, error) {
	var restrictions []entity.DietaryRestriction
	err := s.db.WithContext(ctx).Order("name ASC").Find(&restrictions).Error
	return restrictions, err
}

// CountSchools returns how many of ids exist in the school table.
func (s *LookupStorage) CountSchools(ctx context.Context, ids []string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.School{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

// CountDietaryRestrictions returns how many of ids exist in the dietary restriction table.
func (s *LookupStorage) CountDietaryRestrictions(ctx context.Context, ids []string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.DietaryRestriction{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}
