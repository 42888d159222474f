package service

import (
	"context"

	"github.com/pickhacks/portal/internal/domain/entity"
)

type LookupStorage interface {
	GetSchools(ctx context.Context) ([]entity.School, error)
	GetCountries(ctx context.Context) ([]entity.Country, error)
	GetDietaryRestrictions(ctx context.Context) ([]entity.DietaryRestriction, error)
}

type LookupService struct {
	lookupStorage LookupStorage
}

func NewLookupService(lookupStorage LookupStorage) *LookupService {
	return &LookupService{
		lookupStorage: lookupStorage,
	}
}

func (s *LookupService) Schools(ctx context.Context) ([]entity.School, error) {
	return s.lookupStorage.GetSchools(ctx)
}

func (s *LookupService) Countries(ctx context.Context) ([]entity.Country, error) {
	return s.lookupStorage.GetCountries(ctx)
}

func (s *LookupService) DietaryRestrictions(ctx context.Context) ([]entity.DietaryRestriction, error) {
	return s.lookupStorage.GetDietaryRestrictions(ctx)
}
