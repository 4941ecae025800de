package services

import (
	"context"

	"avidoBack/internal/models"
	"avidoBack/internal/repositories"
)

type RegionService struct {
	RegionRepo *repositories.RegionRepository
}

func (s *RegionService) CreateRegion(ctx context.Context, region models.Region) (models.Region, error) {
	return s.RegionRepo.CreateRegion(ctx, region)
}

func (s *RegionService) GetRegions(ctx context.Context) ([]models.Region, error) {
	return s.RegionRepo.GetRegions(ctx)
}

func (s *RegionService) GetRegionByID(ctx context.Context, id int) (models.Region, error) {
	return s.RegionRepo.GetRegionByID(ctx, id)
}

type CityService struct {
	CityRepo   *repositories.CityRepository
	RegionRepo *repositories.RegionRepository
}

// CreateCity проверяет регион перед вставкой.
func (s *CityService) CreateCity(ctx context.Context, city models.City) (models.City, error) {
	if _, err := s.RegionRepo.GetRegionByID(ctx, city.RegionID); err != nil {
		return models.City{}, err
	}
	return s.CityRepo.CreateCity(ctx, city)
}

func (s *CityService) GetCities(ctx context.Context) ([]models.City, error) {
	return s.CityRepo.GetCities(ctx)
}

func (s *CityService) GetCityByID(ctx context.Context, id int) (models.City, error) {
	return s.CityRepo.GetCityByID(ctx, id)
}
