package repositories

import (
	"context"
	"database/sql"
	"errors"

	"avidoBack/internal/models"
)

var (
	ErrRegionNotFound = errors.New("region not found")
	ErrCityNotFound   = errors.New("city not found")
)

type RegionRepository struct {
	DB *sql.DB
}

func (r *RegionRepository) CreateRegion(ctx context.Context, region models.Region) (models.Region, error) {
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO regions (name, created_at) VALUES ($1, NOW()) RETURNING id, created_at`,
		region.Name).Scan(&region.ID, &region.CreatedAt)
	if err != nil {
		return models.Region{}, err
	}
	return region, nil
}

func (r *RegionRepository) GetRegions(ctx context.Context) ([]models.Region, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, created_at FROM regions ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regions []models.Region
	for rows.Next() {
		var region models.Region
		if err := rows.Scan(&region.ID, &region.Name, &region.CreatedAt); err != nil {
			return nil, err
		}
		regions = append(regions, region)
	}
	return regions, rows.Err()
}

func (r *RegionRepository) GetRegionByID(ctx context.Context, id int) (models.Region, error) {
	var region models.Region
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM regions WHERE id = $1`, id).
		Scan(&region.ID, &region.Name, &region.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Region{}, ErrRegionNotFound
	}
	return region, err
}

type CityRepository struct {
	DB *sql.DB
}

func (r *CityRepository) CreateCity(ctx context.Context, city models.City) (models.City, error) {
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO cities (name, region_id, created_at) VALUES ($1, $2, NOW()) RETURNING id, created_at`,
		city.Name, city.RegionID).Scan(&city.ID, &city.CreatedAt)
	if err != nil {
		return models.City{}, err
	}
	return city, nil
}

func (r *CityRepository) GetCities(ctx context.Context) ([]models.City, error) {
	query := `
        SELECT c.id, c.name, c.region_id, r.name, c.created_at
        FROM cities c
        JOIN regions r ON c.region_id = r.id
        ORDER BY c.name`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cities []models.City
	for rows.Next() {
		var city models.City
		if err := rows.Scan(&city.ID, &city.Name, &city.RegionID, &city.RegionName, &city.CreatedAt); err != nil {
			return nil, err
		}
		cities = append(cities, city)
	}
	return cities, rows.Err()
}

func (r *CityRepository) GetCityByID(ctx context.Context, id int) (models.City, error) {
	var city models.City
	query := `
        SELECT c.id, c.name, c.region_id, r.name, c.created_at
        FROM cities c
        JOIN regions r ON c.region_id = r.id
        WHERE c.id = $1`
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&city.ID, &city.Name, &city.RegionID, &city.RegionName, &city.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.City{}, ErrCityNotFound
	}
	return city, err
}
