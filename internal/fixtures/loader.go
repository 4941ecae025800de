package fixtures

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"avidoBack/internal/models"
	"avidoBack/internal/repositories"
)

// minAdvertisementsInDB is the row count above which the loader assumes the
// test data was already created and skips loading.
const minAdvertisementsInDB = 20

// Loader bulk-loads reference data from CSV files. Column layouts:
//
//	user.csv:                   username,first_name,last_name,email,password,phone_number,call_availability,role
//	region.csv:                 name
//	city.csv:                   name,region_id
//	advertisement_category.csv: name,slug,description,parent_id,sort_order (parent_id 0 means no parent)
//	advertisement.csv:          name,description,price,status,user_id,category_id,city_id
//
// Foreign keys are resolved by numeric id, matching insertion order.
type Loader struct {
	Dir          string
	UserRepo     *repositories.UserRepository
	RegionRepo   *repositories.RegionRepository
	CityRepo     *repositories.CityRepository
	CategoryRepo *repositories.CategoryRepository
	AdRepo       *repositories.AdvertisementRepository
	InfoLog      *log.Logger
}

func (l *Loader) Load(ctx context.Context) error {
	count, err := l.AdRepo.CountAdvertisements(ctx)
	if err != nil {
		return err
	}
	if count >= minAdvertisementsInDB {
		l.InfoLog.Println("Test data already exists, skipping...")
		return nil
	}

	l.InfoLog.Println("Creating test data...")
	if err := l.loadUsers(ctx); err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	if err := l.loadRegions(ctx); err != nil {
		return fmt.Errorf("load regions: %w", err)
	}
	if err := l.loadCities(ctx); err != nil {
		return fmt.Errorf("load cities: %w", err)
	}
	if err := l.loadCategories(ctx); err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	if err := l.loadAdvertisements(ctx); err != nil {
		return fmt.Errorf("load advertisements: %w", err)
	}
	l.InfoLog.Println("Test data successfully created")
	return nil
}

func (l *Loader) readCSV(name string) ([][]string, error) {
	f, err := os.Open(filepath.Join(l.Dir, name))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return csv.NewReader(f).ReadAll()
}

func (l *Loader) loadUsers(ctx context.Context) error {
	records, err := l.readCSV("user.csv")
	if err != nil {
		return err
	}
	for _, record := range records {
		user, err := parseUserRecord(record)
		if err != nil {
			return err
		}
		if _, err := l.UserRepo.CreateUser(ctx, user); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) loadRegions(ctx context.Context) error {
	records, err := l.readCSV("region.csv")
	if err != nil {
		return err
	}
	for _, record := range records {
		if len(record) < 1 {
			return fmt.Errorf("region record too short: %v", record)
		}
		if _, err := l.RegionRepo.CreateRegion(ctx, models.Region{Name: record[0]}); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) loadCities(ctx context.Context) error {
	records, err := l.readCSV("city.csv")
	if err != nil {
		return err
	}
	for _, record := range records {
		city, err := parseCityRecord(record)
		if err != nil {
			return err
		}
		if _, err := l.CityRepo.CreateCity(ctx, city); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) loadCategories(ctx context.Context) error {
	records, err := l.readCSV("advertisement_category.csv")
	if err != nil {
		return err
	}
	for _, record := range records {
		category, err := parseCategoryRecord(record)
		if err != nil {
			return err
		}
		if _, err := l.CategoryRepo.CreateCategory(ctx, category); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) loadAdvertisements(ctx context.Context) error {
	records, err := l.readCSV("advertisement.csv")
	if err != nil {
		return err
	}
	for _, record := range records {
		ad, err := parseAdvertisementRecord(record)
		if err != nil {
			return err
		}
		if _, err := l.AdRepo.CreateAdvertisement(ctx, ad); err != nil {
			return err
		}
	}
	return nil
}

func parseUserRecord(record []string) (models.User, error) {
	if len(record) < 8 {
		return models.User{}, fmt.Errorf("user record too short: %v", record)
	}
	return models.User{
		Username:         record[0],
		FirstName:        record[1],
		LastName:         record[2],
		Email:            record[3],
		Password:         record[4],
		PhoneNumber:      record[5],
		CallAvailability: record[6],
		Role:             record[7],
		Status:           models.UserStatusActive,
		IsActive:         true,
	}, nil
}

func parseCityRecord(record []string) (models.City, error) {
	if len(record) < 2 {
		return models.City{}, fmt.Errorf("city record too short: %v", record)
	}
	regionID, err := strconv.Atoi(record[1])
	if err != nil {
		return models.City{}, fmt.Errorf("invalid region id %q: %w", record[1], err)
	}
	return models.City{Name: record[0], RegionID: regionID}, nil
}

func parseCategoryRecord(record []string) (models.Category, error) {
	if len(record) < 5 {
		return models.Category{}, fmt.Errorf("category record too short: %v", record)
	}
	parentID, err := strconv.Atoi(record[3])
	if err != nil {
		return models.Category{}, fmt.Errorf("invalid parent id %q: %w", record[3], err)
	}
	sortOrder, err := strconv.Atoi(record[4])
	if err != nil {
		return models.Category{}, fmt.Errorf("invalid sort order %q: %w", record[4], err)
	}
	category := models.Category{
		Name:        record[0],
		Slug:        record[1],
		Description: record[2],
		SortOrder:   sortOrder,
	}
	// 0 в колонке parent_id означает категорию верхнего уровня
	if parentID != 0 {
		category.ParentID = &parentID
	}
	return category, nil
}

func parseAdvertisementRecord(record []string) (models.Advertisement, error) {
	if len(record) < 7 {
		return models.Advertisement{}, fmt.Errorf("advertisement record too short: %v", record)
	}
	price, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return models.Advertisement{}, fmt.Errorf("invalid price %q: %w", record[2], err)
	}
	userID, err := strconv.Atoi(record[4])
	if err != nil {
		return models.Advertisement{}, fmt.Errorf("invalid user id %q: %w", record[4], err)
	}
	categoryID, err := strconv.Atoi(record[5])
	if err != nil {
		return models.Advertisement{}, fmt.Errorf("invalid category id %q: %w", record[5], err)
	}
	cityID, err := strconv.Atoi(record[6])
	if err != nil {
		return models.Advertisement{}, fmt.Errorf("invalid city id %q: %w", record[6], err)
	}
	return models.Advertisement{
		Name:        record[0],
		Description: record[1],
		Price:       price,
		Status:      record[3],
		UserID:      userID,
		CategoryID:  categoryID,
		CityID:      cityID,
	}, nil
}
