package fixtures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avidoBack/internal/models"
)

func TestParseCategoryRecordTopLevel(t *testing.T) {
	category, err := parseCategoryRecord([]string{"Electronics", "electronics", "Phones and laptops", "0", "1"})
	require.NoError(t, err)

	assert.Equal(t, "Electronics", category.Name)
	assert.Equal(t, "electronics", category.Slug)
	assert.Nil(t, category.ParentID, "parent id 0 must mean no parent")
	assert.Equal(t, 1, category.SortOrder)
}

func TestParseCategoryRecordWithParent(t *testing.T) {
	category, err := parseCategoryRecord([]string{"Laptops", "laptops", "Portable computers", "3", "2"})
	require.NoError(t, err)

	require.NotNil(t, category.ParentID)
	assert.Equal(t, 3, *category.ParentID)
}

func TestParseCategoryRecordInvalid(t *testing.T) {
	_, err := parseCategoryRecord([]string{"Laptops", "laptops", "desc", "x", "2"})
	assert.Error(t, err)

	_, err = parseCategoryRecord([]string{"Laptops"})
	assert.Error(t, err)
}

func TestParseAdvertisementRecord(t *testing.T) {
	ad, err := parseAdvertisementRecord([]string{"Bike", "A red bike", "30000.5", "active", "2", "3", "4"})
	require.NoError(t, err)

	assert.Equal(t, "Bike", ad.Name)
	assert.Equal(t, 30000.5, ad.Price)
	assert.Equal(t, "active", ad.Status)
	assert.Equal(t, 2, ad.UserID)
	assert.Equal(t, 3, ad.CategoryID)
	assert.Equal(t, 4, ad.CityID)
}

func TestParseAdvertisementRecordInvalidPrice(t *testing.T) {
	_, err := parseAdvertisementRecord([]string{"Bike", "desc", "free", "active", "2", "3", "4"})
	assert.Error(t, err)
}

func TestParseUserRecord(t *testing.T) {
	user, err := parseUserRecord([]string{"jdoe", "John", "Doe", "jdoe@example.com", "hash", "+77001234567", "9-18", "user"})
	require.NoError(t, err)

	assert.Equal(t, "jdoe", user.Username)
	assert.Equal(t, "jdoe@example.com", user.Email)
	assert.Equal(t, models.UserStatusActive, user.Status)
	assert.True(t, user.IsActive)
}

func TestParseCityRecord(t *testing.T) {
	city, err := parseCityRecord([]string{"Almaty", "1"})
	require.NoError(t, err)

	assert.Equal(t, "Almaty", city.Name)
	assert.Equal(t, 1, city.RegionID)
}
