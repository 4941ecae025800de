package models

import (
	"time"
)

type Advertisement struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Price        float64    `json:"price"`
	Views        int        `json:"views"`
	Status       string     `json:"status"`
	UserID       int        `json:"user_id,omitempty"`
	User         User       `json:"user,omitempty"`
	CategoryID   int        `json:"category_id,omitempty"`
	CategoryName string     `json:"category_name,omitempty"`
	CityID       int        `json:"city_id,omitempty"`
	CityName     string     `json:"city_name,omitempty"`
	Images       []string   `json:"images"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// AdvertisementUpdate carries the mutable fields of an owner update.
// Nil pointers mean "leave unchanged" (partial overwrite).
type AdvertisementUpdate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	CategoryID  *int     `json:"category_id"`
	CityID      *int     `json:"city_id"`
	Images      []string `json:"images"`
}

type AdvertisementFilter struct {
	Name        string
	Description string
	Category    string
	City        string
	PriceFrom   float64
	PriceTo     float64
	// TextFallback switches name/description matching to the store when
	// the search index is unavailable.
	TextFallback bool
}

type AdvertisementListResponse struct {
	Advertisements []Advertisement `json:"advertisements"`
	Total          int             `json:"total"`
}
