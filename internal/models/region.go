package models

import "time"

type Region struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type City struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	RegionID   int       `json:"region_id"`
	RegionName string    `json:"region_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
