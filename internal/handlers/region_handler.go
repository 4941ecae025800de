package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"avidoBack/internal/models"
	"avidoBack/internal/repositories"
	"avidoBack/internal/services"
)

type RegionHandler struct {
	Service *services.RegionService
}

func (h *RegionHandler) CreateRegion(w http.ResponseWriter, r *http.Request) {
	var region models.Region
	if err := json.NewDecoder(r.Body).Decode(&region); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	if region.Name == "" {
		writeFieldErrors(w, map[string]string{"name": "required"})
		return
	}
	created, err := h.Service.CreateRegion(r.Context(), region)
	if err != nil {
		http.Error(w, "Failed to create region", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *RegionHandler) GetRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := h.Service.GetRegions(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch regions", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(regions)
}

type CityHandler struct {
	Service *services.CityService
}

func (h *CityHandler) CreateCity(w http.ResponseWriter, r *http.Request) {
	var city models.City
	if err := json.NewDecoder(r.Body).Decode(&city); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	if city.Name == "" {
		writeFieldErrors(w, map[string]string{"name": "required"})
		return
	}
	created, err := h.Service.CreateCity(r.Context(), city)
	if err != nil {
		if errors.Is(err, repositories.ErrRegionNotFound) {
			http.Error(w, "Region not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to create city", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *CityHandler) GetCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.Service.GetCities(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch cities", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(cities)
}
