package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"avidoBack/internal/lifecycle"
	"avidoBack/internal/models"
	"avidoBack/internal/repositories"
	"avidoBack/internal/services"
	"avidoBack/utils"
)

const sessionCookieName = "session_id"

type AdvertisementHandler struct {
	Service *services.AdvertisementService
	Storage *utils.Storage
}

// GetAdvertisements отдаёт публичную витрину: только активные объявления,
// фильтры и текстовый поиск из query-параметров.
func (h *AdvertisementHandler) GetAdvertisements(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.AdvertisementFilter{
		Name:        q.Get("name"),
		Description: q.Get("description"),
		Category:    q.Get("category"),
		City:        q.Get("city"),
	}
	filter.PriceFrom, _ = strconv.ParseFloat(q.Get("price_min"), 64)
	filter.PriceTo, _ = strconv.ParseFloat(q.Get("price_max"), 64)

	_, role := UserFromContext(r.Context())
	ads, err := h.Service.GetAdvertisements(r.Context(), models.IsStaff(role), filter)
	if err != nil {
		http.Error(w, "Failed to fetch advertisements", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(models.AdvertisementListResponse{
		Advertisements: ads,
		Total:          len(ads),
	})
}

func (h *AdvertisementHandler) CreateAdvertisement(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	userID, _ := UserFromContext(r.Context())
	var ad models.Advertisement
	ad.Name = r.FormValue("name")
	ad.Description = r.FormValue("description")
	ad.UserID = userID

	fields := map[string]string{}
	if ad.Name == "" {
		fields["name"] = "required"
	}
	var err error
	if ad.Price, err = strconv.ParseFloat(r.FormValue("price"), 64); err != nil {
		fields["price"] = "must be a number"
	}
	if ad.CategoryID, err = strconv.Atoi(r.FormValue("category_id")); err != nil {
		fields["category_id"] = "must be an integer"
	}
	if ad.CityID, err = strconv.Atoi(r.FormValue("city_id")); err != nil {
		fields["city_id"] = "must be an integer"
	}
	if len(fields) > 0 {
		writeFieldErrors(w, fields)
		return
	}

	for _, fileHeader := range r.MultipartForm.File["images"] {
		data, format, err := readImageFile(fileHeader)
		if err != nil {
			if errors.Is(err, errImageTooLarge) {
				http.Error(w, models.MsgCannotUploadImage, http.StatusBadRequest)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		fileName := uuid.NewString() + filepath.Ext(fileHeader.Filename)
		url, err := h.Storage.UploadFile(data, fileName, "advertisements", contentTypeForFormat(format))
		if err != nil {
			http.Error(w, "Failed to upload image", http.StatusInternalServerError)
			return
		}
		ad.Images = append(ad.Images, url)
	}

	created, err := h.Service.CreateAdvertisement(r.Context(), ad)
	if err != nil {
		if errors.Is(err, repositories.ErrAdvertisementNameTaken) {
			writeFieldErrors(w, map[string]string{"name": err.Error()})
			return
		}
		http.Error(w, "Failed to create advertisement", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// GetAdvertisementByID renders the public detail page. Views are counted
// once per browsing session and never for the owner.
func (h *AdvertisementHandler) GetAdvertisementByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	viewerID, _ := UserFromContext(r.Context())

	ad, err := h.Service.GetDetail(r.Context(), id, viewerID, h.sessionID(w, r))
	if err != nil {
		if errors.Is(err, repositories.ErrAdvertisementNotFound) {
			http.Error(w, "Advertisement not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch advertisement", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(ad)
}

// sessionID returns the browsing session identifier, issuing a cookie on
// first contact.
func (h *AdvertisementHandler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	sid := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
	})
	return sid
}

func (h *AdvertisementHandler) GetCabinet(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserFromContext(r.Context())
	ads, err := h.Service.GetCabinet(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to fetch cabinet", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(models.AdvertisementListResponse{
		Advertisements: ads,
		Total:          len(ads),
	})
}

func (h *AdvertisementHandler) GetCabinetAd(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	userID, _ := UserFromContext(r.Context())

	ad, err := h.Service.GetOwned(r.Context(), id, userID)
	if err != nil {
		h.writeAdError(w, err)
		return
	}
	json.NewEncoder(w).Encode(ad)
}

func (h *AdvertisementHandler) UpdateCabinetAd(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	userID, _ := UserFromContext(r.Context())

	var upd models.AdvertisementUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}

	ad, err := h.Service.UpdateOwn(r.Context(), id, userID, upd)
	if err != nil {
		h.writeAdError(w, err)
		return
	}
	json.NewEncoder(w).Encode(ad)
}

// DeleteCabinetAd soft-deletes: the row stays, the status becomes sold.
func (h *AdvertisementHandler) DeleteCabinetAd(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	userID, _ := UserFromContext(r.Context())

	if err := h.Service.Withdraw(r.Context(), id, userID); err != nil {
		h.writeAdError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdvertisementHandler) SubmitForModeration(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	userID, _ := UserFromContext(r.Context())

	ad, err := h.Service.Submit(r.Context(), id, userID)
	if err != nil {
		h.writeAdError(w, err)
		return
	}
	json.NewEncoder(w).Encode(ad)
}

func (h *AdvertisementHandler) UnlistAdvertisement(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	userID, _ := UserFromContext(r.Context())

	if err := h.Service.Unlist(r.Context(), id, userID); err != nil {
		h.writeAdError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": models.MsgAlreadySold})
}

func (h *AdvertisementHandler) writeAdError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repositories.ErrAdvertisementNotFound):
		http.Error(w, "Advertisement not found", http.StatusNotFound)
	case errors.Is(err, repositories.ErrAdvertisementNameTaken):
		writeFieldErrors(w, map[string]string{"name": err.Error()})
	case errors.Is(err, services.ErrUnchangeable):
		http.Error(w, models.MsgUnchangeable, http.StatusForbidden)
	case errors.Is(err, services.ErrNotActiveAd):
		http.Error(w, models.MsgNotActiveAd, http.StatusBadRequest)
	case errors.Is(err, lifecycle.ErrForbiddenAction):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, lifecycle.ErrInvalidTransition), errors.Is(err, lifecycle.ErrStaleStatus):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
