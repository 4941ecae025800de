package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"avidoBack/internal/lifecycle"
	"avidoBack/internal/models"
	"avidoBack/internal/repositories"
	"avidoBack/internal/services"
)

type ModerationHandler struct {
	Service *services.ModerationService
}

// CreateRecord фиксирует решение модератора; статус объявления меняется
// в той же транзакции, что и запись в журнале.
func (h *ModerationHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var record models.ModerationRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	userID, _ := UserFromContext(r.Context())
	record.ModeratorID = userID

	created, newStatus, err := h.Service.CreateRecord(r.Context(), record)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownDecision):
			writeFieldErrors(w, map[string]string{"decision": err.Error()})
		case errors.Is(err, services.ErrRejectionReasonMissing):
			writeFieldErrors(w, map[string]string{"rejection_reason": err.Error()})
		case errors.Is(err, repositories.ErrAdvertisementNotFound):
			http.Error(w, "Advertisement not found", http.StatusNotFound)
		case errors.Is(err, lifecycle.ErrInvalidTransition), errors.Is(err, lifecycle.ErrStaleStatus):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "Failed to create moderation record", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"record":     created,
		"new_status": newStatus,
	})
}

func (h *ModerationHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.Service.GetRecords(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch moderation records", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(records)
}

func (h *ModerationHandler) GetRecordByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	record, err := h.Service.GetRecordByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrModerationRecordNotFound) {
			http.Error(w, "Moderation record not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch moderation record", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(record)
}

// UpdateRecord меняет только причину отклонения, решение неизменяемо.
func (h *ModerationHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	var body struct {
		RejectionReason string `json:"rejection_reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	record, err := h.Service.UpdateRecord(r.Context(), id, body.RejectionReason)
	if err != nil {
		if errors.Is(err, repositories.ErrModerationRecordNotFound) {
			http.Error(w, "Moderation record not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update moderation record", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(record)
}

func (h *ModerationHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	if err := h.Service.DeleteRecord(r.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrModerationRecordNotFound) {
			http.Error(w, "Moderation record not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete moderation record", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
