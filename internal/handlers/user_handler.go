package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"avidoBack/internal/models"
	"avidoBack/internal/repositories"
	"avidoBack/internal/services"
)

type UserHandler struct {
	Service *services.UserService
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	fields := map[string]string{}
	if user.Email == "" {
		fields["email"] = "required"
	}
	if user.Username == "" {
		fields["username"] = "required"
	}
	if len(fields) > 0 {
		writeFieldErrors(w, fields)
		return
	}

	created, err := h.Service.Register(r.Context(), user)
	if err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			writeFieldErrors(w, map[string]string{"email": err.Error()})
			return
		}
		http.Error(w, "Failed to register", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *UserHandler) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get(":token")
	if err := h.Service.ConfirmEmail(r.Context(), token); err != nil {
		if errors.Is(err, repositories.ErrTokenNotFound) || errors.Is(err, repositories.ErrUserNotFound) {
			http.Error(w, models.MsgInvalidToken, http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to confirm email", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"message": models.MsgSuccessConfirmEmail})
}

func (h *UserHandler) SetPassword(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get(":token")
	var req models.SetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}

	err := h.Service.SetPassword(r.Context(), token, req)
	switch {
	case err == nil:
		json.NewEncoder(w).Encode(map[string]string{"message": models.MsgSuccessConfirmEmail})
	case errors.Is(err, services.ErrPasswordTooShort):
		writeFieldErrors(w, map[string]string{"password": err.Error()})
	case errors.Is(err, services.ErrPasswordMismatch):
		writeFieldErrors(w, map[string]string{"repeat_password": err.Error()})
	case errors.Is(err, repositories.ErrTokenNotFound), errors.Is(err, repositories.ErrUserNotFound):
		http.Error(w, models.MsgInvalidToken, http.StatusNotFound)
	default:
		http.Error(w, "Failed to set password", http.StatusInternalServerError)
	}
}

func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}

	token, user, err := h.Service.SignIn(r.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to sign in", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"access_token": token,
		"user":         user,
	})
}

// writeFieldErrors renders the per-field validation map.
func writeFieldErrors(w http.ResponseWriter, fields map[string]string) {
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]interface{}{"errors": fields})
}
