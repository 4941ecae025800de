package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"avidoBack/internal/repositories"
	"avidoBack/internal/services"
)

type JobHandler struct {
	Service *services.JobService
}

func (h *JobHandler) GetJobByID(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	job, err := h.Service.GetJobByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			http.Error(w, "Job not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch job", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(job)
}
