package services

import (
	"context"

	"avidoBack/internal/models"
	"avidoBack/internal/repositories"
)

type JobService struct {
	JobRepo *repositories.JobRepository
}

func (s *JobService) GetJobByID(ctx context.Context, id string) (models.Job, error) {
	return s.JobRepo.GetJobByID(ctx, id)
}
