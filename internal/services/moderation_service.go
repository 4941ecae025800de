package services

import (
	"context"
	"errors"
	"strings"

	"avidoBack/internal/models"
	"avidoBack/internal/repositories"
)

var (
	ErrUnknownDecision        = errors.New("unknown moderation decision")
	ErrRejectionReasonMissing = errors.New("rejection reason is required when sending for revision")
)

type ModerationService struct {
	ModerationRepo *repositories.ModerationRepository
	AdRepo         *repositories.AdvertisementRepository
}

// CreateRecord records a moderator decision and moves the listing to its
// new status in the same transaction.
func (s *ModerationService) CreateRecord(ctx context.Context, record models.ModerationRecord) (models.ModerationRecord, string, error) {
	record.Decision = strings.TrimSpace(record.Decision)
	if record.Decision != models.DecisionPublish && record.Decision != models.DecisionSendForRevision {
		return models.ModerationRecord{}, "", ErrUnknownDecision
	}
	if record.Decision == models.DecisionSendForRevision && strings.TrimSpace(record.RejectionReason) == "" {
		return models.ModerationRecord{}, "", ErrRejectionReasonMissing
	}
	if record.Decision == models.DecisionPublish {
		record.RejectionReason = ""
	}

	ad, err := s.AdRepo.GetAdvertisementByID(ctx, record.AdvertisementID)
	if err != nil {
		return models.ModerationRecord{}, "", err
	}
	return s.ModerationRepo.CreateWithTransition(ctx, record, ad.Status)
}

func (s *ModerationService) GetRecords(ctx context.Context) ([]models.ModerationRecord, error) {
	return s.ModerationRepo.GetRecords(ctx)
}

func (s *ModerationService) GetRecordByID(ctx context.Context, id int) (models.ModerationRecord, error) {
	return s.ModerationRepo.GetRecordByID(ctx, id)
}

func (s *ModerationService) UpdateRecord(ctx context.Context, id int, rejectionReason string) (models.ModerationRecord, error) {
	return s.ModerationRepo.UpdateRecord(ctx, id, rejectionReason)
}

func (s *ModerationService) DeleteRecord(ctx context.Context, id int) error {
	return s.ModerationRepo.DeleteRecord(ctx, id)
}
