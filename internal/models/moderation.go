package models

import "time"

const (
	DecisionPublish         = "publish"
	DecisionSendForRevision = "send_for_revision"
)

type ModerationRecord struct {
	ID              int       `json:"id"`
	AdvertisementID int       `json:"advertisement_id"`
	ModeratorID     int       `json:"moderator_id"`
	Decision        string    `json:"decision"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	ModerationDate  time.Time `json:"moderation_date"`
}
