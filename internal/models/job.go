package models

import "time"

const (
	JobStatusPending   = "pending"
	JobStatusRunning   = "running"
	JobStatusSucceeded = "succeeded"
	JobStatusFailed    = "failed"
)

const (
	JobKindSendConfirmationEmail = "send_confirmation_email"
	JobKindFetchAvatar           = "fetch_avatar"
)

// Job is a persisted background task. The request path only enqueues;
// the runner in internal/jobs owns every later status change.
type Job struct {
	ID        string     `json:"id"`
	Kind      string     `json:"kind"`
	Payload   string     `json:"payload"`
	Status    string     `json:"status"`
	Attempts  int        `json:"attempts"`
	LastError string     `json:"last_error,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
