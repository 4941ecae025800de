package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"avidoBack/internal/mailer"
	"avidoBack/internal/models"
	"avidoBack/internal/repositories"
	"avidoBack/utils"
)

const (
	pollInterval = 5 * time.Second
	claimBatch   = 10
	maxAttempts  = 3
)

// EmailPayload is the payload of a send_confirmation_email job.
type EmailPayload struct {
	Email string `json:"email"`
	Link  string `json:"link"`
}

// AvatarPayload is the payload of a fetch_avatar job.
type AvatarPayload struct {
	Email string `json:"email"`
}

// Runner polls the jobs table and executes claimed jobs. Failures are
// recorded on the job row and retried until the attempt bound; nothing is
// reported back to the request that enqueued the job.
type Runner struct {
	JobRepo  *repositories.JobRepository
	UserRepo *repositories.UserRepository
	Mailer   mailer.Sender
	Avatars  AvatarFetcher
	Storage  *utils.Storage
	ErrorLog *log.Logger
}

func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.runOnce(ctx)
		}
	}
}

func (r *Runner) runOnce(ctx context.Context) {
	claimed, err := r.JobRepo.ClaimPending(ctx, claimBatch)
	if err != nil {
		r.ErrorLog.Printf("claim pending jobs: %v", err)
		return
	}
	for _, job := range claimed {
		if err := r.execute(ctx, job); err != nil {
			r.ErrorLog.Printf("job %s (%s) failed: %v", job.ID, job.Kind, err)
			if markErr := r.JobRepo.MarkFailed(ctx, job.ID, err, maxAttempts); markErr != nil {
				r.ErrorLog.Printf("mark job %s failed: %v", job.ID, markErr)
			}
			continue
		}
		if err := r.JobRepo.MarkSucceeded(ctx, job.ID); err != nil {
			r.ErrorLog.Printf("mark job %s succeeded: %v", job.ID, err)
		}
	}
}

func (r *Runner) execute(ctx context.Context, job models.Job) error {
	switch job.Kind {
	case models.JobKindSendConfirmationEmail:
		var payload EmailPayload
		if err := json.Unmarshal([]byte(job.Payload), &payload); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
		return r.Mailer.SendConfirmationEmail(payload.Email, payload.Link)

	case models.JobKindFetchAvatar:
		var payload AvatarPayload
		if err := json.Unmarshal([]byte(job.Payload), &payload); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
		return r.fetchAndStoreAvatar(ctx, payload.Email)

	default:
		return fmt.Errorf("unknown job kind %q", job.Kind)
	}
}

func (r *Runner) fetchAndStoreAvatar(ctx context.Context, email string) error {
	user, err := r.UserRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	image, err := r.Avatars.FetchRandomAvatar()
	if err != nil {
		return err
	}
	fileName := uuid.NewString() + ".jpg"
	avatarURL, err := r.Storage.UploadFile(image, fileName, "avatars", "image/jpeg")
	if err != nil {
		return err
	}
	return r.UserRepo.SetAvatarPath(ctx, user.ID, avatarURL)
}
