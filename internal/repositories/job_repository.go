package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"avidoBack/internal/models"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository struct {
	DB *sql.DB
}

// Enqueue stores a pending job. The caller gets the id back immediately and
// never waits for execution.
func (r *JobRepository) Enqueue(ctx context.Context, kind, payload string) (models.Job, error) {
	job := models.Job{
		ID:      uuid.NewString(),
		Kind:    kind,
		Payload: payload,
		Status:  models.JobStatusPending,
	}
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO jobs (id, kind, payload, status, attempts, created_at)
         VALUES ($1, $2, $3, $4, 0, NOW()) RETURNING created_at`,
		job.ID, job.Kind, job.Payload, job.Status).Scan(&job.CreatedAt)
	if err != nil {
		return models.Job{}, err
	}
	return job, nil
}

// ClaimPending marks up to limit pending jobs as running and returns them.
// SKIP LOCKED keeps concurrent runners from claiming the same rows.
func (r *JobRepository) ClaimPending(ctx context.Context, limit int) ([]models.Job, error) {
	query := `
        UPDATE jobs SET status = $1, attempts = attempts + 1, updated_at = NOW()
        WHERE id IN (
            SELECT id FROM jobs WHERE status = $2
            ORDER BY created_at
            LIMIT $3
            FOR UPDATE SKIP LOCKED
        )
        RETURNING id, kind, payload, status, attempts, COALESCE(last_error, ''), created_at, updated_at`
	rows, err := r.DB.QueryContext(ctx, query, models.JobStatusRunning, models.JobStatusPending, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		var job models.Job
		if err := rows.Scan(&job.ID, &job.Kind, &job.Payload, &job.Status,
			&job.Attempts, &job.LastError, &job.CreatedAt, &job.UpdatedAt); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r *JobRepository) MarkSucceeded(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE jobs SET status = $1, updated_at = NOW() WHERE id = $2`,
		models.JobStatusSucceeded, id)
	return err
}

// MarkFailed records the failure; the job goes back to pending while
// attempts remain, otherwise it lands in the terminal failed status.
func (r *JobRepository) MarkFailed(ctx context.Context, id string, jobErr error, maxAttempts int) error {
	query := `
        UPDATE jobs
        SET status = CASE WHEN attempts >= $1 THEN $2 ELSE $3 END,
            last_error = $4,
            updated_at = NOW()
        WHERE id = $5`
	_, err := r.DB.ExecContext(ctx, query,
		maxAttempts, models.JobStatusFailed, models.JobStatusPending, jobErr.Error(), id)
	return err
}

func (r *JobRepository) GetJobByID(ctx context.Context, id string) (models.Job, error) {
	var job models.Job
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, kind, payload, status, attempts, COALESCE(last_error, ''), created_at, updated_at
         FROM jobs WHERE id = $1`, id).
		Scan(&job.ID, &job.Kind, &job.Payload, &job.Status,
			&job.Attempts, &job.LastError, &job.CreatedAt, &job.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Job{}, ErrJobNotFound
	}
	return job, err
}
