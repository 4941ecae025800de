package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"avidoBack/internal/lifecycle"
	"avidoBack/internal/models"
)

var ErrModerationRecordNotFound = errors.New("moderation record not found")

type ModerationRepository struct {
	DB *sql.DB
}

// CreateWithTransition inserts the moderation record and applies the
// corresponding advertisement transition in one transaction, so a decision
// can never be recorded without the status actually changing.
func (r *ModerationRepository) CreateWithTransition(ctx context.Context, record models.ModerationRecord, fromStatus string) (models.ModerationRecord, string, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.ModerationRecord{}, "", err
	}
	defer tx.Rollback()

	record.ModerationDate = time.Now()
	err = tx.QueryRowContext(ctx,
		`INSERT INTO moderation_records (advertisement_id, moderator_id, decision, rejection_reason, moderation_date)
         VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		record.AdvertisementID, record.ModeratorID, record.Decision, record.RejectionReason, record.ModerationDate,
	).Scan(&record.ID)
	if err != nil {
		return models.ModerationRecord{}, "", err
	}

	action := lifecycle.ActionPublish
	if record.Decision == models.DecisionSendForRevision {
		action = lifecycle.ActionSendForRevision
	}
	to, err := lifecycle.Apply(ctx, tx, record.AdvertisementID, fromStatus, action, lifecycle.CapabilityStaff)
	if err != nil {
		return models.ModerationRecord{}, "", err
	}

	if err := tx.Commit(); err != nil {
		return models.ModerationRecord{}, "", err
	}
	return record, to, nil
}

func (r *ModerationRepository) GetRecords(ctx context.Context) ([]models.ModerationRecord, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, advertisement_id, moderator_id, decision, rejection_reason, moderation_date
         FROM moderation_records ORDER BY moderation_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.ModerationRecord
	for rows.Next() {
		var record models.ModerationRecord
		if err := rows.Scan(
			&record.ID, &record.AdvertisementID, &record.ModeratorID,
			&record.Decision, &record.RejectionReason, &record.ModerationDate,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (r *ModerationRepository) GetRecordByID(ctx context.Context, id int) (models.ModerationRecord, error) {
	var record models.ModerationRecord
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, advertisement_id, moderator_id, decision, rejection_reason, moderation_date
         FROM moderation_records WHERE id = $1`, id).
		Scan(&record.ID, &record.AdvertisementID, &record.ModeratorID,
			&record.Decision, &record.RejectionReason, &record.ModerationDate)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ModerationRecord{}, ErrModerationRecordNotFound
	}
	return record, err
}

// UpdateRecord corrects the text of a recorded decision. The decision itself
// and the moderation date stay immutable; only the rejection reason is
// editable after the fact.
func (r *ModerationRepository) UpdateRecord(ctx context.Context, id int, rejectionReason string) (models.ModerationRecord, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE moderation_records SET rejection_reason = $1 WHERE id = $2`, rejectionReason, id)
	if err != nil {
		return models.ModerationRecord{}, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return models.ModerationRecord{}, err
	}
	if rows == 0 {
		return models.ModerationRecord{}, ErrModerationRecordNotFound
	}
	return r.GetRecordByID(ctx, id)
}

func (r *ModerationRepository) DeleteRecord(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM moderation_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrModerationRecordNotFound
	}
	return nil
}
