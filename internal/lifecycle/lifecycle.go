package lifecycle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Status constants used by the advertisement state machine.
const (
	StatusDraft      = "draft"
	StatusModeration = "moderation"
	StatusRejected   = "rejected"
	StatusSold       = "sold"
	StatusActive     = "active"
)

// Actions that move an advertisement between statuses.
const (
	ActionSubmit          = "submit"
	ActionPublish         = "publish"
	ActionSendForRevision = "send_for_revision"
	ActionUnlist          = "unlist"
	ActionWithdraw        = "withdraw"
)

// Capabilities required to perform an action.
const (
	CapabilityOwner = "owner"
	CapabilityStaff = "staff"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrForbiddenAction   = errors.New("caller lacks capability for this action")
	ErrStaleStatus       = errors.New("advertisement status changed concurrently")
)

// Transition describes one row of the state machine table.
type Transition struct {
	To         string
	Capability string
}

// transitions enumerates (current status, action) -> (next status, capability).
// Anything not in the table is rejected. Withdraw is the owner soft delete and
// is valid from every status, so it is handled separately in Resolve.
var transitions = map[string]map[string]Transition{
	StatusDraft: {
		ActionSubmit: {To: StatusModeration, Capability: CapabilityOwner},
	},
	StatusRejected: {
		ActionSubmit: {To: StatusModeration, Capability: CapabilityOwner},
	},
	StatusModeration: {
		ActionPublish:         {To: StatusActive, Capability: CapabilityStaff},
		ActionSendForRevision: {To: StatusRejected, Capability: CapabilityStaff},
	},
	StatusActive: {
		ActionUnlist: {To: StatusSold, Capability: CapabilityOwner},
	},
}

// Resolve returns the target status for an action taken from the given
// status with the given capability.
func Resolve(from, action, capability string) (string, error) {
	if action == ActionWithdraw {
		if capability != CapabilityOwner {
			return "", ErrForbiddenAction
		}
		return StatusSold, nil
	}
	byAction, ok := transitions[from]
	if !ok {
		return "", ErrInvalidTransition
	}
	tr, ok := byAction[action]
	if !ok {
		return "", ErrInvalidTransition
	}
	if tr.Capability != capability {
		return "", ErrForbiddenAction
	}
	return tr.To, nil
}

// CanTransition reports whether any action leads from one status to another.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	if to == StatusSold {
		// withdraw is allowed from anywhere
		return true
	}
	for _, tr := range transitions[from] {
		if tr.To == to {
			return true
		}
	}
	return false
}

// Editable reports whether the owner may still overwrite the
// advertisement's fields.
func Editable(status string) bool {
	return status == StatusDraft || status == StatusRejected
}

// Visible reports whether a status is shown to non-staff callers.
func Visible(status string) bool {
	return status == StatusActive
}

// Apply performs the status write with optimistic validation: the UPDATE
// only matches when the row still holds the expected current status.
func Apply(ctx context.Context, tx *sql.Tx, adID int, from, action, capability string) (string, error) {
	to, err := Resolve(from, action, capability)
	if err != nil {
		return "", err
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE advertisements SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`,
		to, adID, from)
	if err != nil {
		return "", fmt.Errorf("apply transition: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return "", err
	}
	if rows == 0 {
		return "", ErrStaleStatus
	}
	return to, nil
}
