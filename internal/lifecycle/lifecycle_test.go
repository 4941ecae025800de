package lifecycle

import (
	"errors"
	"testing"
)

func TestResolveAllowedTransitions(t *testing.T) {
	cases := []struct {
		from, action, capability, want string
	}{
		{StatusDraft, ActionSubmit, CapabilityOwner, StatusModeration},
		{StatusRejected, ActionSubmit, CapabilityOwner, StatusModeration},
		{StatusModeration, ActionPublish, CapabilityStaff, StatusActive},
		{StatusModeration, ActionSendForRevision, CapabilityStaff, StatusRejected},
		{StatusActive, ActionUnlist, CapabilityOwner, StatusSold},
		{StatusDraft, ActionWithdraw, CapabilityOwner, StatusSold},
		{StatusActive, ActionWithdraw, CapabilityOwner, StatusSold},
		{StatusModeration, ActionWithdraw, CapabilityOwner, StatusSold},
	}
	for _, c := range cases {
		got, err := Resolve(c.from, c.action, c.capability)
		if err != nil {
			t.Fatalf("Resolve(%s, %s, %s): %v", c.from, c.action, c.capability, err)
		}
		if got != c.want {
			t.Fatalf("Resolve(%s, %s, %s) = %s, want %s", c.from, c.action, c.capability, got, c.want)
		}
	}
}

func TestResolveRejectsUnknownTransitions(t *testing.T) {
	if _, err := Resolve(StatusDraft, ActionPublish, CapabilityStaff); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition for draft publish, got %v", err)
	}
	if _, err := Resolve(StatusSold, ActionSubmit, CapabilityOwner); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition for sold submit, got %v", err)
	}
	if _, err := Resolve(StatusSold, ActionUnlist, CapabilityOwner); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition for sold unlist, got %v", err)
	}
	if _, err := Resolve(StatusActive, ActionSubmit, CapabilityOwner); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition for active submit, got %v", err)
	}
}

func TestResolveChecksCapability(t *testing.T) {
	if _, err := Resolve(StatusModeration, ActionPublish, CapabilityOwner); !errors.Is(err, ErrForbiddenAction) {
		t.Fatalf("expected forbidden for owner publish, got %v", err)
	}
	if _, err := Resolve(StatusActive, ActionUnlist, CapabilityStaff); !errors.Is(err, ErrForbiddenAction) {
		t.Fatalf("expected forbidden for staff unlist, got %v", err)
	}
	if _, err := Resolve(StatusActive, ActionWithdraw, CapabilityStaff); !errors.Is(err, ErrForbiddenAction) {
		t.Fatalf("expected forbidden for staff withdraw, got %v", err)
	}
}

func TestEditable(t *testing.T) {
	for _, status := range []string{StatusDraft, StatusRejected} {
		if !Editable(status) {
			t.Fatalf("expected %s to be editable", status)
		}
	}
	for _, status := range []string{StatusModeration, StatusActive, StatusSold} {
		if Editable(status) {
			t.Fatalf("expected %s to not be editable", status)
		}
	}
}

func TestVisible(t *testing.T) {
	if !Visible(StatusActive) {
		t.Fatal("expected active to be visible")
	}
	for _, status := range []string{StatusDraft, StatusModeration, StatusRejected, StatusSold} {
		if Visible(status) {
			t.Fatalf("expected %s to be hidden from non-staff", status)
		}
	}
}

func TestCanTransition(t *testing.T) {
	if !CanTransition(StatusDraft, StatusModeration) {
		t.Fatal("expected draft -> moderation to be allowed")
	}
	if !CanTransition(StatusModeration, StatusActive) {
		t.Fatal("expected moderation -> active to be allowed")
	}
	if !CanTransition(StatusRejected, StatusSold) {
		t.Fatal("expected rejected -> sold to be allowed (withdraw)")
	}
	if CanTransition(StatusSold, StatusActive) {
		t.Fatal("unexpected sold -> active allowed")
	}
	if CanTransition(StatusDraft, StatusActive) {
		t.Fatal("unexpected draft -> active allowed")
	}
}
