package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	constraint, ok := isUniqueViolation(fmt.Errorf("insert user: %w", pgErr))
	if !ok {
		t.Fatal("expected a wrapped unique violation to be detected")
	}
	if constraint != "users_email_key" {
		t.Errorf("expected constraint users_email_key, got %q", constraint)
	}
}

func TestIsUniqueViolationIgnoresOtherErrors(t *testing.T) {
	if _, ok := isUniqueViolation(errors.New("connection refused")); ok {
		t.Error("plain errors must not be reported as unique violations")
	}
	if _, ok := isUniqueViolation(&pgconn.PgError{Code: "23503"}); ok {
		t.Error("foreign key violations must not be reported as unique violations")
	}
}
