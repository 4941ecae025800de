package services

import (
	"testing"

	"avidoBack/internal/models"
)

func TestNormalizeRegistrationStripsCapabilityFields(t *testing.T) {
	submitted := models.User{
		Username:   "mallory",
		Email:      "mallory@example.com",
		Password:   "password123",
		Role:       models.RoleAdmin,
		Status:     models.UserStatusActive,
		IsActive:   true,
		AvatarPath: "https://cdn.example.com/stolen.jpg",
	}

	user := normalizeRegistration(submitted)

	if user.Role != models.RoleUser {
		t.Errorf("expected role %q, got %q", models.RoleUser, user.Role)
	}
	if models.IsStaff(user.Role) {
		t.Error("self-registration must never yield a staff-capable account")
	}
	if user.Status != models.UserStatusWaitingActivation {
		t.Errorf("expected status %q, got %q", models.UserStatusWaitingActivation, user.Status)
	}
	if user.IsActive {
		t.Error("new accounts must start inactive")
	}
	if user.AvatarPath != "" {
		t.Errorf("avatar path must be assigned by the avatar job, got %q", user.AvatarPath)
	}
	if user.Username != "mallory" || user.Email != "mallory@example.com" {
		t.Error("identity fields must pass through unchanged")
	}
	if user.Password != "password123" {
		t.Error("password must pass through for hashing")
	}
}

func TestNormalizeRegistrationDefaultsForModeratorRole(t *testing.T) {
	user := normalizeRegistration(models.User{Role: models.RoleModerator})

	if user.Role != models.RoleUser {
		t.Errorf("expected role %q, got %q", models.RoleUser, user.Role)
	}
}
