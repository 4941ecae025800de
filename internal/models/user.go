package models

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

const (
	UserStatusWaitingActivation = "waiting_activation"
	UserStatusActive            = "active"
	UserStatusBlocked           = "blocked"
)

type User struct {
	ID               int        `json:"id"`
	Username         string     `json:"username"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Email            string     `json:"email,omitempty"`
	Password         string     `json:"password,omitempty"`
	PhoneNumber      string     `json:"phone_number"`
	CallAvailability string     `json:"call_availability"`
	AvatarPath       string     `json:"avatar_path,omitempty"`
	Role             string     `json:"role"`
	Status           string     `json:"status"`
	IsActive         bool       `json:"is_active"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

// IsStaff reports whether the user role carries moderation capability.
func IsStaff(role string) bool {
	return role == RoleModerator || role == RoleAdmin
}

type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

type RegistrationToken struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SetPasswordRequest struct {
	Password       string `json:"password"`
	RepeatPassword string `json:"repeat_password"`
}
