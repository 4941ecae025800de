package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"avidoBack/internal/models"
	"avidoBack/internal/repositories"
	"avidoBack/utils"
)

const accessTokenTTL = 20 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)

type UserService struct {
	UserRepo     *repositories.UserRepository
	JobRepo      *repositories.JobRepository
	TokenManager *utils.Manager
	// BaseURL is the external address used in confirmation links.
	BaseURL string
}

// normalizeRegistration resets the capability and activation fields to
// their registration defaults. Роль и статус из тела запроса игнорируются:
// staff-аккаунты через самостоятельную регистрацию не создаются.
func normalizeRegistration(user models.User) models.User {
	user.Role = models.RoleUser
	user.Status = models.UserStatusWaitingActivation
	user.IsActive = false
	user.AvatarPath = ""
	return user
}

// Register creates an inactive user, stores a registration token and
// enqueues the avatar and confirmation-email jobs. Неудача фоновых задач
// никогда не влияет на ответ регистрации.
func (s *UserService) Register(ctx context.Context, user models.User) (models.User, error) {
	user = normalizeRegistration(user)
	if user.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, err
		}
		user.Password = string(hashed)
	}

	created, err := s.UserRepo.CreateUser(ctx, user)
	if err != nil {
		return models.User{}, err
	}

	token := utils.NewRegistrationToken()
	if _, err := s.UserRepo.CreateRegistrationToken(ctx, created.ID, token); err != nil {
		return models.User{}, err
	}

	link := s.confirmationLink(created, token)
	emailPayload, _ := json.Marshal(map[string]string{"email": created.Email, "link": link})
	if _, err := s.JobRepo.Enqueue(ctx, models.JobKindSendConfirmationEmail, string(emailPayload)); err != nil {
		return models.User{}, err
	}
	avatarPayload, _ := json.Marshal(map[string]string{"email": created.Email})
	if _, err := s.JobRepo.Enqueue(ctx, models.JobKindFetchAvatar, string(avatarPayload)); err != nil {
		return models.User{}, err
	}

	created.Password = ""
	return created, nil
}

// confirmationLink picks the confirmation strategy: users created without a
// password (by an admin) get the set-password link instead.
func (s *UserService) confirmationLink(user models.User, token string) string {
	if user.Password == "" {
		return fmt.Sprintf("%s/register/set_password/%s", s.BaseURL, token)
	}
	return fmt.Sprintf("%s/register/confirm/%s", s.BaseURL, token)
}

// ConfirmEmail activates the user behind the token and burns the token.
func (s *UserService) ConfirmEmail(ctx context.Context, token string) error {
	user, err := s.UserRepo.GetUserByToken(ctx, token)
	if err != nil {
		return err
	}
	if err := s.UserRepo.ActivateUser(ctx, user.ID); err != nil {
		return err
	}
	return s.UserRepo.DeleteRegistrationToken(ctx, token)
}

// SetPassword finishes registration for accounts created without a
// password: validates the pair, stores the hash, activates, burns the token.
func (s *UserService) SetPassword(ctx context.Context, token string, req models.SetPasswordRequest) error {
	if len(req.Password) < 8 {
		return ErrPasswordTooShort
	}
	if req.Password != req.RepeatPassword {
		return ErrPasswordMismatch
	}

	user, err := s.UserRepo.GetUserByToken(ctx, token)
	if err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.UserRepo.SetPassword(ctx, user.ID, string(hashed)); err != nil {
		return err
	}
	if err := s.UserRepo.ActivateUser(ctx, user.ID); err != nil {
		return err
	}
	return s.UserRepo.DeleteRegistrationToken(ctx, token)
}

// SignIn checks credentials and issues an access token.
func (s *UserService) SignIn(ctx context.Context, req models.SignInRequest) (string, models.User, error) {
	user, err := s.UserRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", models.User{}, ErrInvalidCredentials
		}
		return "", models.User{}, err
	}
	if !user.IsActive {
		return "", models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", models.User{}, ErrInvalidCredentials
	}

	token, err := s.TokenManager.NewJWT(user.ID, user.Role, accessTokenTTL)
	if err != nil {
		return "", models.User{}, err
	}
	user.Password = ""
	return token, user, nil
}
