package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"avidoBack/internal/models"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrTokenNotFound = errors.New("registration token not found")
	ErrEmailTaken    = errors.New("email is already registered")
)

type UserRepository struct {
	DB *sql.DB
}

func (r *UserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	query := `
        INSERT INTO users (username, first_name, last_name, email, password, phone_number, call_availability, role, status, is_active, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
        RETURNING id, created_at`
	err := r.DB.QueryRowContext(ctx, query,
		user.Username,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Password,
		user.PhoneNumber,
		user.CallAvailability,
		user.Role,
		user.Status,
		user.IsActive,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if _, ok := isUniqueViolation(err); ok {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (models.User, error) {
	var user models.User
	query := `
        SELECT id, username, first_name, last_name, email, password, phone_number, call_availability,
               COALESCE(avatar_path, ''), role, status, is_active, created_at, updated_at
        FROM users WHERE id = $1`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.Email, &user.Password,
		&user.PhoneNumber, &user.CallAvailability, &user.AvatarPath, &user.Role, &user.Status,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	query := `
        SELECT id, username, first_name, last_name, email, password, phone_number, call_availability,
               COALESCE(avatar_path, ''), role, status, is_active, created_at, updated_at
        FROM users WHERE email = $1`
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.Email, &user.Password,
		&user.PhoneNumber, &user.CallAvailability, &user.AvatarPath, &user.Role, &user.Status,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// ActivateUser flips the user into the active status after email confirmation.
func (r *UserRepository) ActivateUser(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE users SET status = $1, is_active = true, updated_at = NOW() WHERE id = $2`,
		models.UserStatusActive, id)
	return err
}

func (r *UserRepository) SetPassword(ctx context.Context, id int, hashedPassword string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`,
		hashedPassword, id)
	return err
}

func (r *UserRepository) SetAvatarPath(ctx context.Context, id int, avatarPath string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE users SET avatar_path = $1, updated_at = NOW() WHERE id = $2`,
		avatarPath, id)
	return err
}

func (r *UserRepository) CreateRegistrationToken(ctx context.Context, userID int, token string) (models.RegistrationToken, error) {
	rt := models.RegistrationToken{UserID: userID, Token: token, CreatedAt: time.Now()}
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO registration_tokens (user_id, token, created_at) VALUES ($1, $2, $3) RETURNING id`,
		userID, token, rt.CreatedAt).Scan(&rt.ID)
	if err != nil {
		return models.RegistrationToken{}, err
	}
	return rt, nil
}

// GetUserByToken resolves a registration token to its user.
func (r *UserRepository) GetUserByToken(ctx context.Context, token string) (models.User, error) {
	var userID int
	err := r.DB.QueryRowContext(ctx,
		`SELECT user_id FROM registration_tokens WHERE token = $1 ORDER BY id DESC LIMIT 1`,
		token).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrTokenNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return r.GetUserByID(ctx, userID)
}

func (r *UserRepository) DeleteRegistrationToken(ctx context.Context, token string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM registration_tokens WHERE token = $1`, token)
	return err
}
