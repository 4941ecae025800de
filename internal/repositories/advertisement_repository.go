package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"avidoBack/internal/lifecycle"
	"avidoBack/internal/models"
)

var (
	ErrAdvertisementNotFound  = errors.New("advertisement not found")
	ErrAdvertisementNameTaken = errors.New("advertisement name is already taken")
)

type AdvertisementRepository struct {
	DB *sql.DB
}

func (r *AdvertisementRepository) CreateAdvertisement(ctx context.Context, ad models.Advertisement) (models.Advertisement, error) {
	// Изображения храним как JSON-массив путей
	imagesJSON, err := json.Marshal(ad.Images)
	if err != nil {
		return models.Advertisement{}, err
	}
	if ad.Status == "" {
		ad.Status = lifecycle.StatusDraft
	}

	query := `
        INSERT INTO advertisements (name, description, price, views, status, user_id, category_id, city_id, images, created_at)
        VALUES ($1, $2, $3, 0, $4, $5, $6, $7, $8, NOW())
        RETURNING id, created_at`
	err = r.DB.QueryRowContext(ctx, query,
		ad.Name,
		ad.Description,
		ad.Price,
		ad.Status,
		ad.UserID,
		ad.CategoryID,
		ad.CityID,
		string(imagesJSON),
	).Scan(&ad.ID, &ad.CreatedAt)
	if err != nil {
		if _, ok := isUniqueViolation(err); ok {
			return models.Advertisement{}, ErrAdvertisementNameTaken
		}
		return models.Advertisement{}, err
	}
	return ad, nil
}

func (r *AdvertisementRepository) GetAdvertisementByID(ctx context.Context, id int) (models.Advertisement, error) {
	query := `
        SELECT a.id, a.name, a.description, a.price, a.views, a.status,
               a.user_id, u.username, u.first_name, u.last_name, u.phone_number, u.call_availability,
               a.category_id, c.name, a.city_id, ci.name,
               a.images, a.created_at, a.updated_at
        FROM advertisements a
        JOIN users u ON a.user_id = u.id
        JOIN categories c ON a.category_id = c.id
        JOIN cities ci ON a.city_id = ci.id
        WHERE a.id = $1`

	var ad models.Advertisement
	var imagesJSON []byte
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&ad.ID, &ad.Name, &ad.Description, &ad.Price, &ad.Views, &ad.Status,
		&ad.UserID, &ad.User.Username, &ad.User.FirstName, &ad.User.LastName, &ad.User.PhoneNumber, &ad.User.CallAvailability,
		&ad.CategoryID, &ad.CategoryName, &ad.CityID, &ad.CityName,
		&imagesJSON, &ad.CreatedAt, &ad.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Advertisement{}, ErrAdvertisementNotFound
	}
	if err != nil {
		return models.Advertisement{}, err
	}
	ad.User.ID = ad.UserID

	if len(imagesJSON) > 0 {
		if err := json.Unmarshal(imagesJSON, &ad.Images); err != nil {
			return models.Advertisement{}, fmt.Errorf("failed to decode images json: %w", err)
		}
	}
	return ad, nil
}

// GetAdvertisements returns the queryset a caller is allowed to see.
// With staff=false only active advertisements are returned, no matter what
// other filters say.
func (r *AdvertisementRepository) GetAdvertisements(ctx context.Context, staff bool, filter models.AdvertisementFilter) ([]models.Advertisement, error) {
	var (
		conditions []string
		args       []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if !staff {
		conditions = append(conditions, "a.status = "+arg(lifecycle.StatusActive))
	}
	if filter.PriceFrom > 0 {
		conditions = append(conditions, "a.price >= "+arg(filter.PriceFrom))
	}
	if filter.PriceTo > 0 {
		conditions = append(conditions, "a.price <= "+arg(filter.PriceTo))
	}
	if filter.Category != "" {
		conditions = append(conditions, "c.name ILIKE "+arg("%"+filter.Category+"%"))
	}
	if filter.City != "" {
		conditions = append(conditions, "ci.name ILIKE "+arg("%"+filter.City+"%"))
	}
	if filter.TextFallback {
		if filter.Name != "" {
			conditions = append(conditions, "a.name ILIKE "+arg("%"+filter.Name+"%"))
		}
		if filter.Description != "" {
			conditions = append(conditions, "a.description ILIKE "+arg("%"+filter.Description+"%"))
		}
	}
	query := `
        SELECT a.id, a.name, a.description, a.price, a.views, a.status,
               a.user_id, a.category_id, c.name, a.city_id, ci.name,
               a.images, a.created_at, a.updated_at
        FROM advertisements a
        JOIN categories c ON a.category_id = c.id
        JOIN cities ci ON a.city_id = ci.id`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY a.created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAdvertisements(rows)
}

func (r *AdvertisementRepository) GetAdvertisementsByUserID(ctx context.Context, userID int) ([]models.Advertisement, error) {
	query := `
        SELECT a.id, a.name, a.description, a.price, a.views, a.status,
               a.user_id, a.category_id, c.name, a.city_id, ci.name,
               a.images, a.created_at, a.updated_at
        FROM advertisements a
        JOIN categories c ON a.category_id = c.id
        JOIN cities ci ON a.city_id = ci.id
        WHERE a.user_id = $1
        ORDER BY a.created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAdvertisements(rows)
}

func scanAdvertisements(rows *sql.Rows) ([]models.Advertisement, error) {
	var ads []models.Advertisement
	for rows.Next() {
		var ad models.Advertisement
		var imagesJSON []byte
		if err := rows.Scan(
			&ad.ID, &ad.Name, &ad.Description, &ad.Price, &ad.Views, &ad.Status,
			&ad.UserID, &ad.CategoryID, &ad.CategoryName, &ad.CityID, &ad.CityName,
			&imagesJSON, &ad.CreatedAt, &ad.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if len(imagesJSON) > 0 {
			if err := json.Unmarshal(imagesJSON, &ad.Images); err != nil {
				return nil, fmt.Errorf("failed to decode images json: %w", err)
			}
		}
		ads = append(ads, ad)
	}
	return ads, rows.Err()
}

// UpdateAdvertisement overwrites the mutable fields. Nil pointers in upd
// leave the stored value as is.
func (r *AdvertisementRepository) UpdateAdvertisement(ctx context.Context, id int, upd models.AdvertisementUpdate) (models.Advertisement, error) {
	var (
		sets []string
		args []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if upd.Name != nil {
		sets = append(sets, "name = "+arg(*upd.Name))
	}
	if upd.Description != nil {
		sets = append(sets, "description = "+arg(*upd.Description))
	}
	if upd.Price != nil {
		sets = append(sets, "price = "+arg(*upd.Price))
	}
	if upd.CategoryID != nil {
		sets = append(sets, "category_id = "+arg(*upd.CategoryID))
	}
	if upd.CityID != nil {
		sets = append(sets, "city_id = "+arg(*upd.CityID))
	}
	if upd.Images != nil {
		imagesJSON, err := json.Marshal(upd.Images)
		if err != nil {
			return models.Advertisement{}, err
		}
		sets = append(sets, "images = "+arg(string(imagesJSON)))
	}
	if len(sets) > 0 {
		sets = append(sets, "updated_at = NOW()")
		query := "UPDATE advertisements SET " + strings.Join(sets, ", ") + " WHERE id = " + arg(id)
		if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
			if _, ok := isUniqueViolation(err); ok {
				return models.Advertisement{}, ErrAdvertisementNameTaken
			}
			return models.Advertisement{}, err
		}
	}
	return r.GetAdvertisementByID(ctx, id)
}

// IncrementViews bumps the view counter with a single atomic UPDATE, so
// concurrent viewers cannot lose increments.
func (r *AdvertisementRepository) IncrementViews(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE advertisements SET views = views + 1 WHERE id = $1`, id)
	return err
}

// Transition applies a lifecycle action inside a transaction and returns
// the resulting status.
func (r *AdvertisementRepository) Transition(ctx context.Context, adID int, from, action, capability string) (string, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	to, err := lifecycle.Apply(ctx, tx, adID, from, action, capability)
	if err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return to, nil
}

func (r *AdvertisementRepository) CountAdvertisements(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM advertisements`).Scan(&count)
	return count, err
}
