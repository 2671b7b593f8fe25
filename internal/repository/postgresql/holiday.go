package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rosterhq/oncall-backend-go/internal/domain/holiday"
	"github.com/rosterhq/oncall-backend-go/internal/pkg/database"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.Repository {
	return &holidayRepositoryImpl{db: db}
}

// Create implements holiday.Repository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (date, name, is_recurrent, required_doctors)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, h.Date, h.Name, h.IsRecurrent, h.RequiredDoctors).
		Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return holiday.Holiday{}, holiday.ErrHolidayDateTaken
		}
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return h, nil
}

// GetByID implements holiday.Repository.
func (r *holidayRepositoryImpl) GetByID(ctx context.Context, id string) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, date, name, is_recurrent, required_doctors, created_at, updated_at
		FROM holidays
		WHERE id = $1
	`

	var h holiday.Holiday
	err := q.QueryRow(ctx, query, id).
		Scan(&h.ID, &h.Date, &h.Name, &h.IsRecurrent, &h.RequiredDoctors, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return holiday.Holiday{}, holiday.ErrHolidayNotFound
		}
		return holiday.Holiday{}, fmt.Errorf("failed to get holiday with id %s: %w", id, err)
	}

	return h, nil
}

// GetAll implements holiday.Repository.
func (r *holidayRepositoryImpl) GetAll(ctx context.Context) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, date, name, is_recurrent, required_doctors, created_at, updated_at
		FROM holidays
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.IsRecurrent, &h.RequiredDoctors, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return holidays, nil
}

// Update implements holiday.Repository.
func (r *holidayRepositoryImpl) Update(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE holidays
		SET date = $1, name = $2, is_recurrent = $3, required_doctors = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query, h.Date, h.Name, h.IsRecurrent, h.RequiredDoctors, h.ID).
		Scan(&h.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return holiday.Holiday{}, holiday.ErrHolidayNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return holiday.Holiday{}, holiday.ErrHolidayDateTaken
		}
		return holiday.Holiday{}, fmt.Errorf("failed to update holiday with id %s: %w", h.ID, err)
	}

	return h, nil
}

// Delete implements holiday.Repository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday with id %s: %w", id, err)
	}
	if result.RowsAffected() != 1 {
		return holiday.ErrHolidayNotFound
	}

	return nil
}

// AnyOnDate implements holiday.Repository.
// Recurrent holidays match on month and day regardless of year.
func (r *holidayRepositoryImpl) AnyOnDate(ctx context.Context, date time.Time, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM holidays
			WHERE ($2::uuid IS NULL OR id != $2)
				AND (
					(NOT is_recurrent AND date = $1::date)
					OR (is_recurrent AND EXTRACT(MONTH FROM date) = EXTRACT(MONTH FROM $1::date)
						AND EXTRACT(DAY FROM date) = EXTRACT(DAY FROM $1::date))
				)
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, date, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check holidays on %s: %w", date.Format("2006-01-02"), err)
	}

	return exists, nil
}
