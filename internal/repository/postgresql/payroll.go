package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rosterhq/oncall-backend-go/internal/domain/payroll"
	"github.com/rosterhq/oncall-backend-go/internal/pkg/database"
)

type rateRepositoryImpl struct {
	db *database.DB
}

func NewRateRepository(db *database.DB) payroll.RateRepository {
	return &rateRepositoryImpl{db: db}
}

// Upsert implements payroll.RateRepository.
// One row per period type, so repeated upserts overwrite the previous rate.
func (r *rateRepositoryImpl) Upsert(ctx context.Context, rates []payroll.HourlyRate) ([]payroll.HourlyRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO hourly_rates (period_type, rate)
		VALUES ($1, $2)
		ON CONFLICT (period_type)
		DO UPDATE SET rate = EXCLUDED.rate, updated_at = NOW()
		RETURNING id, updated_at
	`

	for i := range rates {
		err := q.QueryRow(ctx, query, rates[i].PeriodType, rates[i].Rate).
			Scan(&rates[i].ID, &rates[i].UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert rate for period %s: %w", rates[i].PeriodType, err)
		}
	}

	return rates, nil
}

// GetAll implements payroll.RateRepository.
func (r *rateRepositoryImpl) GetAll(ctx context.Context) ([]payroll.HourlyRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, period_type, rate, updated_at
		FROM hourly_rates
		ORDER BY period_type ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list hourly rates: %w", err)
	}
	defer rows.Close()

	var rates []payroll.HourlyRate
	for rows.Next() {
		var rate payroll.HourlyRate
		if err := rows.Scan(&rate.ID, &rate.PeriodType, &rate.Rate, &rate.UpdatedAt); err != nil {
			return nil, err
		}
		rates = append(rates, rate)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return rates, nil
}

type discountRepositoryImpl struct {
	db *database.DB
}

func NewDiscountRepository(db *database.DB) payroll.DiscountRepository {
	return &discountRepositoryImpl{db: db}
}

// Create implements payroll.DiscountRepository.
// Creating a discount deactivates the previous one, keeping a single active row.
func (r *discountRepositoryImpl) Create(ctx context.Context, d payroll.Discount) (payroll.Discount, error) {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `UPDATE discounts SET is_active = FALSE WHERE is_active`); err != nil {
		return payroll.Discount{}, fmt.Errorf("failed to deactivate previous discounts: %w", err)
	}

	query := `
		INSERT INTO discounts (amount, is_active, effective_from)
		VALUES ($1, TRUE, $2)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, d.Amount, d.EffectiveFrom).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return payroll.Discount{}, fmt.Errorf("failed to create discount: %w", err)
	}
	d.IsActive = true

	return d, nil
}

// GetActive implements payroll.DiscountRepository.
func (r *discountRepositoryImpl) GetActive(ctx context.Context) (payroll.Discount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, amount, is_active, effective_from, created_at
		FROM discounts
		WHERE is_active
		ORDER BY effective_from DESC
		LIMIT 1
	`

	var d payroll.Discount
	err := q.QueryRow(ctx, query).Scan(&d.ID, &d.Amount, &d.IsActive, &d.EffectiveFrom, &d.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Discount{}, payroll.ErrDiscountNotFound
		}
		return payroll.Discount{}, fmt.Errorf("failed to get active discount: %w", err)
	}

	return d, nil
}

// List implements payroll.DiscountRepository.
func (r *discountRepositoryImpl) List(ctx context.Context) ([]payroll.Discount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, amount, is_active, effective_from, created_at
		FROM discounts
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list discounts: %w", err)
	}
	defer rows.Close()

	var discounts []payroll.Discount
	for rows.Next() {
		var d payroll.Discount
		if err := rows.Scan(&d.ID, &d.Amount, &d.IsActive, &d.EffectiveFrom, &d.CreatedAt); err != nil {
			return nil, err
		}
		discounts = append(discounts, d)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return discounts, nil
}

type externalHoursRepositoryImpl struct {
	db *database.DB
}

func NewExternalHoursRepository(db *database.DB) payroll.ExternalHoursRepository {
	return &externalHoursRepositoryImpl{db: db}
}

// Create implements payroll.ExternalHoursRepository.
func (r *externalHoursRepositoryImpl) Create(ctx context.Context, e payroll.ExternalHours) (payroll.ExternalHours, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO external_hours (worker_id, date, hours, rate, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, e.WorkerID, e.Date, e.Hours, e.Rate, e.Description).
		Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return payroll.ExternalHours{}, fmt.Errorf("failed to create external hours entry: %w", err)
	}

	return e, nil
}

// ListBetween implements payroll.ExternalHoursRepository.
func (r *externalHoursRepositoryImpl) ListBetween(ctx context.Context, from, to time.Time, workerID *string) ([]payroll.ExternalHours, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, worker_id, date, hours, rate, description, created_at
		FROM external_hours
		WHERE date >= $1 AND date < $2
			AND ($3::uuid IS NULL OR worker_id = $3)
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, from, to, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list external hours: %w", err)
	}
	defer rows.Close()

	var entries []payroll.ExternalHours
	for rows.Next() {
		var e payroll.ExternalHours
		if err := rows.Scan(&e.ID, &e.WorkerID, &e.Date, &e.Hours, &e.Rate, &e.Description, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// Delete implements payroll.ExternalHoursRepository.
func (r *externalHoursRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `DELETE FROM external_hours WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete external hours entry with id %s: %w", id, err)
	}
	if result.RowsAffected() != 1 {
		return payroll.ErrExternalHoursNotFound
	}

	return nil
}
