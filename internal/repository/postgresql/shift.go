package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rosterhq/oncall-backend-go/internal/domain/shift"
	"github.com/rosterhq/oncall-backend-go/internal/pkg/database"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.Repository {
	return &shiftRepositoryImpl{db: db}
}

const shiftColumns = `id, start_time, end_time, type, day_category, self_assignable,
		assignment_status, required_doctors, is_available, worker_id, holiday_id, note,
		created_at, updated_at`

func scanShift(row pgx.Row) (shift.Shift, error) {
	var sh shift.Shift
	err := row.Scan(
		&sh.ID, &sh.StartTime, &sh.EndTime, &sh.Type, &sh.DayCategory,
		&sh.SelfAssignable, &sh.AssignmentStatus, &sh.RequiredDoctors,
		&sh.IsAvailable, &sh.WorkerID, &sh.HolidayID, &sh.Note,
		&sh.CreatedAt, &sh.UpdatedAt,
	)
	return sh, err
}

// Create implements shift.Repository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, sh shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (start_time, end_time, type, day_category, self_assignable,
			assignment_status, required_doctors, is_available, worker_id, holiday_id, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		sh.StartTime, sh.EndTime, sh.Type, sh.DayCategory, sh.SelfAssignable,
		sh.AssignmentStatus, sh.RequiredDoctors, sh.IsAvailable, sh.WorkerID,
		sh.HolidayID, sh.Note,
	).Scan(&sh.ID, &sh.CreatedAt, &sh.UpdatedAt)
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return sh, nil
}

// GetByID implements shift.Repository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate implements shift.Repository.
// Locks the row so concurrent self-assignments on the same shift serialize.
func (r *shiftRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (shift.Shift, error) {
	return r.getByID(ctx, id, true)
}

func (r *shiftRepositoryImpl) getByID(ctx context.Context, id string, forUpdate bool) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	sh, err := scanShift(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift with id %s: %w", id, err)
	}

	if err := r.loadAssignments(ctx, &sh); err != nil {
		return shift.Shift{}, err
	}

	return sh, nil
}

// GetByHolidayID implements shift.Repository.
func (r *shiftRepositoryImpl) GetByHolidayID(ctx context.Context, holidayID string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE holiday_id = $1`

	sh, err := scanShift(q.QueryRow(ctx, query, holidayID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift for holiday %s: %w", holidayID, err)
	}

	if err := r.loadAssignments(ctx, &sh); err != nil {
		return shift.Shift{}, err
	}

	return sh, nil
}

// List implements shift.Repository.
func (r *shiftRepositoryImpl) List(ctx context.Context, filter shift.Filter) ([]shift.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.From != nil {
		query += fmt.Sprintf(" AND end_time > $%d", argPos)
		args = append(args, *filter.From)
		argPos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND start_time < $%d", argPos)
		args = append(args, *filter.To)
		argPos++
	}
	if filter.DayCategory != nil {
		query += fmt.Sprintf(" AND day_category = $%d", argPos)
		args = append(args, *filter.DayCategory)
		argPos++
	}
	if filter.WorkerID != nil {
		query += fmt.Sprintf(" AND id IN (SELECT shift_id FROM shift_assignments WHERE worker_id = $%d)", argPos)
		args = append(args, *filter.WorkerID)
		argPos++
	}

	query += " ORDER BY start_time ASC"

	return r.queryShifts(ctx, query, args...)
}

// ListBetween implements shift.Repository.
func (r *shiftRepositoryImpl) ListBetween(ctx context.Context, from, to time.Time) ([]shift.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts
		WHERE start_time >= $1 AND start_time < $2
		ORDER BY start_time ASC`

	return r.queryShifts(ctx, query, from, to)
}

func (r *shiftRepositoryImpl) queryShifts(ctx context.Context, query string, args ...interface{}) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		sh, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, sh)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	for i := range shifts {
		if err := r.loadAssignments(ctx, &shifts[i]); err != nil {
			return nil, err
		}
	}

	return shifts, nil
}

func (r *shiftRepositoryImpl) loadAssignments(ctx context.Context, sh *shift.Shift) error {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, shift_id, worker_id, is_self_assigned, assigned_at, assigned_by
		FROM shift_assignments
		WHERE shift_id = $1
		ORDER BY assigned_at ASC
	`

	rows, err := q.Query(ctx, query, sh.ID)
	if err != nil {
		return fmt.Errorf("failed to load assignments for shift %s: %w", sh.ID, err)
	}
	defer rows.Close()

	sh.Assignments = nil
	for rows.Next() {
		var a shift.Assignment
		if err := rows.Scan(&a.ID, &a.ShiftID, &a.WorkerID, &a.IsSelfAssigned, &a.AssignedAt, &a.AssignedBy); err != nil {
			return err
		}
		sh.Assignments = append(sh.Assignments, a)
	}
	return rows.Err()
}

// Update implements shift.Repository.
func (r *shiftRepositoryImpl) Update(ctx context.Context, sh shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET start_time = $1, end_time = $2, type = $3, day_category = $4,
			self_assignable = $5, assignment_status = $6, required_doctors = $7,
			is_available = $8, worker_id = $9, holiday_id = $10, note = $11,
			updated_at = NOW()
		WHERE id = $12
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		sh.StartTime, sh.EndTime, sh.Type, sh.DayCategory, sh.SelfAssignable,
		sh.AssignmentStatus, sh.RequiredDoctors, sh.IsAvailable, sh.WorkerID,
		sh.HolidayID, sh.Note, sh.ID,
	).Scan(&sh.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to update shift with id %s: %w", sh.ID, err)
	}

	return sh, nil
}

// UpdateAssignmentState implements shift.Repository.
func (r *shiftRepositoryImpl) UpdateAssignmentState(ctx context.Context, id string, status shift.AssignmentStatus, selfAssignable, isAvailable bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET assignment_status = $1, self_assignable = $2, is_available = $3, updated_at = NOW()
		WHERE id = $4
	`

	result, err := q.Exec(ctx, query, status, selfAssignable, isAvailable, id)
	if err != nil {
		return fmt.Errorf("failed to update assignment state for shift %s: %w", id, err)
	}
	if result.RowsAffected() != 1 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// ReclassifyOnDate implements shift.Repository.
// Flips the day category of every shift starting on the given calendar date.
func (r *shiftRepositoryImpl) ReclassifyOnDate(ctx context.Context, date time.Time, from, to shift.DayCategory) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET day_category = $1, updated_at = NOW()
		WHERE day_category = $2 AND start_time >= $3 AND start_time < $4
	`

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	result, err := q.Exec(ctx, query, to, from, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return 0, fmt.Errorf("failed to reclassify shifts on %s: %w", date.Format("2006-01-02"), err)
	}

	return result.RowsAffected(), nil
}

// Delete implements shift.Repository.
func (r *shiftRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift with id %s: %w", id, err)
	}
	if result.RowsAffected() != 1 {
		return shift.ErrShiftNotFound
	}

	return nil
}
