package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rosterhq/oncall-backend-go/internal/domain/shift"
	"github.com/rosterhq/oncall-backend-go/internal/pkg/database"
)

type shiftAssignmentRepositoryImpl struct {
	db *database.DB
}

func NewShiftAssignmentRepository(db *database.DB) shift.AssignmentRepository {
	return &shiftAssignmentRepositoryImpl{db: db}
}

// Create implements shift.AssignmentRepository.
// The (shift_id, worker_id) unique constraint backstops the service-level check.
func (r *shiftAssignmentRepositoryImpl) Create(ctx context.Context, a shift.Assignment) (shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_assignments (shift_id, worker_id, is_self_assigned, assigned_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, assigned_at
	`

	err := q.QueryRow(ctx, query, a.ShiftID, a.WorkerID, a.IsSelfAssigned, a.AssignedBy).
		Scan(&a.ID, &a.AssignedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return shift.Assignment{}, shift.ErrWorkerAlreadyAssigned
		}
		return shift.Assignment{}, fmt.Errorf("failed to create assignment for shift %s: %w", a.ShiftID, err)
	}

	return a, nil
}

// ListByShiftID implements shift.AssignmentRepository.
func (r *shiftAssignmentRepositoryImpl) ListByShiftID(ctx context.Context, shiftID string) ([]shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, shift_id, worker_id, is_self_assigned, assigned_at, assigned_by
		FROM shift_assignments
		WHERE shift_id = $1
		ORDER BY assigned_at ASC
	`

	rows, err := q.Query(ctx, query, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments for shift %s: %w", shiftID, err)
	}
	defer rows.Close()

	var assignments []shift.Assignment
	for rows.Next() {
		var a shift.Assignment
		if err := rows.Scan(&a.ID, &a.ShiftID, &a.WorkerID, &a.IsSelfAssigned, &a.AssignedAt, &a.AssignedBy); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

// CountByShiftID implements shift.AssignmentRepository.
func (r *shiftAssignmentRepositoryImpl) CountByShiftID(ctx context.Context, shiftID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM shift_assignments WHERE shift_id = $1`, shiftID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count assignments for shift %s: %w", shiftID, err)
	}

	return count, nil
}

// HasOverlapping implements shift.AssignmentRepository.
// Intervals are half-open, so back-to-back shifts do not conflict.
func (r *shiftAssignmentRepositoryImpl) HasOverlapping(ctx context.Context, workerID string, start, end time.Time, excludeShiftID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM shift_assignments sa
			JOIN shifts s ON s.id = sa.shift_id
			WHERE sa.worker_id = $1
				AND s.start_time < $3
				AND s.end_time > $2
				AND ($4::uuid IS NULL OR s.id != $4)
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, workerID, start, end, excludeShiftID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check overlapping assignments for worker %s: %w", workerID, err)
	}

	return exists, nil
}

// Delete implements shift.AssignmentRepository.
func (r *shiftAssignmentRepositoryImpl) Delete(ctx context.Context, shiftID, workerID string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `DELETE FROM shift_assignments WHERE shift_id = $1 AND worker_id = $2`, shiftID, workerID)
	if err != nil {
		return fmt.Errorf("failed to delete assignment for shift %s: %w", shiftID, err)
	}
	if result.RowsAffected() != 1 {
		return shift.ErrAssignmentNotFound
	}

	return nil
}

// DeleteByShiftID implements shift.AssignmentRepository.
func (r *shiftAssignmentRepositoryImpl) DeleteByShiftID(ctx context.Context, shiftID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM shift_assignments WHERE shift_id = $1`, shiftID)
	if err != nil {
		return fmt.Errorf("failed to delete assignments for shift %s: %w", shiftID, err)
	}

	return nil
}
