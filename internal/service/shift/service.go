package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/rosterhq/oncall-backend-go/internal/domain/holiday"
	"github.com/rosterhq/oncall-backend-go/internal/domain/shift"
	"github.com/rosterhq/oncall-backend-go/internal/domain/worker"
	"github.com/rosterhq/oncall-backend-go/internal/pkg/database"
)

type shiftServiceImpl struct {
	tx             database.TxManager
	shiftRepo      shift.Repository
	assignmentRepo shift.AssignmentRepository
	holidayRepo    holiday.Repository
	workerRepo     worker.Repository
}

func NewShiftService(
	tx database.TxManager,
	shiftRepo shift.Repository,
	assignmentRepo shift.AssignmentRepository,
	holidayRepo holiday.Repository,
	workerRepo worker.Repository,
) shift.Service {
	return &shiftServiceImpl{
		tx:             tx,
		shiftRepo:      shiftRepo,
		assignmentRepo: assignmentRepo,
		holidayRepo:    holidayRepo,
		workerRepo:     workerRepo,
	}
}

// claimsFromContext extracts the authenticated subject from the JWT context.
func claimsFromContext(ctx context.Context) (workerID string, isAdmin bool, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", false, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	workerID, _ = claims["worker_id"].(string)
	isAdmin, _ = claims["is_admin"].(bool)

	return workerID, isAdmin, nil
}

// Create implements shift.Service.
func (s *shiftServiceImpl) Create(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	adminID, _, err := claimsFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	start, end := req.Interval()
	requiredDoctors := 1
	if req.RequiredDoctors != nil {
		requiredDoctors = *req.RequiredDoctors
	}
	if len(req.WorkerIDs) > requiredDoctors {
		return shift.ShiftResponse{}, shift.ErrShiftFull
	}
	selfAssignable := false
	if req.SelfAssignable != nil {
		selfAssignable = *req.SelfAssignable
	}

	category, err := s.classify(ctx, start)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	sh := shift.Shift{
		StartTime:        start,
		EndTime:          end,
		Type:             shift.ShiftType(req.Type),
		DayCategory:      category,
		SelfAssignable:   selfAssignable,
		AssignmentStatus: shift.StatusAvailable,
		RequiredDoctors:  requiredDoctors,
		IsAvailable:      len(req.WorkerIDs) < requiredDoctors,
		Note:             req.Note,
	}
	if len(req.WorkerIDs) > 0 {
		sh.AssignmentStatus = shift.StatusAdminAssigned
		sh.WorkerID = &req.WorkerIDs[0]
	}

	var created shift.Shift
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, workerID := range req.WorkerIDs {
			if err := s.checkWorkerAssignable(ctx, workerID, start, end, nil); err != nil {
				return err
			}
		}

		created, err = s.shiftRepo.Create(ctx, sh)
		if err != nil {
			return fmt.Errorf("failed to create shift: %w", err)
		}

		for _, workerID := range req.WorkerIDs {
			if _, err := s.assignmentRepo.Create(ctx, shift.Assignment{
				ShiftID:    created.ID,
				WorkerID:   workerID,
				AssignedBy: &adminID,
			}); err != nil {
				return fmt.Errorf("failed to create assignment: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return s.Get(ctx, created.ID)
}

// Update implements shift.Service. Admin updates rewrite the full worker list
// and are never blocked by the SELF_ASSIGNED lock.
func (s *shiftServiceImpl) Update(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	adminID, _, err := claimsFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	start, end := req.Interval()

	category, err := s.classify(ctx, start)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		sh, err := s.shiftRepo.GetByIDForUpdate(ctx, req.ID)
		if err != nil {
			return err
		}

		requiredDoctors := sh.RequiredDoctors
		if req.RequiredDoctors != nil {
			requiredDoctors = *req.RequiredDoctors
		}
		if len(req.WorkerIDs) > requiredDoctors {
			return shift.ErrShiftFull
		}

		for _, workerID := range req.WorkerIDs {
			if err := s.checkWorkerAssignable(ctx, workerID, start, end, &req.ID); err != nil {
				return err
			}
		}

		sh.StartTime = start
		sh.EndTime = end
		sh.Type = shift.ShiftType(req.Type)
		sh.DayCategory = category
		sh.RequiredDoctors = requiredDoctors
		sh.Note = req.Note
		if req.SelfAssignable != nil {
			sh.SelfAssignable = *req.SelfAssignable
		}
		sh.AssignmentStatus = shift.StatusAvailable
		sh.WorkerID = nil
		if len(req.WorkerIDs) > 0 {
			sh.AssignmentStatus = shift.StatusAdminAssigned
			sh.WorkerID = &req.WorkerIDs[0]
		}
		sh.IsAvailable = len(req.WorkerIDs) < requiredDoctors

		if _, err := s.shiftRepo.Update(ctx, sh); err != nil {
			return fmt.Errorf("failed to update shift: %w", err)
		}

		if err := s.assignmentRepo.DeleteByShiftID(ctx, req.ID); err != nil {
			return fmt.Errorf("failed to clear assignments: %w", err)
		}
		for _, workerID := range req.WorkerIDs {
			if _, err := s.assignmentRepo.Create(ctx, shift.Assignment{
				ShiftID:    req.ID,
				WorkerID:   workerID,
				AssignedBy: &adminID,
			}); err != nil {
				return fmt.Errorf("failed to create assignment: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return s.Get(ctx, req.ID)
}

// BatchAssign implements shift.Service. Each shift is processed in its own
// transactional unit; one failing entry does not roll back the others.
func (s *shiftServiceImpl) BatchAssign(ctx context.Context, req shift.BatchAssignRequest) (shift.BatchAssignResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.BatchAssignResponse{}, err
	}

	adminID, _, err := claimsFromContext(ctx)
	if err != nil {
		return shift.BatchAssignResponse{}, err
	}

	results := make([]shift.BatchAssignResult, 0, len(req.Assignments))
	for _, entry := range req.Assignments {
		result := shift.BatchAssignResult{ShiftID: entry.ShiftID, Assigned: true}
		if err := s.assignWorkers(ctx, entry.ShiftID, entry.WorkerIDs, adminID); err != nil {
			result.Assigned = false
			result.Error = err.Error()
		}
		results = append(results, result)
	}

	return shift.BatchAssignResponse{Results: results}, nil
}

// assignWorkers rewrites the worker list of one shift inside a transaction.
func (s *shiftServiceImpl) assignWorkers(ctx context.Context, shiftID string, workerIDs []string, adminID string) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		sh, err := s.shiftRepo.GetByIDForUpdate(ctx, shiftID)
		if err != nil {
			return err
		}
		if len(workerIDs) > sh.RequiredDoctors {
			return shift.ErrShiftFull
		}

		for _, workerID := range workerIDs {
			if err := s.checkWorkerAssignable(ctx, workerID, sh.StartTime, sh.EndTime, &shiftID); err != nil {
				return err
			}
		}

		if err := s.assignmentRepo.DeleteByShiftID(ctx, shiftID); err != nil {
			return fmt.Errorf("failed to clear assignments: %w", err)
		}
		for _, workerID := range workerIDs {
			if _, err := s.assignmentRepo.Create(ctx, shift.Assignment{
				ShiftID:    shiftID,
				WorkerID:   workerID,
				AssignedBy: &adminID,
			}); err != nil {
				return fmt.Errorf("failed to create assignment: %w", err)
			}
		}

		status := shift.StatusAvailable
		if len(workerIDs) > 0 {
			status = shift.StatusAdminAssigned
		}
		return s.shiftRepo.UpdateAssignmentState(ctx, shiftID, status, sh.SelfAssignable, len(workerIDs) < sh.RequiredDoctors)
	})
}

// SelfAssign implements shift.Service. The read-check-insert-update sequence
// runs under a row lock on the shift so two workers cannot both take the last
// open slot.
func (s *shiftServiceImpl) SelfAssign(ctx context.Context, shiftID string) (shift.ShiftResponse, error) {
	workerID, _, err := claimsFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if workerID == "" {
		return shift.ShiftResponse{}, shift.ErrInvalidRequestData
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		sh, err := s.shiftRepo.GetByIDForUpdate(ctx, shiftID)
		if err != nil {
			return err
		}

		if sh.AssignmentStatus == shift.StatusSelfAssigned {
			return shift.ErrShiftLocked
		}
		if !sh.SelfAssignable {
			return shift.ErrNotSelfAssignable
		}
		if sh.Type != shift.ShiftTypeRotating {
			return shift.ErrNotRotatingShift
		}
		if sh.DayCategory == shift.DayCategoryWeekday {
			return shift.ErrWeekdaySelfAssign
		}
		if sh.HasWorker(workerID) {
			return shift.ErrWorkerAlreadyAssigned
		}
		if sh.AssignedCount() >= sh.RequiredDoctors {
			return shift.ErrShiftFull
		}
		if err := s.checkWorkerAssignable(ctx, workerID, sh.StartTime, sh.EndTime, nil); err != nil {
			return err
		}

		if _, err := s.assignmentRepo.Create(ctx, shift.Assignment{
			ShiftID:        shiftID,
			WorkerID:       workerID,
			IsSelfAssigned: true,
		}); err != nil {
			return fmt.Errorf("failed to create assignment: %w", err)
		}

		// Last open slot: fill and lock in the same transactional unit.
		if sh.AssignedCount()+1 == sh.RequiredDoctors {
			return s.shiftRepo.UpdateAssignmentState(ctx, shiftID, shift.StatusSelfAssigned, false, false)
		}
		return s.shiftRepo.UpdateAssignmentState(ctx, shiftID, sh.AssignmentStatus, sh.SelfAssignable, true)
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return s.Get(ctx, shiftID)
}

// SelfUnassign implements shift.Service.
func (s *shiftServiceImpl) SelfUnassign(ctx context.Context, shiftID string) (shift.ShiftResponse, error) {
	workerID, _, err := claimsFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if workerID == "" {
		return shift.ShiftResponse{}, shift.ErrInvalidRequestData
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		sh, err := s.shiftRepo.GetByIDForUpdate(ctx, shiftID)
		if err != nil {
			return err
		}

		if sh.AssignmentStatus == shift.StatusSelfAssigned {
			return shift.ErrShiftLocked
		}
		if !sh.HasWorker(workerID) {
			return shift.ErrAssignmentNotFound
		}

		if err := s.assignmentRepo.Delete(ctx, shiftID, workerID); err != nil {
			return fmt.Errorf("failed to delete assignment: %w", err)
		}
		return s.shiftRepo.UpdateAssignmentState(ctx, shiftID, shift.StatusAvailable, sh.SelfAssignable, true)
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return s.Get(ctx, shiftID)
}

// Delete implements shift.Service. Assignments go first to satisfy
// referential constraints.
func (s *shiftServiceImpl) Delete(ctx context.Context, id string) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.shiftRepo.GetByID(ctx, id); err != nil {
			return err
		}
		if err := s.assignmentRepo.DeleteByShiftID(ctx, id); err != nil {
			return fmt.Errorf("failed to delete assignments: %w", err)
		}
		return s.shiftRepo.Delete(ctx, id)
	})
}

// Get implements shift.Service.
func (s *shiftServiceImpl) Get(ctx context.Context, id string) (shift.ShiftResponse, error) {
	sh, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return mapShiftToResponse(sh), nil
}

// List implements shift.Service.
func (s *shiftServiceImpl) List(ctx context.Context, filter shift.Filter) ([]shift.ShiftResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	shifts, err := s.shiftRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		result = append(result, mapShiftToResponse(sh))
	}
	return result, nil
}

// checkWorkerAssignable verifies the worker exists, is active, and holds no
// overlapping assignment. A failing check rejects the operation, never a
// silent skip.
func (s *shiftServiceImpl) checkWorkerAssignable(ctx context.Context, workerID string, start, end time.Time, excludeShiftID *string) error {
	w, err := s.workerRepo.GetByID(ctx, workerID)
	if err != nil {
		return err
	}
	if !w.IsActive {
		return worker.ErrWorkerInactive
	}

	overlapping, err := s.assignmentRepo.HasOverlapping(ctx, workerID, start, end, excludeShiftID)
	if err != nil {
		return fmt.Errorf("failed to check overlapping assignments: %w", err)
	}
	if overlapping {
		return shift.ErrOverlappingAssignment
	}
	return nil
}

func (s *shiftServiceImpl) classify(ctx context.Context, date time.Time) (shift.DayCategory, error) {
	holidays, err := s.holidayRepo.GetAll(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load holidays: %w", err)
	}
	return holiday.NewCalendar(holidays).Classify(date), nil
}

func mapShiftToResponse(sh shift.Shift) shift.ShiftResponse {
	assignments := make([]shift.AssignmentResponse, 0, len(sh.Assignments))
	for _, a := range sh.Assignments {
		assignments = append(assignments, shift.AssignmentResponse{
			ID:             a.ID,
			WorkerID:       a.WorkerID,
			IsSelfAssigned: a.IsSelfAssigned,
			AssignedAt:     a.AssignedAt.Format(time.RFC3339),
			AssignedBy:     a.AssignedBy,
		})
	}

	return shift.ShiftResponse{
		ID:               sh.ID,
		StartTime:        sh.StartTime.Format(time.RFC3339),
		EndTime:          sh.EndTime.Format(time.RFC3339),
		Type:             string(sh.Type),
		DayCategory:      string(sh.DayCategory),
		SelfAssignable:   sh.SelfAssignable,
		AssignmentStatus: string(sh.AssignmentStatus),
		RequiredDoctors:  sh.RequiredDoctors,
		IsAvailable:      sh.IsAvailable,
		AssignedCount:    sh.AssignedCount(),
		SlotsAvailable:   sh.SlotsAvailable(),
		HolidayID:        sh.HolidayID,
		Note:             sh.Note,
		Assignments:      assignments,
		CreatedAt:        sh.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        sh.UpdatedAt.Format(time.RFC3339),
	}
}
