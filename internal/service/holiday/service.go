package holiday

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rosterhq/oncall-backend-go/internal/domain/holiday"
	"github.com/rosterhq/oncall-backend-go/internal/domain/shift"
	"github.com/rosterhq/oncall-backend-go/internal/pkg/database"
)

type holidayServiceImpl struct {
	tx             database.TxManager
	holidayRepo    holiday.Repository
	shiftRepo      shift.Repository
	assignmentRepo shift.AssignmentRepository
}

func NewHolidayService(
	tx database.TxManager,
	holidayRepo holiday.Repository,
	shiftRepo shift.Repository,
	assignmentRepo shift.AssignmentRepository,
) holiday.Service {
	return &holidayServiceImpl{
		tx:             tx,
		holidayRepo:    holidayRepo,
		shiftRepo:      shiftRepo,
		assignmentRepo: assignmentRepo,
	}
}

// Create implements holiday.Service. The insert, the reclassification of the
// date's shifts and the linked-shift sync form one transactional unit.
func (s *holidayServiceImpl) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.SyncResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.SyncResponse{}, err
	}

	requiredDoctors := 0
	if req.RequiredDoctors != nil {
		requiredDoctors = *req.RequiredDoctors
	}

	h := holiday.Holiday{
		Date:            req.ParsedDate(),
		Name:            req.Name,
		IsRecurrent:     req.IsRecurrent,
		RequiredDoctors: requiredDoctors,
	}

	var resp holiday.SyncResponse
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		created, err := s.holidayRepo.Create(ctx, h)
		if err != nil {
			return err
		}

		reclassified, err := s.shiftRepo.ReclassifyOnDate(ctx, created.Date, shift.DayCategoryWeekday, shift.DayCategoryHoliday)
		if err != nil {
			return fmt.Errorf("failed to reclassify shifts: %w", err)
		}

		linkedID, linkedDeleted, err := s.syncLinkedShift(ctx, created)
		if err != nil {
			return err
		}

		resp = holiday.SyncResponse{
			Holiday:            mapHolidayToResponse(created),
			ShiftsReclassified: reclassified,
			LinkedShiftID:      linkedID,
			LinkedShiftDeleted: linkedDeleted,
		}
		return nil
	})
	if err != nil {
		return holiday.SyncResponse{}, err
	}

	return resp, nil
}

// Update implements holiday.Service. A date change reverts the old date's
// shifts first (only when the old date is not a weekend and no other holiday
// still covers it), then applies the new date as in Create.
func (s *holidayServiceImpl) Update(ctx context.Context, req holiday.UpdateHolidayRequest) (holiday.SyncResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.SyncResponse{}, err
	}

	requiredDoctors := 0
	if req.RequiredDoctors != nil {
		requiredDoctors = *req.RequiredDoctors
	}

	var resp holiday.SyncResponse
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		existing, err := s.holidayRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}

		newDate := req.ParsedDate()
		if !sameDate(existing.Date, newDate) && !holiday.IsWeekend(existing.Date) {
			occupied, err := s.holidayRepo.AnyOnDate(ctx, existing.Date, &existing.ID)
			if err != nil {
				return fmt.Errorf("failed to check holidays on old date: %w", err)
			}
			if !occupied {
				reverted, err := s.shiftRepo.ReclassifyOnDate(ctx, existing.Date, shift.DayCategoryHoliday, shift.DayCategoryWeekday)
				if err != nil {
					return fmt.Errorf("failed to revert shifts: %w", err)
				}
				resp.ShiftsReverted = reverted
			}
		}

		existing.Date = newDate
		existing.Name = req.Name
		existing.IsRecurrent = req.IsRecurrent
		existing.RequiredDoctors = requiredDoctors

		updated, err := s.holidayRepo.Update(ctx, existing)
		if err != nil {
			return err
		}

		reclassified, err := s.shiftRepo.ReclassifyOnDate(ctx, newDate, shift.DayCategoryWeekday, shift.DayCategoryHoliday)
		if err != nil {
			return fmt.Errorf("failed to reclassify shifts: %w", err)
		}
		resp.ShiftsReclassified = reclassified

		linkedID, linkedDeleted, err := s.syncLinkedShift(ctx, updated)
		if err != nil {
			return err
		}

		resp.Holiday = mapHolidayToResponse(updated)
		resp.LinkedShiftID = linkedID
		resp.LinkedShiftDeleted = linkedDeleted
		return nil
	})
	if err != nil {
		return holiday.SyncResponse{}, err
	}

	return resp, nil
}

// Delete implements holiday.Service. The linked auto-generated shift goes
// first to satisfy referential constraints; weekend dates keep their WEEKEND
// category.
func (s *holidayServiceImpl) Delete(ctx context.Context, id string) (holiday.DeleteResponse, error) {
	var resp holiday.DeleteResponse
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		h, err := s.holidayRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		deleted, err := s.deleteLinkedShift(ctx, h.ID)
		if err != nil {
			return err
		}
		resp.LinkedShiftDeleted = deleted

		if err := s.holidayRepo.Delete(ctx, id); err != nil {
			return err
		}

		if !holiday.IsWeekend(h.Date) {
			reverted, err := s.shiftRepo.ReclassifyOnDate(ctx, h.Date, shift.DayCategoryHoliday, shift.DayCategoryWeekday)
			if err != nil {
				return fmt.Errorf("failed to revert shifts: %w", err)
			}
			resp.ShiftsReverted = reverted
		}
		return nil
	})
	if err != nil {
		return holiday.DeleteResponse{}, err
	}

	return resp, nil
}

// Get implements holiday.Service.
func (s *holidayServiceImpl) Get(ctx context.Context, id string) (holiday.HolidayResponse, error) {
	h, err := s.holidayRepo.GetByID(ctx, id)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	return mapHolidayToResponse(h), nil
}

// List implements holiday.Service.
func (s *holidayServiceImpl) List(ctx context.Context) ([]holiday.HolidayResponse, error) {
	holidays, err := s.holidayRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		result = append(result, mapHolidayToResponse(h))
	}
	return result, nil
}

// syncLinkedShift reconciles the auto-generated self-assignable shift implied
// by the holiday's required-staff count.
func (s *holidayServiceImpl) syncLinkedShift(ctx context.Context, h holiday.Holiday) (*string, bool, error) {
	if h.RequiredDoctors == 0 {
		deleted, err := s.deleteLinkedShift(ctx, h.ID)
		return nil, deleted, err
	}

	dayStart := time.Date(h.Date.Year(), h.Date.Month(), h.Date.Day(), 0, 0, 0, 0, h.Date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	category := shift.DayCategoryHoliday
	if holiday.IsWeekend(h.Date) {
		category = shift.DayCategoryWeekend
	}

	existing, err := s.shiftRepo.GetByHolidayID(ctx, h.ID)
	if err != nil {
		if !errors.Is(err, shift.ErrShiftNotFound) {
			return nil, false, err
		}

		created, err := s.shiftRepo.Create(ctx, shift.Shift{
			StartTime:        dayStart,
			EndTime:          dayEnd,
			Type:             shift.ShiftTypeRotating,
			DayCategory:      category,
			SelfAssignable:   true,
			AssignmentStatus: shift.StatusAvailable,
			RequiredDoctors:  h.RequiredDoctors,
			IsAvailable:      true,
			HolidayID:        &h.ID,
			Note:             h.Name,
		})
		if err != nil {
			return nil, false, fmt.Errorf("failed to create linked shift: %w", err)
		}
		return &created.ID, false, nil
	}

	existing.StartTime = dayStart
	existing.EndTime = dayEnd
	existing.DayCategory = category
	existing.RequiredDoctors = h.RequiredDoctors
	existing.Note = h.Name
	existing.IsAvailable = existing.AssignedCount() < h.RequiredDoctors

	updated, err := s.shiftRepo.Update(ctx, existing)
	if err != nil {
		return nil, false, fmt.Errorf("failed to update linked shift: %w", err)
	}
	return &updated.ID, false, nil
}

func (s *holidayServiceImpl) deleteLinkedShift(ctx context.Context, holidayID string) (bool, error) {
	linked, err := s.shiftRepo.GetByHolidayID(ctx, holidayID)
	if err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := s.assignmentRepo.DeleteByShiftID(ctx, linked.ID); err != nil {
		return false, fmt.Errorf("failed to delete linked shift assignments: %w", err)
	}
	if err := s.shiftRepo.Delete(ctx, linked.ID); err != nil {
		return false, fmt.Errorf("failed to delete linked shift: %w", err)
	}
	return true, nil
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func mapHolidayToResponse(h holiday.Holiday) holiday.HolidayResponse {
	return holiday.HolidayResponse{
		ID:              h.ID,
		Date:            h.Date.Format("2006-01-02"),
		Name:            h.Name,
		IsRecurrent:     h.IsRecurrent,
		RequiredDoctors: h.RequiredDoctors,
		CreatedAt:       h.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       h.UpdatedAt.Format(time.RFC3339),
	}
}
