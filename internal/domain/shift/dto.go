package shift

import (
	"strings"
	"time"

	"github.com/rosterhq/oncall-backend-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	Type            string   `json:"type"`
	SelfAssignable  *bool    `json:"self_assignable"`
	RequiredDoctors *int     `json:"required_doctors"`
	WorkerIDs       []string `json:"worker_ids"`
	Note            string   `json:"note"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDateTime(r.StartTime)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be a valid ISO8601 timestamp",
		})
	}
	end, endOK := validator.IsValidDateTime(r.EndTime)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be a valid ISO8601 timestamp",
		})
	}
	if startOK && endOK && !end.After(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be after start_time",
		})
	}
	if !validator.IsInSlice(r.Type, ShiftTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(ShiftTypeValues, ", "),
		})
	}
	if r.RequiredDoctors != nil && *r.RequiredDoctors < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "required_doctors",
			Message: "required_doctors must be at least 1",
		})
	}
	if validator.HasDuplicates(r.WorkerIDs) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_ids",
			Message: "worker_ids must not contain duplicates",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Interval returns the parsed shift interval. Call only after Validate.
func (r *CreateShiftRequest) Interval() (time.Time, time.Time) {
	start, _ := validator.IsValidDateTime(r.StartTime)
	end, _ := validator.IsValidDateTime(r.EndTime)
	return start, end
}

type UpdateShiftRequest struct {
	ID              string   `json:"-"`
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	Type            string   `json:"type"`
	SelfAssignable  *bool    `json:"self_assignable"`
	RequiredDoctors *int     `json:"required_doctors"`
	WorkerIDs       []string `json:"worker_ids"`
	Note            string   `json:"note"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	create := CreateShiftRequest{
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		Type:            r.Type,
		RequiredDoctors: r.RequiredDoctors,
		WorkerIDs:       r.WorkerIDs,
	}
	if err := create.Validate(); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r *UpdateShiftRequest) Interval() (time.Time, time.Time) {
	start, _ := validator.IsValidDateTime(r.StartTime)
	end, _ := validator.IsValidDateTime(r.EndTime)
	return start, end
}

type BatchAssignEntry struct {
	ShiftID   string   `json:"shift_id"`
	WorkerIDs []string `json:"worker_ids"`
}

type BatchAssignRequest struct {
	Assignments []BatchAssignEntry `json:"assignments"`
}

func (r *BatchAssignRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Assignments) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "assignments",
			Message: "assignments must not be empty",
		})
	}
	for _, entry := range r.Assignments {
		if validator.IsEmpty(entry.ShiftID) {
			errs = append(errs, validator.ValidationError{
				Field:   "assignments.shift_id",
				Message: "shift_id is required",
			})
		}
		if validator.HasDuplicates(entry.WorkerIDs) {
			errs = append(errs, validator.ValidationError{
				Field:   "assignments.worker_ids",
				Message: "worker_ids must not contain duplicates for shift " + entry.ShiftID,
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AssignmentResponse struct {
	ID             string  `json:"id"`
	WorkerID       string  `json:"worker_id"`
	IsSelfAssigned bool    `json:"is_self_assigned"`
	AssignedAt     string  `json:"assigned_at"`
	AssignedBy     *string `json:"assigned_by,omitempty"`
}

type ShiftResponse struct {
	ID               string               `json:"id"`
	StartTime        string               `json:"start_time"`
	EndTime          string               `json:"end_time"`
	Type             string               `json:"type"`
	DayCategory      string               `json:"day_category"`
	SelfAssignable   bool                 `json:"self_assignable"`
	AssignmentStatus string               `json:"assignment_status"`
	RequiredDoctors  int                  `json:"required_doctors"`
	IsAvailable      bool                 `json:"is_available"`
	AssignedCount    int                  `json:"assigned_count"`
	SlotsAvailable   int                  `json:"slots_available"`
	HolidayID        *string              `json:"holiday_id,omitempty"`
	Note             string               `json:"note,omitempty"`
	Assignments      []AssignmentResponse `json:"assignments"`
	CreatedAt        string               `json:"created_at"`
	UpdatedAt        string               `json:"updated_at"`
}

type BatchAssignResult struct {
	ShiftID  string `json:"shift_id"`
	Assigned bool   `json:"assigned"`
	Error    string `json:"error,omitempty"`
}

type BatchAssignResponse struct {
	Results []BatchAssignResult `json:"results"`
}

type Filter struct {
	From        *time.Time
	To          *time.Time
	WorkerID    *string
	DayCategory *string
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.DayCategory != nil && !validator.IsInSlice(*f.DayCategory, DayCategoryValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "day_category",
			Message: "day_category must be one of: " + strings.Join(DayCategoryValues, ", "),
		})
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must not be before from",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
