package holiday

import (
	"time"

	"github.com/rosterhq/oncall-backend-go/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	Date            string `json:"date"`
	Name            string `json:"name"`
	IsRecurrent     bool   `json:"is_recurrent"`
	RequiredDoctors *int   `json:"required_doctors"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if r.RequiredDoctors != nil && *r.RequiredDoctors < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "required_doctors",
			Message: "required_doctors must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ParsedDate returns the holiday date. Call only after Validate.
func (r *CreateHolidayRequest) ParsedDate() time.Time {
	d, _ := validator.IsValidDate(r.Date)
	return d
}

type UpdateHolidayRequest struct {
	ID              string `json:"-"`
	Date            string `json:"date"`
	Name            string `json:"name"`
	IsRecurrent     bool   `json:"is_recurrent"`
	RequiredDoctors *int   `json:"required_doctors"`
}

func (r *UpdateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	create := CreateHolidayRequest{
		Date:            r.Date,
		Name:            r.Name,
		RequiredDoctors: r.RequiredDoctors,
	}
	if err := create.Validate(); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r *UpdateHolidayRequest) ParsedDate() time.Time {
	d, _ := validator.IsValidDate(r.Date)
	return d
}

type HolidayResponse struct {
	ID              string `json:"id"`
	Date            string `json:"date"`
	Name            string `json:"name"`
	IsRecurrent     bool   `json:"is_recurrent"`
	RequiredDoctors int    `json:"required_doctors"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// SyncResponse reports how many shifts a holiday mutation touched.
type SyncResponse struct {
	Holiday            HolidayResponse `json:"holiday"`
	ShiftsReclassified int64           `json:"shifts_reclassified"`
	ShiftsReverted     int64           `json:"shifts_reverted"`
	LinkedShiftID      *string         `json:"linked_shift_id,omitempty"`
	LinkedShiftDeleted bool            `json:"linked_shift_deleted,omitempty"`
}

// DeleteResponse reports the outcome of a holiday deletion.
type DeleteResponse struct {
	ShiftsReverted     int64 `json:"shifts_reverted"`
	LinkedShiftDeleted bool  `json:"linked_shift_deleted"`
}
