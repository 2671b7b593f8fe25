package payroll

import (
	"strings"
	"time"

	"github.com/rosterhq/oncall-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type RateEntry struct {
	PeriodType string          `json:"period_type"`
	Rate       decimal.Decimal `json:"rate"`
}

type UpsertRatesRequest struct {
	Rates []RateEntry `json:"rates"`
}

func (r *UpsertRatesRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Rates) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "rates",
			Message: "rates must not be empty",
		})
	}
	seen := make(map[string]struct{}, len(r.Rates))
	for _, entry := range r.Rates {
		if !validator.IsInSlice(entry.PeriodType, PeriodTypeValues) {
			errs = append(errs, validator.ValidationError{
				Field:   "rates.period_type",
				Message: "period_type must be one of: " + strings.Join(PeriodTypeValues, ", "),
			})
			continue
		}
		if _, dup := seen[entry.PeriodType]; dup {
			errs = append(errs, validator.ValidationError{
				Field:   "rates.period_type",
				Message: "duplicate period_type " + entry.PeriodType,
			})
		}
		seen[entry.PeriodType] = struct{}{}
		if entry.Rate.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "rates.rate",
				Message: "rate must not be negative",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RateResponse struct {
	ID         string          `json:"id"`
	PeriodType string          `json:"period_type"`
	Rate       decimal.Decimal `json:"rate"`
	UpdatedAt  string          `json:"updated_at"`
}

type CreateDiscountRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	EffectiveFrom string          `json:"effective_from"`
}

func (r *CreateDiscountRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must not be negative",
		})
	}
	if !validator.IsEmpty(r.EffectiveFrom) {
		if _, ok := validator.IsValidDateTime(r.EffectiveFrom); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "effective_from",
				Message: "effective_from must be a valid ISO8601 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DiscountResponse struct {
	ID            string          `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	IsActive      bool            `json:"is_active"`
	EffectiveFrom string          `json:"effective_from"`
	CreatedAt     string          `json:"created_at"`
}

type CreateExternalHoursRequest struct {
	WorkerID    string          `json:"worker_id"`
	Date        string          `json:"date"`
	Hours       decimal.Decimal `json:"hours"`
	Rate        decimal.Decimal `json:"rate"`
	Description string          `json:"description"`
}

func (r *CreateExternalHoursRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if !r.Hours.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "hours",
			Message: "hours must be positive",
		})
	}
	if r.Rate.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "rate",
			Message: "rate must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ExternalHoursResponse struct {
	ID          string          `json:"id"`
	WorkerID    string          `json:"worker_id"`
	Date        string          `json:"date"`
	Hours       decimal.Decimal `json:"hours"`
	Rate        decimal.Decimal `json:"rate"`
	Description string          `json:"description,omitempty"`
	CreatedAt   string          `json:"created_at"`
}

type GenerateStatementsRequest struct {
	From      string   `json:"from"`
	To        string   `json:"to"`
	WorkerIDs []string `json:"worker_ids"`
}

func (r *GenerateStatementsRequest) Validate() error {
	var errs validator.ValidationErrors

	from, fromOK := validator.IsValidDateTime(r.From)
	if !fromOK {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be a valid ISO8601 timestamp",
		})
	}
	to, toOK := validator.IsValidDateTime(r.To)
	if !toOK {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be a valid ISO8601 timestamp",
		})
	}
	if fromOK && toOK && !to.After(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be after from",
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

// Range returns the parsed statement period. Call only after Validate.
func (r *GenerateStatementsRequest) Range() (time.Time, time.Time) {
	from, _ := validator.IsValidDateTime(r.From)
	to, _ := validator.IsValidDateTime(r.To)
	return from, to
}

type PeriodBreakdownResponse struct {
	PeriodType string          `json:"period_type"`
	Hours      decimal.Decimal `json:"hours"`
	Amount     decimal.Decimal `json:"amount"`
}

type WorkerStatementResponse struct {
	WorkerID        string                    `json:"worker_id"`
	WorkerName      string                    `json:"worker_name"`
	TotalHours      decimal.Decimal           `json:"total_hours"`
	Breakdown       []PeriodBreakdownResponse `json:"breakdown"`
	ExternalHours   decimal.Decimal           `json:"external_hours"`
	ExternalPayment decimal.Decimal           `json:"external_payment"`
	GrossPay        decimal.Decimal           `json:"gross_pay"`
	DiscountApplied decimal.Decimal           `json:"discount_applied"`
	NetPay          decimal.Decimal           `json:"net_pay"`
}

type StatementsResponse struct {
	From       string                    `json:"from"`
	To         string                    `json:"to"`
	Statements []WorkerStatementResponse `json:"statements"`
}
