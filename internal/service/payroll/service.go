package payroll

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rosterhq/oncall-backend-go/internal/domain/holiday"
	"github.com/rosterhq/oncall-backend-go/internal/domain/payroll"
	"github.com/rosterhq/oncall-backend-go/internal/domain/shift"
	"github.com/rosterhq/oncall-backend-go/internal/domain/worker"
	"github.com/rosterhq/oncall-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type payrollServiceImpl struct {
	shiftRepo    shift.Repository
	holidayRepo  holiday.Repository
	workerRepo   worker.Repository
	rateRepo     payroll.RateRepository
	discountRepo payroll.DiscountRepository
	externalRepo payroll.ExternalHoursRepository
}

func NewPayrollService(
	shiftRepo shift.Repository,
	holidayRepo holiday.Repository,
	workerRepo worker.Repository,
	rateRepo payroll.RateRepository,
	discountRepo payroll.DiscountRepository,
	externalRepo payroll.ExternalHoursRepository,
) payroll.Service {
	return &payrollServiceImpl{
		shiftRepo:    shiftRepo,
		holidayRepo:  holidayRepo,
		workerRepo:   workerRepo,
		rateRepo:     rateRepo,
		discountRepo: discountRepo,
		externalRepo: externalRepo,
	}
}

type workerAggregate struct {
	periods         map[payroll.PeriodType]PeriodTotal
	totalHours      decimal.Decimal
	totalAmount     decimal.Decimal
	externalHours   decimal.Decimal
	externalPayment decimal.Decimal
}

func newWorkerAggregate() *workerAggregate {
	return &workerAggregate{periods: make(map[payroll.PeriodType]PeriodTotal)}
}

func (a *workerAggregate) addBreakdown(b ShiftBreakdown) {
	for period, total := range b.Periods {
		current := a.periods[period]
		current.Hours = current.Hours.Add(total.Hours)
		current.Amount = current.Amount.Add(total.Amount)
		a.periods[period] = current
	}
	a.totalHours = a.totalHours.Add(b.TotalHours)
	a.totalAmount = a.totalAmount.Add(b.TotalAmount)
}

// GenerateStatements implements payroll.Service.
func (s *payrollServiceImpl) GenerateStatements(ctx context.Context, req payroll.GenerateStatementsRequest) (payroll.StatementsResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.StatementsResponse{}, err
	}
	from, to := req.Range()

	rates, err := s.rateRepo.GetAll(ctx)
	if err != nil {
		return payroll.StatementsResponse{}, fmt.Errorf("failed to load rates: %w", err)
	}
	if len(rates) == 0 {
		return payroll.StatementsResponse{}, payroll.ErrNoRatesConfigured
	}
	table := make(RateTable, len(rates))
	for _, r := range rates {
		table[r.PeriodType] = r.Rate
	}

	holidays, err := s.holidayRepo.GetAll(ctx)
	if err != nil {
		return payroll.StatementsResponse{}, fmt.Errorf("failed to load holidays: %w", err)
	}
	cal := holiday.NewCalendar(holidays)

	var discount *payroll.Discount
	active, err := s.discountRepo.GetActive(ctx)
	if err != nil {
		if !errors.Is(err, payroll.ErrDiscountNotFound) {
			return payroll.StatementsResponse{}, fmt.Errorf("failed to load discount: %w", err)
		}
	} else {
		discount = &active
	}

	var filter map[string]struct{}
	if len(req.WorkerIDs) > 0 {
		filter = make(map[string]struct{}, len(req.WorkerIDs))
		for _, id := range req.WorkerIDs {
			filter[id] = struct{}{}
		}
	}
	included := func(workerID string) bool {
		if filter == nil {
			return true
		}
		_, ok := filter[workerID]
		return ok
	}

	aggregates := make(map[string]*workerAggregate)
	aggregateFor := func(workerID string) *workerAggregate {
		agg, ok := aggregates[workerID]
		if !ok {
			agg = newWorkerAggregate()
			aggregates[workerID] = agg
		}
		return agg
	}

	shifts, err := s.shiftRepo.ListBetween(ctx, from, to)
	if err != nil {
		return payroll.StatementsResponse{}, fmt.Errorf("failed to load shifts: %w", err)
	}
	for _, sh := range shifts {
		// The whole shift classifies from its start date, never per hour.
		weekendOrHoliday := cal.Classify(sh.StartTime) != shift.DayCategoryWeekday
		breakdown := BucketShift(sh.StartTime, sh.EndTime, weekendOrHoliday, table)

		for _, a := range sh.Assignments {
			if !included(a.WorkerID) {
				continue
			}
			aggregateFor(a.WorkerID).addBreakdown(breakdown)
		}
	}

	entries, err := s.externalRepo.ListBetween(ctx, from, to, nil)
	if err != nil {
		return payroll.StatementsResponse{}, fmt.Errorf("failed to load external hours: %w", err)
	}
	for _, e := range entries {
		if !included(e.WorkerID) {
			continue
		}
		agg := aggregateFor(e.WorkerID)
		agg.externalHours = agg.externalHours.Add(e.Hours)
		agg.externalPayment = agg.externalPayment.Add(e.Hours.Mul(e.Rate))
	}

	workerIDs := make([]string, 0, len(aggregates))
	for id := range aggregates {
		workerIDs = append(workerIDs, id)
	}
	workers, err := s.workerRepo.GetByIDs(ctx, workerIDs)
	if err != nil {
		return payroll.StatementsResponse{}, fmt.Errorf("failed to load workers: %w", err)
	}
	workersByID := make(map[string]worker.Worker, len(workers))
	for _, w := range workers {
		workersByID[w.ID] = w
	}

	statements := make([]payroll.WorkerStatementResponse, 0, len(aggregates))
	for id, agg := range aggregates {
		w := workersByID[id]

		gross := agg.totalAmount.Add(agg.externalPayment)
		net := gross
		discountApplied := decimal.Zero
		if w.HasDiscount && discount != nil {
			discountApplied = decimal.Min(discount.Amount, gross)
			net = gross.Sub(discount.Amount)
			if net.IsNegative() {
				net = decimal.Zero
			}
		}

		statements = append(statements, payroll.WorkerStatementResponse{
			WorkerID:        id,
			WorkerName:      w.Name,
			TotalHours:      agg.totalHours,
			Breakdown:       mapBreakdown(agg.periods),
			ExternalHours:   agg.externalHours,
			ExternalPayment: agg.externalPayment,
			GrossPay:        gross,
			DiscountApplied: discountApplied,
			NetPay:          net,
		})
	}
	sort.Slice(statements, func(i, j int) bool {
		return statements[i].WorkerID < statements[j].WorkerID
	})

	return payroll.StatementsResponse{
		From:       from.Format(time.RFC3339),
		To:         to.Format(time.RFC3339),
		Statements: statements,
	}, nil
}

// UpsertRates implements payroll.Service.
func (s *payrollServiceImpl) UpsertRates(ctx context.Context, req payroll.UpsertRatesRequest) ([]payroll.RateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rates := make([]payroll.HourlyRate, 0, len(req.Rates))
	for _, entry := range req.Rates {
		rates = append(rates, payroll.HourlyRate{
			PeriodType: payroll.PeriodType(entry.PeriodType),
			Rate:       entry.Rate,
		})
	}

	updated, err := s.rateRepo.Upsert(ctx, rates)
	if err != nil {
		return nil, err
	}
	return mapRatesToResponses(updated), nil
}

// GetRates implements payroll.Service.
func (s *payrollServiceImpl) GetRates(ctx context.Context) ([]payroll.RateResponse, error) {
	rates, err := s.rateRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapRatesToResponses(rates), nil
}

// CreateDiscount implements payroll.Service.
func (s *payrollServiceImpl) CreateDiscount(ctx context.Context, req payroll.CreateDiscountRequest) (payroll.DiscountResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.DiscountResponse{}, err
	}

	effectiveFrom := time.Now()
	if req.EffectiveFrom != "" {
		effectiveFrom, _ = validator.IsValidDateTime(req.EffectiveFrom)
	}

	created, err := s.discountRepo.Create(ctx, payroll.Discount{
		Amount:        req.Amount,
		IsActive:      true,
		EffectiveFrom: effectiveFrom,
	})
	if err != nil {
		return payroll.DiscountResponse{}, err
	}
	return mapDiscountToResponse(created), nil
}

// GetActiveDiscount implements payroll.Service.
func (s *payrollServiceImpl) GetActiveDiscount(ctx context.Context) (payroll.DiscountResponse, error) {
	d, err := s.discountRepo.GetActive(ctx)
	if err != nil {
		return payroll.DiscountResponse{}, err
	}
	return mapDiscountToResponse(d), nil
}

// CreateExternalHours implements payroll.Service.
func (s *payrollServiceImpl) CreateExternalHours(ctx context.Context, req payroll.CreateExternalHoursRequest) (payroll.ExternalHoursResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ExternalHoursResponse{}, err
	}

	if _, err := s.workerRepo.GetByID(ctx, req.WorkerID); err != nil {
		return payroll.ExternalHoursResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	created, err := s.externalRepo.Create(ctx, payroll.ExternalHours{
		WorkerID:    req.WorkerID,
		Date:        date,
		Hours:       req.Hours,
		Rate:        req.Rate,
		Description: req.Description,
	})
	if err != nil {
		return payroll.ExternalHoursResponse{}, err
	}
	return mapExternalToResponse(created), nil
}

// ListExternalHours implements payroll.Service.
func (s *payrollServiceImpl) ListExternalHours(ctx context.Context, from, to string, workerID *string) ([]payroll.ExternalHoursResponse, error) {
	var errs validator.ValidationErrors
	fromDate, ok := validator.IsValidDate(from)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "from must be in YYYY-MM-DD format"})
	}
	toDate, ok := validator.IsValidDate(to)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "to must be in YYYY-MM-DD format"})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	entries, err := s.externalRepo.ListBetween(ctx, fromDate, toDate.Add(24*time.Hour), workerID)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.ExternalHoursResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, mapExternalToResponse(e))
	}
	return result, nil
}

// DeleteExternalHours implements payroll.Service.
func (s *payrollServiceImpl) DeleteExternalHours(ctx context.Context, id string) error {
	if validator.IsEmpty(id) {
		return validator.ValidationErrors{{Field: "id", Message: "id is required"}}
	}
	return s.externalRepo.Delete(ctx, id)
}

func mapBreakdown(periods map[payroll.PeriodType]PeriodTotal) []payroll.PeriodBreakdownResponse {
	result := make([]payroll.PeriodBreakdownResponse, 0, len(periods))
	for _, pt := range payroll.PeriodTypeValues {
		total, ok := periods[payroll.PeriodType(pt)]
		if !ok {
			continue
		}
		result = append(result, payroll.PeriodBreakdownResponse{
			PeriodType: pt,
			Hours:      total.Hours,
			Amount:     total.Amount,
		})
	}
	return result
}

func mapRatesToResponses(rates []payroll.HourlyRate) []payroll.RateResponse {
	result := make([]payroll.RateResponse, 0, len(rates))
	for _, r := range rates {
		result = append(result, payroll.RateResponse{
			ID:         r.ID,
			PeriodType: string(r.PeriodType),
			Rate:       r.Rate,
			UpdatedAt:  r.UpdatedAt.Format(time.RFC3339),
		})
	}
	return result
}

func mapDiscountToResponse(d payroll.Discount) payroll.DiscountResponse {
	return payroll.DiscountResponse{
		ID:            d.ID,
		Amount:        d.Amount,
		IsActive:      d.IsActive,
		EffectiveFrom: d.EffectiveFrom.Format(time.RFC3339),
		CreatedAt:     d.CreatedAt.Format(time.RFC3339),
	}
}

func mapExternalToResponse(e payroll.ExternalHours) payroll.ExternalHoursResponse {
	return payroll.ExternalHoursResponse{
		ID:          e.ID,
		WorkerID:    e.WorkerID,
		Date:        e.Date.Format("2006-01-02"),
		Hours:       e.Hours,
		Rate:        e.Rate,
		Description: e.Description,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
}
