package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rosterhq/oncall-backend-go/internal/domain/payroll"
	"github.com/rosterhq/oncall-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	GenerateStatements(w http.ResponseWriter, r *http.Request)

	UpsertRates(w http.ResponseWriter, r *http.Request)
	GetRates(w http.ResponseWriter, r *http.Request)

	CreateDiscount(w http.ResponseWriter, r *http.Request)
	GetActiveDiscount(w http.ResponseWriter, r *http.Request)

	CreateExternalHours(w http.ResponseWriter, r *http.Request)
	ListExternalHours(w http.ResponseWriter, r *http.Request)
	DeleteExternalHours(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.Service
}

func NewPayrollHandler(payrollService payroll.Service) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// GenerateStatements implements PayrollHandler.
func (h *PayrollHandlerImpl) GenerateStatements(w http.ResponseWriter, r *http.Request) {
	var req payroll.GenerateStatementsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("GenerateStatements decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.GenerateStatements(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpsertRates implements PayrollHandler.
func (h *PayrollHandlerImpl) UpsertRates(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpsertRatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpsertRates decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.UpsertRates(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Rates updated", result)
}

// GetRates implements PayrollHandler.
func (h *PayrollHandlerImpl) GetRates(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetRates(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateDiscount implements PayrollHandler.
func (h *PayrollHandlerImpl) CreateDiscount(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateDiscount decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.CreateDiscount(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Discount created", result)
}

// GetActiveDiscount implements PayrollHandler.
func (h *PayrollHandlerImpl) GetActiveDiscount(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetActiveDiscount(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateExternalHours implements PayrollHandler.
func (h *PayrollHandlerImpl) CreateExternalHours(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateExternalHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateExternalHours decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.CreateExternalHours(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "External hours recorded", result)
}

// ListExternalHours implements PayrollHandler.
func (h *PayrollHandlerImpl) ListExternalHours(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	from := query.Get("from")
	to := query.Get("to")

	var workerID *string
	if raw := query.Get("worker_id"); raw != "" {
		workerID = &raw
	}

	result, err := h.payrollService.ListExternalHours(r.Context(), from, to, workerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DeleteExternalHours implements PayrollHandler.
func (h *PayrollHandlerImpl) DeleteExternalHours(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "External hours ID is required", nil)
		return
	}

	if err := h.payrollService.DeleteExternalHours(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "External hours entry deleted", nil)
}
