package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/mhans98/payroll-app/internal/domain"
	"github.com/mhans98/payroll-app/pkg/response"
)

type PayrollHandler struct {
	service   PayrollService
	validator *validator.Validate
}

func NewPayrollHandler(service PayrollService) *PayrollHandler {
	return &PayrollHandler{
		service:   service,
		validator: newValidator(),
	}
}

func (h *PayrollHandler) ListWeeks(w http.ResponseWriter, r *http.Request) {
	weeks, err := h.service.ListWeeks(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, weeks)
}

// CreateWeek returns the week with the given bounds, creating it if needed
func (h *PayrollHandler) CreateWeek(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateWeekRequest
	if !decodeAndValidate(w, r, h.validator, &request) {
		return
	}

	week, err := h.service.CreateWeek(r.Context(), &request)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, week)
}

// ListEntries returns the week's entries with their computed breakdowns
func (h *PayrollHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	weekID, ok := pathUUID(w, r, "weekId")
	if !ok {
		return
	}

	entries, err := h.service.ListEntries(r.Context(), weekID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, entries)
}

func (h *PayrollHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateEntryRequest
	if !decodeAndValidate(w, r, h.validator, &request) {
		return
	}

	entry, err := h.service.GetOrCreateEntry(r.Context(), &request)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, entry)
}

func (h *PayrollHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var request domain.UpdateEntryRequest
	if !decodeAndValidate(w, r, h.validator, &request) {
		return
	}

	entry, err := h.service.UpdateEntry(r.Context(), id, &request)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, entry)
}

// InitializeWeek creates the missing entries of every active employee
func (h *PayrollHandler) InitializeWeek(w http.ResponseWriter, r *http.Request) {
	weekID, ok := pathUUID(w, r, "weekId")
	if !ok {
		return
	}

	result, err := h.service.InitializeWeek(r.Context(), weekID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *PayrollHandler) Payslip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	payslip, err := h.service.Payslip(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, payslip)
}
