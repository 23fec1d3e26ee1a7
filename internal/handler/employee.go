package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/mhans98/payroll-app/internal/domain"
	"github.com/mhans98/payroll-app/pkg/response"
)

type EmployeeHandler struct {
	service   EmployeeService
	loans     LoanService
	validator *validator.Validate
}

func NewEmployeeHandler(service EmployeeService, loans LoanService) *EmployeeHandler {
	return &EmployeeHandler{
		service:   service,
		loans:     loans,
		validator: newValidator(),
	}
}

// List returns active employees
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.service.List(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, employees)
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	employee, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, employee)
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateEmployeeRequest
	if !decodeAndValidate(w, r, h.validator, &request) {
		return
	}

	employee, err := h.service.Create(r.Context(), &request)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, employee)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var request domain.UpdateEmployeeRequest
	if !decodeAndValidate(w, r, h.validator, &request) {
		return
	}

	employee, err := h.service.Update(r.Context(), id, &request)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, employee)
}

// Deactivate soft-deletes the employee
func (h *EmployeeHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Deactivate(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]string{"id": id.String()})
}

// LoanHistory returns every loan payment of the employee, newest first
func (h *EmployeeHandler) LoanHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	history, err := h.loans.EmployeeLoanHistory(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, history)
}
