package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/mhans98/payroll-app/internal/domain"
	"github.com/mhans98/payroll-app/pkg/response"
)

type LoanHandler struct {
	service   LoanService
	validator *validator.Validate
}

func NewLoanHandler(service LoanService) *LoanHandler {
	return &LoanHandler{
		service:   service,
		validator: newValidator(),
	}
}

func (h *LoanHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	loans, err := h.service.ListActive(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, loans)
}

// Outstanding returns the employee's open loans, oldest first, and their total
func (h *LoanHandler) Outstanding(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := pathUUID(w, r, "employeeId")
	if !ok {
		return
	}

	outstanding, err := h.service.GetOutstanding(r.Context(), employeeID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, outstanding)
}

func (h *LoanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateLoanRequest
	if !decodeAndValidate(w, r, h.validator, &request) {
		return
	}

	loan, err := h.service.CreateLoan(r.Context(), &request)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, loan)
}

// AllocatePayment spreads a weekly deduction over the employee's loans
func (h *LoanHandler) AllocatePayment(w http.ResponseWriter, r *http.Request) {
	var request domain.AllocatePaymentRequest
	if !decodeAndValidate(w, r, h.validator, &request) {
		return
	}

	result, err := h.service.AllocatePayment(r.Context(), &request)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *LoanHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var request domain.UpdateLoanRequest
	if !decodeAndValidate(w, r, h.validator, &request) {
		return
	}

	loan, err := h.service.UpdateLoan(r.Context(), id, &request)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, loan)
}

func (h *LoanHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	loan, err := h.service.MarkPaid(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, loan)
}

func (h *LoanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteLoan(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]string{"id": id.String()})
}

func (h *LoanHandler) Payments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	history, err := h.service.PaymentHistory(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, history)
}
