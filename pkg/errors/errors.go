package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrEmployeeNotFound            = errors.New("employee not found")
	ErrEmployeeAlreadyExists       = errors.New("employee already exists")
	ErrWeekNotFound                = errors.New("payroll week not found")
	ErrInvalidWeekRange            = errors.New("payroll week must span exactly 7 days")
	ErrEntryNotFound               = errors.New("payroll entry not found")
	ErrLoanNotFound                = errors.New("loan not found")
	ErrLoanAlreadyExists           = errors.New("loan already exists")
	ErrInvalidLoanAmount           = errors.New("invalid loan amount")
	ErrInvalidLoanBalance          = errors.New("remaining balance must be between 0 and principal")
	ErrDeductionExceedsOutstanding = errors.New("deduction exceeds total outstanding balance")
	ErrAllocationInProgress        = errors.New("another loan allocation is running for this employee")
	ErrInvalidRequest              = errors.New("invalid request")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeEmployeeNotFound            = "EMPLOYEE_NOT_FOUND"
	ErrCodeEmployeeAlreadyExists       = "EMPLOYEE_ALREADY_EXISTS"
	ErrCodeWeekNotFound                = "WEEK_NOT_FOUND"
	ErrCodeInvalidWeekRange            = "INVALID_WEEK_RANGE"
	ErrCodeEntryNotFound               = "ENTRY_NOT_FOUND"
	ErrCodeLoanNotFound                = "LOAN_NOT_FOUND"
	ErrCodeLoanAlreadyExists           = "LOAN_ALREADY_EXISTS"
	ErrCodeInvalidLoanAmount           = "INVALID_LOAN_AMOUNT"
	ErrCodeInvalidLoanBalance          = "INVALID_LOAN_BALANCE"
	ErrCodeDeductionExceedsOutstanding = "DEDUCTION_EXCEEDS_OUTSTANDING"
	ErrCodeAllocationInProgress        = "ALLOCATION_IN_PROGRESS"
	ErrCodeInvalidRequest              = "INVALID_REQUEST"
	ErrCodeDatabaseError               = "DATABASE_ERROR"
	ErrCodeCacheError                  = "CACHE_ERROR"
)

// Wrap common errors with business context
func WrapEmployeeNotFound(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeEmployeeNotFound,
		fmt.Sprintf("Employee with ID %s not found", id),
		ErrEmployeeNotFound,
	)
}

func WrapEmployeeAlreadyExists(code string) *BusinessError {
	return NewBusinessError(
		ErrCodeEmployeeAlreadyExists,
		fmt.Sprintf("Employee with code %s already exists", code),
		ErrEmployeeAlreadyExists,
	)
}

func WrapWeekNotFound(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeWeekNotFound,
		fmt.Sprintf("Payroll week with ID %s not found", id),
		ErrWeekNotFound,
	)
}

func WrapInvalidWeekRange(start, end string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidWeekRange,
		fmt.Sprintf("Week %s to %s is not a 7-day week", start, end),
		ErrInvalidWeekRange,
	)
}

func WrapEntryNotFound(id string) *BusinessError {
	return NewBusinessError(
		ErrCodeEntryNotFound,
		fmt.Sprintf("Payroll entry with ID %s not found", id),
		ErrEntryNotFound,
	)
}

func WrapLoanNotFound(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotFound,
		fmt.Sprintf("Loan with ID %s not found", loanID),
		ErrLoanNotFound,
	)
}

func WrapLoanAlreadyExists(loanCode string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanAlreadyExists,
		fmt.Sprintf("Loan with code %s already exists", loanCode),
		ErrLoanAlreadyExists,
	)
}

func WrapInvalidLoanAmount(amount string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidLoanAmount,
		fmt.Sprintf("Invalid loan principal: %s", amount),
		ErrInvalidLoanAmount,
	)
}

func WrapInvalidLoanBalance(principal, remaining string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidLoanBalance,
		fmt.Sprintf("Remaining %s is outside 0..%s", remaining, principal),
		ErrInvalidLoanBalance,
	)
}

func WrapDeductionExceedsOutstanding(requested, outstanding string) *BusinessError {
	return NewBusinessError(
		ErrCodeDeductionExceedsOutstanding,
		fmt.Sprintf("Requested deduction %s exceeds outstanding balance %s", requested, outstanding),
		ErrDeductionExceedsOutstanding,
	)
}

func WrapAllocationInProgress(employeeID string) *BusinessError {
	return NewBusinessError(
		ErrCodeAllocationInProgress,
		fmt.Sprintf("Loan allocation for employee %s is already running", employeeID),
		ErrAllocationInProgress,
	)
}

func WrapInvalidRequest(message string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidRequest,
		message,
		ErrInvalidRequest,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}

// CodeOf returns the business error code carried by err, or "" if none
func CodeOf(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
