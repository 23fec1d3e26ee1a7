package handler

import (
	"net/http"

	"github.com/mhans98/payroll-app/internal/metrics"
	"github.com/mhans98/payroll-app/pkg/response"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Health    *HealthHandler
	Employees *EmployeeHandler
	Payroll   *PayrollHandler
	Loans     *LoanHandler
	Reports   *ReportHandler
}

// NewRouter mounts the API under /api/v1 next to /health and /metrics.
// CORS wraps the whole router so preflight requests never reach route matching.
func NewRouter(h Handlers, m *metrics.Metrics, gatherer prometheus.Gatherer, logger *zap.Logger) http.Handler {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware(logger))
	router.Use(m.Middleware)

	// Health check
	router.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", h.Health.Ready).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/employees", h.Employees.List).Methods(http.MethodGet)
	api.HandleFunc("/employees", h.Employees.Create).Methods(http.MethodPost)
	api.HandleFunc("/employees/{id}", h.Employees.Get).Methods(http.MethodGet)
	api.HandleFunc("/employees/{id}", h.Employees.Update).Methods(http.MethodPut)
	api.HandleFunc("/employees/{id}", h.Employees.Deactivate).Methods(http.MethodDelete)
	api.HandleFunc("/employees/{id}/loan-history", h.Employees.LoanHistory).Methods(http.MethodGet)

	api.HandleFunc("/weeks", h.Payroll.ListWeeks).Methods(http.MethodGet)
	api.HandleFunc("/weeks", h.Payroll.CreateWeek).Methods(http.MethodPost)

	api.HandleFunc("/payroll", h.Payroll.CreateEntry).Methods(http.MethodPost)
	api.HandleFunc("/payroll/entries/{id}", h.Payroll.UpdateEntry).Methods(http.MethodPut)
	api.HandleFunc("/payroll/entries/{id}/payslip", h.Payroll.Payslip).Methods(http.MethodGet)
	api.HandleFunc("/payroll/{weekId}", h.Payroll.ListEntries).Methods(http.MethodGet)
	api.HandleFunc("/payroll/{weekId}/initialize", h.Payroll.InitializeWeek).Methods(http.MethodPost)

	api.HandleFunc("/loans", h.Loans.ListActive).Methods(http.MethodGet)
	api.HandleFunc("/loans", h.Loans.Create).Methods(http.MethodPost)
	api.HandleFunc("/loans/payment", h.Loans.AllocatePayment).Methods(http.MethodPost)
	api.HandleFunc("/loans/employee/{employeeId}", h.Loans.Outstanding).Methods(http.MethodGet)
	api.HandleFunc("/loans/{id}", h.Loans.Update).Methods(http.MethodPut)
	api.HandleFunc("/loans/{id}", h.Loans.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/loans/{id}/paid", h.Loans.MarkPaid).Methods(http.MethodPut)
	api.HandleFunc("/loans/{id}/payments", h.Loans.Payments).Methods(http.MethodGet)
	api.HandleFunc("/loans/{id}/history", h.Loans.Payments).Methods(http.MethodGet)

	api.HandleFunc("/reports/weekly/{weekId}", h.Reports.WeeklyReport).Methods(http.MethodGet)
	api.HandleFunc("/export/weekly/{weekId}", h.Reports.ExportWeek).Methods(http.MethodGet)
	api.HandleFunc("/audit", h.Reports.Audit).Methods(http.MethodGet)
	api.HandleFunc("/reset-all-data", h.Reports.ResetAll).Methods(http.MethodDelete)

	return response.CORSMiddleware(router)
}
