package handler

import (
	"net/http"

	"github.com/mhans98/payroll-app/pkg/response"
)

type ReportHandler struct {
	service ReportService
}

func NewReportHandler(service ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) WeeklyReport(w http.ResponseWriter, r *http.Request) {
	weekID, ok := pathUUID(w, r, "weekId")
	if !ok {
		return
	}

	report, err := h.service.WeeklyReport(r.Context(), weekID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, report)
}

// ExportWeek downloads the week as CSV
func (h *ReportHandler) ExportWeek(w http.ResponseWriter, r *http.Request) {
	weekID, ok := pathUUID(w, r, "weekId")
	if !ok {
		return
	}

	filename, records, err := h.service.ExportWeek(r.Context(), weekID)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.CSV(w, filename, records)
}

func (h *ReportHandler) Audit(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.ListAudit(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, entries)
}

// ResetAll wipes every payroll table
func (h *ReportHandler) ResetAll(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ResetAll(r.Context()); err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
