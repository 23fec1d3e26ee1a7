package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	customError "github.com/mhans98/payroll-app/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestJSON_Envelope(t *testing.T) {
	w := httptest.NewRecorder()
	Created(w, map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.False(t, body.Timestamp.IsZero())
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "not found", err: customError.WrapLoanNotFound("x"), status: http.StatusNotFound, code: customError.ErrCodeLoanNotFound},
		{name: "conflict", err: customError.WrapAllocationInProgress("e"), status: http.StatusConflict, code: customError.ErrCodeAllocationInProgress},
		{name: "bad request", err: customError.WrapInvalidWeekRange("a", "b"), status: http.StatusBadRequest, code: customError.ErrCodeInvalidWeekRange},
		{name: "excess rejected", err: customError.WrapDeductionExceedsOutstanding("8000", "5000"), status: http.StatusUnprocessableEntity, code: customError.ErrCodeDeductionExceedsOutstanding},
		{name: "database", err: customError.WrapDatabaseError(errors.New("down")), status: http.StatusInternalServerError, code: customError.ErrCodeDatabaseError},
		{name: "plain error", err: errors.New("boom"), status: http.StatusInternalServerError, code: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			FromError(w, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.code, body.Error)
		})
	}
}

func TestCSV(t *testing.T) {
	w := httptest.NewRecorder()
	CSV(w, "payroll-2024-01-07.csv", [][]string{{"ID", "Name"}, {"EMP001", "Budi, Jr."}})

	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=payroll-2024-01-07.csv", w.Header().Get("Content-Disposition"))
	assert.Equal(t, "ID,Name\nEMP001,\"Budi, Jr.\"\n", w.Body.String())
}

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := LoggingMiddleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/weeks", nil))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "http request", entry.Message)
	assert.Equal(t, int64(http.StatusTeapot), entry.ContextMap()["status"])
	assert.Equal(t, "/api/v1/weeks", entry.ContextMap()["path"])
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	called := false
	handler := CORSMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/v1/loans", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, called)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
