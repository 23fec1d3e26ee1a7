// Package metrics defines the Prometheus collectors exported by the payroll service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

const namespace = "payroll"

// Allocation outcomes
const (
	OutcomeApplied  = "applied"
	OutcomeNoop     = "noop"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

type Metrics struct {
	Allocations          *prometheus.CounterVec
	DeductionApplied     prometheus.Counter
	DeductionUnallocated prometheus.Counter
	LoansSettled         prometheus.Counter
	EntriesInitialized   prometheus.Counter
	CacheLookups         *prometheus.CounterVec
	HTTPRequests         *prometheus.CounterVec
	HTTPDuration         *prometheus.HistogramVec
}

// New registers all collectors with reg
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Allocations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "loans",
			Name:      "allocations_total",
			Help:      "Loan deduction allocations by outcome.",
		}, []string{"outcome"}),
		DeductionApplied: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "loans",
			Name:      "deduction_applied_total",
			Help:      "Sum of deduction amounts applied to loan balances.",
		}),
		DeductionUnallocated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "loans",
			Name:      "deduction_unallocated_total",
			Help:      "Sum of requested deduction amounts that exceeded outstanding balances.",
		}),
		LoansSettled: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "loans",
			Name:      "settled_total",
			Help:      "Loans whose remaining balance reached zero.",
		}),
		EntriesInitialized: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "entries",
			Name:      "initialized_total",
			Help:      "Week entries created by week initialization.",
		}),
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "totals_lookups_total",
			Help:      "Weekly totals cache lookups by result.",
		}, []string{"result"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "code"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// ObserveAllocation records one allocation result
func (m *Metrics) ObserveAllocation(outcome string, applied, unallocated decimal.Decimal, settled int) {
	m.Allocations.WithLabelValues(outcome).Inc()
	m.DeductionApplied.Add(applied.InexactFloat64())
	m.DeductionUnallocated.Add(unallocated.InexactFloat64())
	m.LoansSettled.Add(float64(settled))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request counts and latency labelled by the matched mux route
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		m.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		m.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
