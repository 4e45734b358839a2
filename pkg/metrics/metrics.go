// Package metrics exposes the banking service's Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the business side of the collector, used by the services.
type Recorder interface {
	UserRegistered()
	LoginFailed()
	BeneficiaryAdded()
	TransferIssued(amount int64)
}

// Collector holds every metric of the service.
type Collector struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	usersRegistered prometheus.Counter
	loginFailures   prometheus.Counter
	beneficiaries   prometheus.Counter
	transfers       prometheus.Counter
	transferAmount  prometheus.Counter
}

// NewCollector creates the metrics and registers them on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mibanco_http_requests_total",
			Help: "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status_code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mibanco_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		usersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mibanco_users_registered_total",
			Help: "Users created through registration.",
		}),
		loginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mibanco_login_failures_total",
			Help: "Rejected logins.",
		}),
		beneficiaries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mibanco_beneficiaries_added_total",
			Help: "Beneficiaries appended to a user.",
		}),
		transfers: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mibanco_transfers_issued_total",
			Help: "Transfers recorded.",
		}),
		transferAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mibanco_transfers_amount_total",
			Help: "Sum of transferred amounts in CLP.",
		}),
	}

	reg.MustRegister(
		c.requests,
		c.requestDuration,
		c.usersRegistered,
		c.loginFailures,
		c.beneficiaries,
		c.transfers,
		c.transferAmount,
	)

	return c
}

func (c *Collector) UserRegistered()   { c.usersRegistered.Inc() }
func (c *Collector) LoginFailed()      { c.loginFailures.Inc() }
func (c *Collector) BeneficiaryAdded() { c.beneficiaries.Inc() }

func (c *Collector) TransferIssued(amount int64) {
	c.transfers.Inc()
	c.transferAmount.Add(float64(amount))
}

// RecordRequest counts one HTTP request.
func (c *Collector) RecordRequest(route, method string, status int, elapsed time.Duration) {
	c.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Middleware records every request under its ServeMux pattern. Requests the
// mux did not match are grouped under "unmatched".
func (c *Collector) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			c.RecordRequest(route, r.Method, sw.status, time.Since(start))
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// Handler serves the exposition format for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards business metrics.
type Nop struct{}

func (Nop) UserRegistered()      {}
func (Nop) LoginFailed()         {}
func (Nop) BeneficiaryAdded()    {}
func (Nop) TransferIssued(int64) {}
