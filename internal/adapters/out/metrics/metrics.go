// Package metrics exposes planner and HTTP metrics through a dedicated
// Prometheus registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"dronedelivery/internal/core/domain/model/plan"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dronedelivery"

// Recorder implements ports.PlanMetrics and records HTTP traffic.
type Recorder struct {
	registry *prometheus.Registry

	plans          prometheus.Counter
	ordersAssigned prometheus.Counter
	ordersLeft     prometheus.Counter
	failures       *prometheus.CounterVec
	planDuration   prometheus.Histogram
	tourDistance   prometheus.Histogram
	dronesUsed     prometheus.Histogram

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewRecorder creates a Recorder on a fresh registry that also carries the Go
// runtime and process collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		plans: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "plans_total", Help: "Plans computed.",
		}),
		ordersAssigned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "orders_assigned_total", Help: "Orders placed on a drone.",
		}),
		ordersLeft: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "orders_unassigned_total", Help: "Orders no drone could take.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "planning_failures_total", Help: "Planning runs that failed, by stage.",
		}, []string{"stage"}),
		planDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "plan_duration_seconds", Help: "Time spent in the assignment engine.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		tourDistance: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "tour_distance", Help: "Grid distance of single drone tours.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		dronesUsed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "plan_drones_used", Help: "Drones that received orders per plan.",
			Buckets: prometheus.LinearBuckets(0, 5, 10),
		}),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
	}

	r.registry.MustRegister(
		r.plans,
		r.ordersAssigned,
		r.ordersLeft,
		r.failures,
		r.planDuration,
		r.tourDistance,
		r.dronesUsed,
		r.httpRequests,
		r.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Registry returns the registry the recorder writes to.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Recorder) ObservePlan(p *plan.Plan, elapsed time.Duration) {
	r.plans.Inc()
	r.planDuration.Observe(elapsed.Seconds())
	r.ordersAssigned.Add(float64(p.AssignedOrders()))
	r.ordersLeft.Add(float64(len(p.Unassigned())))
	r.dronesUsed.Observe(float64(len(p.Assignments())))
	for _, a := range p.Assignments() {
		r.tourDistance.Observe(float64(a.TotalDistance()))
	}
}

func (r *Recorder) ObserveFailure(stage string) {
	r.failures.WithLabelValues(stage).Inc()
}

// ObserveHTTP records one served request. path should be the route template,
// not the raw URL, to keep label cardinality bounded.
func (r *Recorder) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	r.httpRequests.WithLabelValues(method, path, code).Inc()
	r.httpDuration.WithLabelValues(method, path, code).Observe(elapsed.Seconds())
}

// Noop discards every observation. It is used by one-shot CLI runs.
type Noop struct{}

func (Noop) ObservePlan(*plan.Plan, time.Duration) {}
func (Noop) ObserveFailure(string)                 {}
