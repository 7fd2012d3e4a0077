package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dronedelivery/internal/adapters/out/metrics"
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/plan"
	"dronedelivery/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ ports.PlanMetrics = (*metrics.Recorder)(nil)
	_ ports.PlanMetrics = metrics.Noop{}
)

func TestRecorder_ObservePlan(t *testing.T) {
	t.Run("should count plans and orders", func(t *testing.T) {
		r := metrics.NewRecorder()
		a, err := plan.NewAssignment(kernel.MustNewID("D1"),
			[]kernel.ID{kernel.MustNewID("O1"), kernel.MustNewID("O2")}, 12)
		require.NoError(t, err)
		p, err := plan.NewPlan([]plan.Assignment{a}, []kernel.ID{kernel.MustNewID("O3")})
		require.NoError(t, err)

		r.ObservePlan(p, 3*time.Millisecond)
		r.ObservePlan(plan.EmptyPlan(), time.Millisecond)

		count, err := testutil.GatherAndCount(r.Registry(), "dronedelivery_plans_total")
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		families, err := r.Registry().Gather()
		require.NoError(t, err)
		values := map[string]float64{}
		for _, mf := range families {
			for _, m := range mf.GetMetric() {
				if c := m.GetCounter(); c != nil {
					values[mf.GetName()] += c.GetValue()
				}
			}
		}
		assert.InDelta(t, 2, values["dronedelivery_plans_total"], 1e-9)
		assert.InDelta(t, 2, values["dronedelivery_orders_assigned_total"], 1e-9)
		assert.InDelta(t, 1, values["dronedelivery_orders_unassigned_total"], 1e-9)
	})
}

func TestRecorder_ObserveFailure(t *testing.T) {
	t.Run("should label failures by stage", func(t *testing.T) {
		r := metrics.NewRecorder()

		r.ObserveFailure("read")
		r.ObserveFailure("read")
		r.ObserveFailure("write")

		count, err := testutil.GatherAndCount(r.Registry(), "dronedelivery_planning_failures_total")
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}

func TestRecorder_Handler(t *testing.T) {
	t.Run("should expose http metrics in text format", func(t *testing.T) {
		r := metrics.NewRecorder()
		r.ObserveHTTP(http.MethodPost, "/api/v1/plans", http.StatusOK, 5*time.Millisecond)

		rec := httptest.NewRecorder()
		r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `http_requests_total{method="POST",path="/api/v1/plans",status="200"} 1`)
		assert.Contains(t, body, "go_goroutines")
	})
}
