package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"keyshare/internal/observability/metrics"
)

func TestMustRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New()
	m.MustRegister(reg)

	m.ResolutionsTotal.WithLabelValues("all-devices", "ok").Inc()
	m.ExcludedDevicesTotal.WithLabelValues("dehydrated").Add(2)

	if got := testutil.ToFloat64(m.ResolutionsTotal.WithLabelValues("all-devices", "ok")); got != 1 {
		t.Fatalf("resolutions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ExcludedDevicesTotal.WithLabelValues("dehydrated")); got != 2 {
		t.Fatalf("excluded = %v, want 2", got)
	}
	if n, err := testutil.GatherAndCount(reg, "keyshare_excluded_devices_total"); err != nil || n != 1 {
		t.Fatalf("gather: n=%d err=%v", n, err)
	}
}
