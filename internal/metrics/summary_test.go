package metrics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestWriteSummary(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCheckoutMetricsWithRegisterer(reg)

	m.RecordStarted()
	m.RecordApproved()
	m.RecordFailed("product_unavailable")
	m.RecordFinished(20 * time.Millisecond)

	var buf bytes.Buffer
	if err := WriteSummary(&buf, reg); err != nil {
		t.Fatalf("write summary: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"checkout_orders_started_total 1\n",
		"checkout_orders_approved_total 1\n",
		"checkout_orders_declined_total 0\n",
		`checkout_orders_failed_total{kind="product_unavailable"} 1` + "\n",
		"checkout_duration_seconds_count 1\n",
		"checkout_in_flight 0\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "checkout_step_duration_seconds") {
		t.Errorf("empty histogram vec should not be printed:\n%s", out)
	}
}
