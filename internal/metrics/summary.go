package metrics

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// WriteSummary печатает текущие значения метрик реестра по строке на серию.
// Гистограммы сводятся к _count и _sum. Пустые серии пропускаются.
func WriteSummary(w io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	for _, family := range families {
		name := family.GetName()
		for _, metric := range family.GetMetric() {
			labels := formatLabels(metric.GetLabel())

			switch family.GetType() {
			case dto.MetricType_COUNTER:
				if err := writeSample(w, name, labels, metric.GetCounter().GetValue()); err != nil {
					return err
				}
			case dto.MetricType_GAUGE:
				if err := writeSample(w, name, labels, metric.GetGauge().GetValue()); err != nil {
					return err
				}
			case dto.MetricType_HISTOGRAM:
				h := metric.GetHistogram()
				if h.GetSampleCount() == 0 {
					continue
				}
				if err := writeSample(w, name+"_count", labels, float64(h.GetSampleCount())); err != nil {
					return err
				}
				if err := writeSample(w, name+"_sum", labels, h.GetSampleSum()); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func writeSample(w io.Writer, name, labels string, value float64) error {
	_, err := fmt.Fprintf(w, "%s%s %g\n", name, labels, value)
	return err
}

func formatLabels(pairs []*dto.LabelPair) string {
	if len(pairs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		parts = append(parts, fmt.Sprintf("%s=%q", pair.GetName(), pair.GetValue()))
	}
	sort.Strings(parts)
	return "{" + strings.Join(parts, ",") + "}"
}
