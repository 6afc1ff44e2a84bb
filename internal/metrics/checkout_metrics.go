package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics содержит метрики оформления заказов.
type CheckoutMetrics struct {
	// Счётчики исходов
	started  prometheus.Counter
	approved prometheus.Counter
	declined prometheus.Counter
	failed   *prometheus.CounterVec

	// Гистограммы времени выполнения
	duration     prometheus.Histogram
	stepDuration *prometheus.HistogramVec

	// Побочные записи о расчёте заказа
	timelineEvents prometheus.Counter
	outboxEvents   prometheus.Counter
	sideEffectErrs *prometheus.CounterVec

	inFlight prometheus.Gauge
}

// NewCheckoutMetrics создаёт метрики в DefaultRegisterer.
func NewCheckoutMetrics() *CheckoutMetrics {
	return NewCheckoutMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewCheckoutMetricsWithRegisterer создаёт метрики в указанном реестре.
func NewCheckoutMetricsWithRegisterer(registerer prometheus.Registerer) *CheckoutMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &CheckoutMetrics{
		started: registerCounter(registerer, prometheus.CounterOpts{
			Name: "checkout_orders_started_total",
			Help: "Total number of checkout attempts",
		}),
		approved: registerCounter(registerer, prometheus.CounterOpts{
			Name: "checkout_orders_approved_total",
			Help: "Total number of orders settled as approved",
		}),
		declined: registerCounter(registerer, prometheus.CounterOpts{
			Name: "checkout_orders_declined_total",
			Help: "Total number of orders settled as declined",
		}),
		failed: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "checkout_orders_failed_total",
			Help: "Total number of failed checkout attempts by error kind",
		}, []string{"kind"}),
		duration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "checkout_duration_seconds",
			Help:    "Duration of checkout attempts in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		stepDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "checkout_step_duration_seconds",
			Help:    "Duration of individual checkout steps in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"step"}),
		timelineEvents: registerCounter(registerer, prometheus.CounterOpts{
			Name: "checkout_timeline_events_total",
			Help: "Total number of timeline events recorded",
		}),
		outboxEvents: registerCounter(registerer, prometheus.CounterOpts{
			Name: "checkout_outbox_events_total",
			Help: "Total number of settlement events enqueued to outbox",
		}),
		sideEffectErrs: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "checkout_side_effect_errors_total",
			Help: "Total number of failed best-effort writes by channel",
		}, []string{"channel"}),
		inFlight: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "checkout_in_flight",
			Help: "Number of checkout attempts in progress",
		}),
	}
}

// RecordStarted отмечает начало оформления.
func (m *CheckoutMetrics) RecordStarted() {
	m.started.Inc()
	m.inFlight.Inc()
}

// RecordFinished отмечает завершение оформления (любым исходом).
func (m *CheckoutMetrics) RecordFinished(duration time.Duration) {
	m.inFlight.Dec()
	m.duration.Observe(duration.Seconds())
}

// RecordApproved увеличивает счётчик одобренных заказов.
func (m *CheckoutMetrics) RecordApproved() {
	m.approved.Inc()
}

// RecordDeclined увеличивает счётчик отклонённых заказов.
func (m *CheckoutMetrics) RecordDeclined() {
	m.declined.Inc()
}

// RecordFailed увеличивает счётчик ошибок указанного вида.
func (m *CheckoutMetrics) RecordFailed(kind string) {
	m.failed.WithLabelValues(kind).Inc()
}

// RecordStepDuration записывает время выполнения шага.
func (m *CheckoutMetrics) RecordStepDuration(step string, duration time.Duration) {
	m.stepDuration.WithLabelValues(step).Observe(duration.Seconds())
}

// RecordTimelineEvent увеличивает счётчик событий timeline.
func (m *CheckoutMetrics) RecordTimelineEvent() {
	m.timelineEvents.Inc()
}

// RecordOutboxEvent увеличивает счётчик событий outbox.
func (m *CheckoutMetrics) RecordOutboxEvent() {
	m.outboxEvents.Inc()
}

// RecordSideEffectError фиксирует сбой записи в timeline или outbox.
func (m *CheckoutMetrics) RecordSideEffectError(channel string) {
	m.sideEffectErrs.WithLabelValues(channel).Inc()
}
