package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tailortalk"

// Result labels.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Metrics owns a private registry so tests and multiple servers never collide
// on the global one. All methods are safe on a nil receiver.
type Metrics struct {
	registry *prometheus.Registry

	slotSearches *prometheus.CounterVec
	slotsOffered prometheus.Counter
	bookings     *prometheus.CounterVec
	chatTurns    *prometheus.CounterVec
	toolCalls    *prometheus.CounterVec
	llmCalls     *prometheus.CounterVec
	llmDuration  *prometheus.HistogramVec
	httpDuration *prometheus.HistogramVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		slotSearches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "slot_searches_total",
				Help:      "Count of free-slot searches by the date rule that resolved the window.",
			},
			[]string{"rule"},
		),
		slotsOffered: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "slots_offered_total",
				Help:      "Count of slots returned to users.",
			},
		),
		bookings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bookings_total",
				Help:      "Count of booking attempts by result.",
			},
			[]string{"result"},
		),
		chatTurns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "chat_turns_total",
				Help:      "Count of user messages handled by channel.",
			},
			[]string{"channel"},
		),
		toolCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "agent_tool_calls_total",
				Help:      "Count of agent tool invocations by tool and result.",
			},
			[]string{"tool", "result"},
		),
		llmCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "llm_calls_total",
				Help:      "Count of LLM provider calls by provider and result, retries included.",
			},
			[]string{"provider", "result"},
		),
		llmDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "llm_call_duration_seconds",
				Help:      "LLM provider call latency.",
				Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
			},
			[]string{"provider"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.slotSearches,
		m.slotsOffered,
		m.bookings,
		m.chatTurns,
		m.toolCalls,
		m.llmCalls,
		m.llmDuration,
		m.httpDuration,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveSlotSearch(rule string, slots int) {
	if m == nil {
		return
	}
	m.slotSearches.WithLabelValues(rule).Inc()
	m.slotsOffered.Add(float64(slots))
}

func (m *Metrics) ObserveBooking(err error) {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues(result(err)).Inc()
}

func (m *Metrics) ObserveChatTurn(channel string) {
	if m == nil {
		return
	}
	m.chatTurns.WithLabelValues(channel).Inc()
}

func (m *Metrics) ObserveToolCall(tool string, err error) {
	if m == nil {
		return
	}
	m.toolCalls.WithLabelValues(tool, result(err)).Inc()
}

// ObserveLLMCall records one provider attempt.
func (m *Metrics) ObserveLLMCall(provider string, err error, d time.Duration) {
	if m == nil {
		return
	}
	m.llmCalls.WithLabelValues(provider, result(err)).Inc()
	m.llmDuration.WithLabelValues(provider).Observe(d.Seconds())
}

func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}
