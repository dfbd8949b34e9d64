package orchestrator

import (
	"time"

	"tailortalk/internal/agent"
	"tailortalk/pkg/llmprovider"
	pkgLog "tailortalk/pkg/log"
	"tailortalk/pkg/metrics"
)

type Orchestrator struct {
	llm         *llmprovider.Manager
	registry    *agent.ToolRegistry
	l           pkgLog.Logger
	metrics     *metrics.Metrics
	temperature float64
	now         func() time.Time
}

type Option func(*Orchestrator)

// WithMetrics records tool calls on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

func WithTemperature(t float64) Option {
	return func(o *Orchestrator) { o.temperature = t }
}

// WithClock overrides time.Now for the time context.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

func New(llm *llmprovider.Manager, registry *agent.ToolRegistry, l pkgLog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		llm:         llm,
		registry:    registry,
		l:           l,
		temperature: 0.3,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Ready reports whether an LLM provider is available.
func (o *Orchestrator) Ready() bool {
	return o != nil && o.llm != nil && o.llm.Ready()
}
