package intercept

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/openkcm/sdkmock/internal/constants"
	"github.com/openkcm/sdkmock/registry"
)

const (
	labelService   = "service"
	labelOperation = "operation"
	labelOutcome   = "outcome"
)

// Metrics counts intercepted calls by key and outcome.
type Metrics struct {
	calls *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with reg when it is not
// nil. Registering twice on the same registerer reuses the existing counter.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	calls := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: constants.AppName,
			Name:      "intercepted_calls_total",
			Help:      "The number of SDK calls answered by sdkmock",
		},
		[]string{labelService, labelOperation, labelOutcome},
	)

	if reg == nil {
		return &Metrics{calls: calls}, nil
	}

	err := reg.Register(calls)
	if err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return nil, err
		}

		existing, ok := already.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, err
		}

		calls = existing
	}

	return &Metrics{calls: calls}, nil
}

// Collector exposes the underlying counter.
func (m *Metrics) Collector() prometheus.Collector {
	return m.calls
}

func (m *Metrics) observe(req *Request, outcome constants.Outcome) {
	if m == nil {
		return
	}

	key := registry.NewKey(req.Service, req.Operation)
	m.calls.WithLabelValues(key.Service, key.Method, outcome.String()).Inc()
}
