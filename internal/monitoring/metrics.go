// Package monitoring exposes Prometheus counters for the settings store,
// the document assembler, the order template and the settings file watcher.
//
// Each ApplicationMetrics owns a private registry so tests and commands can
// build independent instances without colliding on the default registerer.
package monitoring

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "patterns"

// ApplicationMetrics collects application-specific metrics.
type ApplicationMetrics struct {
	namespace string
	registry  *prometheus.Registry

	settingsOps        *prometheus.CounterVec
	documentsAssembled *prometheus.CounterVec
	ordersCloned       *prometheus.CounterVec
	watcherEvents      *prometheus.CounterVec
}

// NewApplicationMetrics creates the application counters under namespace.
func NewApplicationMetrics(namespace string) *ApplicationMetrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	am := &ApplicationMetrics{
		namespace: namespace,
		registry:  prometheus.NewRegistry(),
		settingsOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "settings",
			Name:      "operations_total",
			Help:      "Settings store operations by operation and result.",
		}, []string{"operation", "result"}),
		documentsAssembled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "documents_assembled_total",
			Help:      "Documents produced by the director, by format.",
		}, []string{"format"}),
		ordersCloned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "order",
			Name:      "clones_total",
			Help:      "Order deep copies by result.",
		}, []string{"result"}),
		watcherEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "watcher",
			Name:      "events_total",
			Help:      "Settings file change events by type.",
		}, []string{"type"}),
	}

	am.registry.MustRegister(
		am.settingsOps,
		am.documentsAssembled,
		am.ordersCloned,
		am.watcherEvents,
	)

	return am
}

// Registry returns the registry holding every application metric.
func (am *ApplicationMetrics) Registry() *prometheus.Registry {
	return am.registry
}

// RegisterCounterFunc exposes a monotonically increasing value owned elsewhere,
// such as the number of settings stores ever constructed.
func (am *ApplicationMetrics) RegisterCounterFunc(subsystem, name, help string, fn func() float64) error {
	return am.registry.Register(prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: am.namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	}, fn))
}

// SettingsOperation counts a settings store call.
func (am *ApplicationMetrics) SettingsOperation(operation string, err error) {
	am.settingsOps.WithLabelValues(operation, resultLabel(err == nil)).Inc()
}

// DocumentAssembled counts a document produced for format.
func (am *ApplicationMetrics) DocumentAssembled(format string) {
	am.documentsAssembled.WithLabelValues(format).Inc()
}

// OrderCloned counts an order deep copy.
func (am *ApplicationMetrics) OrderCloned(success bool) {
	am.ordersCloned.WithLabelValues(resultLabel(success)).Inc()
}

// FileWatcherEvent tracks file watcher events.
func (am *ApplicationMetrics) FileWatcherEvent(eventType string) {
	am.watcherEvents.WithLabelValues(eventType).Inc()
}

// WriteText writes every gathered metric family in the Prometheus text format.
func (am *ApplicationMetrics) WriteText(w io.Writer) error {
	families, err := am.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encoding metric %s: %w", mf.GetName(), err)
		}
	}

	return nil
}

func resultLabel(ok bool) string {
	if ok {
		return "success"
	}
	return "error"
}
