// Package metrics records account menu activity to Prometheus and, when
// configured, a StatsD agent.
package metrics

import (
	"net/http"
	"regexp"
	"strconv"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/target/mmk-account-menu/internal/observability/statsd"
)

// Unmount reasons.
const (
	ReasonPage   = "page"   // the page released it (beacon or explicit request)
	ReasonLogout = "logout" // the session ended
	ReasonIdle   = "idle"   // the reaper swept it
)

// MenuOptions configures a Menu recorder.
type MenuOptions struct {
	// Namespace prefixes Prometheus metric names. Dots and other characters
	// Prometheus rejects become underscores. Defaults to "accountmenu".
	Namespace string
	// Sink mirrors every observation to StatsD. Optional.
	Sink statsd.Sink
	// Runtime registers the Go and process collectors.
	Runtime bool
}

// Menu records widget lifecycle, selections and forwarded key events.
// A nil *Menu records nothing.
type Menu struct {
	sink     statsd.Sink
	registry *prometheus.Registry
	live     atomic.Int64

	mounted    prometheus.Gauge
	mounts     *prometheus.CounterVec
	unmounts   *prometheus.CounterVec
	selections *prometheus.CounterVec
	keyEvents  *prometheus.CounterVec
}

var invalidNameChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// PromNamespace turns a StatsD-style prefix such as "mmk.menu" into a valid
// Prometheus namespace. An empty prefix yields "accountmenu".
func PromNamespace(prefix string) string {
	ns := invalidNameChars.ReplaceAllString(prefix, "_")
	if ns == "" {
		return "accountmenu"
	}
	if ns[0] >= '0' && ns[0] <= '9' {
		ns = "_" + ns
	}
	return ns
}

// NewMenu creates a recorder with its own registry.
func NewMenu(opts MenuOptions) *Menu {
	ns := PromNamespace(opts.Namespace)

	m := &Menu{
		sink:     opts.Sink,
		registry: prometheus.NewRegistry(),
		mounted: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "widgets_mounted",
			Help:      "Account menu widgets currently mounted.",
		}),
		mounts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "widget_mounts_total",
			Help:      "Account menu widgets mounted, by layout variant.",
		}, []string{"variant"}),
		unmounts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "widget_unmounts_total",
			Help:      "Account menu widgets unmounted, by reason.",
		}, []string{"reason"}),
		selections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "item_selections_total",
			Help:      "Items selected from an open account menu, by item.",
		}, []string{"item"}),
		keyEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "key_events_total",
			Help:      "Key events forwarded by the browser, by whether a shortcut handled them.",
		}, []string{"handled"}),
	}

	m.registry.MustRegister(m.mounted, m.mounts, m.unmounts, m.selections, m.keyEvents)
	if opts.Runtime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Menu) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (m *Menu) Registry() *prometheus.Registry { return m.registry }

// Mounted records a widget mount.
func (m *Menu) Mounted(variant string) {
	if m == nil {
		return
	}
	m.mounts.WithLabelValues(variant).Inc()
	m.setLive(m.live.Add(1))
	m.count("menu.mounted", 1, map[string]string{"variant": variant})
}

// Unmounted records n widgets going away for reason.
func (m *Menu) Unmounted(reason string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.unmounts.WithLabelValues(reason).Add(float64(n))
	m.setLive(m.live.Add(-int64(n)))
	m.count("menu.unmounted", int64(n), map[string]string{"reason": reason})
}

// Selected records an item chosen from an open menu.
func (m *Menu) Selected(item string) {
	if m == nil {
		return
	}
	m.selections.WithLabelValues(item).Inc()
	m.count("menu.item_selected", 1, map[string]string{"item": item})
}

// KeyEvent records a forwarded key event.
func (m *Menu) KeyEvent(handled bool) {
	if m == nil {
		return
	}
	h := strconv.FormatBool(handled)
	m.keyEvents.WithLabelValues(h).Inc()
	m.count("menu.key_event", 1, map[string]string{"handled": h})
}

func (m *Menu) setLive(n int64) {
	m.mounted.Set(float64(n))
	if m.sink != nil {
		m.sink.Gauge("menu.widgets_mounted", float64(n), nil)
	}
}

func (m *Menu) count(name string, v int64, tags map[string]string) {
	if m.sink != nil {
		m.sink.Count(name, v, tags)
	}
}
