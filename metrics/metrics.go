// Package metrics exposes outbound layer statistics as Prometheus metrics.
package metrics

import (
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sipkit/egress/outbound"
)

// DefaultNamespace prefixes metric names when no namespace is given.
const DefaultNamespace = "egress"

// StatsSource provides statistics reports, e.g. [outbound.StatsRecorder].
type StatsSource interface {
	Report() outbound.StatsReport
}

// Collector is a Prometheus collector reading a fresh [outbound.StatsReport] on every scrape.
type Collector struct {
	src StatsSource

	resolved,
	built,
	failures,
	branches,
	timeouts,
	cacheHits,
	publicAddrs *prometheus.Desc
}

// NewCollector creates a new [Collector] reading statistics from src.
// Empty namespace means [DefaultNamespace].
func NewCollector(namespace string, src StatsSource) *Collector {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	name := func(n string) string { return prometheus.BuildFQName(namespace, "", n) }
	return &Collector{
		src: src,
		resolved: prometheus.NewDesc(name("transport_resolved_total"),
			"Number of outbound messages resolved to a transport.", []string{"transport"}, nil),
		built: prometheus.NewDesc(name("headers_built_total"),
			"Number of built self-referencing headers.", []string{"kind"}, nil),
		failures: prometheus.NewDesc(name("header_failures_total"),
			"Number of header build failures.", []string{"kind", "reason"}, nil),
		branches: prometheus.NewDesc(name("branches_total"),
			"Number of generated branch identifiers.", nil, nil),
		timeouts: prometheus.NewDesc(name("proxy_branch_timeouts_total"),
			"Number of reported proxy branch response timeouts.", []string{"class"}, nil),
		cacheHits: prometheus.NewDesc(name("transport_cache_hits_total"),
			"Number of transport resolutions served from the message cache.", nil, nil),
		publicAddrs: prometheus.NewDesc(name("public_addresses_total"),
			"Number of headers advertising a public address.", nil, nil),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.resolved
	ch <- c.built
	ch <- c.failures
	ch <- c.branches
	ch <- c.timeouts
	ch <- c.cacheHits
	ch <- c.publicAddrs
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	if c.src == nil {
		return
	}
	report := c.src.Report()

	counter := func(desc *prometheus.Desc, v uint64, labels ...string) {
		ch <- prometheus.MustNewConstMetric(desc, prometheus.CounterValue, float64(v), labels...)
	}

	for _, tp := range report.Transports {
		counter(c.resolved, tp.Resolved, string(tp.Transport))
	}
	for _, h := range report.Headers {
		counter(c.built, h.Built, h.Kind)
		counter(c.failures, h.NoInterface, h.Kind, "no_interface")
		counter(c.failures, h.InvalidInterface, h.Kind, "invalid_interface")
	}
	counter(c.branches, report.Branches)
	counter(c.timeouts, report.Timeouts.Provisional, outbound.ResponseClassProvisional.String())
	counter(c.timeouts, report.Timeouts.Final, outbound.ResponseClassFinal.String())
	counter(c.cacheHits, report.CacheHits)
	counter(c.publicAddrs, report.PublicAddrs)
}

// Metrics holds the Prometheus registry of the application.
type Metrics struct {
	Registry *prometheus.Registry
}

// NewMetrics creates a registry with the Go runtime, process and outbound layer collectors.
func NewMetrics(namespace string, src StatsSource) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{
		PidFn:     func() (int, error) { return os.Getpid(), nil },
		Namespace: namespace,
	}))
	reg.MustRegister(NewCollector(namespace, src))

	return &Metrics{Registry: reg}
}

// Handler returns an HTTP handler that serves the metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
