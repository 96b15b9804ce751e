package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	scanDuration      prom.Histogram
	scanOutcome       *prom.CounterVec
	entryFailures     *prom.CounterVec
	lastScanGroups    prom.Gauge
	lastScanDocuments prom.Gauge
	coalescerFires    *prom.CounterVec
	coalescerDeferred prom.Counter
	coalescerIgnored  prom.Counter
}

// NewPrometheusRecorder constructs the scan and coalescer metrics and registers them on reg.
// A nil registry gets a private one so callers in tests never collide on the default registerer.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		scanDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "docsidebar",
			Name:      "scan_duration_seconds",
			Help:      "Duration of full sidebar scans",
			Buckets:   prom.DefBuckets,
		}),
		scanOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docsidebar",
			Name:      "scan_outcomes_total",
			Help:      "Sidebar scans by outcome",
		}, []string{"outcome"}),
		entryFailures: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docsidebar",
			Name:      "scan_entry_failures_total",
			Help:      "Per-entry failures absorbed during scans, by filesystem operation",
		}, []string{"op"}),
		lastScanGroups: prom.NewGauge(prom.GaugeOpts{
			Namespace: "docsidebar",
			Name:      "last_scan_groups",
			Help:      "Top-level navigation groups produced by the most recent scan",
		}),
		lastScanDocuments: prom.NewGauge(prom.GaugeOpts{
			Namespace: "docsidebar",
			Name:      "last_scan_documents",
			Help:      "Documents placed in the navigation by the most recent scan",
		}),
		coalescerFires: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docsidebar",
			Name:      "reload_triggers_total",
			Help:      "Coalesced reload actions by firing edge",
		}, []string{"edge"}),
		coalescerDeferred: prom.NewCounter(prom.CounterOpts{
			Namespace: "docsidebar",
			Name:      "reload_deferred_total",
			Help:      "Change notifications folded into a pending trailing reload",
		}),
		coalescerIgnored: prom.NewCounter(prom.CounterOpts{
			Namespace: "docsidebar",
			Name:      "reload_ignored_events_total",
			Help:      "Change notifications dropped because they do not concern a document",
		}),
	}
	reg.MustRegister(pr.scanDuration, pr.scanOutcome, pr.entryFailures, pr.lastScanGroups,
		pr.lastScanDocuments, pr.coalescerFires, pr.coalescerDeferred, pr.coalescerIgnored)
	return pr
}

func (p *PrometheusRecorder) ObserveScanDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.scanDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncScanOutcome(outcome OutcomeLabel) {
	if p == nil {
		return
	}
	p.scanOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncEntryFailure(op string) {
	if p == nil {
		return
	}
	p.entryFailures.WithLabelValues(op).Inc()
}

func (p *PrometheusRecorder) SetLastScan(groups, documents int) {
	if p == nil {
		return
	}
	p.lastScanGroups.Set(float64(groups))
	p.lastScanDocuments.Set(float64(documents))
}

func (p *PrometheusRecorder) IncCoalescerFire(edge EdgeLabel) {
	if p == nil {
		return
	}
	p.coalescerFires.WithLabelValues(string(edge)).Inc()
}

func (p *PrometheusRecorder) IncCoalescerDeferred() {
	if p == nil {
		return
	}
	p.coalescerDeferred.Inc()
}

func (p *PrometheusRecorder) IncCoalescerIgnored() {
	if p == nil {
		return
	}
	p.coalescerIgnored.Inc()
}
