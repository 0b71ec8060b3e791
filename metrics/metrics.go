package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/joshuapare/memtrack/ledger"
	"github.com/joshuapare/memtrack/mem"
)

const namespace = "memtrack"

// Observer counts ledger events in Prometheus metrics. It implements
// ledger.Observer and can forward to another observer via Next, so
// metrics and human-readable output don't have to compete for the
// observer slot.
type Observer struct {
	allocationFailures *prometheus.CounterVec
	untrackedReleases  prometheus.Counter
	leakReports        prometheus.Counter
	reportedLeaks      prometheus.Gauge
	reportedLeakBytes  prometheus.Gauge

	// Next, when non-nil, receives every event after the metrics update.
	Next ledger.Observer
}

// NewObserver creates and registers the event metrics.
func NewObserver(reg prometheus.Registerer) *Observer {
	o := &Observer{
		allocationFailures: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "allocation_failures_total",
				Help:      "Total number of failed allocations by cause.",
			},
			[]string{"cause"},
		),
		untrackedReleases: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "untracked_releases_total",
				Help:      "Total number of releases of addresses the ledger was not tracking.",
			},
		),
		leakReports: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "leak_reports_total",
				Help:      "Total number of leak reports taken.",
			},
		),
		reportedLeaks: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "reported_leaks",
				Help:      "Leaked allocations in the most recent report.",
			},
		),
		reportedLeakBytes: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "reported_leak_bytes",
				Help:      "Leaked bytes in the most recent report.",
			},
		),
	}

	// Surface both cause series at zero so dashboards see them before
	// the first failure.
	o.allocationFailures.WithLabelValues(ledger.CauseRawAllocation.String())
	o.allocationFailures.WithLabelValues(ledger.CauseBookkeeping.String())

	return o
}

func (o *Observer) AllocationFailed(size int, cause ledger.FailureCause, err error) {
	o.allocationFailures.WithLabelValues(cause.String()).Inc()
	if o.Next != nil {
		o.Next.AllocationFailed(size, cause, err)
	}
}

func (o *Observer) UntrackedRelease(addr mem.Address) {
	o.untrackedReleases.Inc()
	if o.Next != nil {
		o.Next.UntrackedRelease(addr)
	}
}

func (o *Observer) LeakReport(r *ledger.Report) {
	o.leakReports.Inc()
	o.reportedLeaks.Set(float64(r.Leaks))
	o.reportedLeakBytes.Set(float64(r.Bytes))
	if o.Next != nil {
		o.Next.LeakReport(r)
	}
}

// Compile-time interface check
var _ ledger.Observer = (*Observer)(nil)
