package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/joshuapare/memtrack/ledger"
)

// Collector scrapes a Ledger's cumulative Stats on demand. Unlike
// Observer it needs no hook into the allocation path; register it and
// every Gather sees the current counters.
type Collector struct {
	led *ledger.Ledger

	liveEntries     *prometheus.Desc
	liveBytes       *prometheus.Desc
	peakLiveEntries *prometheus.Desc
	peakLiveBytes   *prometheus.Desc
	allocatedBytes  *prometheus.Desc
	releasedBytes   *prometheus.Desc
	allocateCalls   *prometheus.Desc
	releaseCalls    *prometheus.Desc
}

// NewCollector creates a Collector over led. Register it with a
// prometheus.Registerer to expose the metrics.
func NewCollector(led *ledger.Ledger) *Collector {
	return &Collector{
		led: led,
		liveEntries: prometheus.NewDesc(
			namespace+"_live_entries",
			"Currently tracked allocations.",
			nil, nil,
		),
		liveBytes: prometheus.NewDesc(
			namespace+"_live_bytes",
			"Payload bytes across currently tracked allocations.",
			nil, nil,
		),
		peakLiveEntries: prometheus.NewDesc(
			namespace+"_peak_live_entries",
			"High-water mark of tracked allocations.",
			nil, nil,
		),
		peakLiveBytes: prometheus.NewDesc(
			namespace+"_peak_live_bytes",
			"High-water mark of tracked payload bytes.",
			nil, nil,
		),
		allocatedBytes: prometheus.NewDesc(
			namespace+"_allocated_bytes_total",
			"Cumulative payload bytes successfully allocated.",
			nil, nil,
		),
		releasedBytes: prometheus.NewDesc(
			namespace+"_released_bytes_total",
			"Cumulative payload bytes released back to the raw allocator.",
			nil, nil,
		),
		allocateCalls: prometheus.NewDesc(
			namespace+"_allocate_calls_total",
			"Total Allocate calls, including failures and zero-size no-ops.",
			nil, nil,
		),
		releaseCalls: prometheus.NewDesc(
			namespace+"_release_calls_total",
			"Total Release calls, including null and untracked ones.",
			nil, nil,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.liveEntries
	ch <- c.liveBytes
	ch <- c.peakLiveEntries
	ch <- c.peakLiveBytes
	ch <- c.allocatedBytes
	ch <- c.releasedBytes
	ch <- c.allocateCalls
	ch <- c.releaseCalls
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	st := c.led.Stats()

	ch <- prometheus.MustNewConstMetric(c.liveEntries, prometheus.GaugeValue, float64(st.LiveEntries))
	ch <- prometheus.MustNewConstMetric(c.liveBytes, prometheus.GaugeValue, float64(st.LiveBytes))
	ch <- prometheus.MustNewConstMetric(c.peakLiveEntries, prometheus.GaugeValue, float64(st.PeakLiveEntries))
	ch <- prometheus.MustNewConstMetric(c.peakLiveBytes, prometheus.GaugeValue, float64(st.PeakLiveBytes))
	ch <- prometheus.MustNewConstMetric(c.allocatedBytes, prometheus.CounterValue, float64(st.BytesAllocated))
	ch <- prometheus.MustNewConstMetric(c.releasedBytes, prometheus.CounterValue, float64(st.BytesReleased))
	ch <- prometheus.MustNewConstMetric(c.allocateCalls, prometheus.CounterValue, float64(st.AllocCalls))
	ch <- prometheus.MustNewConstMetric(c.releaseCalls, prometheus.CounterValue, float64(st.ReleaseCalls))
}

// Compile-time interface check
var _ prometheus.Collector = (*Collector)(nil)
