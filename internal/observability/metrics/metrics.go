package metrics

import (
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// LeadMetrics exposes counters/histograms for the lead ingestion pipeline.
type LeadMetrics struct {
	leadsTotal    *prometheus.CounterVec
	failuresTotal *prometheus.CounterVec
	ledgerAppend  *prometheus.HistogramVec
	origins       map[string]struct{}
}

// OtherOrigin labels leads whose origin is not in the configured set.
const OtherOrigin = "other"

// NewLeadMetrics registers the lead collectors on reg. Only origins listed in
// knownOrigins (plus "unknown") get their own label value; every other origin
// is counted under OtherOrigin so callers cannot grow the series set.
func NewLeadMetrics(reg prometheus.Registerer, knownOrigins ...string) *LeadMetrics {
	m := &LeadMetrics{
		leadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadhook",
			Subsystem: "ingest",
			Name:      "leads_total",
			Help:      "Total leads processed, by origin and rating",
		}, []string{"origin", "rating"}),
		failuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadhook",
			Subsystem: "ingest",
			Name:      "failures_total",
			Help:      "Total invocations that ended in a failure response",
		}, []string{"stage"}),
		ledgerAppend: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "leadhook",
			Subsystem: "ledger",
			Name:      "append_seconds",
			Help:      "Latency of read-modify-write ledger appends",
			Buckets:   prometheus.DefBuckets,
		}, []string{"backend"}),
	}
	m.origins = map[string]struct{}{"unknown": {}}
	for _, origin := range knownOrigins {
		if origin = strings.TrimSpace(origin); origin != "" {
			m.origins[origin] = struct{}{}
		}
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.leadsTotal, m.failuresTotal, m.ledgerAppend)
	return m
}

func (m *LeadMetrics) originLabel(origin string) string {
	if _, ok := m.origins[origin]; ok {
		return origin
	}
	return OtherOrigin
}

func (m *LeadMetrics) ObserveLead(origin string, rating int) {
	if m == nil {
		return
	}
	m.leadsTotal.WithLabelValues(m.originLabel(origin), strconv.Itoa(rating)).Inc()
}

func (m *LeadMetrics) ObserveFailure(stage string) {
	if m == nil {
		return
	}
	m.failuresTotal.WithLabelValues(stage).Inc()
}

func (m *LeadMetrics) ObserveLedgerAppend(backend string, seconds float64) {
	if m == nil {
		return
	}
	m.ledgerAppend.WithLabelValues(backend).Observe(seconds)
}
