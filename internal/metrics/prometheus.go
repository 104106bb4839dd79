package metrics

import (
	"net/http"
	"strconv"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

type promRecorder struct {
	probeOutcomes *prom.CounterVec
	graphSeconds  *prom.HistogramVec
	feedSeconds   *prom.HistogramVec
}

func (p *promRecorder) IncProbeOutcome(probe, outcome string) {
	p.probeOutcomes.WithLabelValues(probe, outcome).Inc()
}

func (p *promRecorder) ObserveGraphQuery(query string, success bool, seconds float64) {
	p.graphSeconds.WithLabelValues(query, strconv.FormatBool(success)).Observe(seconds)
}

func (p *promRecorder) ObserveFeedFetch(success bool, seconds float64) {
	p.feedSeconds.WithLabelValues(strconv.FormatBool(success)).Observe(seconds)
}

// EnablePrometheus installs a Prometheus recorder on a fresh registry and
// returns the handler that exposes it.
func EnablePrometheus() http.Handler {
	registry := prom.NewRegistry()
	p := &promRecorder{
		probeOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Name: "probe_outcomes_total",
			Help: "Fact probe outcomes by probe and outcome",
		}, []string{"probe", "outcome"}),
		graphSeconds: prom.NewHistogramVec(prom.HistogramOpts{
			Name:    "graph_query_seconds",
			Help:    "Graph query duration in seconds",
			Buckets: prom.DefBuckets,
		}, []string{"query", "success"}),
		feedSeconds: prom.NewHistogramVec(prom.HistogramOpts{
			Name:    "feed_fetch_seconds",
			Help:    "Remote feed fetch duration in seconds",
			Buckets: prom.DefBuckets,
		}, []string{"success"}),
	}

	registry.MustRegister(p.probeOutcomes, p.graphSeconds, p.feedSeconds)
	SetRecorder(p)

	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
