package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MatcherMetrics is the slice of collection the matchmaker job needs.
type MatcherMetrics interface {
	RecordRun()
	RecordRunSkipped()
	RecordMatchCreated()
	RecordBucketError()
	RecordLeftoverDropped()
}

type Collector struct {
	runs             prometheus.Counter
	runsSkipped      prometheus.Counter
	matchesCreated   prometheus.Counter
	bucketErrors     prometheus.Counter
	leftoversDropped prometheus.Counter
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "babmate_matcher_runs_total",
			Help: "Completed matching runs.",
		}),
		runsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "babmate_matcher_runs_skipped_total",
			Help: "Runs skipped because the single-flight lease was held.",
		}),
		matchesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "babmate_matcher_matches_created_total",
			Help: "Matches persisted by the matcher.",
		}),
		bucketErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "babmate_matcher_bucket_errors_total",
			Help: "Buckets skipped because of an error.",
		}),
		leftoversDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "babmate_matcher_leftovers_dropped_total",
			Help: "Unpaired requests deleted under the drop-leftover policy.",
		}),
	}

	reg.MustRegister(c.runs, c.runsSkipped, c.matchesCreated, c.bucketErrors, c.leftoversDropped)
	return c
}

func (c *Collector) RecordRun()             { c.runs.Inc() }
func (c *Collector) RecordRunSkipped()      { c.runsSkipped.Inc() }
func (c *Collector) RecordMatchCreated()    { c.matchesCreated.Inc() }
func (c *Collector) RecordBucketError()     { c.bucketErrors.Inc() }
func (c *Collector) RecordLeftoverDropped() { c.leftoversDropped.Inc() }

func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
