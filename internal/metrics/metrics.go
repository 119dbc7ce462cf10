// Package metrics collects and exposes the bot's Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector registers and records the bot's counters.
type Collector struct {
	postsSeen         prometheus.Counter
	repliesPosted     prometheus.Counter
	duplicatesSkipped prometheus.Counter
	resolverFallbacks prometheus.Counter
	streamRestarts    *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		postsSeen: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "approach_control_posts_seen_total",
			Help: "Submissions dispatched to the post processor.",
		}),
		repliesPosted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "approach_control_replies_posted_total",
			Help: "Replies posted to submissions.",
		}),
		duplicatesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "approach_control_duplicates_skipped_total",
			Help: "Submissions skipped because a prior bot reply was found.",
		}),
		resolverFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "approach_control_resolver_fallbacks_total",
			Help: "Airport lookups that fell back to the generic landing page.",
		}),
		streamRestarts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "approach_control_stream_restarts_total",
			Help: "Stream recoveries by reason.",
		}, []string{"reason"}),
	}

	reg.MustRegister(
		c.postsSeen,
		c.repliesPosted,
		c.duplicatesSkipped,
		c.resolverFallbacks,
		c.streamRestarts,
	)
	return c
}

// RecordPostSeen counts a submission handed to the processor.
func (c *Collector) RecordPostSeen() {
	c.postsSeen.Inc()
}

// RecordReplyPosted counts a successfully posted reply.
func (c *Collector) RecordReplyPosted() {
	c.repliesPosted.Inc()
}

// RecordDuplicateSkipped counts a submission the bot had already replied to.
func (c *Collector) RecordDuplicateSkipped() {
	c.duplicatesSkipped.Inc()
}

// RecordResolverFallback counts an airport lookup that could not reach a
// specific airport page.
func (c *Collector) RecordResolverFallback() {
	c.resolverFallbacks.Inc()
}

// RecordStreamRestart counts a stream recovery, labeled by the error class
// that triggered it.
func (c *Collector) RecordStreamRestart(reason string) {
	c.streamRestarts.WithLabelValues(reason).Inc()
}
