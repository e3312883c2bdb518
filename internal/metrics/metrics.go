// Package metrics collects Prometheus counters for the activity backfill and
// the viewed-state transitions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder is what services depend on; Nop satisfies it in tests and when
// metrics are not wired.
type Recorder interface {
	ActivityCreated(owner string)
	CommentWithoutOwner()
	MarkedViewed(kind, scope string, rows int64)
	CacheLookup(hit bool)
}

type Collector struct {
	activitiesCreated    *prometheus.CounterVec
	commentsWithoutOwner prometheus.Counter
	markedViewed         *prometheus.CounterVec
	markRequests         *prometheus.CounterVec
	cacheLookups         *prometheus.CounterVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		activitiesCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bounties_activities_created_total",
			Help: "Activity rows synthesized from comments, by owner kind.",
		}, []string{"owner"}),
		commentsWithoutOwner: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bounties_comments_without_owner_total",
			Help: "Comments skipped because neither a bounty nor a fulfillment owns them.",
		}),
		markedViewed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bounties_marked_viewed_rows_total",
			Help: "Rows flipped to viewed.",
		}, []string{"kind", "scope"}),
		markRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bounties_mark_viewed_requests_total",
			Help: "Mark-viewed operations that succeeded.",
		}, []string{"kind", "scope"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bounties_list_cache_lookups_total",
			Help: "Listing cache lookups by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		c.activitiesCreated,
		c.commentsWithoutOwner,
		c.markedViewed,
		c.markRequests,
		c.cacheLookups,
	)

	return c
}

func (c *Collector) ActivityCreated(owner string) {
	c.activitiesCreated.WithLabelValues(owner).Inc()
}

func (c *Collector) CommentWithoutOwner() {
	c.commentsWithoutOwner.Inc()
}

func (c *Collector) MarkedViewed(kind, scope string, rows int64) {
	c.markRequests.WithLabelValues(kind, scope).Inc()
	c.markedViewed.WithLabelValues(kind, scope).Add(float64(rows))
}

func (c *Collector) CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.cacheLookups.WithLabelValues(result).Inc()
}

type Nop struct{}

func (Nop) ActivityCreated(string)             {}
func (Nop) CommentWithoutOwner()               {}
func (Nop) MarkedViewed(string, string, int64) {}
func (Nop) CacheLookup(bool)                   {}
