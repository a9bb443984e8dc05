// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the superlista counters. A nil *Collector is valid and
// records nothing, so components can run without metrics in tests.
type Collector struct {
	itemMutations   *prometheus.CounterVec
	historyFailures *prometheus.CounterVec
	pushSent        prometheus.Counter
	pushFailed      *prometheus.CounterVec
	refreshCycles   *prometheus.CounterVec
}

// NewCollector creates a Collector and registers it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		itemMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "superlista_item_mutations_total",
			Help: "Item mutations by action.",
		}, []string{"action"}),
		historyFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "superlista_history_record_failures_total",
			Help: "History appends that failed, by action type.",
		}, []string{"action_type"}),
		pushSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "superlista_push_sent_total",
			Help: "Push notifications delivered to the push service.",
		}),
		pushFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "superlista_push_failed_total",
			Help: "Push notifications that failed, by reason.",
		}, []string{"reason"}),
		refreshCycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "superlista_refresh_cycles_total",
			Help: "Scheduled refreshes by subscriber and result.",
		}, []string{"subscriber", "result"}),
	}

	reg.MustRegister(
		c.itemMutations,
		c.historyFailures,
		c.pushSent,
		c.pushFailed,
		c.refreshCycles,
	)

	return c
}

func (c *Collector) RecordItemMutation(action string) {
	if c == nil {
		return
	}
	c.itemMutations.WithLabelValues(action).Inc()
}

func (c *Collector) RecordHistoryFailure(actionType string) {
	if c == nil {
		return
	}
	c.historyFailures.WithLabelValues(actionType).Inc()
}

func (c *Collector) RecordPushSent() {
	if c == nil {
		return
	}
	c.pushSent.Inc()
}

// RecordPushFailure counts a failed send. reason is "expired" or "error".
func (c *Collector) RecordPushFailure(reason string) {
	if c == nil {
		return
	}
	c.pushFailed.WithLabelValues(reason).Inc()
}

func (c *Collector) RecordRefresh(subscriber string, err error) {
	if c == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.refreshCycles.WithLabelValues(subscriber, result).Inc()
}

// Handler returns the Prometheus scrape handler.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
