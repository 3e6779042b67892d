package bridge

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricSessionsBridged = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "agentbridge",
		Name:      "sessions_bridged_total",
		Help:      "Number of agent sessions bridged into local drivers.",
	})
	metricCommandsRouted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "agentbridge",
		Name:      "commands_routed_total",
		Help:      "Number of commands forwarded to the agent.",
	})
	metricCreatesAbsorbed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "agentbridge",
		Name:      "session_creates_absorbed_total",
		Help:      "Number of session-creation commands short-circuited locally.",
	})
	metricStashFlushes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "agentbridge",
		Name:      "stash_flushes_total",
		Help:      "Number of report stash flushes attempted at teardown.",
	})
	metricStashEntriesFlushed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "agentbridge",
		Name:      "stash_entries_flushed_total",
		Help:      "Total report entries transmitted from stash flushes.",
	})
)
