package lifecycle

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "warden",
		Name:      "lifecycle_transitions_total",
		Help:      "Lifecycle state transitions, labelled by source and target state.",
	}, []string{"from", "to"})

	pollTicksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "warden",
		Name:      "poll_ticks_total",
		Help:      "Readiness poll ticks issued while waiting for a droplet to boot.",
	})

	provisionSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "warden",
		Name:      "provision_duration_seconds",
		Help:      "Wall time spent running the provisioning script.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	})
)
