package verify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	checksTotal   *prometheus.CounterVec
	failuresTotal *prometheus.CounterVec
	fillerErrors  *prometheus.CounterVec
}

// newMetrics creates the verifier metrics. A nil registerer leaves them
// unregistered.
func newMetrics(reg prometheus.Registerer) *metrics {
	return &metrics{
		checksTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "memfill",
			Name:      "checks_total",
			Help:      "Total number of filler checks run.",
		}, []string{"filler", "probe"}),
		failuresTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "memfill",
			Name:      "check_failures_total",
			Help:      "Total number of filler checks that found a mismatching byte.",
		}, []string{"filler", "probe"}),
		fillerErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "memfill",
			Name:      "filler_errors_total",
			Help:      "Total number of fill requests rejected by a filler.",
		}, []string{"filler"}),
	}
}
