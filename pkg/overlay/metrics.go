package overlay

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/wrouesnel/posterserv/version"
)

//nolint:gochecknoglobals
var (
	compositionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: version.Name,
		Subsystem: "overlay",
		Name:      "compositions_total",
		Help:      "Poster compositions by result",
	}, []string{"result"})

	overflowTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: version.Name,
		Subsystem: "overlay",
		Name:      "overflow_total",
		Help:      "Compositions whose text did not fit at the minimum font size",
	})

	compositionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: version.Name,
		Subsystem: "overlay",
		Name:      "composition_duration_seconds",
		Help:      "Time spent compositing, including waiting for the surface",
		Buckets:   prometheus.DefBuckets,
	})

	solverIterations = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: version.Name,
		Subsystem: "overlay",
		Name:      "solver_iterations",
		Help:      "Font-fit attempts per composition",
		Buckets:   prometheus.LinearBuckets(1, 1, maxFitIterations),
	})
)
