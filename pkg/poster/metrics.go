package poster

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/wrouesnel/posterserv/version"
)

//nolint:gochecknoglobals
var itemsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: version.Name,
	Subsystem: "poster",
	Name:      "items_total",
	Help:      "Poster items by final status",
}, []string{"status"})
