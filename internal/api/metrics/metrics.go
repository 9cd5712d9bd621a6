// Package metrics defines the custom Prometheus metrics for the marketplace
// API. It is the single source of truth for metric names, labels, and help
// strings. Metrics register themselves with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// PropertiesCreatedTotal counts newly created listings.
// Label:
//   - type: "house" or "land"
var PropertiesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "properties_created_total",
		Help:      "Total number of property listings created, by type.",
	},
	[]string{"type"},
)

// SearchesTotal counts executed listing searches.
// Label:
//   - kind: "text" when a free-text query was supplied, "filter" otherwise
var SearchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Total number of listing searches, by kind (text/filter).",
	},
	[]string{"kind"},
)

// AdminActionsTotal counts moderation actions performed by administrators.
// Label:
//   - action: "set_status", "toggle_featured", "delete_property", "delete_user"
var AdminActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_actions_total",
		Help:      "Total number of administrative moderation actions, by action.",
	},
	[]string{"action"},
)
