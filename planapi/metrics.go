package planapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	plansComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "planner_plans_computed_total",
		Help: "Number of tile plans computed successfully.",
	})
	tilesPlanned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "planner_tiles_planned_total",
		Help: "Number of tile descriptors emitted across all plans.",
	})
	validationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "planner_validation_failures_total",
		Help: "Number of config documents rejected by validation.",
	})
)
