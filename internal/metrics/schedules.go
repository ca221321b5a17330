package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameCreatedSchedules = "created_schedules_total"
	NameDeletedSchedules = "deleted_schedules_total"
	NameCreatedComments  = "created_comments_total"
	NameDeletedComments  = "deleted_comments_total"
)

var CreatedSchedules = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameCreatedSchedules,
		Help:      "Total created schedules",
		Namespace: Namespace,
	},
)

var DeletedSchedules = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameDeletedSchedules,
		Help:      "Total deleted schedules",
		Namespace: Namespace,
	},
)

var CreatedComments = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameCreatedComments,
		Help:      "Total created comments",
		Namespace: Namespace,
	},
)

// DeletedComments counts comments deleted one by one and comments removed
// along with their schedule.
var DeletedComments = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameDeletedComments,
		Help:      "Total deleted comments",
		Namespace: Namespace,
	},
)
