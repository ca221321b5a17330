package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameRegisteredUsers = "registered_users_total"
	NameDeletedUsers    = "deleted_users_total"
	NameLogins          = "logins_total"
	NamePurgedSessions  = "purged_sessions_total"
)

var RegisteredUsers = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameRegisteredUsers,
		Help:      "Total registered users",
		Namespace: Namespace,
	},
)

var DeletedUsers = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameDeletedUsers,
		Help:      "Total deleted users",
		Namespace: Namespace,
	},
)

var Logins = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameLogins,
		Help:      "Total login attempts",
		Namespace: Namespace,
	},
	[]string{LabelStatus},
)

var PurgedSessions = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NamePurgedSessions,
		Help:      "Total expired sessions purged",
		Namespace: Namespace,
	},
)
