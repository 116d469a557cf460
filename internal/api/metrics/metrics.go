// Package metrics defines and registers all custom Prometheus metrics for the
// account API. It is the single source of truth for metric names, labels, and
// help strings; metrics auto-register with the default registry at import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "account"

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "email_taken", or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts authentication attempts. Rejected credentials are one
// bucket on purpose: unknown email and wrong password are not distinguished
// anywhere, metrics included.
// Label:
//   - result: "success", "rejected", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// PasswordHashDuration measures bcrypt work, the dominant CPU cost of the
// register and login paths.
// Label:
//   - op: "hash" (registration) or "verify" (login)
var PasswordHashDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_hash_duration_seconds",
		Help:      "Duration of bcrypt password hashing and verification.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"op"},
)

// ProfileCacheTotal counts profile cache lookups for GET /auth/me. A cache
// failure is "error", not "miss", so Redis outages stay visible.
// Label:
//   - result: "hit", "miss", or "error"
var ProfileCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_cache_total",
		Help:      "Total number of profile cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
