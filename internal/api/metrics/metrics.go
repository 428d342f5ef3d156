// Package metrics defines and registers all custom Prometheus metrics for the
// forum API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and exposed on /metrics alongside the echoprometheus
// request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "forum"

// ── Account metrics ───────────────────────────────────────────────────────────

// AccountsRegisteredTotal counts successful registrations.
var AccountsRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_registered_total",
		Help:      "Total number of accounts registered.",
	},
)

// RoleChangesTotal counts role grants and revokes that changed an account.
// Repeated grants and revokes of absent roles are not counted.
// Labels:
//   - role: canonical role name (e.g. "MODERATOR")
//   - action: "add" or "remove"
var RoleChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_changes_total",
		Help:      "Total number of role change requests, by role and action.",
	},
	[]string{"role", "action"},
)

// AuthFailuresTotal counts rejected authentication attempts.
// Label:
//   - reason: "missing", "malformed", "invalid_credentials", "invalid_token" or "throttled"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of rejected authentication attempts, by reason.",
	},
	[]string{"reason"},
)

// ── Post metrics ──────────────────────────────────────────────────────────────

// PostsCreatedTotal counts newly created posts.
var PostsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts created.",
	},
)

// PostLikesTotal counts likes applied to posts.
var PostLikesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "post_likes_total",
		Help:      "Total number of likes added to posts.",
	},
)

// CommentsAddedTotal counts comments appended to posts.
var CommentsAddedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_added_total",
		Help:      "Total number of comments added to posts.",
	},
)

// PostQueryResults observes how many posts a finder query returned.
// Label:
//   - finder: "author", "tags" or "period"
var PostQueryResults = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "post_query_results",
		Help:      "Number of posts returned by finder queries.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
	},
	[]string{"finder"},
)
