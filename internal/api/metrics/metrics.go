// Package metrics defines and registers all custom Prometheus metrics for
// the issue tracker API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Registration happens at import time via promauto; the HTTP request
// counters and latency histograms come from the echoprometheus middleware
// registered in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "issuetracker"

// AuthFailuresTotal counts rejected authentication attempts at the
// middleware choke point.
// Label:
//   - reason: "missing_header", "malformed_header", or "invalid_token"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by the auth middleware.",
	},
	[]string{"reason"},
)

// OrganizationsCreatedTotal counts newly created organizations.
var OrganizationsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "organizations_created_total",
		Help:      "Total number of organizations created.",
	},
)

// IssuesCreatedTotal counts newly created issues.
// Label:
//   - status: the canonical status the issue was created with
var IssuesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "issues_created_total",
		Help:      "Total number of issues created, by canonical status.",
	},
	[]string{"status"},
)

// AuditQueueDepth tracks the number of audit events waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index ("0", "1", ...)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditErrorsTotal counts audit events that could not be recorded.
// Label:
//   - reason: "queue_full" or "write_failed"
var AuditErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_errors_total",
		Help:      "Total number of audit events dropped or failed to persist.",
	},
	[]string{"reason"},
)
