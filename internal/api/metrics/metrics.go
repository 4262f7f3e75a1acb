// Package metrics defines and registers all custom Prometheus metrics for
// the accounts API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// package load; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "accounts"

// RegistrationsTotal counts accounts created successfully.
// Label:
//   - role: the default role attached at registration (e.g. "ROLE_CLIENT")
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered, by default role.",
	},
	[]string{"role"},
)

// RegistrationFailuresTotal counts registrations rejected by the domain.
// Label:
//   - reason: "duplicate_username", "duplicate_email" or "role_not_found"
var RegistrationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registration_failures_total",
		Help:      "Total number of registrations rejected, by reason.",
	},
	[]string{"reason"},
)

// LoginAttemptsTotal counts credential verifications at the login endpoint.
// Label:
//   - result: "success" or "failure" (the failure cause is deliberately not
//     broken down further so the metric cannot leak which field was wrong)
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
