package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	RegistrationsSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "portal_registrations_submitted_total", Help: "Total completed registration submissions"},
	)
	RegistrationFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "portal_registration_failures_total", Help: "Total registration submissions that failed unexpectedly"},
	)
	EventsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "portal_events_created_total", Help: "Total events created and activated"},
	)
	EventsDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "portal_events_deleted_total", Help: "Total events deleted"},
	)

	registerOnce sync.Once
)

// Register adds the portal collectors to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RegistrationsSubmitted, RegistrationFailures, EventsCreated, EventsDeleted)
	})
}
