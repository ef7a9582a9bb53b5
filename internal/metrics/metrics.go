// Package metrics exposes the application's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LoginAttempts counts login attempts by result ("success" or "failure").
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gymapp_login_attempts_total",
		Help: "Login attempts by result.",
	}, []string{"result"})

	// StudentsCreated counts student registrations.
	StudentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gymapp_students_created_total",
		Help: "Student records created.",
	})

	// ActiveSessions tracks sessions currently known to the session gate.
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gymapp_active_sessions",
		Help: "Sessions currently tracked by the session gate.",
	})
)
