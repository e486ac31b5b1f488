package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dailypush_registrations_total",
			Help: "Total number of registered users",
		},
	)

	loginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dailypush_logins_total",
			Help: "Login attempts by result",
		},
		[]string{"result"},
	)
)
