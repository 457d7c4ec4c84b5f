package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("riskd")

var tasksDequeuedCount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "riskd_tasks_dequeued",
	Help: "Number of risk-check tasks dequeued by workers",
})
