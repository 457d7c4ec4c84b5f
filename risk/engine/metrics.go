package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var evaluationCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "riskengine_evaluations",
	Help: "Number of completed risk evaluations, by resulting action",
}, []string{"action"})

var tasksFailedCount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "riskengine_tasks_failed",
	Help: "Number of risk-check tasks that failed and may be retried",
})

var contentMissingCount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "riskengine_content_missing",
	Help: "Number of risk-check tasks skipped because the content was gone",
})

var moderationDegradedCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "riskengine_moderation_degraded",
	Help: "Number of remote moderation calls that failed and abstained, by signal",
}, []string{"signal"})
