package moderation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var textAPIDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name: "riskengine_moderation_text_api_duration_sec",
	Help: "Duration of remote text moderation API calls",
})

var textAPICount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "riskengine_moderation_text_api_count",
	Help: "Number of remote text moderation API calls, by HTTP status code",
}, []string{"status"})

var imageAPIDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name: "riskengine_moderation_image_api_duration_sec",
	Help: "Duration of remote image moderation API calls",
})

var imageAPICount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "riskengine_moderation_image_api_count",
	Help: "Number of remote image moderation API calls, by HTTP status code",
}, []string{"status"})
