// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xmlgen_generations_completed_total",
			Help: "Total number of XML documents generated and logged",
		},
		[]string{"template"},
	)

	GenerationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xmlgen_generations_failed_total",
			Help: "Total number of failed generation attempts",
		},
		[]string{"template", "error_code"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "xmlgen_generation_duration_seconds",
			Help: "Duration of a full generate-render-log cycle in seconds",
		},
		[]string{"template"},
	)

	TemplateListings = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "xmlgen_template_listings_total",
			Help: "Total number of template directory scans served",
		},
	)
)
