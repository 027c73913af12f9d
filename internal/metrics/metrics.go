package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "insta_media",
			Subsystem: "transport",
			Name:      "requests_total",
			Help:      "Total number of private API requests",
		},
		[]string{"request", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "insta_media",
			Subsystem: "transport",
			Name:      "request_duration_seconds",
			Help:      "Private API request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"request"},
	)

	PublishTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "insta_media",
			Subsystem: "media",
			Name:      "publish_total",
			Help:      "Publish attempts by outcome",
		},
		[]string{"result"},
	)

	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "insta_media",
			Subsystem: "telegram",
			Name:      "commands_total",
			Help:      "Telegram commands handled by outcome",
		},
		[]string{"command", "result"},
	)

	JournalCleanupRows = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "insta_media",
			Subsystem: "journal",
			Name:      "cleanup_rows_total",
			Help:      "Journal rows removed by the cleanup job",
		},
	)
)

// RecordRequest records a private API request. status is the HTTP code or
// "error" when no response arrived.
func RecordRequest(request, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(request, status).Inc()
	RequestDuration.WithLabelValues(request).Observe(durationSec)
}

func RecordPublish(result string) {
	PublishTotal.WithLabelValues(result).Inc()
}

func RecordCommand(command, result string) {
	CommandsTotal.WithLabelValues(command, result).Inc()
}

func RecordCleanup(rows int64) {
	JournalCleanupRows.Add(float64(rows))
}
