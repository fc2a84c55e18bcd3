package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OccurrencesMaterialized counts occurrence rows created per policy.
	OccurrencesMaterialized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dualtrack_occurrences_materialized_total",
			Help: "Total number of daily task occurrences created, by materialization policy",
		},
		[]string{"policy"},
	)

	// OccurrencesCompleted counts completion transitions (no-op repeats excluded).
	OccurrencesCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dualtrack_occurrences_completed_total",
			Help: "Total number of task occurrences marked complete by the user",
		},
	)

	// JournalEntries counts journal writes by kind (achievement/gratitude/important).
	JournalEntries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dualtrack_journal_entries_total",
			Help: "Total number of journal entries recorded, by kind",
		},
		[]string{"kind"},
	)

	// PhotoUploads counts photo attachment attempts by outcome.
	PhotoUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dualtrack_photo_uploads_total",
			Help: "Total number of photo uploads, by status (saved/rejected/failed)",
		},
		[]string{"status"},
	)
)

// RecordMaterialized registers n newly created occurrences.
func RecordMaterialized(policy string, n int) {
	if n > 0 {
		OccurrencesMaterialized.WithLabelValues(policy).Add(float64(n))
	}
}

// RecordPhotoUpload registers one photo attachment attempt.
func RecordPhotoUpload(status string) {
	PhotoUploads.WithLabelValues(status).Inc()
}
