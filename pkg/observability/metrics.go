package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricRunsTotal         = "refminer.detection.runs.total"
	metricRunDuration       = "refminer.detection.run.duration.seconds"
	metricCandidatesTotal   = "refminer.detection.candidates.total"
	metricRefactoringsTotal = "refminer.detection.refactorings.total"

	attrStatus = "status"
	attrKind   = "kind"
	attrStage  = "stage"

	// StatusOK marks a completed run.
	StatusOK = "ok"
	// StatusError marks a failed or cancelled run.
	StatusError = "error"
)

//nolint:gochecknoglobals // histogram layout.
var durationBucketBoundaries = []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}

// RunStats summarizes one detection run.
type RunStats struct {
	Status   string
	Duration time.Duration
	// Candidates counts candidate pairs per stage, e.g. "prefilter", "mapped".
	Candidates map[string]int64
	// Refactorings counts detected instances per kind tag.
	Refactorings map[string]int64
}

// DetectionMetrics holds the OTel instruments of detection runs.
type DetectionMetrics struct {
	runsTotal         metric.Int64Counter
	runDuration       metric.Float64Histogram
	candidatesTotal   metric.Int64Counter
	refactoringsTotal metric.Int64Counter
}

// NewDetectionMetrics creates the instruments from mt.
func NewDetectionMetrics(mt metric.Meter) (*DetectionMetrics, error) {
	runs, err := mt.Int64Counter(metricRunsTotal,
		metric.WithDescription("Total detection runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRunsTotal, err)
	}

	duration, err := mt.Float64Histogram(metricRunDuration,
		metric.WithDescription("Detection run duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRunDuration, err)
	}

	candidates, err := mt.Int64Counter(metricCandidatesTotal,
		metric.WithDescription("Candidate operation pairs by stage"),
		metric.WithUnit("{pair}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricCandidatesTotal, err)
	}

	refactorings, err := mt.Int64Counter(metricRefactoringsTotal,
		metric.WithDescription("Detected refactorings by kind"),
		metric.WithUnit("{refactoring}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRefactoringsTotal, err)
	}

	return &DetectionMetrics{
		runsTotal:         runs,
		runDuration:       duration,
		candidatesTotal:   candidates,
		refactoringsTotal: refactorings,
	}, nil
}

// RecordRun records a completed run. Safe on a nil receiver.
func (dm *DetectionMetrics) RecordRun(ctx context.Context, stats RunStats) {
	if dm == nil {
		return
	}

	status := metric.WithAttributes(attribute.String(attrStatus, stats.Status))
	dm.runsTotal.Add(ctx, 1, status)
	dm.runDuration.Record(ctx, stats.Duration.Seconds(), status)

	for stage, n := range stats.Candidates {
		dm.candidatesTotal.Add(ctx, n, metric.WithAttributes(attribute.String(attrStage, stage)))
	}

	for kind, n := range stats.Refactorings {
		dm.refactoringsTotal.Add(ctx, n, metric.WithAttributes(attribute.String(attrKind, kind)))
	}
}
