// Package diff compares two declaration models and reports the operation
// level refactorings that explain the differences.
package diff

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/Sumatoshi-tech/refminer/pkg/mapper"
	"github.com/Sumatoshi-tech/refminer/pkg/observability"
	"github.com/Sumatoshi-tech/refminer/pkg/refactoring"
	"github.com/Sumatoshi-tech/refminer/pkg/signature"
	"github.com/Sumatoshi-tech/refminer/pkg/uml"
)

// ErrNilModel is returned when either snapshot model is missing.
var ErrNilModel = errors.New("nil model")

const tracerName = "github.com/Sumatoshi-tech/refminer/pkg/diff"

// Candidate stages reported to metrics.
const (
	stagePrefiltered = "prefiltered"
	stageMapped      = "mapped"
	stageAccepted    = "accepted"
)

// Options configures a Detector.
type Options struct {
	// Workers bounds concurrent matching units; 0 means GOMAXPROCS.
	Workers int
	Mapper  mapper.Options
	// FingerprintFloor skips body alignment for cross-class candidates whose
	// fingerprint similarity is below it. Zero disables the prefilter.
	FingerprintFloor  float64
	FingerprintHashes int
	ShingleSize       int

	Logger  *slog.Logger
	Tracer  trace.Tracer
	Metrics *observability.DetectionMetrics
}

// Detector finds refactorings between two snapshots. It is safe for
// concurrent use.
type Detector struct {
	opts Options
}

// NewDetector creates a detector. Nil logger and tracer fall back to the
// process defaults.
func NewDetector(opts Options) *Detector {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if opts.Tracer == nil {
		opts.Tracer = otel.Tracer(tracerName)
	}

	return &Detector{opts: opts}
}

// run carries the per-invocation state shared by all units.
type run struct {
	*Detector

	before  *uml.Model
	after   *uml.Model
	matcher signature.Matcher
	context refactoring.ClassContext

	mu         sync.Mutex
	candidates map[string]int64
}

func (r *run) count(stage string, n int64) {
	r.mu.Lock()
	r.candidates[stage] += n
	r.mu.Unlock()
}

// Detect returns the refactorings between before and after, ordered by
// left-side location, then kind priority, then rendering. The result does
// not depend on the worker count.
func (d *Detector) Detect(ctx context.Context, before, after *uml.Model) ([]*refactoring.Refactoring, error) {
	if before == nil || after == nil {
		return nil, ErrNilModel
	}

	start := time.Now()

	ctx, span := d.opts.Tracer.Start(ctx, "refminer.detect", trace.WithAttributes(
		attribute.Int("detection.classes.before", len(before.Classes())),
		attribute.Int("detection.classes.after", len(after.Classes())),
	))
	defer span.End()

	r := &run{
		Detector:   d,
		before:     before,
		after:      after,
		matcher:    signature.NewMatcher(unionOracle{before, after}),
		candidates: make(map[string]int64),
	}
	r.context = afterContext{model: after, matcher: r.matcher}

	result, err := r.detect(ctx)

	stats := observability.RunStats{
		Status:       observability.StatusOK,
		Duration:     time.Since(start),
		Candidates:   r.candidates,
		Refactorings: countByKind(result),
	}

	if err != nil {
		stats.Status = observability.StatusError
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		d.opts.Metrics.RecordRun(ctx, stats)

		return nil, err
	}

	span.SetAttributes(attribute.Int("detection.refactorings", len(result)))
	d.opts.Metrics.RecordRun(ctx, stats)

	d.opts.Logger.InfoContext(ctx, "detection finished",
		slog.Int("refactorings", len(result)),
		slog.Duration("elapsed", stats.Duration))

	return result, nil
}

func (r *run) detect(ctx context.Context) ([]*refactoring.Refactoring, error) {
	units, err := r.matchClasses(ctx)
	if err != nil {
		return nil, err
	}

	var (
		result  []*refactoring.Refactoring
		removed []*uml.Operation
		added   []*uml.Operation
	)

	for _, u := range units {
		result = append(result, u.refactorings...)
		removed = append(removed, u.removed...)
		added = append(added, u.added...)
	}

	removed = append(removed, orphanOperations(r.before, r.after)...)
	added = append(added, orphanOperations(r.after, r.before)...)

	moves, err := r.matchMoves(ctx, removed, added)
	if err != nil {
		return nil, err
	}

	result = append(result, moves...)
	refactoring.Sort(result)

	return result, nil
}

// orphanOperations returns the operations of classes of m absent from other.
func orphanOperations(m, other *uml.Model) []*uml.Operation {
	var ops []*uml.Operation

	for _, c := range m.Classes() {
		if other.Class(c.Name) == nil {
			ops = append(ops, c.Operations()...)
		}
	}

	return ops
}

func (r *run) group(ctx context.Context) (*errgroup.Group, context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)

	return g, gctx
}

func checkContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("detection cancelled: %w", err)
	}

	return nil
}

func countByKind(list []*refactoring.Refactoring) map[string]int64 {
	counts := make(map[string]int64)
	for _, ref := range list {
		counts[ref.Kind().Tag()]++
	}

	return counts
}

// sortedClassNames returns the names of classes declared in both models.
func sortedClassNames(before, after *uml.Model) []string {
	var names []string

	for _, c := range before.Classes() {
		if after.Class(c.Name) != nil {
			names = append(names, c.Name)
		}
	}

	slices.Sort(names)

	return names
}
