package diff

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"github.com/Sumatoshi-tech/refminer/pkg/mapper"
	"github.com/Sumatoshi-tech/refminer/pkg/refactoring"
	"github.com/Sumatoshi-tech/refminer/pkg/uml"
)

type moveCandidate struct {
	removed, added int
	mapping        *mapper.BodyMapper
	score          float64
	exact          int
	loops          int
	sameName       bool
}

// matchMoves pairs operations that disappeared from one class with
// operations that appeared in another. Each side is used at most once; the
// best scoring pairs win.
func (r *run) matchMoves(ctx context.Context, removed, added []*uml.Operation) ([]*refactoring.Refactoring, error) {
	if len(removed) == 0 || len(added) == 0 {
		return nil, nil
	}

	removedPrints, addedPrints := r.fingerprints(removed), r.fingerprints(added)
	perRemoved := make([][]moveCandidate, len(removed))

	g, gctx := r.group(ctx)

	for i, a := range removed {
		g.Go(func() error {
			if err := checkContext(gctx); err != nil {
				return err
			}

			for j, b := range added {
				if !r.moveSignature(a, b) {
					continue
				}

				if removedPrints != nil && removedPrints[i].Similarity(addedPrints[j]) < r.opts.FingerprintFloor {
					r.count(stagePrefiltered, 1)

					continue
				}

				m := mapper.New(a, b, r.opts.Mapper)
				r.count(stageMapped, 1)

				if !m.IsSimilar() || (a.Name != b.Name && m.MappedStatements() == 0) {
					continue
				}

				perRemoved[i] = append(perRemoved[i], moveCandidate{
					removed:  i,
					added:    j,
					mapping:  m,
					score:    m.Score(),
					exact:    m.ExactMatches(),
					loops:    m.PreservedLoopBindings(),
					sameName: a.Name == b.Name,
				})
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	candidates := slices.Concat(perRemoved...)
	slices.SortFunc(candidates, func(x, y moveCandidate) int {
		return cmp.Or(
			cmp.Compare(y.score, x.score),
			cmp.Compare(y.exact, x.exact),
			cmp.Compare(y.loops, x.loops),
			compareBool(y.sameName, x.sameName),
			cmp.Compare(x.removed, y.removed),
			cmp.Compare(x.added, y.added),
		)
	})

	usedRemoved := make(map[int]bool)
	usedAdded := make(map[int]bool)

	var result []*refactoring.Refactoring

	for _, c := range candidates {
		if usedRemoved[c.removed] || usedAdded[c.added] {
			continue
		}

		ref, ok := refactoring.Classify(refactoring.NewOperationMove(c.mapping), r.context)
		if !ok {
			continue
		}

		usedRemoved[c.removed], usedAdded[c.added] = true, true
		result = append(result, ref)

		r.opts.Logger.DebugContext(ctx, "move accepted",
			slog.String("kind", ref.Kind().Tag()),
			slog.String("from", c.mapping.Left().ClassName),
			slog.String("to", c.mapping.Right().ClassName),
			slog.Float64("score", c.score))
	}

	r.count(stageAccepted, int64(len(result)))

	return result, nil
}

// moveSignature reports whether b may be a moved copy of a: same name with
// an equal signature, or a different name with a signature that agrees
// otherwise. Constructors never move.
func (r *run) moveSignature(a, b *uml.Operation) bool {
	if a.ClassName == b.ClassName || a.IsConstructor() || b.IsConstructor() {
		return false
	}

	if a.Name == b.Name {
		return r.matcher.EqualSignature(a, b)
	}

	return r.matcher.EqualSignatureIgnoringOperationName(a, b)
}

// fingerprints returns nil when the prefilter is disabled.
func (r *run) fingerprints(ops []*uml.Operation) []*mapper.Fingerprint {
	if r.opts.FingerprintFloor <= 0 {
		return nil
	}

	prints := make([]*mapper.Fingerprint, len(ops))
	for i, op := range ops {
		prints[i] = mapper.NewFingerprint(op, r.opts.FingerprintHashes, r.opts.ShingleSize)
	}

	return prints
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}
