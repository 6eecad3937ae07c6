package diff

import (
	"context"
	"log/slog"
	"slices"

	"github.com/Sumatoshi-tech/refminer/pkg/mapper"
	"github.com/Sumatoshi-tech/refminer/pkg/refactoring"
	"github.com/Sumatoshi-tech/refminer/pkg/uml"
)

// classUnit is the outcome of matching the operations of one class present
// in both snapshots.
type classUnit struct {
	name         string
	refactorings []*refactoring.Refactoring
	removed      []*uml.Operation
	added        []*uml.Operation
}

// matchClasses runs one unit per common class. Units write to their own
// slot so the merged order follows class names.
func (r *run) matchClasses(ctx context.Context) ([]classUnit, error) {
	names := sortedClassNames(r.before, r.after)
	units := make([]classUnit, len(names))

	g, gctx := r.group(ctx)

	for i, name := range names {
		if err := checkContext(ctx); err != nil {
			_ = g.Wait()

			return nil, err
		}

		g.Go(func() error {
			if err := checkContext(gctx); err != nil {
				return err
			}

			units[i] = r.matchClass(gctx, r.before.Class(name), r.after.Class(name))

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return units, nil
}

// matchClass pairs the operations of two versions of a class in three
// passes: identity, same name with changed types, then renames backed by a
// similar body. Leftovers are reported as removed and added.
func (r *run) matchClass(ctx context.Context, before, after *uml.Class) classUnit {
	unit := classUnit{name: before.Name}

	left := slices.Clone(before.Operations())
	right := slices.Clone(after.Operations())

	pair := func(match func(a, b *uml.Operation) bool, onMatch func(a, b *uml.Operation)) {
		for i := 0; i < len(left); i++ {
			j := slices.IndexFunc(right, func(b *uml.Operation) bool { return match(left[i], b) })
			if j < 0 {
				continue
			}

			onMatch(left[i], right[j])
			left = slices.Delete(left, i, i+1)
			right = slices.Delete(right, j, j+1)
			i--
		}
	}

	signatureChanges := func(a, b *uml.Operation) {
		unit.refactorings = append(unit.refactorings, refactoring.SignatureChanges(a, b)...)
	}

	pair((*uml.Operation).Equal, signatureChanges)
	pair(func(a, b *uml.Operation) bool {
		return a.Name == b.Name && r.matcher.EqualSignatureWithIdenticalNameIgnoringChangedTypes(a, b)
	}, signatureChanges)

	pair(r.renameCandidate, func(a, b *uml.Operation) {
		if ref, ok := refactoring.Classify(refactoring.NewOperationMoveFromPair(a, b), r.context); ok {
			unit.refactorings = append(unit.refactorings, ref)
		}

		signatureChanges(a, b)
	})

	unit.removed, unit.added = left, right

	r.opts.Logger.DebugContext(ctx, "class matched",
		slog.String("class", unit.name),
		slog.Int("refactorings", len(unit.refactorings)),
		slog.Int("removed", len(unit.removed)),
		slog.Int("added", len(unit.added)))

	return unit
}

// renameCandidate accepts two differently named operations of one class
// whose signatures agree and whose bodies share most statements.
func (r *run) renameCandidate(a, b *uml.Operation) bool {
	if a.Name == b.Name || a.IsConstructor() != b.IsConstructor() {
		return false
	}

	if !r.matcher.EqualSignatureIgnoringOperationName(a, b) && !r.matcher.CompatibleSignature(a, b) {
		return false
	}

	m := mapper.New(a, b, r.opts.Mapper)
	r.count(stageMapped, 1)

	return m.MappedStatements() > 0 && m.IsSimilar()
}
