// Package mapper aligns the statements of two matched operation bodies.
//
// The alignment maps every original leaf and composite statement to at most
// one revised counterpart. Pairs are either exact (identical rendered text)
// or replacements; everything else is a deletion or an insertion. Ordering of
// siblings and ancestor relations are preserved where possible; ties are
// broken by textual similarity.
package mapper

// Default thresholds.
const (
	DefaultReplacementThreshold = 0.5
	DefaultCompositeThreshold   = 0.5
)

// Options tunes the alignment.
type Options struct {
	// ReplacementThreshold is the minimum normalized text similarity for two
	// differing leaves to be paired as a replacement.
	ReplacementThreshold float64
	// CompositeThreshold is the minimum combined score for two composites of
	// the same kind to be paired.
	CompositeThreshold float64
}

// DefaultOptions returns the default thresholds.
func DefaultOptions() Options {
	return Options{
		ReplacementThreshold: DefaultReplacementThreshold,
		CompositeThreshold:   DefaultCompositeThreshold,
	}
}

func (o Options) withDefaults() Options {
	if o.ReplacementThreshold <= 0 {
		o.ReplacementThreshold = DefaultReplacementThreshold
	}

	if o.CompositeThreshold <= 0 {
		o.CompositeThreshold = DefaultCompositeThreshold
	}

	return o
}
