package mapper

import (
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/Sumatoshi-tech/refminer/pkg/decomposition"
	"github.com/Sumatoshi-tech/refminer/pkg/levenshtein"
	"github.com/Sumatoshi-tech/refminer/pkg/uml"
)

// MatchKind classifies a mapped pair.
type MatchKind uint8

// Match kinds.
const (
	Exact MatchKind = iota + 1
	Replaced
)

func (k MatchKind) String() string {
	switch k {
	case Exact:
		return "exact"
	case Replaced:
		return "replaced"
	default:
		return "unknown"
	}
}

// Pair is one original fragment mapped to its revised counterpart.
type Pair struct {
	Left       decomposition.Fragment
	Right      decomposition.Fragment
	Kind       MatchKind
	Similarity float64
}

// BodyMapper holds the alignment of two operation bodies.
// It is immutable after New returns.
type BodyMapper struct {
	left      *uml.Operation
	right     *uml.Operation
	leftRoot  *decomposition.CompositeStatement
	rightRoot *decomposition.CompositeStatement
	leftTree  *decomposition.Tree
	rightTree *decomposition.Tree

	leftLeaves      []*decomposition.LeafStatement
	rightLeaves     []*decomposition.LeafStatement
	leftComposites  []*decomposition.CompositeStatement
	rightComposites []*decomposition.CompositeStatement

	leafPairs      []Pair
	compositePairs []Pair
	leftToRight    map[decomposition.Fragment]decomposition.Fragment
	rightToLeft    map[decomposition.Fragment]decomposition.Fragment

	lev  levenshtein.Context
	opts Options
}

// New aligns the bodies of left and right. Operations without a body yield
// an empty mapping.
func New(left, right *uml.Operation, opts Options) *BodyMapper {
	m := &BodyMapper{
		left:        left,
		right:       right,
		opts:        opts.withDefaults(),
		leftToRight: make(map[decomposition.Fragment]decomposition.Fragment),
		rightToLeft: make(map[decomposition.Fragment]decomposition.Fragment),
	}

	m.leftRoot, m.leftTree = left.Body.Root(), left.Body.Tree()
	m.rightRoot, m.rightTree = right.Body.Root(), right.Body.Tree()

	m.leftLeaves, m.leftComposites = left.Body.Leaves(), left.Body.InnerNodes()
	m.rightLeaves, m.rightComposites = right.Body.Leaves(), right.Body.InnerNodes()

	if m.leftRoot == nil || m.rightRoot == nil {
		return m
	}

	m.mapLeaves()
	m.mapComposites()

	return m
}

// Left returns the original operation.
func (m *BodyMapper) Left() *uml.Operation { return m.left }

// Right returns the revised operation.
func (m *BodyMapper) Right() *uml.Operation { return m.right }

func normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func (m *BodyMapper) record(left, right decomposition.Fragment, similarity float64) Pair {
	kind := Replaced
	if normalize(left.String()) == normalize(right.String()) {
		kind = Exact
	}

	m.leftToRight[left] = right
	m.rightToLeft[right] = left

	return Pair{Left: left, Right: right, Kind: kind, Similarity: similarity}
}

// mapLeaves aligns leaves by a line diff over their normalized texts, then
// pairs replacements inside each delete/insert hunk, then pairs reordered
// identical leaves.
func (m *BodyMapper) mapLeaves() {
	dmp := diffmatchpatch.New()
	src, dst, _ := dmp.DiffLinesToRunes(leafLines(m.leftLeaves), leafLines(m.rightLeaves))
	diffs := dmp.DiffMainRunes(src, dst, false)

	var (
		li, ri       int
		deleted      []int
		inserted     []int
		matchedLeft  = make(map[int]int)
		matchedRight = make(map[int]bool)
	)

	flush := func() {
		for l, r := range m.resolveHunk(deleted, inserted) {
			matchedLeft[l] = r
			matchedRight[r] = true
		}

		deleted, inserted = deleted[:0], inserted[:0]
	}

	for _, edit := range diffs {
		size := utf8.RuneCountInString(edit.Text)

		switch edit.Type {
		case diffmatchpatch.DiffDelete:
			for range size {
				deleted = append(deleted, li)
				li++
			}
		case diffmatchpatch.DiffInsert:
			for range size {
				inserted = append(inserted, ri)
				ri++
			}
		case diffmatchpatch.DiffEqual:
			flush()

			for range size {
				matchedLeft[li] = ri
				matchedRight[ri] = true
				li++
				ri++
			}
		}
	}

	flush()
	m.pairReordered(matchedLeft, matchedRight)

	for l := range m.leftLeaves {
		r, ok := matchedLeft[l]
		if !ok {
			continue
		}

		left, right := m.leftLeaves[l], m.rightLeaves[r]
		m.leafPairs = append(m.leafPairs, m.record(left, right, m.lev.Similarity(normalize(left.String()), normalize(right.String()))))
	}
}

func leafLines(leaves []*decomposition.LeafStatement) string {
	var sb strings.Builder

	for _, leaf := range leaves {
		sb.WriteString(normalize(leaf.String()))
		sb.WriteByte('\n')
	}

	return sb.String()
}

type leafCandidate struct {
	left, right int
	similarity  float64
	depthDelta  int
	distance    int
}

// resolveHunk greedily pairs deleted and inserted leaves of one hunk by
// similarity without crossing already accepted pairs.
func (m *BodyMapper) resolveHunk(deleted, inserted []int) map[int]int {
	if len(deleted) == 0 || len(inserted) == 0 {
		return nil
	}

	var candidates []leafCandidate

	for di, l := range deleted {
		for ii, r := range inserted {
			left, right := m.leftLeaves[l], m.rightLeaves[r]

			similarity := m.lev.Similarity(normalize(left.String()), normalize(right.String()))
			if similarity < m.opts.ReplacementThreshold {
				continue
			}

			candidates = append(candidates, leafCandidate{
				left:       l,
				right:      r,
				similarity: similarity,
				depthDelta: abs(left.Depth() - right.Depth()),
				distance:   abs(di - ii),
			})
		}
	}

	sortLeafCandidates(candidates)

	accepted := make(map[int]int)

	for _, c := range candidates {
		if _, used := accepted[c.left]; used || containsValue(accepted, c.right) || crosses(accepted, c.left, c.right) {
			continue
		}

		accepted[c.left] = c.right
	}

	return accepted
}

func crosses(accepted map[int]int, left, right int) bool {
	for l, r := range accepted {
		if (l < left && r > right) || (l > left && r < right) {
			return true
		}
	}

	return false
}

func containsValue(pairs map[int]int, value int) bool {
	for _, v := range pairs {
		if v == value {
			return true
		}
	}

	return false
}

// pairReordered pairs still unmatched leaves whose normalized texts are identical.
func (m *BodyMapper) pairReordered(matchedLeft map[int]int, matchedRight map[int]bool) {
	for l, left := range m.leftLeaves {
		if _, ok := matchedLeft[l]; ok {
			continue
		}

		text := normalize(left.String())

		for r, right := range m.rightLeaves {
			if !matchedRight[r] && normalize(right.String()) == text {
				matchedLeft[l] = r
				matchedRight[r] = true

				break
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
