package mapper

import (
	"cmp"
	"slices"

	"github.com/Sumatoshi-tech/refminer/pkg/decomposition"
)

func sortLeafCandidates(candidates []leafCandidate) {
	slices.SortFunc(candidates, func(a, b leafCandidate) int {
		return cmp.Or(
			cmp.Compare(b.similarity, a.similarity),
			cmp.Compare(a.depthDelta, b.depthDelta),
			cmp.Compare(a.distance, b.distance),
			cmp.Compare(a.left, b.left),
			cmp.Compare(a.right, b.right),
		)
	})
}

type compositeCandidate struct {
	left, right *decomposition.CompositeStatement
	leftPos     int
	rightPos    int
	score       float64
	depthDelta  int
}

type compositePair struct {
	left, right *decomposition.CompositeStatement
}

// mapComposites pairs the roots, then greedily pairs composites of the same
// element type by the mean of text similarity and child-leaf overlap,
// keeping ancestor relations consistent with the pairs already accepted.
func (m *BodyMapper) mapComposites() {
	accepted := []compositePair{{left: m.leftRoot, right: m.rightRoot}}
	m.compositePairs = append(m.compositePairs,
		m.record(m.leftRoot, m.rightRoot, m.lev.Similarity(m.leftRoot.String(), m.rightRoot.String())))

	var candidates []compositeCandidate

	for lp, left := range m.leftComposites {
		if left == m.leftRoot {
			continue
		}

		for rp, right := range m.rightComposites {
			if right == m.rightRoot || left.ElementType() != right.ElementType() {
				continue
			}

			score := m.compositeScore(left, right)
			if score < m.opts.CompositeThreshold {
				continue
			}

			candidates = append(candidates, compositeCandidate{
				left:       left,
				right:      right,
				leftPos:    lp,
				rightPos:   rp,
				score:      score,
				depthDelta: abs(left.Depth() - right.Depth()),
			})
		}
	}

	slices.SortFunc(candidates, func(a, b compositeCandidate) int {
		return cmp.Or(
			cmp.Compare(b.score, a.score),
			cmp.Compare(a.depthDelta, b.depthDelta),
			cmp.Compare(a.leftPos, b.leftPos),
			cmp.Compare(a.rightPos, b.rightPos),
		)
	})

	var pairs []Pair

	for _, c := range candidates {
		if _, used := m.leftToRight[c.left]; used {
			continue
		}

		if _, used := m.rightToLeft[c.right]; used {
			continue
		}

		if !m.consistent(accepted, c.left, c.right) {
			continue
		}

		accepted = append(accepted, compositePair{left: c.left, right: c.right})
		pairs = append(pairs, m.record(c.left, c.right, c.score))
	}

	order := make(map[*decomposition.CompositeStatement]int, len(m.leftComposites))
	for i, node := range m.leftComposites {
		order[node] = i
	}

	slices.SortFunc(pairs, func(a, b Pair) int {
		return cmp.Compare(order[a.Left.(*decomposition.CompositeStatement)], order[b.Left.(*decomposition.CompositeStatement)])
	})

	m.compositePairs = append(m.compositePairs, pairs...)
}

// compositeScore is the mean of rendered text similarity and the share of
// child leaves mapped into the candidate counterpart.
func (m *BodyMapper) compositeScore(left, right *decomposition.CompositeStatement) float64 {
	text := m.lev.Similarity(left.String(), right.String())

	leftLeaves, rightLeaves := left.Leaves(), right.Leaves()

	total := max(len(leftLeaves), len(rightLeaves))
	if total == 0 {
		return (text + 1) / 2
	}

	mapped := 0

	for _, leaf := range leftLeaves {
		if counterpart, ok := m.leftToRight[leaf]; ok && right.Contains(counterpart) {
			mapped++
		}
	}

	return (text + float64(mapped)/float64(total)) / 2
}

// consistent reports whether pairing left with right keeps every accepted
// pair's ancestor relation intact on both sides.
func (m *BodyMapper) consistent(accepted []compositePair, left, right *decomposition.CompositeStatement) bool {
	for _, p := range accepted {
		if m.leftTree.IsAncestor(p.left, left) != m.rightTree.IsAncestor(p.right, right) {
			return false
		}

		if m.leftTree.IsAncestor(left, p.left) != m.rightTree.IsAncestor(right, p.right) {
			return false
		}
	}

	return true
}
