// Copyright (c) 2015, Arbo von Monkiewitsch All rights reserved.
// Use of this source code is governed by a BSD-style
// license.

// Package levenshtein calculates the Levenshtein edit distance between
// rendered statements and derives a normalized text similarity from it.
package levenshtein

const (
	asciiMax   = 256
	myersLimit = 64
)

// Context holds reusable buffers so that repeated Distance calls do not
// allocate. A Context is not safe for concurrent use.
type Context struct {
	column []int
	peq    [asciiMax]uint64
}

func (ctx *Context) intSlice(length int) []int {
	if cap(ctx.column) < length {
		ctx.column = make([]int, length)
	}

	return ctx.column[:length]
}

// Distance returns the minimum number of single-rune insertions, deletions
// or substitutions turning str1 into str2.
func (ctx *Context) Distance(str1, str2 string) int {
	s1 := []rune(str1)
	s2 := []rune(str2)

	if len(s1) > len(s2) {
		s1, s2 = s2, s1
	}

	switch {
	case len(s1) == 0:
		return len(s2)
	case len(s1) <= myersLimit:
		return ctx.distanceMyers64(s1, s2)
	default:
		return ctx.distanceDP(s1, s2)
	}
}

// distanceDP is the classic dynamic program in O(len(s1)) space.
func (ctx *Context) distanceDP(s1, s2 []rune) int {
	column := ctx.intSlice(len(s1) + 1)
	for row := range column {
		column[row] = row
	}

	for col, r2 := range s2 {
		diag := col
		column[0] = col + 1

		for row, r1 := range s1 {
			cost := 1
			if r1 == r2 {
				cost = 0
			}

			next := min(column[row+1]+1, column[row]+1, diag+cost)
			diag = column[row+1]
			column[row+1] = next
		}
	}

	return column[len(s1)]
}
