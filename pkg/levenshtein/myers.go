package levenshtein

// distanceMyers64 is the bit-parallel edit distance of Myers, as explained by
// Hyyrö (2001). The pattern s1 must hold between 1 and 64 runes. ctx.peq is
// all-zero on entry and on return.
func (ctx *Context) distanceMyers64(s1, s2 []rune) int {
	for i, r := range s1 {
		if r < asciiMax {
			ctx.peq[r] |= 1 << i
		}
	}

	vp := ^uint64(0)
	vn := uint64(0)
	score := len(s1)
	mask := uint64(1) << (len(s1) - 1)

	for _, char := range s2 {
		pm := ctx.match(s1, char)

		xv := pm | vn
		xh := (((pm & vp) + vp) ^ vp) | pm
		hp := vn | ^(xh | vp)
		hn := vp & xh

		if hp&mask != 0 {
			score++
		} else if hn&mask != 0 {
			score--
		}

		hp = hp<<1 | 1
		hn <<= 1
		vp = hn | ^(xv | hp)
		vn = hp & xv
	}

	for _, r := range s1 {
		if r < asciiMax {
			ctx.peq[r] = 0
		}
	}

	return score
}

// match returns the positions of char in s1 as a bit vector.
func (ctx *Context) match(s1 []rune, char rune) uint64 {
	if char < asciiMax {
		return ctx.peq[char]
	}

	var pm uint64

	for i, r := range s1 {
		if r == char {
			pm |= 1 << i
		}
	}

	return pm
}
