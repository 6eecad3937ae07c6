package levenshtein

import "unicode/utf8"

// Similarity returns 1 - Distance/max(len) in runes, in [0, 1].
// Two empty strings are fully similar.
func (ctx *Context) Similarity(str1, str2 string) float64 {
	if str1 == str2 {
		return 1
	}

	longest := max(utf8.RuneCountInString(str1), utf8.RuneCountInString(str2))

	return 1 - float64(ctx.Distance(str1, str2))/float64(longest)
}

// Similarity is Context.Similarity on a fresh context.
func Similarity(str1, str2 string) float64 {
	var ctx Context

	return ctx.Similarity(str1, str2)
}
