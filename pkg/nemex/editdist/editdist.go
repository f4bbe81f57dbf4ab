// Package editdist computes the Levenshtein edit distance between two
// token sequences using a space-optimized, two-row dynamic-programming
// table.
package editdist

// Distance returns the Levenshtein edit distance between a and b: the
// minimum number of token insertions, deletions, or substitutions needed
// to turn a into b.
func Distance(a, b []string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

// DistanceString is Distance over two strings compared rune by rune.
func DistanceString(a, b string) int {
	return Distance(Runes(a), Runes(b))
}

// Runes splits s into a slice of single-rune strings, the token shape
// Distance expects when comparing character-by-character rather than
// token-by-token.
func Runes(s string) []string {
	runes := []rune(s)
	out := make([]string, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return out
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
