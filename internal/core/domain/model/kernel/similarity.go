package kernel

import "strings"

// EditDistance returns the Levenshtein distance between a and b: the minimum
// number of single-rune insertions, deletions and substitutions turning a into b.
// It fills the full (len(a)+1)×(len(b)+1) matrix; inputs are compared as-is.
//
// Example:
//
//	kernel.EditDistance("kitten", "sitting") // 3
func EditDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)

	matrix := make([][]int, len(ra)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(rb)+1)
		matrix[i][0] = i
	}
	for j := range matrix[0] {
		matrix[0][j] = j
	}

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,
				matrix[i][j-1]+1,
				matrix[i-1][j-1]+cost,
			)
		}
	}

	return matrix[len(ra)][len(rb)]
}

// Similarity scores how alike two free-text values are, in [0, 1].
//
// Both inputs are trimmed and lower-cased first. Two empty values score 0
// (missing data is never evidence of a match); equal values score 1; anything
// else scores 1 - EditDistance/maxLen, with lengths counted in runes.
//
// Example:
//
//	kernel.Similarity(" Pune ", "pune")    // 1
//	kernel.Similarity("Mumbai", "Mumbay")  // 0.8333…
//	kernel.Similarity("", "")              // 0
func Similarity(a, b string) float64 {
	a, b = Normalize(a), Normalize(b)
	if a == "" && b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	maxLen := max(len([]rune(a)), len([]rune(b)))
	return 1 - float64(EditDistance(a, b))/float64(maxLen)
}

// Normalize trims surrounding whitespace and lower-cases s. It is the single
// normalisation used for cache keys, city equality, address containment and
// fuzzy scoring.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
