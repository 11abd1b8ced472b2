// Package levenshtein measures edit distance between short strings and picks
// the closest name from a fixed vocabulary, for "did you mean" hints.
package levenshtein

import "strings"

// Distance returns the number of single-rune insertions, deletions and
// substitutions needed to turn a into b. It keeps one row of the matrix.
func Distance(a, b string) int {
	src, dst := []rune(a), []rune(b)
	if len(src) < len(dst) {
		src, dst = dst, src
	}

	row := make([]int, len(dst)+1)
	for j := range row {
		row[j] = j
	}

	for i, sr := range src {
		diag := row[0]
		row[0] = i + 1

		for j, dr := range dst {
			cost := 1
			if sr == dr {
				cost = 0
			}

			next := min(row[j+1]+1, row[j]+1, diag+cost)
			diag = row[j+1]
			row[j+1] = next
		}
	}

	return row[len(dst)]
}

// Closest returns the candidate nearest to input, compared case-insensitively,
// when it is within a third of the input length (at least one edit). The
// second result is false when nothing is close enough.
func Closest(input string, candidates []string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(input))
	if needle == "" {
		return "", false
	}

	limit := max(1, len([]rune(needle))/3)
	best, bestDist := "", limit+1

	for _, candidate := range candidates {
		if dist := Distance(needle, strings.ToLower(candidate)); dist < bestDist {
			best, bestDist = candidate, dist
		}
	}

	return best, best != ""
}

// Hint formats the closest candidate as a " (did you mean %q?)" suffix, or
// returns an empty string.
func Hint(input string, candidates []string) string {
	best, ok := Closest(input, candidates)
	if !ok {
		return ""
	}

	return ` (did you mean "` + best + `"?)`
}
