package suggest

import (
	"cmp"
	"slices"
)

// MinSimilarity is the score below which a candidate is not suggested.
const MinSimilarity = 0.6

// Closest returns up to n candidates most similar to name, best first.
// Candidates scoring below MinSimilarity are dropped; ties keep candidate
// order.
func Closest(name string, candidates []string, n int) []string {
	type scored struct {
		name  string
		score float64
	}

	seen := make(map[string]bool, len(candidates))

	var ranked []scored

	for _, c := range candidates {
		if c == name || seen[c] {
			continue
		}

		seen[c] = true

		if s := Similarity(name, c); s >= MinSimilarity {
			ranked = append(ranked, scored{c, s})
		}
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	out := make([]string, 0, min(n, len(ranked)))
	for _, r := range ranked[:min(n, len(ranked))] {
		out = append(out, r.name)
	}

	return out
}
