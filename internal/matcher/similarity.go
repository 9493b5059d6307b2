package matcher

import (
	"strings"

	"github.com/zeebo/xxh3"

	"sem/internal/model"
)

// DefaultSimilarity scores two entities by Jaccard overlap of their
// whitespace-split content tokens. Tokens are folded to xxh3 64-bit hashes
// so large entities compare as integer sets rather than string sets.
func DefaultSimilarity(a, b *model.Entity) float64 {
	tokensA := strings.Fields(a.Content)
	tokensB := strings.Fields(b.Content)

	// If the token counts diverge enough, Jaccard cannot reach the fuzzy
	// threshold; skip the set work.
	minCount, maxCount := len(tokensA), len(tokensB)
	if minCount > maxCount {
		minCount, maxCount = maxCount, minCount
	}
	if maxCount > 0 && float64(minCount)/float64(maxCount) < 0.6 {
		return 0
	}

	setA := tokenSet(tokensA)
	setB := tokenSet(tokensB)

	intersection := 0
	for token := range setA {
		if _, ok := setB[token]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func tokenSet(tokens []string) map[uint64]struct{} {
	set := make(map[uint64]struct{}, len(tokens))
	for _, token := range tokens {
		set[xxh3.HashString(token)] = struct{}{}
	}
	return set
}
