package service

import (
	"strings"

	"videocatalog/internal/models"
)

// NormalizeSlug drops surrounding whitespace and every trailing separator, so
// "foo", "foo/" and "foo//" are the same slug.
func NormalizeSlug(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}

// slug match ranks, best first
const (
	rankMySlug = iota
	rankRealSlug
	rankRealSlugContains
	rankNone
)

// slugCandidates normalizes, lower-cases and de-duplicates lookup values.
func slugCandidates(values ...string) []string {
	out := make([]string, 0, len(values))
	seen := map[string]struct{}{}
	for _, v := range values {
		c := strings.ToLower(NormalizeSlug(v))
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func slugMatchRank(card models.Card, candidates []string) int {
	mySlug := strings.ToLower(NormalizeSlug(card.MySlug))
	realSlug := strings.ToLower(card.RealSlug)
	normRealSlug := NormalizeSlug(realSlug)
	best := rankNone
	for _, c := range candidates {
		rank := rankNone
		switch {
		case mySlug == c:
			rank = rankMySlug
		case normRealSlug == c:
			rank = rankRealSlug
		case strings.Contains(realSlug, c):
			rank = rankRealSlugContains
		}
		if rank < best {
			best = rank
		}
	}
	return best
}

// bestSlugMatch picks the most specific match, lowest id first among equals.
func bestSlugMatch(cards []models.Card, candidates []string) (models.Card, bool) {
	var (
		best     models.Card
		bestRank = rankNone
	)
	for _, card := range cards {
		rank := slugMatchRank(card, candidates)
		if rank == rankNone {
			continue
		}
		if rank < bestRank || (rank == bestRank && card.ID < best.ID) {
			best = card
			bestRank = rank
		}
	}
	return best, bestRank != rankNone
}
