package models

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// suggestThreshold is the minimum normalized similarity for a catalog entry
// to count as a plausible "did you mean" candidate.
const suggestThreshold = 0.4

// Suggest returns up to limit catalog IDs closest to the (possibly
// misspelled) name, best match first. An empty slice means nothing in the
// catalog is close enough to be worth suggesting.
func Suggest(name string, limit int) []string {
	query := strings.ToLower(Normalize(name))
	if query == "" || limit <= 0 {
		return nil
	}

	type scored struct {
		id    string
		score float64
	}
	var matches []scored

	for _, m := range catalog {
		score := similarity(query, strings.ToLower(m.ID))
		if s := similarity(query, strings.ToLower(baseID(m.ID))); s > score {
			score = s
		}
		if s := similarity(query, strings.ToLower(m.Name)); s > score {
			score = s
		}
		if score >= suggestThreshold {
			matches = append(matches, scored{id: m.ID, score: score})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].id < matches[j].id
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.id
	}
	return ids
}

// similarity calculates normalized Levenshtein similarity.
func similarity(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	dist := levenshtein.ComputeDistance(a, b)
	maxLen := max(len(a), len(b))
	return 1.0 - float64(dist)/float64(maxLen)
}
