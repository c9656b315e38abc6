package resolve

import (
	"sort"
	"strings"

	"github.com/anupamr/nameserve/pkg/directory"
)

// DefaultSuggestLimit is the top-K size callers get when they do not ask
// for a specific one.
const DefaultSuggestLimit = 5

// Additive weights for the suggestion ranker. Unlike the matcher, every
// heuristic that fires contributes to the total.
const (
	startsWithWeight  = 0.8
	containsWeight    = 0.6
	firstStartsWeight = 0.9
	lastStartsWeight  = 0.7
	similarityWeight  = 0.5
	suggestThreshold  = 0.3
)

// Suggestion pairs a member with its ranking score. A suggestion list is
// only meaningful sorted descending by score.
type Suggestion struct {
	Member directory.Member
	Score  float64
}

// Suggest ranks members against a partial query for autocomplete. Scores
// are additive across heuristics. Members scoring at or below the inclusion
// threshold are dropped, the rest are sorted descending with ties keeping
// original directory order, and the list is truncated to limit. A limit of
// zero (or an empty partial) yields an empty list.
func Suggest(partial string, members []directory.Member, limit int) []Suggestion {
	p := normalize(partial)
	if p == "" || limit <= 0 {
		return nil
	}

	var out []Suggestion
	for _, m := range members {
		name := normalize(m.Name)
		if name == "" {
			continue
		}
		score := suggestScore(p, name)
		if score > suggestThreshold {
			out = append(out, Suggestion{Member: m, Score: score})
		}
	}

	// Stable: equal scores keep directory order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func suggestScore(p, name string) float64 {
	score := 0.0
	if strings.HasPrefix(name, p) {
		score += startsWithWeight
	}
	if strings.Contains(name, p) {
		score += containsWeight
	}
	tokens := nameTokens(name)
	if len(tokens) > 0 && strings.HasPrefix(tokens[0], p) {
		score += firstStartsWeight
	}
	if len(tokens) >= 2 && strings.HasPrefix(tokens[len(tokens)-1], p) {
		score += lastStartsWeight
	}
	score += similarity(p, name) * similarityWeight
	return score
}
