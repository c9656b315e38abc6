package resolve

import (
	"strings"

	"github.com/anupamr/nameserve/pkg/directory"
)

// Heuristic scores for the fuzzy path. Each heuristic contributes a fixed
// confidence and a member's score is the maximum over all of them, not a
// sum; the suggestion ranker deliberately does the opposite.
const (
	containsScore      = 0.8
	firstTokenScore    = 0.95
	lastTokenScore     = 0.9
	interiorTokenScore = 0.85
	initialsScore      = 0.9

	// candidateThreshold is the floor for a member to be considered at all;
	// acceptThreshold is what the single best candidate must clear for the
	// match to be returned instead of ErrNoMatch.
	candidateThreshold = 0.5
	acceptThreshold    = 0.6
)

// MatchResult is an accepted resolution. Score is only comparable between
// fuzzy-path results; exact-path hits carry Score 1.0 and Exact set.
type MatchResult struct {
	Member directory.Member
	Score  float64
	Exact  bool
}

// Match resolves a query against a member list and its index. The exact
// path is tried first: a normalized index hit returns immediately with
// confidence 1.0 and no scoring computed. On a miss every member with a
// non-empty name is scored and the best candidate wins, provided it clears
// the acceptance threshold. Ties go to the member evaluated first, so
// evaluation order must equal the directory's given order.
func Match(query string, members []directory.Member, index *Index) (MatchResult, error) {
	q := normalize(query)
	if q == "" {
		return MatchResult{}, ErrEmptyQuery
	}

	if id, ok := index.Lookup(q); ok {
		for _, m := range members {
			if m.ID == id {
				return MatchResult{Member: m, Score: 1.0, Exact: true}, nil
			}
		}
	}

	var best MatchResult
	for _, m := range members {
		name := normalize(m.Name)
		if name == "" {
			continue
		}
		score := fuzzyScore(q, name)
		if score < candidateThreshold {
			continue
		}
		if score > best.Score {
			best = MatchResult{Member: m, Score: score}
		}
	}
	if best.Score < acceptThreshold {
		return MatchResult{}, ErrNoMatch
	}
	return best, nil
}

// fuzzyScore computes the max-of-heuristics score for one member name.
func fuzzyScore(q, name string) float64 {
	score := similarity(q, name)

	if strings.Contains(name, q) || strings.Contains(q, name) {
		score = maxScore(score, containsScore)
	}

	tokens := nameTokens(name)
	if len(tokens) > 0 && q == tokens[0] {
		score = maxScore(score, firstTokenScore)
	}
	if len(tokens) >= 2 {
		if q == tokens[len(tokens)-1] {
			score = maxScore(score, lastTokenScore)
		}
		for _, t := range tokens[1 : len(tokens)-1] {
			if q == t {
				score = maxScore(score, interiorTokenScore)
			}
		}
	}
	if len(tokens) > 0 && q == initialsKey(tokens) {
		score = maxScore(score, initialsScore)
	}
	return score
}

func maxScore(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
