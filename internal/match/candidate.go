// Package match provides identifier normalization and similarity ranking.
// The compiler uses it to build "did you mean" suggestions for misspelled
// override targets and to derive wire names from property names.
package match

import "sort"

// DefaultSuggestionScore is the minimum similarity for a name to be offered
// as a suggestion.
const DefaultSuggestionScore = 0.5

// Candidate is one ranked suggestion.
type Candidate struct {
	Name  string
	Score float64
}

// CandidateList is a ranked list of candidates, best first.
type CandidateList []Candidate

// Names returns the candidate names in rank order.
func (l CandidateList) Names() []string {
	names := make([]string, len(l))
	for i, c := range l {
		names[i] = c.Name
	}

	return names
}

// Rank scores every name against the target and returns the candidates with
// score >= minScore, best first, capped at limit. Ties break on name so the
// ranking is deterministic.
func Rank(target string, names []string, minScore float64, limit int) CandidateList {
	var out CandidateList

	for _, name := range names {
		score := Score(target, name)
		if score < minScore {
			continue
		}

		out = append(out, Candidate{Name: name, Score: score})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}

		return out[i].Name < out[j].Name
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out
}
