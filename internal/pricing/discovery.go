package pricing

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// DefaultSuggestions is how many ranked suggestions Discover returns.
const DefaultSuggestions = 5

// Suggestion is a candidate exact filter value for a loose query,
// ranked by match score.
type Suggestion struct {
	ServiceName   string
	ServiceFamily string
	Score         float64
}

// Discovery fuzzy-matches free-text service descriptions against the
// static reference table. The table is read-only after construction,
// so a Discovery is safe for concurrent use.
type Discovery struct {
	entries []ServiceEntry
}

// NewDiscovery creates a Discovery over the built-in reference table.
func NewDiscovery() *Discovery {
	return &Discovery{entries: referenceTable}
}

// Discover tokenizes the query and ranks reference entries by token
// overlap and substring proximity, best first, at most max entries.
// Empty or unmatched queries return an empty slice, not an error;
// callers fall back to a broader search.
func (d *Discovery) Discover(query string, max int) []Suggestion {
	if max <= 0 {
		max = DefaultSuggestions
	}
	queryTokens := tokenize(query)
	if len(queryTokens) == 0 {
		return nil
	}

	suggestions := make([]Suggestion, 0, len(d.entries))
	for _, entry := range d.entries {
		score := scoreEntry(queryTokens, strings.ToLower(query), entry)
		if score <= 0 {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			ServiceName:   entry.ServiceName,
			ServiceFamily: entry.ServiceFamily,
			Score:         score,
		})
	}

	// Descending by score; equal scores prefer the shorter (more
	// specific) service name, then lexical order for determinism.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if len(a.ServiceName) != len(b.ServiceName) {
			return len(a.ServiceName) < len(b.ServiceName)
		}
		return a.ServiceName < b.ServiceName
	})

	if len(suggestions) > max {
		suggestions = suggestions[:max]
	}
	return suggestions
}

// scoreEntry scores one table entry against the query. Each candidate
// name (the service name plus every alias) is scored independently and
// the best candidate wins, so "web app" finds App Service through its
// alias even though the token overlap with "Azure App Service" alone
// is weaker.
func scoreEntry(queryTokens []string, loweredQuery string, entry ServiceEntry) float64 {
	candidates := append([]string{entry.ServiceName, entry.ServiceFamily}, entry.Aliases...)
	best := 0.0
	for _, candidate := range candidates {
		if s := scoreCandidate(queryTokens, loweredQuery, strings.ToLower(candidate)); s > best {
			best = s
		}
	}
	return best
}

func scoreCandidate(queryTokens []string, loweredQuery, candidate string) float64 {
	candidateTokens := tokenize(candidate)
	if len(candidateTokens) == 0 {
		return 0
	}

	// Token overlap, counting prefix matches at half weight so
	// "hosting" still gets credit against "host".
	overlap := 0.0
	for _, qt := range queryTokens {
		for _, ct := range candidateTokens {
			switch {
			case qt == ct:
				overlap++
			case strings.HasPrefix(ct, qt) || strings.HasPrefix(qt, ct):
				overlap += 0.5
			default:
				continue
			}
			break
		}
	}
	if overlap == 0 {
		return 0
	}
	score := overlap / float64(len(candidateTokens))

	// Substring proximity: the whole query naming the candidate (or
	// the reverse) is a much stronger signal than shared tokens.
	if strings.Contains(loweredQuery, candidate) || strings.Contains(candidate, loweredQuery) {
		score += 1
	}
	return score
}

// tokenize lowercases and splits on anything that is not a letter or
// digit, dropping duplicates.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	return lo.Uniq(fields)
}
