package commands

import (
	"context"
	"sort"
	"strings"

	"pnidkit/internal/application"
	"pnidkit/internal/domain"
)

// SearchResult is a tagged placement with a relevance score
type SearchResult struct {
	FindRow
	Score int
}

// SearchCommand searches placement tags and names with fuzzy matching
type SearchCommand struct {
	session *application.Session
	Query   string
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(session *application.Session, query string) *SearchCommand {
	return &SearchCommand{
		session: session,
		Query:   query,
	}
}

// Execute runs the search command and returns scored, sorted results
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	if len(c.Query) < 2 {
		return nil, nil
	}
	if err := requireLoaded(c.session); err != nil {
		return nil, err
	}

	var candidates []FindRow
	for _, p := range c.session.Index().All() {
		row := describe(c.session, p)
		if row.Tag == "" {
			continue
		}
		// Bubbles are known by "{FUNCTION}-{TAG}".
		if code, err := p.AttributeText(domain.AttrFunction); err == nil && code != "" {
			row.Tag = domain.GenBubbleTag(code, row.Tag)
		}
		candidates = append(candidates, row)
	}

	return FuzzySort(candidates, c.Query), nil
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Check for exact substring match first (highest priority)
	if strings.Contains(target, query) {
		score := 100
		// Bonus if it starts with query
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: check if chars appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] == query[queryIdx] {
			if prevMatchIdx == i-1 {
				score += 10 // consecutive chars
			}
			if i == 0 {
				score += 15 // start of string
			}
			if i > 0 && (target[i-1] == ' ' || target[i-1] == '_' || target[i-1] == '-') {
				score += 10 // after separator
			}
			score += 1
			prevMatchIdx = i
			queryIdx++
		}
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}

// FuzzySort scores rows by tag and block name and sorts them by relevance
func FuzzySort(rows []FindRow, query string) []SearchResult {
	scored := make([]SearchResult, 0, len(rows))

	for _, r := range rows {
		best := max(FuzzyScore(r.Tag, query), FuzzyScore(r.Name, query))
		if best > 0 {
			scored = append(scored, SearchResult{
				FindRow: r,
				Score:   best,
			})
		}
	}

	// Sort by score descending
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}
