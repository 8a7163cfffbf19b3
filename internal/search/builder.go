package search

import (
	"github.com/gravity-note/gravity-note/internal/highlight"
	"github.com/gravity-note/gravity-note/internal/model"
	"github.com/gravity-note/gravity-note/internal/temporal"
)

const (
	// SubstringRank is the flat relevance given to every substring match.
	SubstringRank = 0.5
	// BrowseRank is the relevance of browse results.
	BrowseRank = 0.0
	// DefaultGroupRank is the rank of every result within its group.
	DefaultGroupRank = 1
)

// BuildResults decorates rows with their time group, highlighted fields and
// rank. Rows are copied, never modified.
func BuildResults(rows []model.Note, mode model.Mode, query string, b temporal.Boundaries) []model.UnifiedNoteResult {
	results := make([]model.UnifiedNoteResult, 0, len(rows))
	for _, n := range rows {
		n.UpdatedAt = temporal.OrEpoch(n.UpdatedAt)
		r := model.UnifiedNoteResult{
			Note:      n,
			TimeGroup: temporal.Classify(n.UpdatedAt, b),
			GroupRank: DefaultGroupRank,
		}
		if mode == model.ModeSearch {
			r.HighlightedContent = highlight.Highlight(n.Content, query)
			r.HighlightedTitle = highlight.Highlight(n.Title, query)
			r.SearchRank = SubstringRank
		} else {
			r.HighlightedContent = n.Content
			r.HighlightedTitle = n.Title
			r.SearchRank = BrowseRank
		}
		results = append(results, r)
	}
	return results
}
