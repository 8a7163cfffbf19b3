package search

import (
	"sort"

	"github.com/gravity-note/gravity-note/internal/model"
)

// SearchResultsName is the flat section heading used in search mode.
const SearchResultsName = "Search Results"

// GroupOptions controls sectioning.
type GroupOptions struct {
	ByTime    bool
	ShowEmpty bool
	Mode      model.Mode
}

// Group splits results into time-group sections. Sections are ordered by
// group priority and notes within a section by updated_at descending. With
// ByTime unset a single "all" section holds every result.
func Group(results []model.UnifiedNoteResult, opts GroupOptions) []model.NoteTimeSection {
	if !opts.ByTime {
		name := model.TimeGroupAll.DisplayName()
		if opts.Mode == model.ModeSearch {
			name = SearchResultsName
		}
		notes := sortedByRecency(results)
		return []model.NoteTimeSection{{
			TimeGroup:   model.TimeGroupAll,
			DisplayName: name,
			Notes:       notes,
			TotalCount:  len(notes),
			IsExpanded:  true,
		}}
	}

	buckets := make(map[model.TimeGroup][]model.UnifiedNoteResult, len(model.TemporalGroups))
	for _, r := range results {
		g := bucketOf(r.TimeGroup)
		buckets[g] = append(buckets[g], r)
	}

	var groups []model.TimeGroup
	for g, notes := range buckets {
		if len(notes) > 0 {
			groups = append(groups, g)
		}
	}
	if opts.ShowEmpty {
		for _, g := range model.TemporalGroups {
			if len(buckets[g]) == 0 {
				groups = append(groups, g)
			}
		}
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Priority() < groups[j].Priority()
	})

	sections := make([]model.NoteTimeSection, 0, len(groups))
	for _, g := range groups {
		notes := sortedByRecency(buckets[g])
		sections = append(sections, model.NoteTimeSection{
			TimeGroup:   g,
			DisplayName: g.DisplayName(),
			Notes:       notes,
			TotalCount:  len(notes),
			IsExpanded:  true,
		})
	}
	return sections
}

// bucketOf maps a result's group to its section. Unknown groups, and "all"
// outside flat mode, land in earlier.
func bucketOf(g model.TimeGroup) model.TimeGroup {
	if !g.Valid() || g == model.TimeGroupAll {
		return model.TimeGroupEarlier
	}
	return g
}

func sortedByRecency(results []model.UnifiedNoteResult) []model.UnifiedNoteResult {
	out := make([]model.UnifiedNoteResult, len(results))
	copy(out, results)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

// CountGroups tallies results per time group. Every known group has a key;
// unknown groups count as earlier.
func CountGroups(results []model.UnifiedNoteResult) map[model.TimeGroup]int {
	counts := map[model.TimeGroup]int{
		model.TimeGroupYesterday: 0,
		model.TimeGroupLastWeek:  0,
		model.TimeGroupLastMonth: 0,
		model.TimeGroupEarlier:   0,
		model.TimeGroupAll:       0,
	}
	for _, r := range results {
		g := r.TimeGroup
		if !g.Valid() {
			g = model.TimeGroupEarlier
		}
		counts[g]++
	}
	return counts
}
