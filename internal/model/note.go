// Package model defines the note and unified search result types.
package model

import "time"

// Note represents a stored note entry.
type Note struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Title          string    `json:"title,omitempty"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	IsRescued      bool      `json:"is_rescued"`
	OriginalNoteID string    `json:"original_note_id,omitempty"`
}

// TimeGroup is the temporal bucket a note falls into relative to "now".
type TimeGroup string

const (
	TimeGroupYesterday TimeGroup = "yesterday"
	TimeGroupLastWeek  TimeGroup = "last_week"
	TimeGroupLastMonth TimeGroup = "last_month"
	TimeGroupEarlier   TimeGroup = "earlier"
	TimeGroupAll       TimeGroup = "all"
)

// TemporalGroups are the classifiable groups in priority order.
var TemporalGroups = []TimeGroup{
	TimeGroupYesterday,
	TimeGroupLastWeek,
	TimeGroupLastMonth,
	TimeGroupEarlier,
}

var groupPriority = map[TimeGroup]int{
	TimeGroupYesterday: 1,
	TimeGroupLastWeek:  2,
	TimeGroupLastMonth: 3,
	TimeGroupEarlier:   4,
	TimeGroupAll:       5,
}

var groupDisplayNames = map[TimeGroup]string{
	TimeGroupYesterday: "Yesterday",
	TimeGroupLastWeek:  "Last Week",
	TimeGroupLastMonth: "Last 30 Days",
	TimeGroupEarlier:   "Earlier",
	TimeGroupAll:       "All Notes",
}

// Priority returns the section ordering weight. Unknown groups sort last.
func (g TimeGroup) Priority() int {
	if p, ok := groupPriority[g]; ok {
		return p
	}
	return len(groupPriority) + 1
}

// DisplayName returns the section heading for the group.
func (g TimeGroup) DisplayName() string {
	if n, ok := groupDisplayNames[g]; ok {
		return n
	}
	return string(g)
}

// Valid reports whether g is one of the known groups.
func (g TimeGroup) Valid() bool {
	_, ok := groupPriority[g]
	return ok
}

// Mode is the retrieval mode of a unified operation.
type Mode string

const (
	ModeSearch Mode = "search"
	ModeBrowse Mode = "browse"
)

// UnifiedNoteResult is a note decorated with grouping and highlighting data.
// It is derived per operation and never persisted.
type UnifiedNoteResult struct {
	Note
	TimeGroup          TimeGroup `json:"time_group"`
	GroupRank          int       `json:"group_rank"`
	HighlightedContent string    `json:"highlighted_content"`
	HighlightedTitle   string    `json:"highlighted_title"`
	SearchRank         float64   `json:"search_rank"`
}

// NoteTimeSection is one time-group section of a response.
type NoteTimeSection struct {
	TimeGroup   TimeGroup           `json:"timeGroup"`
	DisplayName string              `json:"displayName"`
	Notes       []UnifiedNoteResult `json:"notes"`
	TotalCount  int                 `json:"totalCount"`
	IsExpanded  bool                `json:"isExpanded"`
}

// UnifiedSearchMetadata describes how a response was produced.
type UnifiedSearchMetadata struct {
	SearchTime         int64             `json:"searchTime"`
	TotalResults       int               `json:"totalResults"`
	UsedEnhancedSearch bool              `json:"usedEnhancedSearch"`
	Query              string            `json:"query"`
	TemporalGrouping   bool              `json:"temporalGrouping"`
	GroupCounts        map[TimeGroup]int `json:"groupCounts"`
	Mode               Mode              `json:"mode"`
}

// UnifiedNotesResponse is the result of a search or browse operation.
type UnifiedNotesResponse struct {
	Sections   []NoteTimeSection     `json:"sections"`
	TotalNotes int                   `json:"totalNotes"`
	Metadata   UnifiedSearchMetadata `json:"metadata"`
}

// DefaultMaxResults caps the number of rows fetched per operation.
const DefaultMaxResults = 200

// UnifiedNotesOptions configures a search or browse operation.
// The zero value is not the default; use DefaultOptions.
type UnifiedNotesOptions struct {
	MaxResults  int  `json:"maxResults,omitempty"`
	GroupByTime bool `json:"groupByTime"`
	// MaxPerGroup is reserved and not enforced.
	MaxPerGroup     int  `json:"maxPerGroup,omitempty"`
	ShowEmptyGroups bool `json:"showEmptyGroups"`
	// UseEnhancedSearch is reserved for a ranked full-text backend.
	UseEnhancedSearch bool `json:"useEnhancedSearch"`
}

// DefaultOptions returns the default operation options.
func DefaultOptions() UnifiedNotesOptions {
	return UnifiedNotesOptions{
		MaxResults:  DefaultMaxResults,
		GroupByTime: true,
	}
}
