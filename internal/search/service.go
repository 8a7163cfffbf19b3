package search

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gravity-note/gravity-note/internal/auth"
	"github.com/gravity-note/gravity-note/internal/model"
	"github.com/gravity-note/gravity-note/internal/store"
	"github.com/gravity-note/gravity-note/internal/temporal"
)

// Service executes unified search and browse operations against a note
// store client.
type Service struct {
	client store.Client
	tiers  []Tier
	now    func() time.Time
	logger zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the time source used for time-group boundaries.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTiers replaces the search tier chain.
func WithTiers(tiers []Tier) Option {
	return func(s *Service) {
		s.tiers = tiers
	}
}

// NewService creates a search service reading from client.
func NewService(client store.Client, opts ...Option) *Service {
	s := &Service{
		client: client,
		tiers:  DefaultTiers(),
		now:    time.Now,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search finds the user's notes matching query. A blank query behaves
// exactly like Browse. Nil opts uses model.DefaultOptions.
//
// The user is taken from ctx (see auth.WithUser); without one Search returns
// auth.ErrAuthRequired. Store errors are returned wrapped, never swallowed.
func (s *Service) Search(ctx context.Context, query string, opts *model.UnifiedNotesOptions) (*model.UnifiedNotesResponse, error) {
	return s.execute(ctx, query, opts)
}

// Browse returns the user's most recently updated notes.
func (s *Service) Browse(ctx context.Context, opts *model.UnifiedNotesOptions) (*model.UnifiedNotesResponse, error) {
	return s.execute(ctx, "", opts)
}

func (s *Service) execute(ctx context.Context, query string, opts *model.UnifiedNotesOptions) (*model.UnifiedNotesResponse, error) {
	start := time.Now()

	userID, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	o := resolveOptions(opts)
	query = strings.TrimSpace(query)
	mode := model.ModeBrowse
	if query != "" {
		mode = model.ModeSearch
	}

	log := s.logger.With().Str("mode", string(mode)).Str("user", userID).Logger()

	var rows []model.Note
	if mode == model.ModeSearch {
		var tier string
		rows, tier, err = FindMatches(ctx, s.client, s.tiers, userID, query, o.MaxResults)
		if err != nil {
			log.Warn().Err(err).Str("query", query).Msg("search failed")
			return nil, err
		}
		log.Debug().Str("query", query).Str("tier", tier).Int("rows", len(rows)).Msg("search tiers completed")
	} else {
		rows, err = s.client.FetchRecent(ctx, userID, o.MaxResults)
		if err != nil {
			log.Warn().Err(err).Msg("browse failed")
			return nil, err
		}
	}

	results := BuildResults(rows, mode, query, temporal.ComputeBoundaries(s.now()))
	sections := Group(results, GroupOptions{
		ByTime:    o.GroupByTime,
		ShowEmpty: o.ShowEmptyGroups,
		Mode:      mode,
	})

	total := 0
	for _, sec := range sections {
		total += len(sec.Notes)
	}

	resp := &model.UnifiedNotesResponse{
		Sections:   sections,
		TotalNotes: total,
		Metadata: model.UnifiedSearchMetadata{
			SearchTime:         time.Since(start).Milliseconds(),
			TotalResults:       total,
			UsedEnhancedSearch: false,
			Query:              query,
			TemporalGrouping:   o.GroupByTime,
			GroupCounts:        CountGroups(results),
			Mode:               mode,
		},
	}
	log.Debug().Int("results", total).Int64("ms", resp.Metadata.SearchTime).Msg("operation completed")
	return resp, nil
}

func resolveOptions(opts *model.UnifiedNotesOptions) model.UnifiedNotesOptions {
	if opts == nil {
		return model.DefaultOptions()
	}
	o := *opts
	if o.MaxResults <= 0 {
		o.MaxResults = model.DefaultMaxResults
	}
	return o
}
