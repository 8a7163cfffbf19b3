package search

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/gravity-note/gravity-note/internal/model"
	"github.com/gravity-note/gravity-note/internal/store"
	"github.com/gravity-note/gravity-note/internal/textnorm"
)

// LooseMinLength is the shortest query, in characters, that loose tiers run for.
const LooseMinLength = 3

// Tier is one query technique in the search chain.
type Tier struct {
	Name string
	// MinLength skips the tier for shorter queries.
	MinLength int
	Find      func(ctx context.Context, c store.Client, userID, query string, limit int) ([]model.Note, error)
}

// DefaultTiers returns the search chain in the order it is attempted.
func DefaultTiers() []Tier {
	return []Tier{
		{
			Name: "normalized",
			Find: func(ctx context.Context, c store.Client, userID, query string, limit int) ([]model.Note, error) {
				return c.MatchNormalized(ctx, userID, store.Contains(textnorm.Normalize(query)), limit)
			},
		},
		{
			Name: "raw",
			Find: func(ctx context.Context, c store.Client, userID, query string, limit int) ([]model.Note, error) {
				return c.MatchRaw(ctx, userID, store.Contains(query), limit)
			},
		},
		{
			Name:      "loose-normalized",
			MinLength: LooseMinLength,
			Find: func(ctx context.Context, c store.Client, userID, query string, limit int) ([]model.Note, error) {
				return c.MatchNormalized(ctx, userID, store.Loose(textnorm.Normalize(query)), limit)
			},
		},
		{
			Name:      "loose-raw",
			MinLength: LooseMinLength,
			Find: func(ctx context.Context, c store.Client, userID, query string, limit int) ([]model.Note, error) {
				return c.MatchRaw(ctx, userID, store.Loose(query), limit)
			},
		},
	}
}

// FindMatches runs tiers in order and returns the rows of the first tier
// that yields any, with that tier's name. No match is not an error: it
// returns nil rows and an empty name. Store errors stop the chain.
func FindMatches(ctx context.Context, c store.Client, tiers []Tier, userID, query string, limit int) ([]model.Note, string, error) {
	n := utf8.RuneCountInString(query)
	for _, t := range tiers {
		if n < t.MinLength {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}
		rows, err := t.Find(ctx, c, userID, query, limit)
		if err != nil {
			return nil, t.Name, fmt.Errorf("%s tier: %w", t.Name, err)
		}
		if len(rows) > 0 {
			return rows, t.Name, nil
		}
	}
	return nil, "", nil
}
