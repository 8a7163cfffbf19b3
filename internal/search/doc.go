// Package search implements unified search and browse over a user's notes.
//
// A search runs an ordered chain of query tiers against the note store and
// stops at the first tier that returns rows:
//
//  1. substring match on the normalized title/content columns
//  2. substring match on the raw columns
//  3. loose match (a wildcard between every query character) on the
//     normalized columns, then on the raw columns, for queries of three or
//     more characters
//
// Browse fetches the most recently updated notes with no text filter. Both
// modes produce the same result shape: each note is classified into a time
// group relative to now, decorated with highlighted fields and a flat search
// rank, and the results are sectioned by time group (or returned as a single
// flat section).
//
// The Service holds no per-call state; concurrent calls are independent.
// Debouncing and discarding superseded responses belong to the caller, see
// package searchstate.
package search
