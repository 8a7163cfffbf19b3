// Package searchstate tracks the caller-side lifecycle of unified search
// requests: the current query, whether a request is in flight, and the last
// response or error. Responses from superseded requests are discarded.
package searchstate

import (
	"context"
	"sync"

	"github.com/gravity-note/gravity-note/internal/model"
)

// Status is the lifecycle stage of the tracked query.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// State is a point-in-time copy of a Tracker.
type State struct {
	Query    string
	Status   Status
	Response *model.UnifiedNotesResponse
	Err      error
}

// Ticket identifies one request started with Begin.
type Ticket struct {
	gen   uint64
	Query string
}

// Tracker is safe for concurrent use. The zero value is idle.
type Tracker struct {
	mu    sync.Mutex
	gen   uint64
	state State
}

// Begin marks a new request for query as loading and returns its ticket.
// Any earlier outstanding ticket becomes stale.
func (t *Tracker) Begin(query string) Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gen++
	t.state.Query = query
	t.state.Status = StatusLoading
	t.state.Err = nil
	return Ticket{gen: t.gen, Query: query}
}

// Resolve records the outcome of the request identified by tk. It reports
// false, leaving the state untouched, if a newer request has begun since.
// The previous response is kept on error.
func (t *Tracker) Resolve(tk Ticket, resp *model.UnifiedNotesResponse, err error) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if tk.gen != t.gen || t.state.Status != StatusLoading {
		return false
	}
	if err != nil {
		t.state.Status = StatusError
		t.state.Err = err
		return true
	}
	t.state.Status = StatusSuccess
	t.state.Response = resp
	return true
}

// Reset returns the tracker to idle and invalidates outstanding tickets.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gen++
	t.state = State{Status: StatusIdle}
}

// Snapshot returns the current state.
func (t *Tracker) Snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.state
	if s.Status == "" {
		s.Status = StatusIdle
	}
	return s
}

// SearchFunc performs one unified operation.
type SearchFunc func(ctx context.Context, query string) (*model.UnifiedNotesResponse, error)

// Run begins a request for query, runs fn and resolves the outcome. It
// returns fn's result and whether the result was recorded.
func (t *Tracker) Run(ctx context.Context, query string, fn SearchFunc) (*model.UnifiedNotesResponse, bool, error) {
	tk := t.Begin(query)
	resp, err := fn(ctx, query)
	return resp, t.Resolve(tk, resp, err), err
}
