package searchstate

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/gravity-note/gravity-note/internal/model"
)

func TestZeroValueIsIdle(t *testing.T) {
	var tr Tracker
	s := tr.Snapshot()
	if s.Status != StatusIdle || s.Response != nil || s.Err != nil {
		t.Errorf("unexpected zero state %+v", s)
	}
}

func TestBeginResolveSuccess(t *testing.T) {
	var tr Tracker
	tk := tr.Begin("plan")
	if s := tr.Snapshot(); s.Status != StatusLoading || s.Query != "plan" {
		t.Fatalf("expected loading state, got %+v", s)
	}

	resp := &model.UnifiedNotesResponse{TotalNotes: 3}
	if !tr.Resolve(tk, resp, nil) {
		t.Fatal("expected resolve to be recorded")
	}
	s := tr.Snapshot()
	if s.Status != StatusSuccess || s.Response != resp {
		t.Errorf("unexpected state %+v", s)
	}
	if tr.Resolve(tk, nil, nil) {
		t.Error("a ticket should resolve only once")
	}
}

func TestResolveErrorKeepsLastResponse(t *testing.T) {
	var tr Tracker
	first := &model.UnifiedNotesResponse{TotalNotes: 1}
	tr.Resolve(tr.Begin("a"), first, nil)

	boom := errors.New("offline")
	tr.Resolve(tr.Begin("ab"), nil, boom)
	s := tr.Snapshot()
	if s.Status != StatusError || !errors.Is(s.Err, boom) {
		t.Errorf("expected error state, got %+v", s)
	}
	if s.Response != first {
		t.Error("expected previous response to be kept")
	}

	tr.Begin("abc")
	if s := tr.Snapshot(); s.Err != nil {
		t.Errorf("begin should clear the error, got %v", s.Err)
	}
}

func TestStaleTicketDiscarded(t *testing.T) {
	var tr Tracker
	old := tr.Begin("pro")
	cur := tr.Begin("proj")

	if tr.Resolve(old, &model.UnifiedNotesResponse{TotalNotes: 9}, nil) {
		t.Error("stale ticket should be discarded")
	}
	if s := tr.Snapshot(); s.Status != StatusLoading || s.Query != "proj" {
		t.Errorf("stale resolve changed state: %+v", s)
	}
	want := &model.UnifiedNotesResponse{TotalNotes: 2}
	if !tr.Resolve(cur, want, nil) {
		t.Fatal("current ticket should resolve")
	}
	if tr.Snapshot().Response != want {
		t.Error("expected current response")
	}
}

func TestResetInvalidatesTickets(t *testing.T) {
	var tr Tracker
	tk := tr.Begin("x")
	tr.Reset()
	if tr.Resolve(tk, &model.UnifiedNotesResponse{}, nil) {
		t.Error("ticket from before reset should be discarded")
	}
	if s := tr.Snapshot(); s.Status != StatusIdle || s.Query != "" {
		t.Errorf("expected idle after reset, got %+v", s)
	}
}

func TestRun(t *testing.T) {
	var tr Tracker
	resp, recorded, err := tr.Run(context.Background(), "q", func(ctx context.Context, q string) (*model.UnifiedNotesResponse, error) {
		if s := tr.Snapshot(); s.Status != StatusLoading {
			t.Errorf("expected loading during run, got %s", s.Status)
		}
		return &model.UnifiedNotesResponse{Metadata: model.UnifiedSearchMetadata{Query: q}}, nil
	})
	if err != nil || !recorded {
		t.Fatalf("run: recorded=%v err=%v", recorded, err)
	}
	if resp.Metadata.Query != "q" || tr.Snapshot().Response != resp {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestConcurrentRequestsLastWins(t *testing.T) {
	var tr Tracker
	tickets := make([]Ticket, 20)
	for i := range tickets {
		tickets[i] = tr.Begin(string(rune('a' + i)))
	}

	var wg sync.WaitGroup
	recorded := make([]bool, len(tickets))
	for i, tk := range tickets {
		wg.Add(1)
		go func(i int, tk Ticket) {
			defer wg.Done()
			recorded[i] = tr.Resolve(tk, &model.UnifiedNotesResponse{TotalNotes: i}, nil)
		}(i, tk)
	}
	wg.Wait()

	for i, ok := range recorded {
		if ok != (i == len(tickets)-1) {
			t.Errorf("ticket %d: recorded=%v", i, ok)
		}
	}
	if got := tr.Snapshot().Response.TotalNotes; got != len(tickets)-1 {
		t.Errorf("expected last response, got %d", got)
	}
}
