// Package search filters the aggregated film list by keyword and hands
// selections off to a player with snapshot semantics.
package search

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"tableflip.dev/reel/pkg/bus"
	"tableflip.dev/reel/pkg/events"
	"tableflip.dev/reel/pkg/film"
)

// ErrIndexOutOfRange reports a Choose index outside the displayed results.
var ErrIndexOutOfRange = errors.New("search: index outside current results")

// fold normalizes labels and keywords for caseless matching. A Caser keeps
// internal state, so each fold gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Index is the keyword filter over the aggregated film list. It stays
// subscribed to its source channel, so the backing list is always the latest
// published one. Matching is caseless substring containment against the
// entry's display label; an empty keyword restores the full list, mirroring
// a cleared search box showing everything rather than nothing.
type Index struct {
	id     events.ComponentID
	stream *bus.Stream

	mu      sync.Mutex
	films   []film.Entry
	keyword string

	cancel func()
}

// New creates a search index fed by the aggregated film channel, emitting
// selection events on stream.
func New(id events.ComponentID, src *bus.State[[]film.Entry], stream *bus.Stream) *Index {
	if id == "" {
		id = events.ComponentID("search")
	}
	ix := &Index{id: id, stream: stream}
	ix.cancel = src.Subscribe(func(films []film.Entry) {
		ix.mu.Lock()
		ix.films = films
		ix.mu.Unlock()
	})
	return ix
}

// OnSearch sets the active keyword. The empty string clears the filter.
func (ix *Index) OnSearch(keyword string) {
	ix.mu.Lock()
	ix.keyword = strings.TrimSpace(keyword)
	ix.mu.Unlock()
}

// Keyword returns the active keyword.
func (ix *Index) Keyword() string {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.keyword
}

// Results lazily yields the films matching the active keyword, in film-list
// order. The underlying list and keyword are captured when Results is
// called, so iteration is stable even if a newer film list publishes
// mid-walk.
func (ix *Index) Results() iter.Seq[film.Entry] {
	ix.mu.Lock()
	films := ix.films
	keyword := ix.keyword
	ix.mu.Unlock()

	return func(yield func(film.Entry) bool) {
		for _, e := range films {
			if !Match(e, keyword) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// ResultList materializes the current results.
func (ix *Index) ResultList() []film.Entry {
	var out []film.Entry
	for e := range ix.Results() {
		out = append(out, e)
	}
	return out
}

// Choose emits a one-shot selection event for the index-th displayed result.
// The event carries a snapshot of the displayed sequence, so downstream
// playback resolves next/previous against the list as it was at selection
// time, not a live reference.
func (ix *Index) Choose(index int) error {
	snapshot := ix.ResultList()
	if index < 0 || index >= len(snapshot) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(snapshot))
	}
	ix.stream.Emit(events.FilmChosenMsg{Component: ix.id, Index: index, Films: snapshot})
	return nil
}

// Match reports whether the entry's display label contains the keyword,
// ignoring case. An empty keyword matches everything.
func Match(e film.Entry, keyword string) bool {
	if keyword == "" {
		return true
	}
	return strings.Contains(fold(e.Label()), fold(keyword))
}

// Close detaches the index from its source channel.
func (ix *Index) Close() {
	if ix.cancel != nil {
		ix.cancel()
		ix.cancel = nil
	}
}
