package film

import "tableflip.dev/reel/pkg/bus"

// Filter returns the subset of entries that have a clip attached, preserving
// the original (calendar) order. Entries are keyed by unique day already, so
// no deduplication is performed.
func Filter(entries []Entry) []Entry {
	if len(entries) == 0 {
		return nil
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.HasMedia() {
			out = append(out, e)
		}
	}
	return out
}

// Aggregator derives the playable subset of the published day list and
// republishes it on its own state channel. It stays subscribed to the
// upstream channel, so it can never hold a stale copy once a newer day list
// is published: last-value-wins semantics carry through.
type Aggregator struct {
	out    *bus.State[[]Entry]
	cancel func()
}

// NewAggregator subscribes to the upstream day-list channel and begins
// republishing filtered lists immediately (including the latest upstream
// value, if one was already published).
func NewAggregator(src *bus.State[[]Entry]) *Aggregator {
	a := &Aggregator{out: bus.NewState[[]Entry]()}
	a.cancel = src.Subscribe(func(entries []Entry) {
		a.out.Publish(Filter(entries))
	})
	return a
}

// Films exposes the aggregated, media-bearing film list channel.
func (a *Aggregator) Films() *bus.State[[]Entry] {
	return a.out
}

// Close detaches the aggregator from its upstream channel.
func (a *Aggregator) Close() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}
