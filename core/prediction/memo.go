package prediction

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/kilianp07/predtrack/core/model"
)

// Memo caches derived views of one immutable collection. Results are
// keyed by query, so repeated renders of the same filters skip the work.
// Returned slices are shared and must be treated as read-only.
type Memo struct {
	preds    []model.Prediction
	segments []string
	cache    *gocache.Cache
}

// NewMemo creates a Memo over preds. A zero ttl keeps entries until the
// process exits.
func NewMemo(preds []model.Prediction, segments []string, ttl time.Duration) *Memo {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &Memo{
		preds:    preds,
		segments: segments,
		cache:    gocache.New(ttl, 10*time.Minute),
	}
}

// Predictions returns the underlying collection.
func (m *Memo) Predictions() []model.Prediction { return m.preds }

// Segments returns the timeline order used by the memo.
func (m *Memo) Segments() []string { return m.segments }

// Apply returns the cached result of Apply for q.
func (m *Memo) Apply(q Query) []model.Prediction {
	key := "list:" + q.Key()
	if v, ok := m.cache.Get(key); ok {
		return v.([]model.Prediction)
	}
	res := Apply(m.preds, q, m.segments)
	m.cache.SetDefault(key, res)
	return res
}

// Facets returns the cached facets.
func (m *Memo) Facets() Facets {
	if v, ok := m.cache.Get("facets"); ok {
		return v.(Facets)
	}
	f := DeriveFacets(m.preds)
	m.cache.SetDefault("facets", f)
	return f
}

// Timeline returns the cached timeline.
func (m *Memo) Timeline() Timeline {
	if v, ok := m.cache.Get("timeline"); ok {
		return v.(Timeline)
	}
	t := BuildTimeline(m.preds, m.segments)
	m.cache.SetDefault("timeline", t)
	return t
}

// Summary returns the cached summary.
func (m *Memo) Summary() Summary {
	if v, ok := m.cache.Get("summary"); ok {
		return v.(Summary)
	}
	s := Summarize(m.preds)
	m.cache.SetDefault("summary", s)
	return s
}

// Flush drops every cached view.
func (m *Memo) Flush() { m.cache.Flush() }
