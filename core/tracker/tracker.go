// Package tracker is the read model served to the display layer. It owns
// the loaded dataset, memoises the engine's derived views and reports
// each served query to a metrics sink.
package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/kilianp07/predtrack/core/blog"
	"github.com/kilianp07/predtrack/core/dataset"
	"github.com/kilianp07/predtrack/core/logger"
	"github.com/kilianp07/predtrack/core/metrics"
	"github.com/kilianp07/predtrack/core/model"
	"github.com/kilianp07/predtrack/core/prediction"
)

// ErrNotFound is returned for unknown prediction or blog post ids.
var ErrNotFound = errors.New("not found")

// LatestPostsLimit is the number of posts featured next to the summary.
const LatestPostsLimit = 2

// Options configures a Tracker. Zero values select defaults.
type Options struct {
	// Segments is the canonical timeline order.
	Segments []string
	CacheTTL time.Duration
	Sink     metrics.Sink
	Log      logger.Logger
	Now      func() time.Time
}

// Overview is the home page content.
type Overview struct {
	prediction.Summary
	LatestPosts []model.BlogPost `json:"latest_posts"`
}

// Tracker answers read queries over one immutable dataset. It is safe for
// concurrent use.
type Tracker struct {
	ds   *dataset.Dataset
	memo *prediction.Memo
	sink metrics.Sink
	log  logger.Logger
	now  func() time.Time
}

// New builds a Tracker over ds.
func New(ds *dataset.Dataset, opts Options) *Tracker {
	if ds == nil {
		ds = &dataset.Dataset{}
	}
	canonical := opts.Segments
	if len(canonical) == 0 {
		canonical = prediction.CanonicalSegments
	}
	if opts.Sink == nil {
		opts.Sink = metrics.NopSink{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	segments := prediction.UniqueTimelineSegments(ds.Predictions, canonical)
	return &Tracker{
		ds:   ds,
		memo: prediction.NewMemo(ds.Predictions, segments, opts.CacheTTL),
		sink: opts.Sink,
		log:  opts.Log,
		now:  opts.Now,
	}
}

// Segments returns the timeline order in use.
func (t *Tracker) Segments() []string { return t.memo.Segments() }

// List returns the predictions matching q in the requested order.
func (t *Tracker) List(q prediction.Query) []model.Prediction {
	start := t.now()
	res := t.memo.Apply(q)
	t.observe(metrics.ViewList, len(res), start)
	if t.log != nil {
		t.log.Debugw("list predictions", map[string]any{"query": q.Key(), "results": len(res)})
	}
	return res
}

// Prediction returns the prediction with the given id.
func (t *Tracker) Prediction(id string) (model.Prediction, error) {
	start := t.now()
	for _, p := range t.ds.Predictions {
		if p.ID == id {
			t.observe(metrics.ViewDetail, 1, start)
			return p, nil
		}
	}
	t.observe(metrics.ViewDetail, 0, start)
	return model.Prediction{}, fmt.Errorf("prediction %q: %w", id, ErrNotFound)
}

// Facets returns the filter options of the collection.
func (t *Tracker) Facets() prediction.Facets {
	start := t.now()
	f := t.memo.Facets()
	t.observe(metrics.ViewFacets, len(f.Categories)+len(f.Statuses), start)
	return f
}

// Timeline returns the predictions grouped by segment.
func (t *Tracker) Timeline() prediction.Timeline {
	start := t.now()
	tl := t.memo.Timeline()
	t.observe(metrics.ViewTimeline, len(tl), start)
	return tl
}

// Overview returns the summary figures and the featured posts.
func (t *Tracker) Overview() Overview {
	start := t.now()
	o := Overview{Summary: t.memo.Summary(), LatestPosts: blog.Latest(t.ds.Posts, LatestPostsLimit)}
	t.observe(metrics.ViewSummary, o.Total, start)
	return o
}

// Posts returns the blog posts newest first, restricted to tag when set.
func (t *Tracker) Posts(tag string) []model.BlogPost {
	start := t.now()
	posts := blog.Newest(t.ds.Posts)
	if tag != "" {
		posts = blog.WithTag(posts, tag)
	}
	t.observe(metrics.ViewBlog, len(posts), start)
	return posts
}

// Post returns the blog post with the given id.
func (t *Tracker) Post(id string) (model.BlogPost, error) {
	p, ok := blog.Find(t.ds.Posts, id)
	if !ok {
		return model.BlogPost{}, fmt.Errorf("blog post %q: %w", id, ErrNotFound)
	}
	return p, nil
}

// AllPosts returns the blog collection in data order.
func (t *Tracker) AllPosts() []model.BlogPost { return t.ds.Posts }

// Snapshot captures the current accuracy figures for metrics export.
func (t *Tracker) Snapshot() metrics.SummarySnapshot {
	s := t.memo.Summary()
	snap := metrics.SummarySnapshot{
		Total:            s.Total,
		Evaluated:        s.Evaluated,
		EvaluatedPercent: s.EvaluatedPercent,
		OverallAccuracy:  s.OverallAccuracy,
		Segments:         []metrics.SegmentAccuracy{},
		Time:             t.now(),
	}
	for _, g := range t.memo.Timeline() {
		if g.Accuracy != nil {
			snap.Segments = append(snap.Segments, metrics.SegmentAccuracy{Segment: g.Segment, Accuracy: *g.Accuracy})
		}
	}
	return snap
}

// PublishSnapshot sends Snapshot to the sink when it records summaries.
func (t *Tracker) PublishSnapshot() error {
	rec, ok := t.sink.(metrics.SummaryRecorder)
	if !ok {
		return nil
	}
	if err := rec.RecordSummary(t.Snapshot()); err != nil {
		return fmt.Errorf("record summary: %w", err)
	}
	return nil
}

func (t *Tracker) observe(view string, n int, start time.Time) {
	now := t.now()
	err := t.sink.RecordQuery(metrics.QueryEvent{View: view, Results: n, Duration: now.Sub(start), Time: now})
	if err != nil && t.log != nil {
		t.log.Warnf("record %s query: %v", view, err)
	}
}
