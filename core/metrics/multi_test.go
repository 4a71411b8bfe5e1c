package metrics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordSink struct {
	queries   int
	summaries int
	closed    bool
	err       error
}

func (r *recordSink) RecordQuery(QueryEvent) error {
	r.queries++
	return r.err
}

func (r *recordSink) RecordSummary(SummarySnapshot) error {
	r.summaries++
	return nil
}

func (r *recordSink) Close() error {
	r.closed = true
	return nil
}

type queryOnly struct{ n int }

func (q *queryOnly) RecordQuery(QueryEvent) error { q.n++; return nil }

func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &queryOnly{}
	m := NewMultiSink(s1, s2)

	require.NoError(t, m.RecordQuery(QueryEvent{View: ViewList}))
	require.NoError(t, m.RecordSummary(SummarySnapshot{Total: 6}))
	require.NoError(t, m.Close())

	assert.Equal(t, 1, s1.queries)
	assert.Equal(t, 1, s1.summaries)
	assert.True(t, s1.closed)
	assert.Equal(t, 1, s2.n)
}

func TestMultiSinkStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	s1 := &recordSink{err: boom}
	s2 := &recordSink{}
	err := NewMultiSink(s1, s2).RecordQuery(QueryEvent{})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, s2.queries)
}
