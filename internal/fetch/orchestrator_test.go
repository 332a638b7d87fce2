package fetch

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/hnstories/internal/debuglog"
	"github.com/pders01/hnstories/internal/hn"
	"github.com/pders01/hnstories/internal/stories"
)

type fakeSearcher struct {
	results map[string]*hn.Result
	err     error
	calls   []string
	ctxs    []context.Context
}

func (f *fakeSearcher) Search(ctx context.Context, rawURL string) (*hn.Result, error) {
	f.calls = append(f.calls, rawURL)
	f.ctxs = append(f.ctxs, ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.results[rawURL]; ok {
		return r, nil
	}
	return &hn.Result{Hits: []hn.Story{}}, nil
}

// termOf treats everything after "q=" as the term.
func termOf(u string) string {
	if i := strings.Index(u, "q="); i >= 0 {
		return u[i+2:]
	}
	return ""
}

type recorder struct {
	state   stories.State
	actions []stories.Action
}

func (r *recorder) dispatch(a stories.Action) {
	r.actions = append(r.actions, a)
	r.state = stories.Reduce(r.state, a)
}

var (
	storyA = hn.Story{ID: "a", Title: "React hooks"}
	storyB = hn.Story{ID: "b", Title: "Redux toolkit"}
)

func TestObserve_Success(t *testing.T) {
	searcher := &fakeSearcher{results: map[string]*hn.Result{
		"/s?q=react": {Hits: []hn.Story{storyA, storyB}, Page: 0, NbPages: 3},
	}}
	o := NewOrchestrator(searcher, termOf, time.Second)
	rec := &recorder{state: stories.Initial()}

	cmd := o.Observe("/s?q=react", rec.dispatch)
	require.NotNil(t, cmd)
	assert.Equal(t, []stories.Action{stories.FetchInit{}}, rec.actions, "INIT is dispatched before the request runs")
	assert.True(t, rec.state.IsLoading)
	assert.True(t, o.Pending())

	msg, ok := cmd().(CompletedMsg)
	require.True(t, ok)
	assert.True(t, o.Complete(msg, rec.dispatch))

	assert.False(t, o.Pending())
	assert.Len(t, rec.actions, 2)
	assert.Equal(t, stories.State{Items: []hn.Story{storyA, storyB}, Pages: 3}, rec.state)
}

func TestObserve_Failure(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("connection refused")}
	o := NewOrchestrator(searcher, termOf, time.Second)
	rec := &recorder{state: stories.Initial()}

	cmd := o.Observe("/s?q=react", rec.dispatch)
	require.NotNil(t, cmd)
	o.Complete(cmd().(CompletedMsg), rec.dispatch)

	assert.Equal(t, []stories.Action{stories.FetchInit{}, stories.FetchFailure{}}, rec.actions)
	assert.False(t, rec.state.IsLoading)
	assert.True(t, rec.state.IsError)
	assert.Empty(t, rec.state.Items)
	assert.Len(t, searcher.calls, 1, "no retry")
}

func TestObserve_EmptyTermIsNotRequested(t *testing.T) {
	searcher := &fakeSearcher{}
	o := NewOrchestrator(searcher, termOf, time.Second)
	rec := &recorder{state: stories.Initial()}

	assert.Nil(t, o.Observe("/s?q=", rec.dispatch))
	assert.Empty(t, rec.actions)
	assert.Empty(t, searcher.calls)
	assert.False(t, o.Pending())
}

func TestObserve_LatestWins(t *testing.T) {
	var buf bytes.Buffer
	debuglog.SetOutput(debuglog.LevelDebug, &buf)
	defer debuglog.SetOutput(debuglog.LevelOff, nil)

	searcher := &fakeSearcher{results: map[string]*hn.Result{
		"/s?q=react": {Hits: []hn.Story{storyA}},
		"/s?q=redux": {Hits: []hn.Story{storyB}},
	}}
	o := NewOrchestrator(searcher, termOf, time.Second)
	rec := &recorder{state: stories.Initial()}

	first := o.Observe("/s?q=react", rec.dispatch)
	second := o.Observe("/s?q=redux", rec.dispatch)

	// The newer response arrives first, then the superseded one.
	assert.True(t, o.Complete(second().(CompletedMsg), rec.dispatch))
	assert.False(t, o.Complete(first().(CompletedMsg), rec.dispatch))

	assert.Equal(t, []hn.Story{storyB}, rec.state.Items)
	assert.False(t, rec.state.IsLoading)
	assert.False(t, rec.state.IsError)
	assert.Contains(t, buf.String(), "dropping stale result 1 (latest 2)")
}

func TestObserve_StaleResultDoesNotEndLoading(t *testing.T) {
	searcher := &fakeSearcher{}
	o := NewOrchestrator(searcher, termOf, time.Second)
	rec := &recorder{state: stories.Initial()}

	first := o.Observe("/s?q=react", rec.dispatch)
	second := o.Observe("/s?q=redux", rec.dispatch)

	o.Complete(first().(CompletedMsg), rec.dispatch)
	assert.True(t, rec.state.IsLoading, "the newest request still owns the loading flag")
	assert.True(t, o.Pending())

	o.Complete(second().(CompletedMsg), rec.dispatch)
	assert.False(t, rec.state.IsLoading)
}

func TestObserve_CancelsPreviousRequest(t *testing.T) {
	searcher := &fakeSearcher{}
	o := NewOrchestrator(searcher, termOf, time.Second)
	rec := &recorder{state: stories.Initial()}

	first := o.Observe("/s?q=react", rec.dispatch)
	_ = o.Observe("/s?q=redux", rec.dispatch)

	msg := first().(CompletedMsg)
	require.Len(t, searcher.ctxs, 1)
	assert.ErrorIs(t, searcher.ctxs[0].Err(), context.Canceled)
	assert.Equal(t, stories.FetchFailure{}, msg.Action)
	assert.False(t, o.Complete(msg, rec.dispatch), "a cancelled request never dispatches")
	assert.False(t, rec.state.IsError)
}

func TestObserve_SameURLTwiceRefetches(t *testing.T) {
	searcher := &fakeSearcher{}
	o := NewOrchestrator(searcher, termOf, 0)
	rec := &recorder{state: stories.Initial()}

	o.Complete(o.Observe("/s?q=react", rec.dispatch)().(CompletedMsg), rec.dispatch)
	o.Complete(o.Observe("/s?q=react", rec.dispatch)().(CompletedMsg), rec.dispatch)

	assert.Len(t, searcher.calls, 2)
	assert.Len(t, rec.actions, 4)
}
