// Package session owns the search state of one user session: the term being
// typed, the log of request URLs, the stories view model and the sort
// selection. Views read it and report user intents through its On* methods.
package session

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/hnstories/internal/config"
	"github.com/pders01/hnstories/internal/debuglog"
	"github.com/pders01/hnstories/internal/fetch"
	"github.com/pders01/hnstories/internal/history"
	"github.com/pders01/hnstories/internal/hn"
	"github.com/pders01/hnstories/internal/query"
	"github.com/pders01/hnstories/internal/sorting"
	"github.com/pders01/hnstories/internal/stories"
)

// KeyValue persists the last committed search term.
type KeyValue interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

type Options struct {
	DefaultTerm string
	StorageKey  string
	HistorySize int
}

// OptionsFromConfig picks the session settings out of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		DefaultTerm: cfg.Search.DefaultTerm,
		StorageKey:  cfg.Search.StorageKey,
		HistorySize: cfg.Search.HistorySize,
	}
}

type Session struct {
	opts    Options
	builder *query.Builder
	orch    *fetch.Orchestrator
	store   KeyValue

	term    string
	urls    []string
	stories stories.State
	sort    sorting.State
	err     error
}

// New reads the stored term (falling back to the default) and tracks the URL
// for it. Call Start to issue the first request.
func New(builder *query.Builder, orch *fetch.Orchestrator, store KeyValue, opts Options) (*Session, error) {
	if opts.HistorySize <= 0 {
		opts.HistorySize = history.DefaultWindow
	}

	term := opts.DefaultTerm
	if store != nil {
		stored, ok, err := store.Get(opts.StorageKey)
		if err != nil {
			return nil, fmt.Errorf("loading search term: %w", err)
		}
		if ok {
			term = stored
		}
	}

	return &Session{
		opts:    opts,
		builder: builder,
		orch:    orch,
		store:   store,
		term:    term,
		urls:    []string{builder.BuildURL(term)},
		stories: stories.Initial(),
	}, nil
}

// Start requests the initial URL.
func (s *Session) Start() tea.Cmd {
	return s.orch.Observe(s.CurrentURL(), s.Dispatch)
}

// Dispatch folds a into the stories state. It is the only writer of that state.
func (s *Session) Dispatch(a stories.Action) {
	s.stories = stories.Reduce(s.stories, a)
}

// Update handles messages produced by commands this session returned. It
// reports whether msg was one of them.
func (s *Session) Update(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case fetch.CompletedMsg:
		s.orch.Complete(msg, s.Dispatch)
		return true
	}
	return false
}

// OnSearchInputChange records the text being composed. Nothing is requested
// or persisted until the term is committed.
func (s *Session) OnSearchInputChange(text string) {
	s.term = text
}

// OnSearchSubmit commits the current term. An empty term is ignored.
func (s *Session) OnSearchSubmit() tea.Cmd {
	if strings.TrimSpace(s.term) == "" {
		return nil
	}
	return s.commit(s.term, s.builder.BuildURL(s.term))
}

// OnHistoryPick makes term the current term and searches for it.
func (s *Session) OnHistoryPick(term string) tea.Cmd {
	s.term = term
	return s.commit(term, s.builder.BuildURL(term))
}

// OnDismiss removes story from the displayed list.
func (s *Session) OnDismiss(story hn.Story) {
	s.Dispatch(stories.RemoveStory{Story: story})
}

// OnSortRequest selects key, flipping direction if it is already selected.
func (s *Session) OnSortRequest(key sorting.Key) {
	s.sort = s.sort.Toggle(key)
}

// OnNextPage requests the page after the current one for the committed term.
func (s *Session) OnNextPage() tea.Cmd {
	return s.turnPage(1)
}

// OnPrevPage requests the page before the current one. It does nothing on
// the first page.
func (s *Session) OnPrevPage() tea.Cmd {
	return s.turnPage(-1)
}

// turnPage counts from the page of the current URL, so a search still in
// flight pages through its own term. The last-page bound applies only when
// the displayed page answers the current URL.
func (s *Session) turnPage(delta int) tea.Cmd {
	page := s.builder.ExtractPage(s.CurrentURL()) + delta
	if page < 0 {
		return nil
	}
	if delta > 0 && s.LastPage() {
		return nil
	}
	term := s.CommittedTerm()
	if term == "" {
		return nil
	}
	return s.commit(term, s.builder.BuildPageURL(term, page))
}

func (s *Session) commit(term, rawURL string) tea.Cmd {
	s.urls = append(s.urls, rawURL)
	s.persist(term)
	return s.orch.Observe(rawURL, s.Dispatch)
}

func (s *Session) persist(term string) {
	if s.store == nil {
		return
	}
	if err := s.store.Set(s.opts.StorageKey, term); err != nil {
		debuglog.Warnf("could not persist search term: %v", err)
		s.err = err
		return
	}
	s.err = nil
}

// Term is the text currently being composed.
func (s *Session) Term() string { return s.term }

// CommittedTerm is the term of the most recent request.
func (s *Session) CommittedTerm() string {
	return s.builder.ExtractTerm(s.CurrentURL())
}

// CurrentURL is the last tracked URL.
func (s *Session) CurrentURL() string { return s.urls[len(s.urls)-1] }

// URLs returns a copy of the tracked URL log.
func (s *Session) URLs() []string {
	out := make([]string, len(s.urls))
	copy(out, s.urls)
	return out
}

func (s *Session) State() stories.State { return s.stories }

// Pending reports whether a request is still awaiting its result.
func (s *Session) Pending() bool { return s.orch.Pending() }

// LastPage reports whether the displayed page is the last one the server
// has for the current URL.
func (s *Session) LastPage() bool {
	st := s.stories
	if st.IsLoading || st.IsError || st.Pages <= 0 {
		return false
	}
	return st.Page >= st.Pages-1
}

func (s *Session) Sort() sorting.State { return s.sort }

// History lists prior distinct searches, oldest first.
func (s *Session) History() []string {
	return history.LastDistinctTerms(s.urls, s.opts.HistorySize, s.builder.ExtractTerm)
}

// Visible is the stories list in display order.
func (s *Session) Visible() []hn.Story {
	return sorting.Apply(s.stories.Items, s.sort)
}

// SumComments totals comments over the displayed stories.
func (s *Session) SumComments() int {
	return stories.SumComments(s.stories.Items)
}

// PersistErr is the last error from saving the term, if any.
func (s *Session) PersistErr() error { return s.err }
