// Package fetch turns changes of the current request URL into one request
// each and feeds the outcome back as stories actions.
package fetch

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/hnstories/internal/debuglog"
	"github.com/pders01/hnstories/internal/hn"
	"github.com/pders01/hnstories/internal/stories"
)

// Searcher performs one search request against a fully built URL.
type Searcher interface {
	Search(ctx context.Context, rawURL string) (*hn.Result, error)
}

// Dispatch feeds an action into the owner's reducer.
type Dispatch func(stories.Action)

// CompletedMsg carries the terminal action of one request back to Update.
type CompletedMsg struct {
	Token  uint64
	URL    string
	Action stories.Action
}

// Orchestrator issues requests and applies their results latest-wins: only
// the request for the most recently observed URL may dispatch a terminal
// action. It must be used from the Update goroutine only.
type Orchestrator struct {
	searcher Searcher
	extract  func(string) string
	timeout  time.Duration

	token  uint64
	cancel context.CancelFunc
}

func NewOrchestrator(searcher Searcher, extract func(string) string, timeout time.Duration) *Orchestrator {
	return &Orchestrator{
		searcher: searcher,
		extract:  extract,
		timeout:  timeout,
	}
}

// Observe is called each time a URL is appended to the tracked list. An empty
// term is not requested. Otherwise the previous request is cancelled,
// FetchInit is dispatched and the returned command performs the request.
func (o *Orchestrator) Observe(rawURL string, dispatch Dispatch) tea.Cmd {
	if o.extract(rawURL) == "" {
		debuglog.Debugf("skipping request for empty term: %s", rawURL)
		return nil
	}

	if o.cancel != nil {
		o.cancel()
	}

	o.token++
	token := o.token

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if o.timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), o.timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	o.cancel = cancel

	dispatch(stories.FetchInit{})
	debuglog.WithFields(map[string]interface{}{"token": token}).Debugf("request %s", rawURL)

	searcher := o.searcher
	return func() tea.Msg {
		defer cancel()

		result, err := searcher.Search(ctx, rawURL)
		if err != nil {
			if errors.Is(ctx.Err(), context.Canceled) {
				debuglog.Debugf("request %d cancelled", token)
			} else {
				debuglog.WithFields(map[string]interface{}{"token": token, "url": rawURL}).
					Errorf("search failed: %v", err)
			}
			return CompletedMsg{Token: token, URL: rawURL, Action: stories.FetchFailure{}}
		}

		return CompletedMsg{
			Token:  token,
			URL:    rawURL,
			Action: stories.FetchSuccess{Items: result.Hits, Page: result.Page, Pages: result.NbPages},
		}
	}
}

// Complete dispatches the message's action if it belongs to the latest
// request and reports whether it did. Superseded results are dropped.
func (o *Orchestrator) Complete(msg CompletedMsg, dispatch Dispatch) bool {
	if msg.Token != o.token {
		debuglog.Debugf("dropping stale result %d (latest %d) for %s", msg.Token, o.token, msg.URL)
		return false
	}

	o.cancel = nil
	dispatch(msg.Action)
	return true
}

// Pending reports whether a request is awaiting its terminal action.
func (o *Orchestrator) Pending() bool {
	return o.cancel != nil
}
