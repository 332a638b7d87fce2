// Package stories holds the view model for search results and the reducer
// that moves it between states.
package stories

import "github.com/pders01/hnstories/internal/hn"

// State is the stories view model. It changes only through Reduce.
type State struct {
	Items     []hn.Story
	Page      int
	Pages     int
	IsLoading bool
	IsError   bool
}

// Initial returns the state at application start.
func Initial() State {
	return State{Items: []hn.Story{}}
}

// Action is implemented only by the variants in this package, so Reduce
// never sees an action it does not know.
type Action interface {
	apply(State) State
}

// FetchInit marks a request as outstanding.
type FetchInit struct{}

// FetchSuccess replaces the list with a full page from the server. Pages is
// the server's page count for the query, 0 when unknown.
type FetchSuccess struct {
	Items []hn.Story
	Page  int
	Pages int
}

// FetchFailure marks the outstanding request as failed. The current list is kept.
type FetchFailure struct{}

// RemoveStory drops every item with the story's ID.
type RemoveStory struct {
	Story hn.Story
}

// Reduce returns the state that follows s after a. It does not modify s.
func Reduce(s State, a Action) State {
	return a.apply(s)
}

func (FetchInit) apply(s State) State {
	s.IsLoading = true
	s.IsError = false
	return s
}

func (a FetchSuccess) apply(s State) State {
	items := make([]hn.Story, len(a.Items))
	copy(items, a.Items)

	s.Items = items
	s.Page = a.Page
	s.Pages = a.Pages
	s.IsLoading = false
	s.IsError = false
	return s
}

func (FetchFailure) apply(s State) State {
	s.IsLoading = false
	s.IsError = true
	return s
}

func (a RemoveStory) apply(s State) State {
	kept := make([]hn.Story, 0, len(s.Items))
	for _, story := range s.Items {
		if story.ID != a.Story.ID {
			kept = append(kept, story)
		}
	}
	s.Items = kept
	return s
}

// SumComments totals the comment counts of items.
func SumComments(items []hn.Story) int {
	total := 0
	for _, story := range items {
		total += story.CommentCount
	}
	return total
}
