// Package sorting orders the displayed story list. It is presentation only
// and never touches the stories state.
package sorting

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/pders01/hnstories/internal/hn"
)

type Key int

const (
	None Key = iota
	Title
	Author
	Comment
	Point
)

func (k Key) String() string {
	switch k {
	case None:
		return "none"
	case Title:
		return "title"
	case Author:
		return "author"
	case Comment:
		return "comments"
	case Point:
		return "points"
	default:
		return "unknown"
	}
}

// ParseKey accepts the names produced by Key.String, plus singular forms.
func ParseKey(s string) (Key, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "title":
		return Title, nil
	case "author":
		return Author, nil
	case "comment", "comments":
		return Comment, nil
	case "point", "points":
		return Point, nil
	default:
		return None, fmt.Errorf("unknown sort key %q", s)
	}
}

// State is the selected sort key and whether its order is reversed.
type State struct {
	Key     Key
	Reverse bool
}

// Toggle selects key. Selecting the current key again flips Reverse; a new
// key starts unreversed.
func (s State) Toggle(key Key) State {
	if s.Key == key {
		return State{Key: key, Reverse: !s.Reverse}
	}
	return State{Key: key}
}

// Apply returns a sorted copy of items. Title and Author sort ascending,
// Comment and Point descending. Reverse flips whichever order the key has.
// Equal elements keep their input order.
func Apply(items []hn.Story, s State) []hn.Story {
	sorted := slices.Clone(items)
	if sorted == nil {
		sorted = []hn.Story{}
	}

	if compare := compareFunc(s.Key); compare != nil {
		slices.SortStableFunc(sorted, compare)
	}
	if s.Reverse {
		slices.Reverse(sorted)
	}
	return sorted
}

func compareFunc(k Key) func(a, b hn.Story) int {
	switch k {
	case Title:
		return func(a, b hn.Story) int { return strings.Compare(a.Title, b.Title) }
	case Author:
		return func(a, b hn.Story) int { return strings.Compare(a.Author, b.Author) }
	case Comment:
		return func(a, b hn.Story) int { return cmp.Compare(b.CommentCount, a.CommentCount) }
	case Point:
		return func(a, b hn.Story) int { return cmp.Compare(b.Points, a.Points) }
	default:
		return nil
	}
}
