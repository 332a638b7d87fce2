package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/pders01/hnstories/internal/config"
	"github.com/pders01/hnstories/internal/sorting"
)

type keyMap struct {
	Quit        key.Binding
	ForceQuit   key.Binding
	Search      key.Binding
	History     key.Binding
	Dismiss     key.Binding
	Open        key.Binding
	Select      key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	SortTitle   key.Binding
	SortAuthor  key.Binding
	SortComment key.Binding
	SortPoint   key.Binding
	SortNone    key.Binding
	Back        key.Binding
}

func newKeyMap(cfg config.KeyConfig) keyMap {
	b := cfg.Bindings
	mod := cfg.Modifier + "+"

	return keyMap{
		Quit:        key.NewBinding(key.WithKeys(b.Quit), key.WithHelp(b.Quit, "quit")),
		ForceQuit:   key.NewBinding(key.WithKeys(mod + "c")),
		Search:      key.NewBinding(key.WithKeys(b.Search, mod+"s"), key.WithHelp(b.Search, "search")),
		History:     key.NewBinding(key.WithKeys(b.History), key.WithHelp(b.History, "history")),
		Dismiss:     key.NewBinding(key.WithKeys(b.Dismiss), key.WithHelp(b.Dismiss, "dismiss")),
		Open:        key.NewBinding(key.WithKeys(b.Open), key.WithHelp(b.Open, "open")),
		Select:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		NextPage:    key.NewBinding(key.WithKeys(b.NextPage), key.WithHelp(b.NextPage, "next page")),
		PrevPage:    key.NewBinding(key.WithKeys(b.PrevPage), key.WithHelp(b.PrevPage, "prev page")),
		SortTitle:   key.NewBinding(key.WithKeys(b.SortTitle), key.WithHelp(b.SortTitle, "title")),
		SortAuthor:  key.NewBinding(key.WithKeys(b.SortAuthor), key.WithHelp(b.SortAuthor, "author")),
		SortComment: key.NewBinding(key.WithKeys(b.SortComment), key.WithHelp(b.SortComment, "comments")),
		SortPoint:   key.NewBinding(key.WithKeys(b.SortPoint), key.WithHelp(b.SortPoint, "points")),
		SortNone:    key.NewBinding(key.WithKeys(b.SortNone), key.WithHelp(b.SortNone, "unsorted")),
		Back:        key.NewBinding(key.WithKeys(b.Back), key.WithHelp(b.Back, "back")),
	}
}

type sortBinding struct {
	binding key.Binding
	column  sorting.Key
}

// sortKeys pairs each sort binding with the column it selects.
func (k keyMap) sortKeys() []sortBinding {
	return []sortBinding{
		{k.SortTitle, sorting.Title},
		{k.SortAuthor, sorting.Author},
		{k.SortComment, sorting.Comment},
		{k.SortPoint, sorting.Point},
		{k.SortNone, sorting.None},
	}
}

// viewHelp adapts a flat list of bindings to help.KeyMap.
type viewHelp []key.Binding

func (v viewHelp) ShortHelp() []key.Binding  { return v }
func (v viewHelp) FullHelp() [][]key.Binding { return [][]key.Binding{v} }

func (k keyMap) helpFor(view View) viewHelp {
	switch view {
	case ViewStories:
		return viewHelp{k.Search, k.History, k.Select, k.Open, k.Dismiss,
			k.NextPage, k.PrevPage, k.SortTitle, k.SortAuthor, k.SortComment, k.SortPoint, k.Quit}
	case ViewSearch:
		return viewHelp{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
			k.Back,
		}
	case ViewHistory:
		return viewHelp{k.Select, k.Back}
	case ViewDetail:
		return viewHelp{k.Open, k.Back}
	default:
		return nil
	}
}
