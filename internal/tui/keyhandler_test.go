package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/hnstories/internal/config"
	"github.com/pders01/hnstories/internal/hn"
	"github.com/pders01/hnstories/internal/sorting"
)

func TestKeyHandler_HelpForCurrentView(t *testing.T) {
	app := newTestApp(t, &stubAPI{})

	tests := []struct {
		view View
		want []string
	}{
		{ViewStories, []string{"/: search", "h: history", "x: dismiss", "n: next page", "q: quit"}},
		{ViewSearch, []string{"enter: search", "esc: back"}},
		{ViewHistory, []string{"enter: select", "esc: back"}},
		{ViewDetail, []string{"o: open", "esc: back"}},
	}

	for _, tt := range tests {
		var help []string
		for _, b := range app.keyHandler.keys.helpFor(tt.view) {
			help = append(help, b.Help().Key+": "+b.Help().Desc)
		}
		for _, w := range tt.want {
			assert.Contains(t, help, w, "view %d", tt.view)
		}
	}
}

func TestKeyHandler_CustomBindings(t *testing.T) {
	cfg := config.TestConfig()
	cfg.Keys.Bindings.Search = "s"
	cfg.Keys.Bindings.SortTitle = "t"

	app := newTestApp(t, &stubAPI{})
	app.keyHandler = NewKeyHandler(app, cfg)

	press(app, "/")
	assert.Equal(t, ViewStories, app.view, "default binding no longer searches")

	press(app, "t")
	assert.Equal(t, sorting.Title, app.session.Sort().Key)

	press(app, "s")
	assert.Equal(t, ViewSearch, app.view)
}

func TestKeyHandler_ModifierSearch(t *testing.T) {
	app := newTestApp(t, &stubAPI{})

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, ViewSearch, app.view)
	assert.True(t, app.searchInput.Focused())
}

func TestKeyHandler_SearchPrefillsTerm(t *testing.T) {
	app := newTestApp(t, &stubAPI{})
	app.session.OnSearchInputChange("half typed")

	press(app, "/")

	assert.Equal(t, "half typed", app.searchInput.Value())
}

func TestKeyHandler_BlurredSearchRefocuses(t *testing.T) {
	app := newTestApp(t, &stubAPI{})
	press(app, "/")
	app.searchInput.Blur()
	app.searchInput.SetValue("")

	require.Equal(t, ViewSearch, app.view)
	require.False(t, app.searchInput.Focused())

	press(app, "a")
	press(app, "b")

	assert.Equal(t, ViewSearch, app.view)
	assert.True(t, app.searchInput.Focused())
	assert.Equal(t, "ab", app.searchInput.Value())
	assert.Equal(t, "ab", app.session.Term())
}

func TestKeyHandler_ActionsWithoutStories(t *testing.T) {
	app := started(t, &stubAPI{})
	require.Empty(t, app.storyList.Items())

	assert.Nil(t, press(app, "x"))
	assert.Nil(t, press(app, "o"))
	assert.Nil(t, press(app, "enter"))
	assert.Equal(t, ViewStories, app.view)
}

func TestKeyHandler_DetailOpen(t *testing.T) {
	app := newTestApp(t, &stubAPI{})
	var opened string
	app.open = func(link string) error {
		opened = link
		return nil
	}
	story := hn.Story{ID: "42", Title: "Ask HN"}
	app.currentStory = &story
	app.view = ViewDetail

	drain(t, app, press(app, "o"))

	assert.Equal(t, "https://news.ycombinator.com/item?id=42", opened)
}

func TestKeyHandler_OpenWithoutLink(t *testing.T) {
	app := newTestApp(t, &stubAPI{})

	assert.Nil(t, app.openStory(hn.Story{}))
	assert.Equal(t, MsgNothingToOpen, app.status)
}
