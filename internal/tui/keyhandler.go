package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/hnstories/internal/config"
)

type KeyHandler struct {
	app         *App
	keys        keyMap
	modifierKey string
}

func NewKeyHandler(app *App, cfg *config.Config) *KeyHandler {
	return &KeyHandler{
		app:         app,
		keys:        newKeyMap(cfg.Keys),
		modifierKey: cfg.Keys.Modifier + "+",
	}
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, kh.keys.ForceQuit) {
		return kh.app, tea.Quit
	}

	if kh.isInTextInputMode() {
		return kh.handleTextInputMode(msg)
	}

	if model, cmd, handled := kh.handleCustomKeys(msg); handled {
		return model, cmd
	}

	return kh.delegateToCharm(msg)
}

func (kh *KeyHandler) isInTextInputMode() bool {
	return kh.app.view == ViewSearch && kh.app.searchInput.Focused()
}

func (kh *KeyHandler) handleTextInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, kh.keys.Back):
		return kh.navigateBack()
	case msg.Type == tea.KeyEnter:
		return kh.submitSearch()
	default:
		return kh.delegateToTextInput(msg)
	}
}

func (kh *KeyHandler) delegateToTextInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	kh.app.searchInput, cmd = kh.app.searchInput.Update(msg)
	kh.app.session.OnSearchInputChange(kh.app.searchInput.Value())
	return kh.app, cmd
}

func (kh *KeyHandler) submitSearch() (tea.Model, tea.Cmd) {
	if strings.TrimSpace(kh.app.searchInput.Value()) == "" {
		kh.app.setStatus(MsgEmptyTerm, StatusWarn)
		return kh.app, nil
	}

	cmd := kh.app.session.OnSearchSubmit()
	kh.app.searchInput.Blur()
	kh.app.view = ViewStories
	return kh.app, kh.app.track(cmd)
}

func (kh *KeyHandler) handleCustomKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch kh.app.view {
	case ViewStories:
		return kh.handleStoriesCustomKeys(msg)
	case ViewHistory:
		return kh.handleHistoryCustomKeys(msg)
	case ViewDetail:
		return kh.handleDetailCustomKeys(msg)
	case ViewSearch:
		// Input blurred: any key refocuses it.
		kh.app.searchInput.Focus()
		model, cmd := kh.handleTextInputMode(msg)
		return model, cmd, true
	}
	return kh.app, nil, false
}

func (kh *KeyHandler) handleStoriesCustomKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	app := kh.app

	switch {
	case key.Matches(msg, kh.keys.Quit):
		return app, tea.Quit, true

	case key.Matches(msg, kh.keys.Search):
		model, cmd := kh.enterSearchMode()
		return model, cmd, true

	case key.Matches(msg, kh.keys.History):
		model, cmd := kh.openHistory()
		return model, cmd, true

	case key.Matches(msg, kh.keys.Dismiss):
		if story, ok := app.selectedStory(); ok {
			app.session.OnDismiss(story)
			app.syncStories()
			app.setStatus(MsgDismissed(story.Title), StatusInfo)
		}
		return app, nil, true

	case key.Matches(msg, kh.keys.Open):
		if story, ok := app.selectedStory(); ok {
			return app, app.openStory(story), true
		}
		return app, nil, true

	case key.Matches(msg, kh.keys.Select):
		if story, ok := app.selectedStory(); ok {
			return app, app.showDetail(story), true
		}
		return app, nil, true

	case key.Matches(msg, kh.keys.NextPage):
		cmd := app.session.OnNextPage()
		if cmd == nil && app.session.LastPage() {
			app.setStatus(MsgLastPage, StatusWarn)
			return app, nil, true
		}
		return app, app.track(cmd), true

	case key.Matches(msg, kh.keys.PrevPage):
		cmd := app.session.OnPrevPage()
		if cmd == nil {
			app.setStatus(MsgFirstPage, StatusWarn)
			return app, nil, true
		}
		return app, app.track(cmd), true
	}

	for _, sk := range kh.keys.sortKeys() {
		if key.Matches(msg, sk.binding) {
			app.session.OnSortRequest(sk.column)
			app.syncStories()
			sort := app.session.Sort()
			app.setStatus(MsgSortedBy(sort.Key.String(), sort.Reverse), StatusInfo)
			return app, nil, true
		}
	}

	return app, nil, false
}

func (kh *KeyHandler) handleHistoryCustomKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	app := kh.app

	switch {
	case key.Matches(msg, kh.keys.Back), key.Matches(msg, kh.keys.Quit):
		model, cmd := kh.navigateBack()
		return model, cmd, true

	case key.Matches(msg, kh.keys.Select):
		item, ok := app.historyList.SelectedItem().(historyItem)
		if !ok {
			return app, nil, true
		}
		cmd := app.session.OnHistoryPick(string(item))
		app.searchInput.SetValue(string(item))
		app.view = ViewStories
		return app, app.track(cmd), true
	}

	return app, nil, false
}

func (kh *KeyHandler) handleDetailCustomKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	app := kh.app

	switch {
	case key.Matches(msg, kh.keys.Back):
		model, cmd := kh.navigateBack()
		return model, cmd, true

	case key.Matches(msg, kh.keys.Quit):
		return app, tea.Quit, true

	case key.Matches(msg, kh.keys.Open):
		if app.currentStory != nil {
			return app, app.openStory(*app.currentStory), true
		}
		return app, nil, true
	}

	return app, nil, false
}

func (kh *KeyHandler) delegateToCharm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch kh.app.view {
	case ViewStories:
		kh.app.storyList, cmd = kh.app.storyList.Update(msg)
	case ViewHistory:
		kh.app.historyList, cmd = kh.app.historyList.Update(msg)
	case ViewDetail:
		kh.app.viewport, cmd = kh.app.viewport.Update(msg)
	}

	return kh.app, cmd
}

func (kh *KeyHandler) navigateBack() (tea.Model, tea.Cmd) {
	switch kh.app.view {
	case ViewSearch:
		kh.app.searchInput.Blur()
		kh.app.view = kh.app.previousView
	case ViewHistory, ViewDetail:
		kh.app.currentStory = nil
		kh.app.view = ViewStories
	default:
		return kh.app, tea.Quit
	}
	return kh.app, nil
}

func (kh *KeyHandler) enterSearchMode() (tea.Model, tea.Cmd) {
	kh.app.previousView = kh.app.view
	kh.app.view = ViewSearch
	kh.app.searchInput.SetValue(kh.app.session.Term())
	kh.app.searchInput.CursorEnd()
	return kh.app, kh.app.searchInput.Focus()
}

func (kh *KeyHandler) openHistory() (tea.Model, tea.Cmd) {
	terms := kh.app.session.History()
	if len(terms) == 0 {
		kh.app.setStatus(MsgNoHistory, StatusInfo)
		return kh.app, nil
	}
	kh.app.setHistory(terms)
	kh.app.view = ViewHistory
	return kh.app, nil
}
