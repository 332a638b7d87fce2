package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/hnstories/internal/browser"
	"github.com/pders01/hnstories/internal/config"
	"github.com/pders01/hnstories/internal/fetch"
	"github.com/pders01/hnstories/internal/hn"
	"github.com/pders01/hnstories/internal/session"
)

type View int

const (
	ViewStories View = iota
	ViewSearch
	ViewHistory
	ViewDetail
)

// chromeHeight is the lines taken by the header and status bar.
const chromeHeight = 5

type App struct {
	config          *config.Config
	session         *session.Session
	launcher        *browser.Launcher
	open            func(link string) error
	keyHandler      *KeyHandler
	storyList       list.Model
	historyList     list.Model
	searchInput     textinput.Model
	viewport        viewport.Model
	help            help.Model
	spinner         spinner.Model
	view            View
	previousView    View
	currentStory    *hn.Story
	width           int
	height          int
	err             error
	status          string
	statusKind      StatusKind
	glamourRenderer *glamour.TermRenderer
	rendererWidth   int
	renderingStory  bool
}

func NewApp(sess *session.Session, cfg *config.Config) *App {
	ApplyColors(cfg.UI.Colors)

	storyList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	storyList.SetShowTitle(false)
	storyList.SetShowStatusBar(false)
	storyList.SetFilteringEnabled(false)
	storyList.SetShowHelp(false)
	storyList.DisableQuitKeybindings()

	historyDelegate := list.NewDefaultDelegate()
	historyDelegate.ShowDescription = false
	historyDelegate.SetSpacing(0)
	historyList := list.New([]list.Item{}, historyDelegate, 0, 0)
	historyList.Title = "› previous searches"
	historyList.SetShowStatusBar(false)
	historyList.SetFilteringEnabled(false)
	historyList.SetShowHelp(false)
	historyList.DisableQuitKeybindings()

	si := textinput.New()
	si.Placeholder = "Search Hacker News stories..."
	si.Prompt = "› "
	si.CharLimit = 256
	si.SetValue(sess.Term())

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(PrimaryColor)

	launcher := browser.NewLauncher(cfg)

	app := &App{
		config:       cfg,
		session:      sess,
		launcher:     launcher,
		open:         launcher.Open,
		storyList:    storyList,
		historyList:  historyList,
		searchInput:  si,
		viewport:     viewport.New(0, 0),
		help:         help.New(),
		spinner:      sp,
		view:         ViewStories,
		previousView: ViewStories,
	}

	app.keyHandler = NewKeyHandler(app, cfg)

	return app
}

func (a *App) getRenderer() (*glamour.TermRenderer, error) {
	wordWrapWidth := (a.width * 9) / 10
	if wordWrapWidth > 120 {
		wordWrapWidth = 120
	}
	if wordWrapWidth < 40 {
		wordWrapWidth = 40
	}

	if a.glamourRenderer == nil || abs(a.rendererWidth-wordWrapWidth) > 10 {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wordWrapWidth),
		)
		if err != nil {
			return nil, err
		}
		a.glamourRenderer = r
		a.rendererWidth = wordWrapWidth
	}

	return a.glamourRenderer, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.track(a.session.Start()),
		tea.EnterAltScreen,
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		a.err = nil
		return a.keyHandler.HandleKey(msg)

	case fetch.CompletedMsg:
		if a.session.Update(msg) {
			a.syncStories()
		}
		return a, nil

	case spinner.TickMsg:
		if !a.session.Pending() && !a.renderingStory {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case storyRenderedMsg:
		if a.view == ViewDetail && a.currentStory != nil && a.currentStory.ID == msg.id {
			a.viewport.SetContent(msg.content)
			a.viewport.GotoTop()
			a.renderingStory = false
		}
		return a, nil

	case linkOpenedMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.setStatus(MsgOpened(msg.opener), StatusSuccess)
		return a, nil

	case errorMsg:
		a.err = msg.err
		a.renderingStory = false
		return a, nil
	}

	if a.view == ViewDetail {
		if _, ok := msg.(tea.MouseMsg); ok {
			var cmd tea.Cmd
			a.viewport, cmd = a.viewport.Update(msg)
			return a, cmd
		}
	}

	return a, nil
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height

	listHeight := height - chromeHeight
	if listHeight < 3 {
		listHeight = 3
	}
	a.storyList.SetSize(width, listHeight)
	a.historyList.SetSize(width, listHeight)
	a.viewport.Width = width
	a.viewport.Height = listHeight
	a.help.Width = width

	inputWidth := width - 8
	if inputWidth < 10 {
		inputWidth = width - 4
	}
	a.searchInput.Width = inputWidth
}

// track starts the spinner alongside a fetch command. A nil cmd means no
// request was made.
func (a *App) track(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return tea.Batch(cmd, a.spinner.Tick)
}

// syncStories rebuilds the story list from the session's visible stories.
func (a *App) syncStories() {
	visible := a.session.Visible()
	items := make([]list.Item, len(visible))
	for i, s := range visible {
		items[i] = storyItem{story: s}
	}
	a.storyList.SetItems(items)

	state := a.session.State()
	switch {
	case state.IsLoading:
	case state.IsError:
		a.setStatus(MsgFetchFailed, StatusError)
	case len(visible) == 0:
		a.setStatus(MsgNoStories, StatusInfo)
	default:
		a.setStatus(MsgStoriesCount(len(visible)), StatusSuccess)
	}
}

func (a *App) setHistory(terms []string) {
	items := make([]list.Item, len(terms))
	// Most recent first.
	for i, t := range terms {
		items[len(terms)-1-i] = historyItem(t)
	}
	a.historyList.SetItems(items)
	a.historyList.Select(0)
}

func (a *App) setStatus(text string, kind StatusKind) {
	a.status = text
	a.statusKind = kind
}

func (a *App) selectedStory() (hn.Story, bool) {
	item, ok := a.storyList.SelectedItem().(storyItem)
	if !ok {
		return hn.Story{}, false
	}
	return item.story, true
}

func (a *App) View() string {
	contentHeight := a.height - chromeHeight
	if contentHeight < 3 {
		contentHeight = 3
	}

	var content string
	switch a.view {
	case ViewStories:
		content = a.storiesView(contentHeight)
	case ViewSearch:
		content = a.searchView()
	case ViewHistory:
		content = a.historyList.View()
	case ViewDetail:
		if a.renderingStory {
			content = renderCentered(a.width, contentHeight, a.spinner.View()+" "+renderMuted(MsgLoading))
		} else {
			content = a.viewport.View()
		}
	}

	header := renderHeader(a.title(), a.subtitle(), a.width)
	body := ContentWrapper(a.width, contentHeight).Render(content)

	separatorWidth := a.width - 2
	if separatorWidth < 0 {
		separatorWidth = 0
	}
	separator := SeparatorStyle.Render("─" + strings.Repeat("─", separatorWidth))

	return lipgloss.JoinVertical(lipgloss.Top, header, "", body, separator, a.statusBar())
}

func (a *App) title() string {
	return fmt.Sprintf("%s hacker stories", CompactLogo)
}

func (a *App) subtitle() string {
	state := a.session.State()
	return MsgSearchSummary(a.session.CommittedTerm(), state.Page, len(state.Items), a.session.SumComments())
}

func (a *App) storiesView(height int) string {
	state := a.session.State()

	if state.IsLoading {
		return renderCentered(a.width, height, a.spinner.View()+" "+renderMuted(MsgLoading))
	}

	if len(a.storyList.Items()) == 0 {
		if state.IsError {
			return renderCentered(a.width, height, ErrorMessageStyle.Render(MsgFetchFailed))
		}
		return renderCentered(a.width, height, GetEmptyMessage(a.config.Keys.Bindings.Search))
	}

	if state.IsError {
		return lipgloss.JoinVertical(lipgloss.Top,
			ErrorMessageStyle.Render(MsgFetchFailed),
			a.storyList.View(),
		)
	}
	return a.storyList.View()
}

func (a *App) searchView() string {
	input := renderInputFrame(a.searchInput.View(), a.searchInput.Focused(), a.searchInput.Width)
	return lipgloss.JoinVertical(
		lipgloss.Top,
		TitleStyle.Render("› search"),
		"",
		input,
		renderHelp("Enter: search • Esc: cancel"),
	)
}

func (a *App) statusBar() string {
	if a.err != nil {
		return StatusBarStyle.Width(a.width).Render(ErrorMessageStyle.Render(fmt.Sprintf("✗ %v", a.err)))
	}

	line := a.help.View(a.keyHandler.keys.helpFor(a.view))
	if a.status != "" {
		line = statusStyleFor(a.statusKind)(a.status) + renderMuted(" • ") + line
	}
	return StatusBarStyle.Width(a.width).Render(line)
}

type storyItem struct {
	story hn.Story
}

func (i storyItem) Title() string {
	if i.story.Title == "" {
		return "(untitled)"
	}
	return i.story.Title
}

func (i storyItem) Description() string {
	parts := []string{
		fmt.Sprintf("%d points", i.story.Points),
		fmt.Sprintf("%d comments", i.story.CommentCount),
	}
	if i.story.Author != "" {
		parts = append(parts, "by "+i.story.Author)
	}
	if host := hostOf(i.story.URL); host != "" {
		parts = append(parts, truncateMiddle(host, 40))
	}
	return strings.Join(parts, " • ")
}

func (i storyItem) FilterValue() string { return i.story.Title }

type historyItem string

func (i historyItem) Title() string       { return string(i) }
func (i historyItem) Description() string { return "" }
func (i historyItem) FilterValue() string { return string(i) }

type storyRenderedMsg struct {
	id      string
	content string
}

type linkOpenedMsg struct {
	opener string
	err    error
}

type errorMsg struct {
	err error
}
