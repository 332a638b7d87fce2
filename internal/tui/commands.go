package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/hnstories/internal/hn"
)

const itemURL = "https://news.ycombinator.com/item?id="

// storyLink is the story's own link, or its discussion page for self posts.
func storyLink(story hn.Story) string {
	if story.URL != "" {
		return story.URL
	}
	if story.ID == "" {
		return ""
	}
	return itemURL + story.ID
}

func (a *App) showDetail(story hn.Story) tea.Cmd {
	a.currentStory = &story
	a.renderingStory = true
	a.view = ViewDetail
	return tea.Batch(a.renderStory(story), a.spinner.Tick)
}

func storyMarkdown(story hn.Story) string {
	var b strings.Builder

	title := story.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "**%d** points • **%d** comments", story.Points, story.CommentCount)
	if story.Author != "" {
		fmt.Fprintf(&b, " • by *%s*", story.Author)
	}
	b.WriteString("\n\n")

	if story.URL != "" {
		fmt.Fprintf(&b, "[Read Online](%s)\n\n", story.URL)
	}
	if story.ID != "" {
		fmt.Fprintf(&b, "[Discussion](%s%s)\n\n", itemURL, story.ID)
	}

	return b.String()
}

func (a *App) renderStory(story hn.Story) tea.Cmd {
	r, err := a.getRenderer()
	return func() tea.Msg {
		if err != nil {
			return errorMsg{err: wrapErr("initializing renderer", err)}
		}

		rendered, err := r.Render(storyMarkdown(story))
		if err != nil {
			return storyRenderedMsg{
				id:      story.ID,
				content: fmt.Sprintf("Failed to render story: %v\n\nPress Escape to go back.", err),
			}
		}
		return storyRenderedMsg{id: story.ID, content: rendered}
	}
}

func (a *App) openStory(story hn.Story) tea.Cmd {
	link := storyLink(story)
	if link == "" {
		a.setStatus(MsgNothingToOpen, StatusWarn)
		return nil
	}

	open := a.open
	opener := a.launcher.Opener()
	return func() tea.Msg {
		if err := open(link); err != nil {
			return linkOpenedMsg{err: wrapErr("opening story", err)}
		}
		return linkOpenedMsg{opener: opener}
	}
}
