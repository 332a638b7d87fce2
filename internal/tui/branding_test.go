package tui

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/pders01/hnstories/internal/config"
)

func TestShowBanner(t *testing.T) {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		outC <- buf.String()
	}()

	ShowBanner("1.0.0-test")

	w.Close()
	os.Stdout = old
	out := <-outC

	assert.Contains(t, out, "Hacker News story search")
	assert.Contains(t, out, "v1.0.0-test")
	assert.Contains(t, out, "╔")
	assert.Contains(t, out, "▲")
}

func TestRenderBanner_DevVersion(t *testing.T) {
	out := RenderBanner("dev")
	assert.Contains(t, out, "Hacker News story search")
	assert.NotContains(t, out, "vdev")

	assert.Contains(t, RenderBanner("v2.0.0"), "v2.0.0")
	assert.NotContains(t, RenderBanner("v2.0.0"), "vv2.0.0")
}

func TestGetCompactBanner(t *testing.T) {
	result := GetCompactBanner("Test message")

	assert.Contains(t, result, "Test message")
	assert.Contains(t, result, "█▄▄█")
}

func TestGetEmptyMessage(t *testing.T) {
	assert.Contains(t, GetEmptyMessage("/"), "No stories. Press / to search")
}

func TestLogoConstants(t *testing.T) {
	assert.Len(t, LogoLines, 3)
	assert.NotEmpty(t, BannerColors)
	assert.Equal(t, "hnstories", AppName)
}

func TestApplyColors(t *testing.T) {
	defaults := config.TestConfig().UI.Colors
	t.Cleanup(func() { ApplyColors(defaults) })

	ApplyColors(config.UIColors{Primary: "#123456"})

	assert.Equal(t, lipgloss.Color("#123456"), PrimaryColor)
	assert.Equal(t, lipgloss.Color(defaults.Muted), MutedColor, "empty entries keep the current color")
	assert.Equal(t, lipgloss.Color("#123456"), LogoStyle.GetForeground())
}

func TestStatusStyleFor(t *testing.T) {
	for _, kind := range []StatusKind{StatusInfo, StatusSuccess, StatusWarn, StatusError} {
		assert.Contains(t, statusStyleFor(kind)("hello"), "hello")
	}
}

func TestStatusMessages(t *testing.T) {
	assert.Equal(t, "1 story", MsgStoriesCount(1))
	assert.Equal(t, "3 stories", MsgStoriesCount(3))
	assert.Equal(t, "“go” • page 2 • 3 stories • 12 comments", MsgSearchSummary(" go ", 1, 3, 12))
	assert.Equal(t, "Unsorted", MsgSortedBy("none", true))
	assert.Equal(t, "Sorted by points", MsgSortedBy("points", false))
	assert.Equal(t, "Sorted by title (reversed)", MsgSortedBy("title", true))
	assert.Equal(t, "Dismissed 'Alpha'", MsgDismissed(" Alpha "))
}
