package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/hnstories/internal/config"
)

const AppName = "hnstories"

// LogoLines is the banner logo, one string per row.
var LogoLines = []string{
	"█  █ █▄  █   ▄▀▀▀ ▀█▀ ▄▀▀▄ █▀▀▄ █ █▀▀ ▄▀▀▀",
	"█▄▄█ █ ▀▄█   ▀▀▀▄  █  █  █ █▄▄▀ █ █▀▀ ▀▀▀▄",
	"█  █ █   █   ▄▄▄▀  █  ▀▄▄▀ █  █ █ █▄▄ ▄▄▄▀",
}

const CompactLogo = `hn ›`

var BannerColors = []lipgloss.Color{
	lipgloss.Color("#FF6600"),
	lipgloss.Color("#FF8533"),
	lipgloss.Color("#FFA366"),
	lipgloss.Color("#4ECDC4"),
}

var (
	PrimaryColor   = lipgloss.Color("#FF6600") // HN orange
	SecondaryColor = lipgloss.Color("#4ECDC4")
	AccentColor    = lipgloss.Color("#95E1D3")

	BackgroundColor = lipgloss.Color("#1A1A2E")
	TextColor       = lipgloss.Color("#EAEAEA")
	MutedColor      = lipgloss.Color("#94A3B8")

	WarnColor    = lipgloss.Color("#FFE66D")
	ErrorColor   = lipgloss.Color("#F87171")
	SuccessColor = lipgloss.Color("#4ADE80")
)

var (
	LogoStyle         lipgloss.Style
	TitleStyle        lipgloss.Style
	HeaderStyle       lipgloss.Style
	StatusBarStyle    lipgloss.Style
	StoryTitleStyle   lipgloss.Style
	HelpStyle         lipgloss.Style
	ErrorMessageStyle lipgloss.Style
	SeparatorStyle    lipgloss.Style

	StatusInfoStyle    lipgloss.Style
	StatusSuccessStyle lipgloss.Style
	StatusWarnStyle    lipgloss.Style
	StatusErrorStyle   lipgloss.Style

	EmptyStyle = lipgloss.NewStyle()
)

func init() {
	buildStyles()
}

// ApplyColors replaces the palette with the configured colors. Empty
// entries keep their defaults.
func ApplyColors(c config.UIColors) {
	set := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(&PrimaryColor, c.Primary)
	set(&SecondaryColor, c.Secondary)
	set(&AccentColor, c.Accent)
	set(&TextColor, c.Text)
	set(&MutedColor, c.Muted)
	set(&ErrorColor, c.Error)
	set(&SuccessColor, c.Success)
	buildStyles()
}

func buildStyles() {
	LogoStyle = lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true)

	TitleStyle = lipgloss.NewStyle().
		Foreground(BackgroundColor).
		Background(PrimaryColor).
		Bold(true).
		Padding(0, 2)

	HeaderStyle = lipgloss.NewStyle().
		Foreground(SecondaryColor).
		Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Padding(0, 1)

	StoryTitleStyle = lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true)

	HelpStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Italic(true)

	ErrorMessageStyle = lipgloss.NewStyle().
		Foreground(ErrorColor).
		Bold(true)

	SeparatorStyle = lipgloss.NewStyle().
		Foreground(MutedColor)

	StatusInfoStyle = lipgloss.NewStyle().
		Foreground(MutedColor)

	StatusSuccessStyle = lipgloss.NewStyle().
		Foreground(SuccessColor)

	StatusWarnStyle = lipgloss.NewStyle().
		Foreground(WarnColor)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ErrorColor).
		Bold(true)
}

// ContentWrapper returns a style for wrapping content with width and height constraints
func ContentWrapper(width, height int) lipgloss.Style {
	return EmptyStyle.Width(width).Height(height).MaxHeight(height)
}

func GetEmptyMessage(searchKey string) string {
	return GetCompactBanner(fmt.Sprintf("No stories. Press %s to search", searchKey))
}

func GetCompactBanner(message string) string {
	var coloredLines []string
	for _, line := range LogoLines {
		coloredLines = append(coloredLines, LogoStyle.Render(line))
	}

	logo := lipgloss.JoinVertical(lipgloss.Center, coloredLines...)

	return lipgloss.JoinVertical(
		lipgloss.Center,
		logo,
		"",
		HelpStyle.Render(message),
	)
}

// RenderBanner returns the startup banner shown by the version command.
func RenderBanner(version string) string {
	lines := make([]string, len(LogoLines)+1)
	copy(lines, LogoLines)

	versionTag := version
	if versionTag != "" && versionTag != "dev" {
		if versionTag[0] != 'v' && versionTag[0] != 'V' {
			versionTag = "v" + versionTag
		}
		lines = append(lines, fmt.Sprintf("Hacker News story search %s", versionTag))
	} else {
		lines = append(lines, "Hacker News story search")
	}

	var coloredLines []string
	for i, line := range lines {
		if line == "" {
			coloredLines = append(coloredLines, line)
			continue
		}
		style := lipgloss.NewStyle().
			Foreground(BannerColors[i%len(BannerColors)]).
			Bold(i < len(LogoLines))
		coloredLines = append(coloredLines, style.Render(line))
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(PrimaryColor).
		Padding(1, 3).
		MarginTop(1)

	banner := borderStyle.Render(lipgloss.JoinVertical(lipgloss.Center, coloredLines...))
	separator := SeparatorStyle.Render("▲ △ ▲ △ ▲")

	return lipgloss.JoinVertical(
		lipgloss.Center,
		lipgloss.NewStyle().Width(70).Align(lipgloss.Center).Render(banner),
		lipgloss.NewStyle().Width(70).Align(lipgloss.Center).MarginBottom(1).Render(separator),
	)
}

func ShowBanner(version string) {
	fmt.Println(RenderBanner(version))
}
