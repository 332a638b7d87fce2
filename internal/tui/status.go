package tui

import (
	"fmt"
	"strings"
)

// StatusKind indicates severity for status messages.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusWarn
	StatusError
)

// Canonical short status messages used across the app.
const (
	MsgLoading       = "Loading…"
	MsgFetchFailed   = "Something went wrong…"
	MsgNoStories     = "No stories"
	MsgFirstPage     = "Already on the first page"
	MsgLastPage      = "Already on the last page"
	MsgEmptyTerm     = "Type a search term first"
	MsgNoHistory     = "No previous searches"
	MsgNothingToOpen = "Story has no link"
)

func MsgStoriesCount(n int) string {
	if n == 1 {
		return "1 story"
	}
	return fmt.Sprintf("%d stories", n)
}

func MsgSearchSummary(term string, page, count, comments int) string {
	return fmt.Sprintf("“%s” • page %d • %s • %d comments",
		strings.TrimSpace(term), page+1, MsgStoriesCount(count), comments)
}

func MsgDismissed(title string) string {
	return fmt.Sprintf("Dismissed '%s'", strings.TrimSpace(title))
}

func MsgOpened(opener string) string {
	return "Opened with " + opener
}

func MsgSortedBy(key string, reverse bool) string {
	if key == "none" {
		return "Unsorted"
	}
	if reverse {
		return "Sorted by " + key + " (reversed)"
	}
	return "Sorted by " + key
}

func statusStyleFor(kind StatusKind) func(...string) string {
	switch kind {
	case StatusSuccess:
		return StatusSuccessStyle.Render
	case StatusWarn:
		return StatusWarnStyle.Render
	case StatusError:
		return StatusErrorStyle.Render
	default:
		return StatusInfoStyle.Render
	}
}
