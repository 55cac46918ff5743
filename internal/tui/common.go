package tui

import (
	"github.com/sadopc/dpclog/internal/visit"
)

// viewState represents the currently active view.
type viewState int

const (
	viewCalendar viewState = iota
	viewReports
)

var viewNames = []string{"Calendar", "Reports"}

// --- Messages ---

// visitsDataMsg carries a fresh read of the whole collection plus the
// reference data every view shares.
type visitsDataMsg struct {
	visits    []visit.Visit
	roster    []visit.Rep
	retailers []visit.Retailer
	regions   []string
}

// openFormMsg asks the app to show the visit form: a new visit pre-dated to
// date, or an edit of existing.
type openFormMsg struct {
	date     string
	existing *visit.Visit
}

type visitSavedMsg struct {
	updated bool
}

type visitDeletedMsg struct{}

type statusMsg struct {
	text    string
	isError bool
}

type userSwitchedMsg struct {
	user visit.User
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return string(runes[:1])
	}
	return string(runes[:max-1]) + "…"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
