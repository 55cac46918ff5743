package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/dpclog/internal/calendar"
	"github.com/sadopc/dpclog/internal/store"
	"github.com/sadopc/dpclog/internal/visit"
)

var weekdayHeaders = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

type calendarModel struct {
	store  *store.Store
	width  int
	height int

	user    visit.User
	refDate time.Time
	mode    calendar.ViewMode
	cursor  int

	visits []visit.Visit

	// Day picker overlay: the visits on the selected day plus a "new" row.
	dayPicking bool
	dayCursor  int
	dayDate    string
	dayVisits  []visit.Visit
}

func newCalendarModel(s *store.Store, user visit.User) calendarModel {
	now := time.Now()
	m := calendarModel{
		store:   s,
		user:    user,
		refDate: now,
		mode:    calendar.ModeMonth,
	}
	m.cursor = m.cellIndexOf(now)
	return m
}

func (c *calendarModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

func (c *calendarModel) setUser(u visit.User) {
	c.user = u
}

// cells is recomputed on demand, never stored.
func (c calendarModel) cells() []calendar.Cell {
	return calendar.Grid(c.refDate, c.mode)
}

// cellIndexOf returns the grid index of the given date, or the first real
// cell when the date is outside the grid.
func (c calendarModel) cellIndexOf(d time.Time) int {
	cells := c.cells()
	for i, cell := range cells {
		if cell.IsEmpty() {
			continue
		}
		if cell.Year == d.Year() && cell.Month == d.Month() && cell.Day == d.Day() {
			return i
		}
	}
	for i, cell := range cells {
		if !cell.IsEmpty() {
			return i
		}
	}
	return 0
}

func (c calendarModel) update(msg tea.Msg) (calendarModel, tea.Cmd) {
	switch msg := msg.(type) {
	case visitsDataMsg:
		c.visits = msg.visits
		if c.dayPicking {
			c.reloadDayPicker()
		}
		return c, nil

	case tea.KeyMsg:
		if c.dayPicking {
			return c.updateDayPicker(msg)
		}
		return c.updateGrid(msg)
	}
	return c, nil
}

func (c calendarModel) updateGrid(msg tea.KeyMsg) (calendarModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Month):
		c.mode = calendar.ModeMonth
		c.cursor = c.cellIndexOf(c.refDate)
	case key.Matches(msg, keys.Week):
		c.mode = calendar.ModeWeek
		c.cursor = c.cellIndexOf(c.refDate)
	case key.Matches(msg, keys.Today):
		c.refDate = time.Now()
		c.cursor = c.cellIndexOf(c.refDate)
	case key.Matches(msg, keys.Prev):
		c.refDate = calendar.Navigate(c.refDate, c.mode, -1)
		c.cursor = c.clampCursor(c.cursor)
	case key.Matches(msg, keys.Next):
		c.refDate = calendar.Navigate(c.refDate, c.mode, 1)
		c.cursor = c.clampCursor(c.cursor)
	case key.Matches(msg, keys.Left):
		c.cursor = c.clampCursor(c.cursor - 1)
	case key.Matches(msg, keys.Right):
		c.cursor = c.clampCursor(c.cursor + 1)
	case key.Matches(msg, keys.Up):
		if c.mode == calendar.ModeMonth {
			c.cursor = c.clampCursor(c.cursor - 7)
		}
	case key.Matches(msg, keys.Down):
		if c.mode == calendar.ModeMonth {
			c.cursor = c.clampCursor(c.cursor + 7)
		}
	case key.Matches(msg, keys.Enter):
		return c.openDay()
	case key.Matches(msg, keys.New):
		return c.newVisitOnCursor()
	}
	return c, nil
}

func (c calendarModel) clampCursor(i int) int {
	cells := c.cells()
	if len(cells) == 0 {
		return 0
	}
	i = max(0, min(i, len(cells)-1))
	// Skip leading placeholders.
	for i < len(cells)-1 && cells[i].IsEmpty() {
		i++
	}
	return i
}

func (c calendarModel) selectedCell() (calendar.Cell, bool) {
	cells := c.cells()
	if c.cursor < 0 || c.cursor >= len(cells) || cells[c.cursor].IsEmpty() {
		return calendar.Cell{}, false
	}
	return cells[c.cursor], true
}

// openDay shows the day picker for the selected cell. Weekend days are
// rejected outright; nothing can be scheduled there.
func (c calendarModel) openDay() (calendarModel, tea.Cmd) {
	cell, ok := c.selectedCell()
	if !ok {
		return c, nil
	}
	dayVisits := calendar.VisitsOn(c.visits, cell, c.user)
	if cell.IsWeekend() && len(dayVisits) == 0 {
		return c, weekendRejectedCmd()
	}

	c.dayPicking = true
	c.dayCursor = 0
	c.dayDate = cell.ISODate()
	c.dayVisits = dayVisits
	return c, nil
}

func (c calendarModel) newVisitOnCursor() (calendarModel, tea.Cmd) {
	cell, ok := c.selectedCell()
	if !ok {
		return c, nil
	}
	if cell.IsWeekend() {
		return c, weekendRejectedCmd()
	}
	date := cell.ISODate()
	return c, func() tea.Msg {
		return openFormMsg{date: date}
	}
}

func weekendRejectedCmd() tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: visit.ErrWeekendDate.Error(), isError: true}
	}
}

func (c *calendarModel) reloadDayPicker() {
	cells := c.cells()
	for _, cell := range cells {
		if !cell.IsEmpty() && cell.ISODate() == c.dayDate {
			c.dayVisits = calendar.VisitsOn(c.visits, cell, c.user)
			break
		}
	}
	if c.dayCursor > len(c.dayVisits) {
		c.dayCursor = len(c.dayVisits)
	}
}

func (c calendarModel) updateDayPicker(msg tea.KeyMsg) (calendarModel, tea.Cmd) {
	// The last row of the picker is the "new visit" entry.
	switch {
	case key.Matches(msg, keys.Back):
		c.dayPicking = false
	case key.Matches(msg, keys.Up):
		if c.dayCursor > 0 {
			c.dayCursor--
		}
	case key.Matches(msg, keys.Down):
		if c.dayCursor < len(c.dayVisits) {
			c.dayCursor++
		}
	case key.Matches(msg, keys.Enter):
		c.dayPicking = false
		if c.dayCursor < len(c.dayVisits) {
			v := c.dayVisits[c.dayCursor]
			return c, func() tea.Msg {
				return openFormMsg{date: v.Date, existing: &v}
			}
		}
		d := visit.ParseDate(c.dayDate)
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			return c, weekendRejectedCmd()
		}
		date := c.dayDate
		return c, func() tea.Msg {
			return openFormMsg{date: date}
		}
	}
	return c, nil
}

func (c calendarModel) view() string {
	w := c.width - 4
	if c.dayPicking {
		return c.renderDayPicker(w)
	}
	return c.renderGrid(w)
}

func (c calendarModel) renderGrid(w int) string {
	monthTab := inactiveTabStyle.Render("Month")
	weekTab := inactiveTabStyle.Render("Week")
	if c.mode == calendar.ModeMonth {
		monthTab = activeTabStyle.Render("Month")
	} else {
		weekTab = activeTabStyle.Render("Week")
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render(calendar.Title(c.refDate, c.mode)), "  ", monthTab, weekTab,
	)

	cellW := (w - 2) / 7
	if cellW < 8 {
		cellW = 8
	}
	chipRows := 2
	if c.height > 32 {
		chipRows = 3
	}

	headerRow := c.renderWeekdayHeader(cellW)
	body := c.renderCellRows(cellW, chipRows)

	nav := mutedStyle.Render("  [/]: prev/next  t: today  m/w: view  enter: open day  n: new visit")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", headerRow, body, "", nav),
	)
}

func (c calendarModel) renderWeekdayHeader(cellW int) string {
	var cols []string
	for _, name := range weekdayHeaders {
		cols = append(cols, mutedStyle.Width(cellW).Render(" "+name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (c calendarModel) renderCellRows(cellW, chipRows int) string {
	cells := c.cells()
	today := time.Now()

	var rows []string
	for start := 0; start < len(cells); start += 7 {
		end := min(start+7, len(cells))
		var cols []string
		for i := start; i < end; i++ {
			cols = append(cols, c.renderCell(cells[i], i, cellW, chipRows, today))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (c calendarModel) renderCell(cell calendar.Cell, idx, cellW, chipRows int, today time.Time) string {
	if cell.IsEmpty() {
		return lipgloss.NewStyle().Width(cellW).Height(chipRows + 1).Render("")
	}

	dayLabel := fmt.Sprintf("%2d", cell.Day)
	style := dayStyle
	if cell.IsWeekend() {
		style = weekendDayStyle
	}
	if cell.Year == today.Year() && cell.Month == today.Month() && cell.Day == today.Day() {
		style = todayStyle
	}
	if idx == c.cursor {
		style = cursorCellStyle
		dayLabel = ">" + strings.TrimLeft(dayLabel, " ")
	}

	lines := []string{style.Render(" " + dayLabel)}

	dayVisits := calendar.VisitsOn(c.visits, cell, c.user)
	shown := min(len(dayVisits), chipRows)
	if len(dayVisits) > chipRows {
		shown = chipRows - 1
	}
	for _, v := range dayVisits[:shown] {
		lines = append(lines, " "+c.renderChip(v, cellW-2, today))
	}
	if extra := len(dayVisits) - shown; extra > 0 {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf(" +%d more", extra)))
	}

	return lipgloss.NewStyle().Width(cellW).Height(chipRows + 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (c calendarModel) renderChip(v visit.Visit, maxW int, today time.Time) string {
	label := truncate(v.Location(), max(maxW, 4))
	switch {
	case visit.IsApproved(v):
		return approvedChipStyle.Render(label)
	case visit.IsOverdue(v, today):
		return overdueChipStyle.Render(label)
	default:
		return pendingChipStyle.Render(label)
	}
}

func (c calendarModel) renderDayPicker(w int) string {
	d := visit.ParseDate(c.dayDate)
	title := titleStyle.Render(d.Format("Monday, January 2, 2006"))

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	today := time.Now()
	for i, v := range c.dayVisits {
		cursor := "  "
		style := normalItemStyle
		if i == c.dayCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		status := pendingChipStyle.Render("pending")
		if visit.IsApproved(v) {
			status = approvedChipStyle.Render("received")
		} else if visit.IsOverdue(v, today) {
			status = overdueChipStyle.Render("overdue")
		}
		row := style.Render(fmt.Sprintf("%s%-28s %-18s", cursor, truncate(v.Location(), 28), v.VisitType))
		if c.user.IsLead() {
			row += mutedStyle.Render(fmt.Sprintf(" %-14s", v.DPC))
		}
		rows = append(rows, row+" "+status)
	}

	newCursor := "  "
	newStyle := normalItemStyle
	if c.dayCursor == len(c.dayVisits) {
		newCursor = "> "
		newStyle = selectedItemStyle
	}
	rows = append(rows, newStyle.Render(newCursor+"+ New visit"))

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: open  esc: back"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
