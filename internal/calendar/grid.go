// Package calendar builds the date grids the calendar view renders: a flat
// sequence of cells for a month (with leading placeholders so day 1 lands in
// its weekday column) or exactly seven cells for a Sunday-first week.
package calendar

import (
	"time"

	"github.com/sadopc/dpclog/internal/visit"
)

// ViewMode selects the grid shape.
type ViewMode int

const (
	ModeMonth ViewMode = iota
	ModeWeek
)

// Cell is one position in the grid. A zero Day marks a leading placeholder
// in month mode. Cells are recomputed on every render, never stored.
type Cell struct {
	Day   int
	Month time.Month
	Year  int
	Date  time.Time
}

// IsEmpty reports whether the cell is a leading placeholder.
func (c Cell) IsEmpty() bool { return c.Day == 0 }

// IsWeekend reports whether the cell falls on Saturday or Sunday.
func (c Cell) IsWeekend() bool {
	if c.IsEmpty() {
		return false
	}
	wd := c.Date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// ISODate renders the cell's date as YYYY-MM-DD.
func (c Cell) ISODate() string { return visit.FormatDate(c.Date) }

// Grid builds the cell sequence for the reference date in the given mode.
func Grid(ref time.Time, mode ViewMode) []Cell {
	if mode == ModeWeek {
		return WeekGrid(ref)
	}
	return MonthGrid(ref)
}

// MonthGrid returns the reference date's month as leading placeholders (one
// per weekday before the 1st, Sunday-first) followed by a cell per day.
// There is no trailing padding.
func MonthGrid(ref time.Time) []Cell {
	year, month := ref.Year(), ref.Month()
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	cells := make([]Cell, 0, int(first.Weekday())+daysInMonth)
	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, Cell{})
	}
	for day := 1; day <= daysInMonth; day++ {
		cells = append(cells, Cell{
			Day:   day,
			Month: month,
			Year:  year,
			Date:  time.Date(year, month, day, 0, 0, 0, 0, time.Local),
		})
	}
	return cells
}

// WeekGrid returns the seven days of the reference date's week, starting on
// Sunday.
func WeekGrid(ref time.Time) []Cell {
	start := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.Local)
	start = start.AddDate(0, 0, -int(start.Weekday()))

	cells := make([]Cell, 0, 7)
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		cells = append(cells, Cell{Day: d.Day(), Month: d.Month(), Year: d.Year(), Date: d})
	}
	return cells
}

// VisitsOn returns the visits landing on a cell, matched by exact
// year/month/day against the visit's locally parsed date. A DPC user only
// sees their own visits; a lead sees all.
func VisitsOn(visits []visit.Visit, c Cell, user visit.User) []visit.Visit {
	if c.IsEmpty() {
		return nil
	}
	var out []visit.Visit
	for _, v := range visits {
		d := visit.ParseDate(v.Date)
		if d.Year() != c.Year || d.Month() != c.Month || d.Day() != c.Day {
			continue
		}
		if user.Role == visit.RoleDPC && v.DPC != user.Name {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Navigate moves the reference date one step backward or forward: a month in
// month mode, seven days in week mode.
func Navigate(ref time.Time, mode ViewMode, direction int) time.Time {
	if mode == ModeWeek {
		return ref.AddDate(0, 0, 7*direction)
	}
	return ref.AddDate(0, direction, 0)
}

// Title renders the heading for the current grid: "June 2025" in month mode,
// "Week of Jun 1, 2025" in week mode.
func Title(ref time.Time, mode ViewMode) string {
	if mode == ModeWeek {
		start := WeekGrid(ref)[0].Date
		return "Week of " + start.Format("Jan 2, 2006")
	}
	return ref.Format("January 2006")
}
