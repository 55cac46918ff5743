package calendar

import (
	"testing"
	"time"

	"github.com/sadopc/dpclog/internal/visit"
)

func localDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// ============================================================
// Month grid
// ============================================================

func TestMonthGridJune2025(t *testing.T) {
	// June 1, 2025 is a Sunday: no leading placeholders, 30 days.
	cells := MonthGrid(localDate(2025, time.June, 15))
	if len(cells) != 30 {
		t.Fatalf("expected 30 cells, got %d", len(cells))
	}
	if cells[0].Day != 1 || cells[29].Day != 30 {
		t.Fatalf("unexpected first/last days: %d/%d", cells[0].Day, cells[29].Day)
	}
}

func TestMonthGridLeadingPlaceholders(t *testing.T) {
	// July 1, 2025 is a Tuesday: 2 placeholders (Sun, Mon) then 31 days.
	cells := MonthGrid(localDate(2025, time.July, 4))
	if len(cells) != 33 {
		t.Fatalf("expected 33 cells, got %d", len(cells))
	}
	for i := 0; i < 2; i++ {
		if !cells[i].IsEmpty() {
			t.Fatalf("cell %d should be a placeholder", i)
		}
	}
	if cells[2].Day != 1 {
		t.Fatalf("first real cell should be day 1, got %d", cells[2].Day)
	}
}

func TestMonthGridCellCountInvariant(t *testing.T) {
	// leadingPlaceholders + daysInMonth for a spread of months.
	refs := []time.Time{
		localDate(2025, time.January, 1),
		localDate(2025, time.February, 28),
		localDate(2024, time.February, 10), // leap year
		localDate(2025, time.December, 31),
	}
	for _, ref := range refs {
		first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.Local)
		daysInMonth := first.AddDate(0, 1, -1).Day()
		want := int(first.Weekday()) + daysInMonth

		cells := MonthGrid(ref)
		if len(cells) != want {
			t.Fatalf("%v: expected %d cells, got %d", ref, want, len(cells))
		}
	}
}

func TestMonthGridWeekdayColumns(t *testing.T) {
	// The Nth real day's weekday must equal (firstWeekday + N - 1) mod 7.
	ref := localDate(2025, time.August, 1) // Aug 1, 2025 is a Friday
	cells := MonthGrid(ref)
	firstWeekday := int(localDate(2025, time.August, 1).Weekday())

	n := 0
	for _, c := range cells {
		if c.IsEmpty() {
			continue
		}
		n++
		want := (firstWeekday + n - 1) % 7
		if int(c.Date.Weekday()) != want {
			t.Fatalf("day %d: weekday %d, want %d", c.Day, c.Date.Weekday(), want)
		}
	}
}

// ============================================================
// Week grid
// ============================================================

func TestWeekGridSevenCells(t *testing.T) {
	// 2025-06-05 is a Thursday; its week runs Sun Jun 1 .. Sat Jun 7.
	cells := WeekGrid(localDate(2025, time.June, 5))
	if len(cells) != 7 {
		t.Fatalf("expected 7 cells, got %d", len(cells))
	}
	if cells[0].Date.Weekday() != time.Sunday {
		t.Fatalf("week should start on Sunday, got %v", cells[0].Date.Weekday())
	}
	if cells[6].Date.Weekday() != time.Saturday {
		t.Fatalf("week should end on Saturday, got %v", cells[6].Date.Weekday())
	}
	if cells[0].Day != 1 || cells[6].Day != 7 {
		t.Fatalf("unexpected week bounds: %d..%d", cells[0].Day, cells[6].Day)
	}
}

func TestWeekGridCrossesMonthBoundary(t *testing.T) {
	// 2025-07-01 is a Tuesday; its week starts Sunday June 29.
	cells := WeekGrid(localDate(2025, time.July, 1))
	if cells[0].Month != time.June || cells[0].Day != 29 {
		t.Fatalf("week should start June 29, got %v %d", cells[0].Month, cells[0].Day)
	}
	if cells[6].Month != time.July || cells[6].Day != 5 {
		t.Fatalf("week should end July 5, got %v %d", cells[6].Month, cells[6].Day)
	}
}

func TestWeekGridOnSunday(t *testing.T) {
	ref := localDate(2025, time.June, 1) // already a Sunday
	cells := WeekGrid(ref)
	if !cells[0].Date.Equal(ref) {
		t.Fatalf("Sunday reference should be the first cell, got %v", cells[0].Date)
	}
}

// ============================================================
// Weekend detection
// ============================================================

func TestCellIsWeekend(t *testing.T) {
	cells := WeekGrid(localDate(2025, time.June, 5))
	if !cells[0].IsWeekend() || !cells[6].IsWeekend() {
		t.Fatal("Sunday and Saturday cells should be weekends")
	}
	for i := 1; i < 6; i++ {
		if cells[i].IsWeekend() {
			t.Fatalf("cell %d should not be a weekend", i)
		}
	}
	if (Cell{}).IsWeekend() {
		t.Fatal("placeholders are not weekends")
	}
}

// ============================================================
// Visit association
// ============================================================

func TestVisitsOnMatchesExactDate(t *testing.T) {
	visits := []visit.Visit{
		{ID: 1, DPC: "Salamone, D", Date: "2025-06-05"},
		{ID: 2, DPC: "Salamone, D", Date: "2025-06-06"},
		{ID: 3, DPC: "Manno, D", Date: "2025-06-05"},
	}
	cell := Cell{Day: 5, Month: time.June, Year: 2025, Date: localDate(2025, time.June, 5)}

	lead := visit.User{Role: visit.RoleLead, Name: "Boss"}
	got := VisitsOn(visits, cell, lead)
	if len(got) != 2 {
		t.Fatalf("lead should see 2 visits on the cell, got %d", len(got))
	}
}

func TestVisitsOnScopesDPC(t *testing.T) {
	visits := []visit.Visit{
		{ID: 1, DPC: "Salamone, D", Date: "2025-06-05"},
		{ID: 3, DPC: "Manno, D", Date: "2025-06-05"},
	}
	cell := Cell{Day: 5, Month: time.June, Year: 2025, Date: localDate(2025, time.June, 5)}

	rep := visit.User{Role: visit.RoleDPC, Name: "Salamone, D"}
	got := VisitsOn(visits, cell, rep)
	if len(got) != 1 || got[0].DPC != "Salamone, D" {
		t.Fatalf("DPC should only see own visits, got %+v", got)
	}
}

func TestVisitsOnEmptyCell(t *testing.T) {
	visits := []visit.Visit{{ID: 1, Date: "2025-06-05"}}
	if got := VisitsOn(visits, Cell{}, visit.User{Role: visit.RoleLead}); got != nil {
		t.Fatalf("placeholder cells have no visits, got %+v", got)
	}
}

// ============================================================
// Navigation
// ============================================================

func TestNavigateMonth(t *testing.T) {
	ref := localDate(2025, time.June, 15)
	next := Navigate(ref, ModeMonth, 1)
	if next.Month() != time.July {
		t.Fatalf("expected July, got %v", next.Month())
	}
	prev := Navigate(ref, ModeMonth, -1)
	if prev.Month() != time.May {
		t.Fatalf("expected May, got %v", prev.Month())
	}
}

func TestNavigateWeek(t *testing.T) {
	ref := localDate(2025, time.June, 5)
	next := Navigate(ref, ModeWeek, 1)
	if next.Day() != 12 {
		t.Fatalf("expected June 12, got %v", next)
	}
}

func TestTitle(t *testing.T) {
	ref := localDate(2025, time.June, 5)
	if got := Title(ref, ModeMonth); got != "June 2025" {
		t.Fatalf("month title = %q", got)
	}
	if got := Title(ref, ModeWeek); got != "Week of Jun 1, 2025" {
		t.Fatalf("week title = %q", got)
	}
}
