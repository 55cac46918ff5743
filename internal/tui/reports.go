package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/dpclog/internal/export"
	"github.com/sadopc/dpclog/internal/report"
	"github.com/sadopc/dpclog/internal/store"
	"github.com/sadopc/dpclog/internal/visit"
)

const detailRowLimit = 10

type reportsModel struct {
	store  *store.Store
	width  int
	height int

	user    visit.User
	filters report.Filters

	visits  []visit.Visit
	roster  []visit.Rep
	regions []string

	cursor int // detail table row

	chart barchart.Model
}

func newReportsModel(s *store.Store, user visit.User) reportsModel {
	return reportsModel{
		store:   s,
		user:    user,
		filters: report.DefaultFilters(),
		chart:   barchart.New(60, 10),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

func (r *reportsModel) setUser(u visit.User) {
	r.user = u
	r.filters = report.DefaultFilters()
	r.cursor = 0
}

func (r reportsModel) filtered() []visit.Visit {
	return report.FilteredVisits(r.visits, r.filters, r.user, time.Now())
}

func (r reportsModel) metrics() []report.Metric {
	return report.PerformanceMetrics(r.visits, r.scopedRoster(), r.user)
}

// scopedRoster limits the performance table to the user's own row for a DPC.
func (r reportsModel) scopedRoster() []visit.Rep {
	if r.user.IsLead() {
		return r.roster
	}
	for _, rep := range r.roster {
		if rep.Name == r.user.Name {
			return []visit.Rep{rep}
		}
	}
	return []visit.Rep{{Name: r.user.Name, Region: r.user.Region, Target: report.DefaultMonthlyTarget}}
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case visitsDataMsg:
		r.visits = msg.visits
		r.roster = msg.roster
		r.regions = msg.regions
		r.buildChart()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if r.cursor > 0 {
				r.cursor--
			}
			return r, nil
		case key.Matches(msg, keys.Down):
			if r.cursor < min(len(r.filtered()), detailRowLimit)-1 {
				r.cursor++
			}
			return r, nil
		case key.Matches(msg, keys.Enter):
			if !r.user.IsLead() {
				return r, nil
			}
			rows := r.filtered()
			if r.cursor < min(len(rows), detailRowLimit) {
				v := rows[r.cursor]
				return r, func() tea.Msg {
					return openFormMsg{date: v.Date, existing: &v}
				}
			}
			return r, nil
		}

		switch msg.String() {
		case "d":
			r.filters.DateRange = cycle(report.DateRanges, r.filters.DateRange)
		case "c":
			if r.user.IsLead() {
				r.filters.DPC = cycle(r.dpcOptions(), r.filters.DPC)
			}
		case "r":
			if r.user.IsLead() {
				r.filters.Region = cycle(append([]string{report.FilterAll}, r.regions...), r.filters.Region)
			}
		case "y":
			r.filters.VisitType = cycle(typeOptions(), r.filters.VisitType)
		case "s":
			r.filters.ApprovalStatus = cycle(
				[]string{report.FilterAll, report.StatusApproved, report.StatusPending},
				r.filters.ApprovalStatus,
			)
		default:
			return r, nil
		}
		r.cursor = 0
		r.buildChart()
		return r, nil
	}
	return r, nil
}

// cycle returns the option after current, wrapping around.
func cycle(options []string, current string) string {
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	if len(options) == 0 {
		return current
	}
	return options[0]
}

func (r reportsModel) dpcOptions() []string {
	out := []string{report.FilterAll}
	for _, rep := range r.roster {
		out = append(out, rep.Name)
	}
	return out
}

func typeOptions() []string {
	out := []string{report.FilterAll}
	for _, t := range visit.AllTypes {
		out = append(out, string(t))
	}
	return out
}

func (r *reportsModel) buildChart() {
	chartWidth := r.width - 10
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 8
	if r.height > 34 {
		chartHeight = 10
	}
	r.chart = barchart.New(chartWidth, chartHeight)

	approvedStyle := lipgloss.NewStyle().Foreground(colorSuccess)
	remainingStyle := lipgloss.NewStyle().Foreground(colorSubtle)

	var bars []barchart.BarData
	for _, m := range r.metrics() {
		values := []barchart.BarValue{
			{Name: "approved", Value: float64(m.ApprovedVisits), Style: approvedStyle},
		}
		if left := m.Target - m.ApprovedVisits; left > 0 {
			values = append(values, barchart.BarValue{
				Name: "to target", Value: float64(left), Style: remainingStyle,
			})
		}
		bars = append(bars, barchart.BarData{
			Label:  shortName(m.Name),
			Values: values,
		})
	}

	if len(bars) == 0 {
		bars = []barchart.BarData{{
			Label:  "",
			Values: []barchart.BarValue{{Name: "", Value: 0, Style: remainingStyle}},
		}}
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

// shortName squeezes "Salamone, D" into a bar label.
func shortName(name string) string {
	if i := strings.Index(name, ","); i > 0 {
		return truncate(name[:i], 8)
	}
	return truncate(name, 8)
}

func (r reportsModel) view() string {
	w := r.width - 4

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Reports"), "  ", r.renderFilterLine(),
	)

	summary := r.renderSummaryStrip()
	stats := r.renderStatLine()
	chartView := r.chart.View()
	legend := r.renderLegend()
	table := r.renderPerformanceTable(w)

	sections := []string{header, "", summary, stats, "", chartView, legend, "", table}

	if r.user.IsLead() {
		sections = append(sections, "", r.renderDetailRows(w))
	}

	keysHelp := "  d: range  y: type  s: status"
	if r.user.IsLead() {
		keysHelp += "  c: dpc  r: region  enter: edit"
	}
	sections = append(sections, "", mutedStyle.Render(keysHelp))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

var rangeLabels = map[string]string{
	report.RangeThisMonth:   "This Month",
	report.RangeLastMonth:   "Last Month",
	report.RangeLast3Months: "Last 3 Months",
	report.RangeAll:         "All Time",
}

func filterLabel(v string) string {
	if v == report.FilterAll {
		return "All"
	}
	return v
}

func (r reportsModel) renderFilterLine() string {
	parts := []string{
		"range: " + highlightStyle.Render(rangeLabels[r.filters.DateRange]),
		"type: " + highlightStyle.Render(filterLabel(r.filters.VisitType)),
		"status: " + highlightStyle.Render(filterLabel(r.filters.ApprovalStatus)),
	}
	if r.user.IsLead() {
		parts = append(parts,
			"dpc: "+highlightStyle.Render(filterLabel(r.filters.DPC)),
			"region: "+highlightStyle.Render(filterLabel(r.filters.Region)),
		)
	}
	return mutedStyle.Render(strings.Join(parts, "  "))
}

func (r reportsModel) renderSummaryStrip() string {
	target := report.DefaultMonthlyTarget
	for _, rep := range r.roster {
		if rep.Name == r.user.Name {
			if rep.Target > 0 {
				target = rep.Target
			}
			break
		}
	}
	s := report.MonthlySummary(r.visits, r.user, target, time.Now())

	return fmt.Sprintf("  %s %s   %s %s   %s %s   %s %s",
		mutedStyle.Render("Scheduled:"), titleStyle.Render(fmt.Sprintf("%d", s.Scheduled)),
		mutedStyle.Render("Completed:"), successStyle.Render(fmt.Sprintf("%d (%d%%)", s.Completed, s.Percentage)),
		mutedStyle.Render("Pending:"), warningStyle.Render(fmt.Sprintf("%d", s.Pending)),
		mutedStyle.Render("Left to goal:"), titleStyle.Render(fmt.Sprintf("%d", s.VisitsLeft)),
	)
}

func (r reportsModel) renderStatLine() string {
	filtered := r.filtered()
	approved := 0
	for _, v := range filtered {
		if visit.IsApproved(v) {
			approved++
		}
	}
	avg := report.AverageGoal(r.metrics())
	return mutedStyle.Render(fmt.Sprintf("  %d visits in view, %d approved, %d pending   avg goal: %d%%",
		len(filtered), approved, len(filtered)-approved, avg))
}

func (r reportsModel) renderLegend() string {
	dist := report.TypeDistribution(r.filtered())
	if len(dist) == 0 {
		return mutedStyle.Render("  No approved visits in view")
	}
	var items []string
	for _, tc := range dist {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(tc.Color)).Render("●")
		items = append(items, fmt.Sprintf("%s %s (%d)", dot, tc.Type, tc.Count))
	}
	return "  " + strings.Join(items, "  ")
}

func (r reportsModel) renderPerformanceTable(w int) string {
	metrics := r.metrics()
	if len(metrics) == 0 {
		return mutedStyle.Render("  No roster data")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf(
		"  %-16s %-8s %9s %9s %8s %8s", "DPC", "Region", "Scheduled", "Approved", "Pending", "Goal")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 62))))

	for _, m := range metrics {
		goal := export.PercentDisplay(m)
		goalCell := fmt.Sprintf("%8s", goal)
		if !m.NoTarget {
			if m.Percentage >= 100 {
				goalCell = successStyle.Render(goalCell)
			} else if m.Percentage < 50 {
				goalCell = warningStyle.Render(goalCell)
			}
		}
		rows = append(rows, fmt.Sprintf("  %-16s %-8s %9d %9d %8d %s",
			truncate(m.Name, 16), truncate(m.Region, 8),
			m.ScheduledVisits, m.ApprovedVisits, m.PendingApproval, goalCell))
	}

	return strings.Join(rows, "\n")
}

func (r reportsModel) renderDetailRows(w int) string {
	filtered := r.filtered()
	if len(filtered) == 0 {
		return mutedStyle.Render("  No visits match the filters")
	}

	today := time.Now()
	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf(
		"  %-12s %-14s %-24s %-18s %s", "Date", "DPC", "Location", "Type", "Report")))

	shown := min(len(filtered), detailRowLimit)
	for i := 0; i < shown; i++ {
		v := filtered[i]
		cursor := "  "
		style := normalItemStyle
		if i == r.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		status := pendingChipStyle.Render("pending")
		if visit.IsApproved(v) {
			status = approvedChipStyle.Render("received " + v.ReceivedDate)
		} else if visit.IsOverdue(v, today) {
			status = overdueChipStyle.Render("overdue")
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-12s %-14s %-24s %-18s",
			cursor, v.Date, truncate(v.DPC, 14), truncate(v.Location(), 24), v.VisitType))+" "+status)
	}
	if len(filtered) > shown {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  … %d more", len(filtered)-shown)))
	}

	return strings.Join(rows, "\n")
}
