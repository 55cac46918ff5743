// Package report computes the reporting view: filtering, per-DPC performance
// metrics against monthly targets, and visit-type distributions. Everything
// here is a pure function over an in-memory visit slice.
package report

import (
	"math"
	"time"

	"github.com/sadopc/dpclog/internal/visit"
)

// FilterAll is the sentinel meaning "no restriction" for a filter field.
const FilterAll = "all"

// Date range selector values.
const (
	RangeThisMonth   = "thisMonth"
	RangeLastMonth   = "lastMonth"
	RangeLast3Months = "last3Months"
	RangeAll         = "all"
)

// DateRanges lists the selector values in display order.
var DateRanges = []string{RangeThisMonth, RangeLastMonth, RangeLast3Months, RangeAll}

// Approval status filter values.
const (
	StatusApproved = "approved"
	StatusPending  = "pending"
)

// Filters is the transient query state of the reports view. The zero value
// is not useful; use DefaultFilters.
type Filters struct {
	DateRange      string
	DPC            string
	Region         string
	VisitType      string
	ApprovalStatus string
}

// DefaultFilters matches the reports view's initial state: this month, no
// other restrictions.
func DefaultFilters() Filters {
	return Filters{
		DateRange:      RangeThisMonth,
		DPC:            FilterAll,
		Region:         FilterAll,
		VisitType:      FilterAll,
		ApprovalStatus: FilterAll,
	}
}

// ScopeToUser applies the hard access rule: a DPC only ever sees their own
// visits, regardless of any explicit filter. Leads see everything.
func ScopeToUser(visits []visit.Visit, user visit.User) []visit.Visit {
	if user.Role != visit.RoleDPC {
		return visits
	}
	var out []visit.Visit
	for _, v := range visits {
		if v.DPC == user.Name {
			out = append(out, v)
		}
	}
	return out
}

// FilteredVisits applies role scoping and then the filter set, composed as a
// logical AND. Month boundaries are computed from now.
func FilteredVisits(visits []visit.Visit, f Filters, user visit.User, now time.Time) []visit.Visit {
	scoped := ScopeToUser(visits, user)

	var out []visit.Visit
	for _, v := range scoped {
		if !inDateRange(v, f.DateRange, now) {
			continue
		}
		if f.DPC != FilterAll && v.DPC != f.DPC {
			continue
		}
		if f.Region != FilterAll && v.Region != f.Region {
			continue
		}
		if f.VisitType != FilterAll && string(v.VisitType) != f.VisitType {
			continue
		}
		switch f.ApprovalStatus {
		case StatusApproved:
			if !visit.IsApproved(v) {
				continue
			}
		case StatusPending:
			if visit.IsApproved(v) {
				continue
			}
		}
		out = append(out, v)
	}
	return out
}

func inDateRange(v visit.Visit, dateRange string, now time.Time) bool {
	d := visit.ParseDate(v.Date)
	switch dateRange {
	case RangeThisMonth:
		return d.Month() == now.Month() && d.Year() == now.Year()
	case RangeLastMonth:
		last := now.AddDate(0, 0, -now.Day()) // last day of previous month
		return d.Month() == last.Month() && d.Year() == last.Year()
	case RangeLast3Months:
		return !d.Before(now.AddDate(0, -3, 0))
	default:
		return true
	}
}

// Metric is one DPC's row in the performance table. Counts other than the
// total and pending are over approved visits only.
type Metric struct {
	Name            string
	Region          string
	Target          int
	TotalVisits     int
	ScheduledVisits int
	ApprovedVisits  int
	Percentage      int
	NoTarget        bool // target <= 0; Percentage is meaningless, render N/A
	OnSiteRetailer  int
	OnSiteCorporate int
	Virtual         int
	OnsiteZone      int
	Training        int
	SpecialProjects int
	PendingApproval int
}

// PerformanceMetrics computes per-rep metrics for every roster entry over
// the unfiltered, role-scoped collection. The performance table always
// reflects full data per rep; only the distribution and detail table follow
// the active filters.
func PerformanceMetrics(visits []visit.Visit, roster []visit.Rep, user visit.User) []Metric {
	scoped := ScopeToUser(visits, user)

	metrics := make([]Metric, 0, len(roster))
	for _, rep := range roster {
		m := Metric{Name: rep.Name, Region: rep.Region, Target: rep.Target}

		for _, v := range scoped {
			if v.DPC != rep.Name {
				continue
			}
			m.TotalVisits++
			if isScheduledType(v.VisitType) {
				m.ScheduledVisits++
			}
			if !visit.IsApproved(v) {
				m.PendingApproval++
				continue
			}
			m.ApprovedVisits++
			switch v.VisitType {
			case visit.TypeOnSiteRetailer:
				m.OnSiteRetailer++
			case visit.TypeOnSiteCorporate:
				m.OnSiteCorporate++
			case visit.TypeVirtual:
				m.Virtual++
			case visit.TypeOnsiteZone:
				m.OnsiteZone++
			case visit.TypeTraining:
				m.Training++
			case visit.TypeSpecialProjects:
				m.SpecialProjects++
			}
		}

		if rep.Target > 0 {
			m.Percentage = int(math.Round(float64(m.ApprovedVisits) / float64(rep.Target) * 100))
		} else {
			m.NoTarget = true
		}
		metrics = append(metrics, m)
	}
	return metrics
}

func isScheduledType(t visit.VisitType) bool {
	for _, s := range visit.ScheduledTypes {
		if t == s {
			return true
		}
	}
	return false
}

// AverageGoal is the mean goal percentage across reps that have a target.
func AverageGoal(metrics []Metric) int {
	sum, n := 0, 0
	for _, m := range metrics {
		if m.NoTarget {
			continue
		}
		sum += m.Percentage
		n++
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}

// TypeCount is one slice of the visit-type distribution.
type TypeCount struct {
	Type  visit.VisitType
	Count int
	Color string
}

// TypeDistribution counts approved visits per type over an already-filtered
// collection, in the canonical type order, annotated with display colors.
func TypeDistribution(filtered []visit.Visit) []TypeCount {
	counts := make(map[visit.VisitType]int)
	for _, v := range filtered {
		if visit.IsApproved(v) {
			counts[v.VisitType]++
		}
	}

	var out []TypeCount
	for _, t := range visit.AllTypes {
		if counts[t] == 0 {
			continue
		}
		out = append(out, TypeCount{Type: t, Count: counts[t], Color: visit.ColorFor(t)})
	}
	// Types outside the known enum still show up, gray.
	for t, n := range counts {
		if visit.TypeColors[t] == "" {
			out = append(out, TypeCount{Type: t, Count: n, Color: visit.ColorFor(t)})
		}
	}
	return out
}

// DefaultMonthlyTarget is the fallback visit quota when a rep has no roster
// entry.
const DefaultMonthlyTarget = 20

// Summary is the current-month stat strip shown above every view.
type Summary struct {
	Scheduled  int
	Completed  int
	Percentage int
	Pending    int
	VisitsLeft int
	Target     int
}

// MonthlySummary computes the stat strip for the current calendar month,
// role-scoped like everything else. Target must be > 0.
func MonthlySummary(visits []visit.Visit, user visit.User, target int, now time.Time) Summary {
	if target <= 0 {
		target = DefaultMonthlyTarget
	}
	s := Summary{Target: target}

	for _, v := range ScopeToUser(visits, user) {
		d := visit.ParseDate(v.Date)
		if d.Month() != now.Month() || d.Year() != now.Year() {
			continue
		}
		if isScheduledType(v.VisitType) {
			s.Scheduled++
		}
		if visit.IsApproved(v) {
			s.Completed++
		} else {
			s.Pending++
		}
	}

	s.Percentage = int(math.Round(float64(s.Completed) / float64(target) * 100))
	if left := target - s.Completed; left > 0 {
		s.VisitsLeft = left
	}
	return s
}
