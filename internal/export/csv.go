// Package export writes the activity report to files offered to the user:
// a two-section CSV matching the established report layout, and a structured
// JSON variant.
package export

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sadopc/dpclog/internal/report"
	"github.com/sadopc/dpclog/internal/visit"
)

var summaryHeader = []string{
	"DPC", "Region", "Visits Scheduled", "Visits Completed", "Visit % Achieved",
	"On-Site Retailer", "On-Site Corporate", "Virtual", "Onsite Zone",
	"Training/T3", "Special Projects", "Pending Approval",
}

var detailHeader = []string{
	"DPC", "Created By", "Date", "Visit Type", "Retailer Name", "City", "State",
	"Report Received", "Received Date", "Notes",
}

// ReportCSV writes the DPC summary and detailed visit sections to path.
// Values are comma-joined without quoting; that is the report format
// consumers already parse, embedded commas and all.
func ReportCSV(metrics []report.Metric, filtered []visit.Visit, path string) error {
	var lines []string

	lines = append(lines, "=== DPC SUMMARY ===")
	lines = append(lines, strings.Join(summaryHeader, ","))
	for _, m := range metrics {
		lines = append(lines, strings.Join(summaryRow(m), ","))
	}

	lines = append(lines, "")
	lines = append(lines, "=== DETAILED VISITS ===")
	lines = append(lines, strings.Join(detailHeader, ","))
	for _, v := range filtered {
		lines = append(lines, strings.Join(detailRow(v), ","))
	}

	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		return fmt.Errorf("write csv file: %w", err)
	}
	return nil
}

func summaryRow(m report.Metric) []string {
	return []string{
		m.Name,
		m.Region,
		fmt.Sprintf("%d", m.ScheduledVisits),
		fmt.Sprintf("%d", m.ApprovedVisits),
		PercentDisplay(m),
		fmt.Sprintf("%d", m.OnSiteRetailer),
		fmt.Sprintf("%d", m.OnSiteCorporate),
		fmt.Sprintf("%d", m.Virtual),
		fmt.Sprintf("%d", m.OnsiteZone),
		fmt.Sprintf("%d", m.Training),
		fmt.Sprintf("%d", m.SpecialProjects),
		fmt.Sprintf("%d", m.PendingApproval),
	}
}

func detailRow(v visit.Visit) []string {
	received := "No"
	if visit.IsApproved(v) {
		received = "Yes"
	}
	return []string{
		v.DPC,
		v.CreatedBy,
		v.Date,
		string(v.VisitType),
		v.RetailerName,
		v.City,
		v.State,
		received,
		v.ReceivedDate,
		v.Notes,
	}
}

// PercentDisplay renders a metric's goal percentage, with N/A for reps
// missing a target.
func PercentDisplay(m report.Metric) string {
	if m.NoTarget {
		return "N/A"
	}
	return fmt.Sprintf("%d%%", m.Percentage)
}

// Filename returns the report artifact name for a given date, e.g.
// DPC_Activity_Report_2025-06-05.csv.
func Filename(ext string, now time.Time) string {
	return fmt.Sprintf("DPC_Activity_Report_%s.%s", now.Format("2006-01-02"), ext)
}
