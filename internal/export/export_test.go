package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/dpclog/internal/report"
	"github.com/sadopc/dpclog/internal/visit"
)

func sampleData() ([]report.Metric, []visit.Visit) {
	metrics := []report.Metric{
		{
			Name: "Salamone, D", Region: "SDC 1", Target: 20,
			TotalVisits: 5, ScheduledVisits: 4, ApprovedVisits: 3, Percentage: 15,
			OnSiteRetailer: 1, OnSiteCorporate: 1, Virtual: 1, PendingApproval: 2,
		},
		{
			Name: "Gillman, T", Region: "PHL 1",
			NoTarget: true,
		},
	}
	visits := []visit.Visit{
		{
			ID: 1, DPC: "Salamone, D", CreatedBy: "Salamone, D", Date: "2025-06-05",
			VisitType: visit.TypeOnSiteRetailer, RetailerName: "Mid-Hudson Subaru",
			City: "Wappingers Falls", State: "NY", ReceivedDate: "2025-06-05",
			Notes: "strong team engagement",
		},
		{
			ID: 2, DPC: "Salamone, D", CreatedBy: "Salamone, D", Date: "2025-06-13",
			VisitType: visit.TypeVirtual,
		},
	}
	return metrics, visits
}

// ============================================================
// CSV
// ============================================================

func TestReportCSVSections(t *testing.T) {
	metrics, visits := sampleData()
	path := filepath.Join(t.TempDir(), "report.csv")

	if err := ReportCSV(metrics, visits, path); err != nil {
		t.Fatalf("ReportCSV: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")

	if lines[0] != "=== DPC SUMMARY ===" {
		t.Fatalf("first line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "DPC,Region,Visits Scheduled,") {
		t.Fatalf("summary header = %q", lines[1])
	}
	if !strings.Contains(content, "=== DETAILED VISITS ===") {
		t.Fatal("missing detail section marker")
	}

	// Summary and detail rows present.
	if !strings.Contains(content, "Salamone, D,SDC 1,4,3,15%") {
		t.Fatalf("summary row missing:\n%s", content)
	}
	if !strings.Contains(content, "2025-06-05,On-Site Retailer,Mid-Hudson Subaru") {
		t.Fatalf("detail row missing:\n%s", content)
	}
}

func TestReportCSVNoTargetSentinel(t *testing.T) {
	metrics, visits := sampleData()
	path := filepath.Join(t.TempDir(), "report.csv")

	if err := ReportCSV(metrics, visits, path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "Gillman, T,PHL 1,0,0,N/A") {
		t.Fatalf("missing N/A sentinel row:\n%s", data)
	}
}

func TestReportCSVReceivedColumn(t *testing.T) {
	metrics, visits := sampleData()
	path := filepath.Join(t.TempDir(), "report.csv")
	if err := ReportCSV(metrics, visits, path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	content := string(data)
	if !strings.Contains(content, "Yes,2025-06-05") {
		t.Fatal("approved visit should show Yes + received date")
	}
	if !strings.Contains(content, ",No,,") {
		t.Fatal("pending visit should show No with empty received date")
	}
}

func TestReportCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	if err := ReportCSV(nil, nil, path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	// Both section markers and both header rows survive an empty dataset.
	content := string(data)
	if !strings.Contains(content, "=== DPC SUMMARY ===") || !strings.Contains(content, "=== DETAILED VISITS ===") {
		t.Fatalf("section markers missing:\n%s", content)
	}
}

// ============================================================
// JSON
// ============================================================

func TestReportJSON(t *testing.T) {
	metrics, visits := sampleData()
	path := filepath.Join(t.TempDir(), "report.json")

	if err := ReportJSON(metrics, visits, path); err != nil {
		t.Fatalf("ReportJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var out struct {
		ExportedAt string `json:"exported_at"`
		Summary    []struct {
			DPC     string `json:"dpc"`
			Percent string `json:"percent_achieved"`
		} `json:"summary"`
		Visits []struct {
			ID       int64 `json:"id"`
			Received bool  `json:"report_received"`
		} `json:"visits"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.ExportedAt == "" {
		t.Fatal("exported_at missing")
	}
	if len(out.Summary) != 2 || out.Summary[0].Percent != "15%" || out.Summary[1].Percent != "N/A" {
		t.Fatalf("unexpected summary: %+v", out.Summary)
	}
	if len(out.Visits) != 2 || !out.Visits[0].Received || out.Visits[1].Received {
		t.Fatalf("unexpected visits: %+v", out.Visits)
	}
}

// ============================================================
// Filename
// ============================================================

func TestFilename(t *testing.T) {
	now := time.Date(2025, time.June, 5, 14, 0, 0, 0, time.Local)
	if got := Filename("csv", now); got != "DPC_Activity_Report_2025-06-05.csv" {
		t.Fatalf("Filename = %q", got)
	}
	if got := Filename("json", now); got != "DPC_Activity_Report_2025-06-05.json" {
		t.Fatalf("Filename = %q", got)
	}
}
