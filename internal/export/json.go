package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/dpclog/internal/report"
	"github.com/sadopc/dpclog/internal/visit"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Summary    []jsonSummary `json:"summary"`
	Visits     []jsonVisit   `json:"visits"`
}

type jsonSummary struct {
	DPC             string `json:"dpc"`
	Region          string `json:"region"`
	Scheduled       int    `json:"visits_scheduled"`
	Completed       int    `json:"visits_completed"`
	Percent         string `json:"percent_achieved"`
	OnSiteRetailer  int    `json:"on_site_retailer"`
	OnSiteCorporate int    `json:"on_site_corporate"`
	Virtual         int    `json:"virtual"`
	OnsiteZone      int    `json:"onsite_zone"`
	Training        int    `json:"training"`
	SpecialProjects int    `json:"special_projects"`
	Pending         int    `json:"pending_approval"`
}

type jsonVisit struct {
	ID           int64  `json:"id"`
	DPC          string `json:"dpc"`
	CreatedBy    string `json:"created_by,omitempty"`
	Date         string `json:"date"`
	VisitType    string `json:"visit_type"`
	RetailerName string `json:"retailer_name,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Received     bool   `json:"report_received"`
	ReceivedDate string `json:"received_date,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// ReportJSON writes the same summary and detail data as ReportCSV in a
// structured form.
func ReportJSON(metrics []report.Metric, filtered []visit.Visit, path string) error {
	out := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}

	for _, m := range metrics {
		out.Summary = append(out.Summary, jsonSummary{
			DPC:             m.Name,
			Region:          m.Region,
			Scheduled:       m.ScheduledVisits,
			Completed:       m.ApprovedVisits,
			Percent:         PercentDisplay(m),
			OnSiteRetailer:  m.OnSiteRetailer,
			OnSiteCorporate: m.OnSiteCorporate,
			Virtual:         m.Virtual,
			OnsiteZone:      m.OnsiteZone,
			Training:        m.Training,
			SpecialProjects: m.SpecialProjects,
			Pending:         m.PendingApproval,
		})
	}

	for _, v := range filtered {
		out.Visits = append(out.Visits, jsonVisit{
			ID:           v.ID,
			DPC:          v.DPC,
			CreatedBy:    v.CreatedBy,
			Date:         v.Date,
			VisitType:    string(v.VisitType),
			RetailerName: v.RetailerName,
			City:         v.City,
			State:        v.State,
			Received:     visit.IsApproved(v),
			ReceivedDate: v.ReceivedDate,
			Notes:        v.Notes,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
