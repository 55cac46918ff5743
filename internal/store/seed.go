package store

import (
	"fmt"

	"github.com/sadopc/dpclog/internal/visit"
)

// Seed reference data. Retailer list and DPC roster come from an external
// provider in production; this static snapshot stands in for it.
var seedRetailers = []visit.Retailer{
	{Code: "403872", Name: "Mid-Hudson Subaru", City: "Wappingers Falls", State: "NY"},
	{Code: "20226", Name: "Brewster Subaru", City: "Brewster", State: "NY"},
	{Code: "20211", Name: "Koeppel Subaru", City: "Long Island City", State: "NY"},
	{Code: "20273", Name: "Lynnes Subaru", City: "Bloomfield", State: "NJ"},
	{Code: "20235", Name: "Open Road Subaru", City: "Union", State: "NJ"},
	{Code: "20301", Name: "Bill Kolb Jr Subaru", City: "Orangeburg", State: "NY"},
	{Code: "20318", Name: "Paul Miller Subaru", City: "Parsippany", State: "NJ"},
}

var seedReps = []visit.Rep{
	{Name: "Salamone, D", Region: "SDC 1", Target: 20},
	{Name: "Manno, D", Region: "SDC 2", Target: 20},
	{Name: "Gillman, T", Region: "PHL 1", Target: 20},
}

var seedVisits = []visit.Visit{
	{
		DPC:          "Salamone, D",
		Region:       "SDC 1",
		CreatedBy:    "Salamone, D",
		Date:         "2025-06-05",
		RetailerCode: "403872",
		RetailerName: "Mid-Hudson Subaru",
		City:         "Wappingers Falls",
		State:        "NY",
		VisitType:    visit.TypeOnSiteRetailer,
		Approved:     true,
		ApprovalDate: "2025-06-05",
		ReceivedDate: "2025-06-05",
		Notes:        "Great visit, strong team engagement",
	},
}

// seed loads the reference tables and, once ever, the starter visit set.
// Reference rows are upserted idempotently; visits are guarded by a settings
// flag so user deletions stick.
func (s *Store) seed() error {
	for _, r := range seedRetailers {
		_, err := s.db.Exec(
			`INSERT OR IGNORE INTO retailers (code, name, city, state) VALUES (?, ?, ?, ?)`,
			r.Code, r.Name, r.City, r.State,
		)
		if err != nil {
			return fmt.Errorf("seed retailer %s: %w", r.Code, err)
		}
	}

	for _, r := range seedReps {
		_, err := s.db.Exec(
			`INSERT OR IGNORE INTO dpcs (name, region, target) VALUES (?, ?, ?)`,
			r.Name, r.Region, r.Target,
		)
		if err != nil {
			return fmt.Errorf("seed dpc %s: %w", r.Name, err)
		}
	}

	if _, err := s.GetSetting("seeded"); err == nil {
		return nil
	}
	for _, v := range seedVisits {
		if _, err := s.CreateVisit(v); err != nil {
			return fmt.Errorf("seed visit: %w", err)
		}
	}
	return s.SetSetting("seeded", "1")
}
