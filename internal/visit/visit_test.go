package visit

import (
	"testing"
	"time"
)

// ============================================================
// Approval predicate
// ============================================================

func TestIsApprovedFromReceivedDate(t *testing.T) {
	tests := []struct {
		name         string
		receivedDate string
		approved     bool // cached flag, must be ignored
		want         bool
	}{
		{"received date set", "2025-06-05", false, true},
		{"empty received date", "", true, false},
		{"whitespace received date", "   ", true, false},
		{"flag agrees", "2025-06-05", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Visit{ReceivedDate: tt.receivedDate, Approved: tt.approved}
			if got := IsApproved(v); got != tt.want {
				t.Fatalf("IsApproved = %v, want %v", got, tt.want)
			}
		})
	}
}

// ============================================================
// Overdue predicate
// ============================================================

func TestIsOverdueMondayToThursday(t *testing.T) {
	// Visit on Monday 2025-06-02, today Thursday 2025-06-05.
	// Tue, Wed, Thu = 3 weekdays crossed, >= 2 so overdue.
	v := Visit{Date: "2025-06-02", ReceivedDate: ""}
	today := time.Date(2025, time.June, 5, 0, 0, 0, 0, time.Local)
	if !IsOverdue(v, today) {
		t.Fatal("Monday visit should be overdue by Thursday")
	}
}

func TestIsOverdueGracePeriod(t *testing.T) {
	// Visit on Monday, today Tuesday: only 1 weekday crossed.
	v := Visit{Date: "2025-06-02"}
	today := time.Date(2025, time.June, 3, 0, 0, 0, 0, time.Local)
	if IsOverdue(v, today) {
		t.Fatal("1 business day is within the grace period")
	}
}

func TestIsOverdueSkipsWeekend(t *testing.T) {
	// Visit on Friday 2025-06-06, today Monday 2025-06-09.
	// Sat and Sun do not count; only Monday does, so not overdue yet.
	v := Visit{Date: "2025-06-06"}
	today := time.Date(2025, time.June, 9, 0, 0, 0, 0, time.Local)
	if IsOverdue(v, today) {
		t.Fatal("weekend days must not count toward overdue")
	}
}

func TestIsOverdueApprovedNever(t *testing.T) {
	v := Visit{Date: "2025-06-02", ReceivedDate: "2025-06-03"}
	today := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.Local)
	if IsOverdue(v, today) {
		t.Fatal("approved visits are never overdue")
	}
}

func TestIsOverdueFutureVisit(t *testing.T) {
	v := Visit{Date: "2025-06-20"}
	today := time.Date(2025, time.June, 5, 0, 0, 0, 0, time.Local)
	if IsOverdue(v, today) {
		t.Fatal("future visits are never overdue")
	}
}

// ============================================================
// Date validation and parsing
// ============================================================

func TestValidateDateWeekend(t *testing.T) {
	// 2025-06-07 is a Saturday, 2025-06-08 a Sunday.
	for _, d := range []string{"2025-06-07", "2025-06-08"} {
		err := ValidateDate(d)
		if err == nil {
			t.Fatalf("%s should be rejected", d)
		}
		if err.Error() != "Visits cannot be scheduled on weekends (Saturday or Sunday)" {
			t.Fatalf("unexpected message: %q", err.Error())
		}
	}
}

func TestValidateDateWeekday(t *testing.T) {
	for _, d := range []string{"2025-06-02", "2025-06-03", "2025-06-04", "2025-06-05", "2025-06-06"} {
		if err := ValidateDate(d); err != nil {
			t.Fatalf("%s should be valid: %v", d, err)
		}
	}
}

func TestValidateDateEmpty(t *testing.T) {
	if err := ValidateDate(""); err != nil {
		t.Fatalf("empty date should be valid: %v", err)
	}
}

func TestParseDateLocal(t *testing.T) {
	d := ParseDate("2025-06-05")
	if d.Year() != 2025 || d.Month() != time.June || d.Day() != 5 {
		t.Fatalf("unexpected date: %v", d)
	}
	if d.Weekday() != time.Thursday {
		t.Fatalf("2025-06-05 should be a Thursday, got %v", d.Weekday())
	}
}

func TestParseDateMalformed(t *testing.T) {
	for _, s := range []string{"", "2025-06", "not-a-date-x", "2025/06/05"} {
		if !ParseDate(s).IsZero() {
			t.Fatalf("%q should parse to zero time", s)
		}
	}
}

// ============================================================
// Derive
// ============================================================

func TestDeriveSyncsApproval(t *testing.T) {
	v := Derive(Visit{VisitType: TypeOnSiteRetailer, ReceivedDate: "2025-06-05"})
	if !v.Approved {
		t.Fatal("Approved should follow ReceivedDate")
	}
	if v.ApprovalDate != "2025-06-05" {
		t.Fatalf("ApprovalDate = %q", v.ApprovalDate)
	}

	v.ReceivedDate = "  "
	v = Derive(v)
	if v.Approved || v.ApprovalDate != "" {
		t.Fatal("clearing ReceivedDate should clear the cached approval")
	}
}

func TestDeriveTruncatesState(t *testing.T) {
	v := Derive(Visit{VisitType: TypeOnSiteRetailer, State: "New York"})
	if v.State != "Ne" {
		t.Fatalf("State = %q, want 2 characters", v.State)
	}
}

func TestDeriveBlanksRetailerFields(t *testing.T) {
	for _, typ := range []VisitType{TypeHome, TypeOffice, TypePTO, TypeSpecialProjects, TypeTraining} {
		v := Derive(Visit{
			VisitType:    typ,
			RetailerCode: "403872",
			RetailerName: "Mid-Hudson Subaru",
			City:         "Wappingers Falls",
			State:        "NY",
		})
		if v.RetailerCode != "" || v.RetailerName != "" || v.City != "" || v.State != "" {
			t.Fatalf("%s should blank retailer fields: %+v", typ, v)
		}
	}
}

func TestDeriveKeepsRetailerFields(t *testing.T) {
	v := Derive(Visit{VisitType: TypeOnSiteRetailer, RetailerCode: "403872", RetailerName: "Mid-Hudson Subaru"})
	if v.RetailerCode == "" || v.RetailerName == "" {
		t.Fatal("retailer types keep their retailer fields")
	}
}

// ============================================================
// Type metadata
// ============================================================

func TestColorFor(t *testing.T) {
	if ColorFor(TypeOnSiteRetailer) != "#3B82F6" {
		t.Fatal("wrong retailer color")
	}
	if ColorFor(VisitType("Mystery")) != "#6B7280" {
		t.Fatal("unmapped types default to neutral gray")
	}
}

func TestLocation(t *testing.T) {
	v := Visit{VisitType: TypeOnSiteRetailer, RetailerName: "Brewster Subaru"}
	if v.Location() != "Brewster Subaru" {
		t.Fatalf("Location = %q", v.Location())
	}
	v = Visit{VisitType: TypeHome}
	if v.Location() != "Home" {
		t.Fatalf("Location = %q", v.Location())
	}
}

// ============================================================
// Retailer search
// ============================================================

func testRetailers() []Retailer {
	return []Retailer{
		{Code: "403872", Name: "Mid-Hudson Subaru", City: "Wappingers Falls", State: "NY"},
		{Code: "20226", Name: "Brewster Subaru", City: "Brewster", State: "NY"},
		{Code: "20273", Name: "Lynnes Subaru", City: "Bloomfield", State: "NJ"},
	}
}

func TestSearchRetailersByName(t *testing.T) {
	got := SearchRetailers(testRetailers(), "brewster")
	if len(got) != 1 || got[0].Code != "20226" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestSearchRetailersByCode(t *testing.T) {
	got := SearchRetailers(testRetailers(), "4038")
	if len(got) != 1 || got[0].Name != "Mid-Hudson Subaru" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestSearchRetailersByCityState(t *testing.T) {
	got := SearchRetailers(testRetailers(), "bloomfield, nj")
	if len(got) != 1 || got[0].Code != "20273" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestSearchRetailersEmptyTermSorted(t *testing.T) {
	got := SearchRetailers(testRetailers(), "")
	if len(got) != 3 {
		t.Fatalf("expected all retailers, got %d", len(got))
	}
	if got[0].Name != "Brewster Subaru" || got[2].Name != "Mid-Hudson Subaru" {
		t.Fatalf("results not sorted by name: %+v", got)
	}
}

func TestSearchRetailersNoMatch(t *testing.T) {
	if got := SearchRetailers(testRetailers(), "nonesuch"); len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestFindRetailer(t *testing.T) {
	r, ok := FindRetailer(testRetailers(), "20226")
	if !ok || r.Name != "Brewster Subaru" {
		t.Fatalf("lookup failed: %+v %v", r, ok)
	}
	if _, ok := FindRetailer(testRetailers(), "99999"); ok {
		t.Fatal("unknown code should not be found")
	}
}
