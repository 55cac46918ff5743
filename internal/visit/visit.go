package visit

import "strings"

// VisitType classifies what a logged visit was.
type VisitType string

const (
	TypeOnSiteRetailer  VisitType = "On-Site Retailer"
	TypeOnSiteCorporate VisitType = "On-Site Corporate"
	TypeVirtual         VisitType = "Virtual"
	TypeOnsiteZone      VisitType = "Onsite Zone"
	TypePTO             VisitType = "PTO"
	TypeHome            VisitType = "Home"
	TypeOffice          VisitType = "Office"
	TypeSpecialProjects VisitType = "Special Projects"
	TypeTraining        VisitType = "Training/T3"
	TypeCanceled        VisitType = "Canceled"
)

// AllTypes lists every visit type in form/filter order.
var AllTypes = []VisitType{
	TypeOnSiteRetailer,
	TypeOnSiteCorporate,
	TypeVirtual,
	TypeOnsiteZone,
	TypePTO,
	TypeHome,
	TypeOffice,
	TypeSpecialProjects,
	TypeTraining,
	TypeCanceled,
}

// ScheduledTypes are the types that count toward the monthly scheduling quota.
var ScheduledTypes = []VisitType{
	TypeOnSiteRetailer,
	TypeOnSiteCorporate,
	TypeVirtual,
	TypeOnsiteZone,
}

// defaultTypeColor is used for any type missing from TypeColors.
const defaultTypeColor = "#6B7280"

// TypeColors maps each visit type to its fixed display color.
var TypeColors = map[VisitType]string{
	TypeOnSiteRetailer:  "#3B82F6",
	TypeOnSiteCorporate: "#10B981",
	TypeVirtual:         "#8B5CF6",
	TypeOnsiteZone:      "#F59E0B",
	TypePTO:             "#EF4444",
	TypeHome:            "#6B7280",
	TypeOffice:          "#84CC16",
	TypeSpecialProjects: "#EC4899",
	TypeTraining:        "#F97316",
	TypeCanceled:        "#DC2626",
}

// ColorFor returns the display color for a visit type.
func ColorFor(t VisitType) string {
	if c, ok := TypeColors[t]; ok {
		return c
	}
	return defaultTypeColor
}

// Visit is a single logged activity. Dates are ISO YYYY-MM-DD strings with
// no time component. The Approved flag is a cache of ReceivedDate being set
// and may drift; predicates recompute from ReceivedDate.
type Visit struct {
	ID           int64
	DPC          string
	Region       string
	CreatedBy    string
	Date         string
	RetailerCode string
	RetailerName string
	City         string
	State        string
	VisitType    VisitType
	Approved     bool
	ApprovalDate string
	ReceivedDate string
	Notes        string
}

// Location is what the calendar and report tables show for a visit: the
// retailer name when one applies, otherwise the visit type.
func (v Visit) Location() string {
	if RetailerRequired(v.VisitType) && v.RetailerName != "" {
		return v.RetailerName
	}
	if v.RetailerName != "" {
		return v.RetailerName
	}
	return string(v.VisitType)
}

// nonRetailerTypes have no meaningful retailer fields.
var nonRetailerTypes = map[VisitType]bool{
	TypeHome:            true,
	TypeOffice:          true,
	TypePTO:             true,
	TypeSpecialProjects: true,
	TypeTraining:        true,
}

// RetailerRequired reports whether the retailer fields apply to a type.
func RetailerRequired(t VisitType) bool {
	return !nonRetailerTypes[t]
}

// Derive returns a fully consistent copy of the visit. It is the single
// place where redundant fields are synchronized after any edit: the
// Approved flag and ApprovalDate follow ReceivedDate, the state code is
// limited to 2 characters, and retailer fields are blanked for types that
// do not take them.
func Derive(v Visit) Visit {
	v.ReceivedDate = strings.TrimSpace(v.ReceivedDate)
	if v.ReceivedDate != "" {
		v.Approved = true
		if v.ApprovalDate == "" {
			v.ApprovalDate = v.ReceivedDate
		}
	} else {
		v.Approved = false
		v.ApprovalDate = ""
	}

	if len(v.State) > 2 {
		v.State = v.State[:2]
	}

	if !RetailerRequired(v.VisitType) {
		v.RetailerCode = ""
		v.RetailerName = ""
		v.City = ""
		v.State = ""
	}
	return v
}

// Rep is a roster entry: a DPC with a monthly visit target.
type Rep struct {
	Name   string
	Region string
	Target int
}

// Role distinguishes lead visibility from scoped DPC visibility.
type Role string

const (
	RoleLead Role = "lead"
	RoleDPC  Role = "dpc"
)

// User is the current-user context supplied at startup or by switching.
type User struct {
	Role   Role
	Name   string
	Region string
}

// IsLead reports whether the user has full visibility and approval rights.
func (u User) IsLead() bool { return u.Role == RoleLead }
