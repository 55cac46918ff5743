package visit

import (
	"sort"
	"strings"
)

// Retailer is static reference data used to pre-fill visit fields.
type Retailer struct {
	Code  string
	Name  string
	City  string
	State string
}

// Label renders a retailer the way pickers display it.
func (r Retailer) Label() string {
	return r.Code + " - " + r.Name
}

// SearchRetailers filters the reference list case-insensitively against
// name, code, or the "city, state" concatenation, returning matches sorted
// by name. An empty term returns the whole list sorted.
func SearchRetailers(retailers []Retailer, term string) []Retailer {
	term = strings.ToLower(term)

	var out []Retailer
	for _, r := range retailers {
		if term == "" ||
			strings.Contains(strings.ToLower(r.Name), term) ||
			strings.Contains(strings.ToLower(r.Code), term) ||
			strings.Contains(strings.ToLower(r.City+", "+r.State), term) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// FindRetailer looks a retailer up by exact code.
func FindRetailer(retailers []Retailer, code string) (Retailer, bool) {
	for _, r := range retailers {
		if r.Code == code {
			return r, true
		}
	}
	return Retailer{}, false
}
