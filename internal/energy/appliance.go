package energy

import (
	"fmt"
	"sort"
	"strings"
)

// Appliance is one entry of the fixed appliance vocabulary.
type Appliance string

// Recognised appliances.
const (
	AirConditioner Appliance = "air-conditioner"
	Refrigerator   Appliance = "refrigerator"
	WashingMachine Appliance = "washing-machine"
	Television     Appliance = "television"
	Microwave      Appliance = "microwave"
	Dishwasher     Appliance = "dishwasher"
)

// ApplianceInfo describes how an appliance is shown and what it adds per day.
type ApplianceInfo struct {
	Appliance Appliance
	Label     string
	Short     string
	KWhPerDay float64
}

// applianceTable is ordered the way appliances are presented.
var applianceTable = []ApplianceInfo{
	{Appliance: AirConditioner, Label: "Air Conditioner", Short: "AC", KWhPerDay: 3.0},
	{Appliance: Refrigerator, Label: "Refrigerator", Short: "Fridge", KWhPerDay: 4.0},
	{Appliance: WashingMachine, Label: "Washing Machine", Short: "Washer", KWhPerDay: 2.0},
	{Appliance: Television, Label: "Television", Short: "TV", KWhPerDay: 1.5},
	{Appliance: Microwave, Label: "Microwave", Short: "Micro", KWhPerDay: 1.0},
	{Appliance: Dishwasher, Label: "Dishwasher", Short: "Dishes", KWhPerDay: 2.5},
}

// aliases maps normalized spellings to canonical appliances.
var aliases = map[string]Appliance{
	"ac":             AirConditioner,
	"aircon":         AirConditioner,
	"airconditioner": AirConditioner,
	"fridge":         Refrigerator,
	"refrigerator":   Refrigerator,
	"wm":             WashingMachine,
	"washer":         WashingMachine,
	"washingmachine": WashingMachine,
	"tv":             Television,
	"television":     Television,
	"micro":          Microwave,
	"microwave":      Microwave,
	"dishes":         Dishwasher,
	"dishwasher":     Dishwasher,
}

// Appliances returns the vocabulary in display order.
func Appliances() []ApplianceInfo {
	out := make([]ApplianceInfo, len(applianceTable))
	copy(out, applianceTable)
	return out
}

// Lookup returns the table entry for a, or false if a is not in the vocabulary.
func Lookup(a Appliance) (ApplianceInfo, bool) {
	for _, info := range applianceTable {
		if info.Appliance == a {
			return info, true
		}
	}
	return ApplianceInfo{}, false
}

// Label returns the display label, or the raw tag for unknown appliances.
func (a Appliance) Label() string {
	if info, ok := Lookup(a); ok {
		return info.Label
	}
	return string(a)
}

// Valid reports whether a belongs to the vocabulary.
func (a Appliance) Valid() bool {
	_, ok := Lookup(a)
	return ok
}

// normalizeName folds case and drops separators.
// e.g., "Washing_Machine" -> "washingmachine"
func normalizeName(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(raw)) {
		switch r {
		case '-', '_', ' ', '.':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ParseAppliance resolves a user-supplied name to a canonical appliance.
func ParseAppliance(raw string) (Appliance, error) {
	if a, ok := aliases[normalizeName(raw)]; ok {
		return a, nil
	}
	return "", fmt.Errorf("%w: unknown appliance %q", ErrInvalidInput, raw)
}

// ParseAppliances parses a list of names, failing on the first unknown one.
func ParseAppliances(raw []string) (ApplianceSet, error) {
	set := make(ApplianceSet, len(raw))
	for _, r := range raw {
		if strings.TrimSpace(r) == "" {
			continue
		}
		a, err := ParseAppliance(r)
		if err != nil {
			return nil, err
		}
		set[a] = true
	}
	return set, nil
}

// ApplianceSet records which appliances are present. Absent keys and false
// values both mean "not present".
type ApplianceSet map[Appliance]bool

// NewApplianceSet builds a set with the given appliances present.
func NewApplianceSet(list ...Appliance) ApplianceSet {
	set := make(ApplianceSet, len(list))
	for _, a := range list {
		set[a] = true
	}
	return set
}

// Has reports whether a is present.
func (s ApplianceSet) Has(a Appliance) bool {
	return s[a]
}

// Toggle flips the presence of a.
func (s ApplianceSet) Toggle(a Appliance) {
	if s[a] {
		delete(s, a)
		return
	}
	s[a] = true
}

// Clone returns an independent copy holding only present appliances.
func (s ApplianceSet) Clone() ApplianceSet {
	out := make(ApplianceSet, len(s))
	for a, on := range s {
		if on {
			out[a] = true
		}
	}
	return out
}

// List returns the present appliances, vocabulary entries first in display
// order, then any unknown tags sorted.
func (s ApplianceSet) List() []Appliance {
	var out []Appliance
	for _, info := range applianceTable {
		if s[info.Appliance] {
			out = append(out, info.Appliance)
		}
	}
	var unknown []Appliance
	for a, on := range s {
		if on && !a.Valid() {
			unknown = append(unknown, a)
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
	return append(out, unknown...)
}
