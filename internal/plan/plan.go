// Package plan reads and writes week plans: YAML files listing the appliances
// a household runs on each day.
//
//	size: 2
//	household:
//	  name: Asha
//	  house_type: Flat
//	days:
//	  Monday: [ac, fridge]
//	  tue: [tv, microwave]
//	values:
//	  Sunday: 4.5
package plan

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/wattboard/internal/energy"
	"github.com/theirongolddev/wattboard/internal/ledger"
	"github.com/theirongolddev/wattboard/internal/session"
)

// Household mirrors the profile block of a plan file.
type Household struct {
	Name      string `yaml:"name,omitempty"`
	Age       int    `yaml:"age,omitempty"`
	City      string `yaml:"city,omitempty"`
	Area      string `yaml:"area,omitempty"`
	HouseType string `yaml:"house_type,omitempty"`
}

// Entry is one day's appliance list after validation.
type Entry struct {
	Day        ledger.Day
	Appliances energy.ApplianceSet
}

// Plan is a validated week plan.
type Plan struct {
	Size      energy.DwellingSize
	Household Household
	Entries   []Entry
	// Values are explicit kWh figures that override any appliance entry.
	Values map[ledger.Day]float64
}

type rawPlan struct {
	Size      int       `yaml:"size"`
	Household Household `yaml:"household,omitempty"`
	Days      yaml.Node `yaml:"days"`
	Values    yaml.Node `yaml:"values"`
}

// Load reads and validates a plan file.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-supplied plan path
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse validates plan YAML. Errors carry the offending line.
func Parse(data []byte) (*Plan, error) {
	var raw rawPlan
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing plan: %w", err)
	}

	size, err := energy.ParseSize(raw.Size)
	if err != nil {
		return nil, fmt.Errorf("size: %w", err)
	}

	p := &Plan{
		Size:      size,
		Household: raw.Household,
		Values:    make(map[ledger.Day]float64),
	}

	seen := make(map[ledger.Day]bool)
	if err := eachPair(&raw.Days, "days", func(key, val *yaml.Node) error {
		day, err := ledger.ParseDay(key.Value)
		if err != nil {
			return err
		}
		if seen[day] {
			return fmt.Errorf("%w: %s listed twice", energy.ErrInvalidInput, day)
		}
		seen[day] = true

		var names []string
		if err := val.Decode(&names); err != nil {
			return fmt.Errorf("%w: appliances for %s must be a list", energy.ErrInvalidInput, day)
		}
		set, err := energy.ParseAppliances(names)
		if err != nil {
			return err
		}
		p.Entries = append(p.Entries, Entry{Day: day, Appliances: set})
		return nil
	}); err != nil {
		return nil, err
	}

	seenValues := make(map[ledger.Day]bool)
	if err := eachPair(&raw.Values, "values", func(key, val *yaml.Node) error {
		day, err := ledger.ParseDay(key.Value)
		if err != nil {
			return err
		}
		if seenValues[day] {
			return fmt.Errorf("%w: %s listed twice", energy.ErrInvalidInput, day)
		}
		seenValues[day] = true
		var kwh float64
		if err := val.Decode(&kwh); err != nil {
			return fmt.Errorf("%w: value for %s must be a number", energy.ErrInvalidInput, day)
		}
		if math.IsNaN(kwh) || math.IsInf(kwh, 0) {
			return fmt.Errorf("%w: value for %s must be finite", energy.ErrInvalidInput, day)
		}
		if kwh < 0 {
			return fmt.Errorf("%w: negative value for %s", energy.ErrInvalidInput, day)
		}
		p.Values[day] = kwh
		return nil
	}); err != nil {
		return nil, err
	}

	return p, nil
}

// eachPair walks a mapping node, prefixing errors with the key's line.
func eachPair(n *yaml.Node, field string, fn func(key, val *yaml.Node) error) error {
	if n.Kind == 0 {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: %w: %s must be a mapping of day to entries", n.Line, energy.ErrInvalidInput, field)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if err := fn(key, val); err != nil {
			return fmt.Errorf("line %d: %w", key.Line, err)
		}
	}
	return nil
}

// Apply loads the plan into s: size, household, drafts, then commits each
// listed day. Explicit values are saved last.
func Apply(p *Plan, s *session.Session) error {
	if err := s.SetSize(p.Size); err != nil {
		return err
	}
	s.SetHousehold(session.Household(p.Household))

	for _, e := range p.Entries {
		if err := s.SetDraft(e.Day, e.Appliances); err != nil {
			return fmt.Errorf("applying %s: %w", e.Day, err)
		}
		if _, err := s.Commit(e.Day); err != nil {
			return fmt.Errorf("committing %s: %w", e.Day, err)
		}
	}
	for _, d := range ledger.Days() {
		v, ok := p.Values[d]
		if !ok {
			continue
		}
		if err := s.SaveValue(d, v); err != nil {
			return fmt.Errorf("saving %s: %w", d, err)
		}
	}
	return nil
}

type filePlan struct {
	Size      int                 `yaml:"size"`
	Household Household           `yaml:"household,omitempty"`
	Days      map[string][]string `yaml:"days"`
}

// FromSnapshot captures a session's drafts as a plan file body.
func FromSnapshot(snap session.Snapshot) ([]byte, error) {
	fp := filePlan{
		Size:      int(snap.Size),
		Household: Household(snap.Household),
		Days:      make(map[string][]string, len(snap.Days)),
	}
	for _, d := range snap.Days {
		names := make([]string, 0, len(d.Draft))
		for _, a := range d.Draft {
			names = append(names, string(a))
		}
		fp.Days[d.Day.String()] = names
	}
	out, err := yaml.Marshal(fp)
	if err != nil {
		return nil, fmt.Errorf("marshaling plan: %w", err)
	}
	return out, nil
}

// Save writes a session's drafts to path.
func Save(path string, snap session.Snapshot) error {
	data, err := FromSnapshot(snap)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating plan directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing plan file: %w", err)
	}
	return nil
}
