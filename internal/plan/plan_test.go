package plan

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/wattboard/internal/energy"
	"github.com/theirongolddev/wattboard/internal/ledger"
	"github.com/theirongolddev/wattboard/internal/session"
)

const samplePlan = `
size: 2
household:
  name: Asha
  city: Pune
  house_type: Flat
days:
  Monday: [ac, fridge]
  tue: [tv]
  Sunday: []
values:
  Saturday: 4.5
`

func TestParseAndApply(t *testing.T) {
	p, err := Parse([]byte(samplePlan))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if p.Size != 2 {
		t.Errorf("Size = %d, want 2", p.Size)
	}
	if len(p.Entries) != 3 {
		t.Fatalf("len(Entries) = %d, want 3", len(p.Entries))
	}
	if p.Entries[1].Day != ledger.Tuesday || !p.Entries[1].Appliances.Has(energy.Television) {
		t.Errorf("Entries[1] = %+v", p.Entries[1])
	}

	s, err := session.New("plan", 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := Apply(p, s); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	l := s.Ledger()
	want := map[ledger.Day]float64{
		ledger.Monday:   10.6,
		ledger.Tuesday:  5.1,
		ledger.Saturday: 4.5,
		ledger.Sunday:   3.6,
	}
	for d, w := range want {
		if got := l.Value(d); got != w {
			t.Errorf("%s = %v, want %v", d, got, w)
		}
	}
	if got := l.Value(ledger.Wednesday); got != 0 {
		t.Errorf("Wednesday = %v, want 0", got)
	}
	if total := s.Metrics().TotalKWh; math.Abs(total-23.8) > 1e-9 {
		t.Errorf("TotalKWh = %v, want 23.8", total)
	}
	if s.Household().Name != "Asha" {
		t.Errorf("Household.Name = %q", s.Household().Name)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantLine string
	}{
		{"bad size", "size: 7\n", ""},
		{"missing size", "days:\n  Monday: [tv]\n", ""},
		{"bad day", "size: 1\ndays:\n  Funday: [tv]\n", "line 3"},
		{"bad appliance", "size: 1\ndays:\n  Monday: [tv]\n  Tuesday: [heater]\n", "line 4"},
		{"duplicate day", "size: 1\ndays:\n  Monday: [tv]\n  mon: [ac]\n", "line 4"},
		{"negative value", "size: 1\nvalues:\n  Monday: -2\n", "line 3"},
		{"duplicate value day", "size: 1\nvalues:\n  Sunday: 1\n  sun: 2\n", "line 4"},
		{"nan value", "size: 1\nvalues:\n  Monday: .nan\n", "line 3"},
		{"inf value", "size: 1\nvalues:\n  Monday: 2\n  Tuesday: .inf\n", "line 4"},
		{"days not a map", "size: 1\ndays: [tv]\n", "line 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.body))
			if !errors.Is(err, energy.ErrInvalidInput) {
				t.Fatalf("Parse() err = %v, want ErrInvalidInput", err)
			}
			if tt.wantLine != "" && !strings.Contains(err.Error(), tt.wantLine) {
				t.Errorf("error %q does not mention %q", err, tt.wantLine)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	s, _ := session.New("rt", 3)
	_, _ = s.Toggle(ledger.Wednesday, energy.WashingMachine)
	_, _ = s.Toggle(ledger.Wednesday, energy.Microwave)

	path := filepath.Join(t.TempDir(), "plans", "week.yaml")
	if err := Save(path, s.Snapshot()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.Size != 3 {
		t.Errorf("Size = %d, want 3", p.Size)
	}
	var wed *Entry
	for i := range p.Entries {
		if p.Entries[i].Day == ledger.Wednesday {
			wed = &p.Entries[i]
		}
	}
	if wed == nil {
		t.Fatal("Wednesday missing from saved plan")
	}
	if !wed.Appliances.Has(energy.WashingMachine) || !wed.Appliances.Has(energy.Microwave) {
		t.Errorf("Wednesday = %v", wed.Appliances)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() err = %v, want not-exist", err)
	}
}
