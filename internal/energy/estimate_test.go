package energy

import (
	"errors"
	"math"
	"testing"
)

func TestEstimateDailyEnergy(t *testing.T) {
	tests := []struct {
		name       string
		size       DwellingSize
		appliances ApplianceSet
		want       float64
	}{
		{"1 bhk bare", 1, nil, 2.4},
		{"2 bhk bare", 2, ApplianceSet{}, 3.6},
		{"3 bhk bare", 3, nil, 4.8},
		{"4 bhk bare", 4, nil, 6.0},
		{"2 bhk ac and fridge", 2, NewApplianceSet(AirConditioner, Refrigerator), 10.6},
		{"1 bhk tv", 1, NewApplianceSet(Television), 3.9},
		{"4 bhk everything", 4, NewApplianceSet(AirConditioner, Refrigerator, WashingMachine, Television, Microwave, Dishwasher), 20.0},
		{"false entries ignored", 3, ApplianceSet{Dishwasher: false, Microwave: true}, 5.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EstimateDailyEnergy(tt.size, tt.appliances)
			if err != nil {
				t.Fatalf("EstimateDailyEnergy() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("EstimateDailyEnergy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEstimateDailyEnergy_InvalidInput(t *testing.T) {
	for _, size := range []DwellingSize{0, 5, -1} {
		if _, err := EstimateDailyEnergy(size, nil); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("size %d: err = %v, want ErrInvalidInput", size, err)
		}
	}

	for _, set := range []ApplianceSet{
		{"heater": true},
		{"heater": false},
		{AirConditioner: true, "heater": false},
	} {
		if _, err := EstimateDailyEnergy(2, set); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("appliances %v: err = %v, want ErrInvalidInput", set, err)
		}
	}
}

func TestEstimateDailyEnergy_Monotonic(t *testing.T) {
	for size := MinSize; size <= MaxSize; size++ {
		base, err := EstimateDailyEnergy(size, nil)
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		set := ApplianceSet{}
		prev := base
		for _, info := range Appliances() {
			set[info.Appliance] = true
			got, err := EstimateDailyEnergy(size, set)
			if err != nil {
				t.Fatalf("size %d: %v", size, err)
			}
			if got < prev {
				t.Fatalf("size %d adding %s: %v < %v", size, info.Appliance, got, prev)
			}
			prev = got
		}
	}
}

func TestEstimateDailyEnergy_RoundedAndRepeatable(t *testing.T) {
	set := NewApplianceSet(Television, Microwave, WashingMachine)
	first, err := EstimateDailyEnergy(3, set)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		got, _ := EstimateDailyEnergy(3, set)
		if got != first {
			t.Fatalf("call %d = %v, want %v", i, got, first)
		}
	}
	if scaled := first * 100; math.Abs(scaled-math.Round(scaled)) > 1e-9 {
		t.Errorf("estimate %v has more than two decimals", first)
	}
}

func TestBaseLoadLadder(t *testing.T) {
	want := map[DwellingSize]float64{1: 2.4, 2: 3.6, 3: 4.8, 4: 6.0}
	for size, w := range want {
		got, err := BaseLoad(size)
		if err != nil {
			t.Fatalf("BaseLoad(%d): %v", size, err)
		}
		if math.Abs(got-w) > 1e-9 {
			t.Errorf("BaseLoad(%d) = %v, want %v", size, got, w)
		}
	}
}

func TestParseAppliance(t *testing.T) {
	tests := map[string]Appliance{
		"ac":              AirConditioner,
		"Air Conditioner": AirConditioner,
		"air-conditioner": AirConditioner,
		"FRIDGE":          Refrigerator,
		"washing_machine": WashingMachine,
		"tv":              Television,
		"microwave":       Microwave,
		" dishwasher ":    Dishwasher,
	}
	for raw, want := range tests {
		got, err := ParseAppliance(raw)
		if err != nil {
			t.Errorf("ParseAppliance(%q) error = %v", raw, err)
			continue
		}
		if got != want {
			t.Errorf("ParseAppliance(%q) = %q, want %q", raw, got, want)
		}
	}

	if _, err := ParseAppliance("toaster"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ParseAppliance(toaster) err = %v, want ErrInvalidInput", err)
	}
}

func TestParseAppliances(t *testing.T) {
	set, err := ParseAppliances([]string{"ac", "", "fridge", "AC"})
	if err != nil {
		t.Fatalf("ParseAppliances() error = %v", err)
	}
	if len(set) != 2 || !set.Has(AirConditioner) || !set.Has(Refrigerator) {
		t.Errorf("ParseAppliances() = %v, want ac and fridge", set)
	}

	if _, err := ParseAppliances([]string{"tv", "heater"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestApplianceSetToggleAndList(t *testing.T) {
	set := ApplianceSet{}
	set.Toggle(Dishwasher)
	set.Toggle(AirConditioner)
	set.Toggle(Television)
	set.Toggle(Television)

	got := set.List()
	if len(got) != 2 || got[0] != AirConditioner || got[1] != Dishwasher {
		t.Errorf("List() = %v, want [air-conditioner dishwasher]", got)
	}

	clone := set.Clone()
	clone.Toggle(AirConditioner)
	if !set.Has(AirConditioner) {
		t.Error("Clone shares storage with the original set")
	}
}
