package insights

import (
	"math"
	"testing"

	"github.com/theirongolddev/wattboard/internal/energy"
	"github.com/theirongolddev/wattboard/internal/ledger"
)

func TestHighConsumptionOrder(t *testing.T) {
	alert := HighConsumption(2)
	if len(alert.Heaviest) != 2 {
		t.Fatalf("got %d appliances, want 2", len(alert.Heaviest))
	}
	if alert.Heaviest[0].Appliance != energy.Refrigerator {
		t.Errorf("heaviest = %s, want refrigerator", alert.Heaviest[0].Appliance)
	}
	if alert.Heaviest[1].Appliance != energy.AirConditioner {
		t.Errorf("second = %s, want air-conditioner", alert.Heaviest[1].Appliance)
	}

	if got := len(HighConsumption(100).Heaviest); got != len(energy.Appliances()) {
		t.Errorf("HighConsumption(100) returned %d, want the whole vocabulary", got)
	}
	if got := len(HighConsumption(-1).Heaviest); got != 0 {
		t.Errorf("HighConsumption(-1) returned %d, want 0", got)
	}
}

func TestEnvironmentalImpact(t *testing.T) {
	l := ledger.New()
	for _, d := range ledger.Days() {
		if err := l.SaveDay(d, 5); err != nil {
			t.Fatal(err)
		}
	}
	imp := EnvironmentalImpact(l.Metrics())
	if math.Abs(imp.WeeklyCarbonKg-28.7) > 1e-9 {
		t.Errorf("weekly = %v, want 28.7", imp.WeeklyCarbonKg)
	}
	if math.Abs(imp.MonthlyCarbonKg-114.8) > 1e-9 {
		t.Errorf("monthly = %v, want 114.8", imp.MonthlyCarbonKg)
	}
	if imp.TreesToOffset != 1 {
		t.Errorf("trees = %d, want 1", imp.TreesToOffset)
	}
}

func TestHeaviest(t *testing.T) {
	l := ledger.New()
	if _, _, ok := Heaviest(l); ok {
		t.Fatal("empty week should have no heaviest day")
	}
	_ = l.SaveDay(ledger.Tuesday, 3)
	_ = l.SaveDay(ledger.Friday, 9)

	day, pct, ok := Heaviest(l)
	if !ok || day != ledger.Friday {
		t.Fatalf("Heaviest = %v, %v; want Friday", day, ok)
	}
	if math.Abs(pct-75) > 1e-9 {
		t.Errorf("pct = %v, want 75", pct)
	}
}
