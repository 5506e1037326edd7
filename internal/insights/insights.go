// Package insights derives the advice shown next to the weekly numbers.
package insights

import (
	"sort"

	"github.com/theirongolddev/wattboard/internal/energy"
	"github.com/theirongolddev/wattboard/internal/ledger"
)

// Tips are the static energy-saving suggestions.
var Tips = []string{
	"Use LED bulbs",
	"Unplug devices when not in use",
	"Set AC to 24°C or higher",
	"Use natural light during the day",
}

// Alert lists the heaviest appliances in the vocabulary.
type Alert struct {
	Heaviest []energy.ApplianceInfo
	Advice   string
}

// Impact is the environmental view of a week's metrics.
type Impact struct {
	WeeklyCarbonKg  float64 `json:"weekly_carbon_kg"`
	MonthlyCarbonKg float64 `json:"monthly_carbon_kg"`
	TreesToOffset   int     `json:"trees_to_offset"`
}

// HighConsumption returns the n appliances with the highest daily load,
// heaviest first. Ties keep vocabulary order.
func HighConsumption(n int) Alert {
	list := energy.Appliances()
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].KWhPerDay > list[j].KWhPerDay
	})
	if n < 0 {
		n = 0
	}
	if n < len(list) {
		list = list[:n]
	}
	return Alert{
		Heaviest: list,
		Advice:   "Consider energy-efficient appliances",
	}
}

// EnvironmentalImpact extracts the carbon figures from m.
func EnvironmentalImpact(m ledger.Metrics) Impact {
	return Impact{
		WeeklyCarbonKg:  m.CarbonKg,
		MonthlyCarbonKg: m.MonthlyCarbonKg,
		TreesToOffset:   m.TreesToOffset,
	}
}

// Heaviest returns the committed day with the highest share of the week and
// that share as a percentage. ok is false for an empty week.
func Heaviest(l *ledger.Ledger) (day ledger.Day, pct float64, ok bool) {
	day, kwh, ok := l.Peak()
	if !ok {
		return day, 0, false
	}
	return day, kwh / l.Total() * 100, true
}
