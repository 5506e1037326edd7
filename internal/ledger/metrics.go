package ledger

import "math"

// Fixed conversion constants.
const (
	CostPerKWh        = 8.0  // rupees per kWh
	EmissionFactor    = 0.82 // kg CO2 per kWh
	TreeAbsorptionKg  = 22.0 // kg CO2 one tree absorbs per year
	MonthlyMultiplier = 4    // weeks per month for projections
)

// Metrics are derived from a ledger on demand and never stored.
type Metrics struct {
	TotalKWh        float64 `json:"total_kwh"`
	AverageKWh      float64 `json:"average_kwh"`
	Cost            float64 `json:"cost"`
	CarbonKg        float64 `json:"carbon_kg"`
	MonthlyCarbonKg float64 `json:"monthly_carbon_kg"`
	TreesToOffset   int     `json:"trees_to_offset"`
}

// Metrics computes the weekly aggregates. The average always divides by the
// full week, including days that were never saved.
func (l *Ledger) Metrics() Metrics {
	return ComputeMetrics(l.slots)
}

// ComputeMetrics derives metrics from seven daily values.
func ComputeMetrics(values [DaysPerWeek]float64) Metrics {
	var total float64
	for _, v := range values {
		total += v
	}

	var avg float64
	if total != 0 {
		avg = total / DaysPerWeek
	}

	carbon := total * EmissionFactor
	return Metrics{
		TotalKWh:        total,
		AverageKWh:      avg,
		Cost:            total * CostPerKWh,
		CarbonKg:        carbon,
		MonthlyCarbonKg: carbon * MonthlyMultiplier,
		TreesToOffset:   int(math.Floor(carbon / TreeAbsorptionKg)),
	}
}
