// Package energy estimates the daily electricity use of a household from its
// dwelling size and the appliances it runs.
package energy

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned for out-of-domain sizes, appliances, days or values.
var ErrInvalidInput = errors.New("invalid input")

// DwellingSize is the bedroom-hall-kitchen count of a dwelling (1-4).
type DwellingSize int

// Supported sizes.
const (
	MinSize DwellingSize = 1
	MaxSize DwellingSize = 4
)

// Base load coefficients, in kWh per unit, for lighting and fans.
const (
	lightingPerUnit = 0.4
	fansPerUnit     = 0.8
)

// Valid reports whether s is a supported dwelling size.
func (s DwellingSize) Valid() bool {
	return s >= MinSize && s <= MaxSize
}

// ParseSize validates an integer size.
func ParseSize(n int) (DwellingSize, error) {
	s := DwellingSize(n)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: dwelling size %d outside %d-%d", ErrInvalidInput, n, MinSize, MaxSize)
	}
	return s, nil
}

// BaseLoad returns the lighting and fan load of a dwelling.
// 1 -> 2.4, 2 -> 3.6, 3 -> 4.8, 4 -> 6.0.
func BaseLoad(size DwellingSize) (float64, error) {
	if !size.Valid() {
		return 0, fmt.Errorf("%w: dwelling size %d outside %d-%d", ErrInvalidInput, size, MinSize, MaxSize)
	}
	units := float64(size + 1)
	return units*lightingPerUnit + units*fansPerUnit, nil
}

// EstimateDailyEnergy returns the estimated kWh for one day, rounded to two
// decimals.
func EstimateDailyEnergy(size DwellingSize, appliances ApplianceSet) (float64, error) {
	total, err := BaseLoad(size)
	if err != nil {
		return 0, err
	}

	for a := range appliances {
		if !a.Valid() {
			return 0, fmt.Errorf("%w: unknown appliance %q", ErrInvalidInput, string(a))
		}
	}
	for _, info := range applianceTable {
		if appliances.Has(info.Appliance) {
			total += info.KWhPerDay
		}
	}

	return Round2(total), nil
}

// Round2 rounds to two decimal places, halves away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
