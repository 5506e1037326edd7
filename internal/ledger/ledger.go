// Package ledger holds one week of committed daily energy estimates and the
// metrics derived from them.
package ledger

import (
	"fmt"
	"math"

	"github.com/theirongolddev/wattboard/internal/energy"
)

// Ledger has exactly one non-negative kWh slot per weekday. The zero value is
// an empty week. A Ledger is not safe for concurrent use.
type Ledger struct {
	slots [DaysPerWeek]float64
	saved [DaysPerWeek]bool
}

// New returns an empty week.
func New() *Ledger {
	return &Ledger{}
}

// SaveDay overwrites the slot for day. Invalid days and negative or non-finite
// values are rejected and leave the ledger untouched.
func (l *Ledger) SaveDay(day Day, kwh float64) error {
	if !day.Valid() {
		return fmt.Errorf("%w: day %d", energy.ErrInvalidInput, int(day))
	}
	if kwh < 0 || math.IsNaN(kwh) || math.IsInf(kwh, 0) {
		return fmt.Errorf("%w: %v kWh for %s", energy.ErrInvalidInput, kwh, day)
	}
	l.slots[day] = kwh
	l.saved[day] = true
	return nil
}

// Reset zeroes every slot and forgets which days were saved.
func (l *Ledger) Reset() {
	l.slots = [DaysPerWeek]float64{}
	l.saved = [DaysPerWeek]bool{}
}

// Saved reports whether day has been saved since the last reset. A saved
// day may hold 0 kWh.
func (l *Ledger) Saved(day Day) bool {
	return day.Valid() && l.saved[day]
}

// SavedDays counts the days saved since the last reset.
func (l *Ledger) SavedDays() int {
	n := 0
	for _, ok := range l.saved {
		if ok {
			n++
		}
	}
	return n
}

// Value returns the stored kWh for day, 0 for invalid days.
func (l *Ledger) Value(day Day) float64 {
	if !day.Valid() {
		return 0
	}
	return l.slots[day]
}

// Values returns a copy of all seven slots, Monday first.
func (l *Ledger) Values() [DaysPerWeek]float64 {
	return l.slots
}

// Total sums the week.
func (l *Ledger) Total() float64 {
	var sum float64
	for _, v := range l.slots {
		sum += v
	}
	return sum
}

// Clone returns an independent copy.
func (l *Ledger) Clone() *Ledger {
	c := *l
	return &c
}
