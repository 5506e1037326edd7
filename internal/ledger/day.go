package ledger

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/wattboard/internal/energy"
)

// Day indexes a ledger slot. Monday is 0.
type Day int

// Days of the week in ledger order.
const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysPerWeek is the fixed number of ledger slots.
const DaysPerWeek = 7

var dayNames = [DaysPerWeek]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Days returns Monday through Sunday.
func Days() []Day {
	out := make([]Day, DaysPerWeek)
	for i := range out {
		out[i] = Day(i)
	}
	return out
}

// Valid reports whether d names one of the seven slots.
func (d Day) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d Day) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d]
}

// Short returns the three-letter abbreviation.
func (d Day) Short() string {
	if !d.Valid() {
		return "?"
	}
	return dayNames[d][:3]
}

// Next returns the following day, wrapping Sunday to Monday.
func (d Day) Next() Day {
	return (d + 1) % DaysPerWeek
}

// Prev returns the preceding day, wrapping Monday to Sunday.
func (d Day) Prev() Day {
	return (d + DaysPerWeek - 1) % DaysPerWeek
}

// ParseDay accepts full names and three-letter abbreviations in any case.
func ParseDay(raw string) (Day, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	for i, name := range dayNames {
		lower := strings.ToLower(name)
		if s == lower || s == lower[:3] {
			return Day(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown day %q", energy.ErrInvalidInput, raw)
}

// MarshalText encodes the day by its full name.
func (d Day) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: day %d", energy.ErrInvalidInput, int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText accepts anything ParseDay does.
func (d *Day) UnmarshalText(b []byte) error {
	parsed, err := ParseDay(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
