package ledger

// DaySlot is one bar of the weekly bar chart.
type DaySlot struct {
	Day Day     `json:"day"`
	KWh float64 `json:"kwh"`
}

// Share is one slice of the weekly share chart.
type Share struct {
	Day     Day     `json:"day"`
	KWh     float64 `json:"kwh"`
	Percent float64 `json:"percent"`
}

// Bars returns every day's consumption in week order, zeros included.
func (l *Ledger) Bars() []DaySlot {
	out := make([]DaySlot, DaysPerWeek)
	for i, v := range l.slots {
		out[i] = DaySlot{Day: Day(i), KWh: v}
	}
	return out
}

// Shares returns each day's fraction of the weekly total as a percentage.
// It is nil for an empty week.
func (l *Ledger) Shares() []Share {
	total := l.Total()
	if total <= 0 {
		return nil
	}
	out := make([]Share, DaysPerWeek)
	for i, v := range l.slots {
		out[i] = Share{Day: Day(i), KWh: v, Percent: v / total * 100}
	}
	return out
}

// Peak returns the day with the highest consumption. ok is false for an
// empty week.
func (l *Ledger) Peak() (day Day, kwh float64, ok bool) {
	for i, v := range l.slots {
		if v > kwh {
			day, kwh, ok = Day(i), v, true
		}
	}
	return day, kwh, ok
}
