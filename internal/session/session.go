// Package session pairs a household's per-day draft appliance selections with
// the ledger they are committed into.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/theirongolddev/wattboard/internal/energy"
	"github.com/theirongolddev/wattboard/internal/ledger"
)

// Household is descriptive profile data. It never affects estimates.
type Household struct {
	Name      string `json:"name,omitempty"`
	Age       int    `json:"age,omitempty"`
	City      string `json:"city,omitempty"`
	Area      string `json:"area,omitempty"`
	HouseType string `json:"house_type,omitempty"`
}

// Session owns one ledger plus uncommitted draft selections for each day.
// All methods are safe for concurrent use.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	household Household
	size      energy.DwellingSize
	drafts    [ledger.DaysPerWeek]energy.ApplianceSet
	ledger    *ledger.Ledger
	updatedAt time.Time
}

// Snapshot is a consistent read of a session.
type Snapshot struct {
	ID        string                      `json:"id"`
	Household Household                   `json:"household"`
	Size      energy.DwellingSize         `json:"size"`
	Days      []DayView                   `json:"days"`
	Metrics   ledger.Metrics              `json:"metrics"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
	Values    [ledger.DaysPerWeek]float64 `json:"-"`
}

// DayView shows one day's draft next to its committed value.
type DayView struct {
	Day       ledger.Day         `json:"day"`
	Draft     []energy.Appliance `json:"draft"`
	DraftKWh  float64            `json:"draft_kwh"`
	Committed float64            `json:"committed_kwh"`
	Saved     bool               `json:"saved"`
}

// New creates a session with a fresh, empty ledger.
func New(id string, size energy.DwellingSize) (*Session, error) {
	if !size.Valid() {
		return nil, fmt.Errorf("%w: dwelling size %d", energy.ErrInvalidInput, size)
	}
	now := time.Now()
	s := &Session{
		ID:        id,
		CreatedAt: now,
		updatedAt: now,
		size:      size,
		ledger:    ledger.New(),
	}
	for i := range s.drafts {
		s.drafts[i] = energy.ApplianceSet{}
	}
	return s, nil
}

// Household returns the profile.
func (s *Session) Household() Household {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.household
}

// SetHousehold replaces the profile.
func (s *Session) SetHousehold(h Household) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.household = h
	s.touch()
}

// Size returns the dwelling size used for estimates.
func (s *Session) Size() energy.DwellingSize {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// SetSize changes the dwelling size. Committed values are not recomputed.
func (s *Session) SetSize(size energy.DwellingSize) error {
	if !size.Valid() {
		return fmt.Errorf("%w: dwelling size %d", energy.ErrInvalidInput, size)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.size = size
	s.touch()
	return nil
}

// Draft returns a copy of the draft selection for day.
func (s *Session) Draft(day ledger.Day) (energy.ApplianceSet, error) {
	if !day.Valid() {
		return nil, fmt.Errorf("%w: day %d", energy.ErrInvalidInput, int(day))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drafts[day].Clone(), nil
}

// SetDraft replaces the draft selection for day. Unknown appliances are rejected.
func (s *Session) SetDraft(day ledger.Day, set energy.ApplianceSet) error {
	if !day.Valid() {
		return fmt.Errorf("%w: day %d", energy.ErrInvalidInput, int(day))
	}
	for a := range set {
		if !a.Valid() {
			return fmt.Errorf("%w: unknown appliance %q", energy.ErrInvalidInput, string(a))
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[day] = set.Clone()
	s.touch()
	return nil
}

// Toggle flips one appliance in day's draft and reports its new state.
func (s *Session) Toggle(day ledger.Day, a energy.Appliance) (bool, error) {
	if !day.Valid() {
		return false, fmt.Errorf("%w: day %d", energy.ErrInvalidInput, int(day))
	}
	if !a.Valid() {
		return false, fmt.Errorf("%w: unknown appliance %q", energy.ErrInvalidInput, string(a))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[day].Toggle(a)
	s.touch()
	return s.drafts[day].Has(a), nil
}

// Estimate computes day's draft without committing it.
func (s *Session) Estimate(day ledger.Day) (float64, error) {
	if !day.Valid() {
		return 0, fmt.Errorf("%w: day %d", energy.ErrInvalidInput, int(day))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return energy.EstimateDailyEnergy(s.size, s.drafts[day])
}

// Commit estimates day's draft and saves it into the ledger.
func (s *Session) Commit(day ledger.Day) (float64, error) {
	if !day.Valid() {
		return 0, fmt.Errorf("%w: day %d", energy.ErrInvalidInput, int(day))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kwh, err := energy.EstimateDailyEnergy(s.size, s.drafts[day])
	if err != nil {
		return 0, err
	}
	if err := s.ledger.SaveDay(day, kwh); err != nil {
		return 0, err
	}
	s.touch()
	return kwh, nil
}

// SaveValue writes an explicit kWh value for day, bypassing the draft.
func (s *Session) SaveValue(day ledger.Day, kwh float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ledger.SaveDay(day, kwh); err != nil {
		return err
	}
	s.touch()
	return nil
}

// Reset clears the ledger. Drafts are kept.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.Reset()
	s.touch()
}

// Metrics derives the weekly metrics.
func (s *Session) Metrics() ledger.Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Metrics()
}

// Ledger returns a copy of the committed week.
func (s *Session) Ledger() *ledger.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Clone()
}

// Snapshot reads drafts, ledger and metrics under one lock.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:        s.ID,
		Household: s.household,
		Size:      s.size,
		Metrics:   s.ledger.Metrics(),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.updatedAt,
		Values:    s.ledger.Values(),
		Days:      make([]DayView, 0, ledger.DaysPerWeek),
	}
	for _, d := range ledger.Days() {
		draft := s.drafts[d]
		kwh, _ := energy.EstimateDailyEnergy(s.size, draft)
		list := draft.List()
		if list == nil {
			list = []energy.Appliance{}
		}
		snap.Days = append(snap.Days, DayView{
			Day:       d,
			Draft:     list,
			DraftKWh:  kwh,
			Committed: s.ledger.Value(d),
			Saved:     s.ledger.Saved(d),
		})
	}
	return snap
}

func (s *Session) touch() {
	s.updatedAt = time.Now()
}
