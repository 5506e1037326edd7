package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/theirongolddev/wattboard/internal/energy"
	"github.com/theirongolddev/wattboard/internal/ledger"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := New("test", 2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestCommitUsesDraft(t *testing.T) {
	s := newTestSession(t)
	if _, err := s.Toggle(ledger.Monday, energy.AirConditioner); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Toggle(ledger.Monday, energy.Refrigerator); err != nil {
		t.Fatal(err)
	}

	if got := s.Metrics().TotalKWh; got != 0 {
		t.Fatalf("drafts leaked into metrics: TotalKWh = %v", got)
	}

	kwh, err := s.Commit(ledger.Monday)
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if kwh != 10.6 {
		t.Errorf("Commit() = %v, want 10.6", kwh)
	}
	if got := s.Ledger().Value(ledger.Monday); got != 10.6 {
		t.Errorf("ledger Monday = %v, want 10.6", got)
	}
}

func TestDraftsAreIndependentPerDay(t *testing.T) {
	s := newTestSession(t)
	_, _ = s.Toggle(ledger.Tuesday, energy.Television)

	mon, _ := s.Draft(ledger.Monday)
	tue, _ := s.Draft(ledger.Tuesday)
	if len(mon) != 0 {
		t.Errorf("Monday draft = %v, want empty", mon)
	}
	if !tue.Has(energy.Television) {
		t.Errorf("Tuesday draft = %v, want television", tue)
	}

	// Returned drafts are copies.
	tue.Toggle(energy.Television)
	again, _ := s.Draft(ledger.Tuesday)
	if !again.Has(energy.Television) {
		t.Error("mutating a returned draft changed the session")
	}
}

func TestResetKeepsDrafts(t *testing.T) {
	s := newTestSession(t)
	_, _ = s.Toggle(ledger.Friday, energy.Dishwasher)
	if _, err := s.Commit(ledger.Friday); err != nil {
		t.Fatal(err)
	}

	s.Reset()

	if m := s.Metrics(); m != (ledger.Metrics{}) {
		t.Errorf("Metrics() after Reset = %+v, want zero", m)
	}
	d, _ := s.Draft(ledger.Friday)
	if !d.Has(energy.Dishwasher) {
		t.Error("Reset cleared drafts")
	}
}

func TestSessionRejectsInvalidInput(t *testing.T) {
	if _, err := New("x", 5); !errors.Is(err, energy.ErrInvalidInput) {
		t.Errorf("New(size 5) err = %v", err)
	}

	s := newTestSession(t)
	if err := s.SetSize(0); !errors.Is(err, energy.ErrInvalidInput) {
		t.Errorf("SetSize(0) err = %v", err)
	}
	if _, err := s.Toggle(ledger.Day(8), energy.Microwave); !errors.Is(err, energy.ErrInvalidInput) {
		t.Errorf("Toggle(bad day) err = %v", err)
	}
	if _, err := s.Toggle(ledger.Monday, "heater"); !errors.Is(err, energy.ErrInvalidInput) {
		t.Errorf("Toggle(heater) err = %v", err)
	}
	if err := s.SetDraft(ledger.Monday, energy.ApplianceSet{"heater": true}); !errors.Is(err, energy.ErrInvalidInput) {
		t.Errorf("SetDraft(heater) err = %v", err)
	}
	if err := s.SetDraft(ledger.Monday, energy.ApplianceSet{"heater": false}); !errors.Is(err, energy.ErrInvalidInput) {
		t.Errorf("SetDraft(heater off) err = %v", err)
	}
	if err := s.SaveValue(ledger.Monday, -1); !errors.Is(err, energy.ErrInvalidInput) {
		t.Errorf("SaveValue(-1) err = %v", err)
	}
	if s.Metrics().TotalKWh != 0 {
		t.Error("rejected operations changed the ledger")
	}
}

func TestSetSizeDoesNotRecomputeCommitted(t *testing.T) {
	s := newTestSession(t)
	if _, err := s.Commit(ledger.Monday); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSize(4); err != nil {
		t.Fatal(err)
	}
	if got := s.Ledger().Value(ledger.Monday); got != 3.6 {
		t.Errorf("Monday = %v, want 3.6 from the size at commit time", got)
	}
	if est, _ := s.Estimate(ledger.Monday); est != 6.0 {
		t.Errorf("Estimate(Monday) = %v, want 6.0", est)
	}
}

func TestSnapshot(t *testing.T) {
	s := newTestSession(t)
	s.SetHousehold(Household{Name: "Asha", HouseType: "Flat"})
	_, _ = s.Toggle(ledger.Sunday, energy.Microwave)
	_, _ = s.Commit(ledger.Sunday)

	snap := s.Snapshot()
	if len(snap.Days) != ledger.DaysPerWeek {
		t.Fatalf("len(Days) = %d, want 7", len(snap.Days))
	}
	sun := snap.Days[ledger.Sunday]
	if sun.DraftKWh != 4.6 || sun.Committed != 4.6 {
		t.Errorf("Sunday = %+v, want draft and committed 4.6", sun)
	}
	if snap.Days[ledger.Monday].Draft == nil {
		t.Error("empty drafts should be empty slices, not nil")
	}
	if snap.Household.Name != "Asha" {
		t.Errorf("Household.Name = %q", snap.Household.Name)
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := newTestSession(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(day ledger.Day) {
			defer wg.Done()
			_, _ = s.Toggle(day, energy.Refrigerator)
			_, _ = s.Commit(day)
			_ = s.Snapshot()
		}(ledger.Day(i % ledger.DaysPerWeek))
	}
	wg.Wait()
	if s.Metrics().TotalKWh <= 0 {
		t.Error("expected committed values after concurrent commits")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(0)
	a, err := r.Create(1, Household{Name: "a"})
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Create(3, Household{Name: "b"})
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == b.ID {
		t.Fatal("sessions share an id")
	}

	_ = a.SaveValue(ledger.Monday, 12)
	if b.Metrics().TotalKWh != 0 {
		t.Error("sessions share a ledger")
	}

	got, err := r.Get(a.ID)
	if err != nil || got != a {
		t.Errorf("Get(a) = %v, %v", got, err)
	}
	if ids := r.IDs(); len(ids) != 2 {
		t.Errorf("IDs() = %v", ids)
	}
	if err := r.Delete(a.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Get(a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete err = %v", err)
	}
	if err := r.Delete(a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete err = %v", err)
	}
	if _, err := r.Create(9, Household{}); !errors.Is(err, energy.ErrInvalidInput) {
		t.Errorf("Create(9) err = %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRegistryLimitUnderConcurrency(t *testing.T) {
	const limit = 5
	r := NewRegistry(limit)

	var wg sync.WaitGroup
	var mu sync.Mutex
	full := 0
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Create(2, Household{}); errors.Is(err, ErrFull) {
				mu.Lock()
				full++
				mu.Unlock()
			} else if err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if r.Len() != limit {
		t.Errorf("Len() = %d, want %d", r.Len(), limit)
	}
	if full != 20-limit {
		t.Errorf("ErrFull returned %d times, want %d", full, 20-limit)
	}
}
