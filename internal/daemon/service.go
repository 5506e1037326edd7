// Package daemon provides the long-running HTTP service that hosts one
// ledger per session.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/theirongolddev/wattboard/internal/ledger"
	"github.com/theirongolddev/wattboard/internal/session"
)

// Config controls the daemon runtime behavior.
type Config struct {
	Addr         string
	EventsBuffer int
	// MaxSessions caps live sessions; 0 means unlimited.
	MaxSessions int
}

// Notifier receives the committed week after every ledger mutation.
type Notifier interface {
	PublishWeek(scope string, l *ledger.Ledger) error
}

// Event types.
const (
	EventSessionCreated = "session_created"
	EventSessionDeleted = "session_deleted"
	EventDaySaved       = "day_saved"
	EventLedgerReset    = "ledger_reset"
)

// Event is emitted whenever a session's ledger changes.
type Event struct {
	ID        int64          `json:"id"`
	Type      string         `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	SessionID string         `json:"session_id"`
	Day       string         `json:"day,omitempty"`
	KWh       float64        `json:"kwh"`
	Metrics   ledger.Metrics `json:"metrics"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	Addr            string    `json:"addr"`
	Sessions        int       `json:"sessions"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
	PublishFailures int64     `json:"publish_failures"`
	LastError       string    `json:"last_error,omitempty"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg      Config
	registry *session.Registry
	notifier Notifier

	mu              sync.RWMutex
	startedAt       time.Time
	lastError       string
	publishFailures int64
	nextEventID     int64
	events          []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service. notifier may be nil.
func New(cfg Config, notifier Notifier) *Service {
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}

	return &Service{
		cfg:       cfg,
		registry:  session.NewRegistry(cfg.MaxSessions),
		notifier:  notifier,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Run serves the HTTP API until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	log.Printf("wattboard daemon listening on %s", s.cfg.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("daemon http server: %w", err)
	}
}

// Registry exposes the live sessions.
func (s *Service) Registry() *session.Registry {
	return s.registry
}

// record appends an event for session id. When sess is non-nil its week is
// attached and forwarded to the notifier.
func (s *Service) record(typ, id string, sess *session.Session, day string, kwh float64) {
	var metrics ledger.Metrics
	var week *ledger.Ledger
	if sess != nil {
		week = sess.Ledger()
		metrics = week.Metrics()
	}

	s.mu.Lock()
	s.nextEventID++
	ev := Event{
		ID:        s.nextEventID,
		Type:      typ,
		Timestamp: time.Now(),
		SessionID: id,
		Day:       day,
		KWh:       kwh,
		Metrics:   metrics,
	}
	s.mu.Unlock()

	s.publishEvent(ev)

	if s.notifier != nil && week != nil {
		if err := s.notifier.PublishWeek(id, week); err != nil {
			s.mu.Lock()
			s.publishFailures++
			s.lastError = err.Error()
			s.mu.Unlock()
			log.Printf("wattboard daemon publish error: %v", err)
		}
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) eventsSince(afterID int64) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Event, 0, len(s.events))
	for _, ev := range s.events {
		if ev.ID > afterID {
			out = append(out, ev)
		}
	}
	return out
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		Addr:            s.cfg.Addr,
		Sessions:        s.registry.Len(),
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
		PublishFailures: s.publishFailures,
		LastError:       s.lastError,
	}
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
