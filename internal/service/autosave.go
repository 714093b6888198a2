package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aidar/hackathon-platform/internal/domain"
)

// DraftWriter persists a coalesced draft payload. It reports false
// when the submission is already frozen (submitted) and the write was
// skipped.
type DraftWriter func(ctx context.Context, teamID string, phase domain.SubmissionPhase, payload any) (bool, error)

// Clock abstracts timer creation so the debounce schedule is
// deterministic under test
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is the controllable handle of a scheduled flush
type Timer interface {
	Stop() bool
	Reset(d time.Duration) bool
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type autosaveState int

const (
	autosaveIdle autosaveState = iota
	autosavePending
	autosaveInFlight
)

type autosaveKey struct {
	teamID string
	phase  domain.SubmissionPhase
}

type autosaveEntry struct {
	state   autosaveState
	payload any
	timer   Timer
	// dirty marks an edit that arrived while a write was in flight
	dirty bool
}

// Autosaver debounces draft writes per (team, phase). Every edit
// replaces the pending payload (last write wins) and restarts the
// quiet period; expiry flushes through the DraftWriter. A failed
// write returns the entry to pending for a silent retry; a frozen
// submission drops the entry. At most one write is in flight per key.
type Autosaver struct {
	write    DraftWriter
	debounce time.Duration
	clock    Clock
	logger   *slog.Logger

	mu      sync.Mutex
	entries map[autosaveKey]*autosaveEntry
}

// NewAutosaver creates an Autosaver backed by real timers
func NewAutosaver(write DraftWriter, debounce time.Duration, logger *slog.Logger) *Autosaver {
	return newAutosaver(write, debounce, realClock{}, logger)
}

func newAutosaver(write DraftWriter, debounce time.Duration, clock Clock, logger *slog.Logger) *Autosaver {
	return &Autosaver{
		write:    write,
		debounce: debounce,
		clock:    clock,
		logger:   logger,
		entries:  make(map[autosaveKey]*autosaveEntry),
	}
}

// Edit records a draft edit and (re)arms the debounce timer
func (a *Autosaver) Edit(teamID string, phase domain.SubmissionPhase, payload any) {
	key := autosaveKey{teamID: teamID, phase: phase}

	a.mu.Lock()
	defer a.mu.Unlock()

	entry := a.entries[key]
	if entry == nil {
		entry = &autosaveEntry{}
		a.entries[key] = entry
	}
	entry.payload = payload

	switch entry.state {
	case autosaveIdle:
		entry.state = autosavePending
		entry.timer = a.clock.AfterFunc(a.debounce, func() { a.flush(key) })
	case autosavePending:
		// Cancellation is replacing pending(deadline) on each edit
		entry.timer.Reset(a.debounce)
	case autosaveInFlight:
		entry.dirty = true
	}
}

// Discard drops any pending draft for the key; called once the
// submission is submitted and further autosave must be ignored
func (a *Autosaver) Discard(teamID string, phase domain.SubmissionPhase) {
	key := autosaveKey{teamID: teamID, phase: phase}

	a.mu.Lock()
	defer a.mu.Unlock()

	if entry := a.entries[key]; entry != nil {
		if entry.timer != nil {
			entry.timer.Stop()
		}
		delete(a.entries, key)
	}
}

// Flush synchronously writes every pending draft; used on shutdown
func (a *Autosaver) Flush(ctx context.Context) {
	a.mu.Lock()
	pending := make(map[autosaveKey]any)
	for key, entry := range a.entries {
		if entry.state == autosavePending {
			if entry.timer != nil {
				entry.timer.Stop()
			}
			pending[key] = entry.payload
			delete(a.entries, key)
		}
	}
	a.mu.Unlock()

	for key, payload := range pending {
		if _, err := a.write(ctx, key.teamID, key.phase, payload); err != nil {
			a.logger.Error("autosave flush failed", "team_id", key.teamID, "phase", key.phase, "error", err)
		}
	}
}

// flush is the timer callback: moves the entry to in-flight, performs
// the write, then settles the entry depending on the outcome
func (a *Autosaver) flush(key autosaveKey) {
	a.mu.Lock()
	entry := a.entries[key]
	if entry == nil || entry.state != autosavePending {
		a.mu.Unlock()
		return
	}
	entry.state = autosaveInFlight
	payload := entry.payload
	a.mu.Unlock()

	saved, err := a.write(context.Background(), key.teamID, key.phase, payload)

	a.mu.Lock()
	defer a.mu.Unlock()

	entry = a.entries[key]
	if entry == nil {
		return
	}

	switch {
	case err != nil:
		// Write failure: back to pending, restart the debounce
		a.logger.Warn("autosave write failed, retrying", "team_id", key.teamID, "phase", key.phase, "error", err)
		entry.state = autosavePending
		entry.dirty = false
		entry.timer = a.clock.AfterFunc(a.debounce, func() { a.flush(key) })
	case !saved:
		// Submission frozen: ignore this and subsequent autosaves
		delete(a.entries, key)
	case entry.dirty:
		// Edits arrived during the write: schedule another cycle
		entry.state = autosavePending
		entry.dirty = false
		entry.timer = a.clock.AfterFunc(a.debounce, func() { a.flush(key) })
	default:
		delete(a.entries, key)
	}
}
