// Package session exposes calculator state machines over HTTP. Each
// session owns one machine plus its display buffer; all events on a
// session, including the error auto-clear, run to completion behind the
// session mutex.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"keypad-calculator/internal/keypad"
)

// displayBuffer is the display adapter handed to the machine. It records
// the latest emission so handlers can report it. Only touched under the
// session mutex.
type displayBuffer struct {
	text  string
	errOn bool
}

func (d *displayBuffer) SetText(text string) { d.text = text }
func (d *displayBuffer) SetError(on bool)    { d.errOn = on }

// Session is one live calculator.
type Session struct {
	ID string

	mu      sync.Mutex
	machine *keypad.Machine
	display *displayBuffer
}

// Apply feeds one input token to the machine and returns the display
// state before and after it.
func (s *Session) Apply(k keypad.Key) (before, after DisplayState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before = DisplayState{Text: s.display.text, Error: s.display.errOn}
	s.machine.Press(k)
	after = DisplayState{Text: s.display.text, Error: s.display.errOn}
	return before, after
}

// Display returns the current display state.
func (s *Session) Display() DisplayState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DisplayState{Text: s.display.text, Error: s.display.errOn}
}

// Store holds live sessions keyed by UUID.
type Store struct {
	errorClearDelay time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore returns an empty store. errorClearDelay configures every
// session's machine; zero means the machine default.
func NewStore(errorClearDelay time.Duration) *Store {
	return &Store{
		errorClearDelay: errorClearDelay,
		sessions:        make(map[string]*Session),
	}
}

// Create registers a new session with a fresh machine showing "0".
func (st *Store) Create() *Session {
	s := &Session{
		ID:      uuid.New().String(),
		display: &displayBuffer{},
	}

	// The auto-clear fires on a timer goroutine, so the callback takes the
	// session mutex. Stop can lose the race against a firing timer, so a
	// cancelled flag (written and read under the mutex) settles it.
	sched := keypad.FuncScheduler(func(d time.Duration, fn func()) func() {
		cancelled := false
		t := time.AfterFunc(d, func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if cancelled {
				return
			}
			fn()
		})
		return func() {
			cancelled = true
			t.Stop()
		}
	})

	s.machine = keypad.New(keypad.Config{
		Display:         s.display,
		Scheduler:       sched,
		ErrorClearDelay: st.errorClearDelay,
	})

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	return s
}

// Get looks up a session by id.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Delete removes a session, reporting whether it existed.
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	return ok
}
