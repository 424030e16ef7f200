package session

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"keypad-calculator/internal/keypad"
)

func applyKeys(t *testing.T, s *Session, keys string) DisplayState {
	t.Helper()
	var state DisplayState
	for _, c := range keys {
		k, err := keypad.ParseKey(string(c))
		if err != nil {
			t.Fatalf("pressing %q: %v", c, err)
		}
		_, state = s.Apply(k)
	}
	return state
}

func TestStoreCreateRegistersFreshSession(t *testing.T) {
	st := NewStore(0)

	s := st.Create()
	if _, err := uuid.Parse(s.ID); err != nil {
		t.Fatalf("expected UUID session id, got %q: %v", s.ID, err)
	}

	if got := s.Display(); got.Text != "0" || got.Error {
		t.Fatalf("expected fresh display {0 false}, got %+v", got)
	}

	if _, ok := st.Get(s.ID); !ok {
		t.Fatal("expected session to be retrievable")
	}

	other := st.Create()
	if other.ID == s.ID {
		t.Fatal("expected distinct session ids")
	}
}

func TestStoreGetUnknownID(t *testing.T) {
	st := NewStore(0)
	if _, ok := st.Get("nope"); ok {
		t.Fatal("expected lookup miss")
	}
}

func TestStoreDelete(t *testing.T) {
	st := NewStore(0)
	s := st.Create()

	if !st.Delete(s.ID) {
		t.Fatal("expected delete to report the session existed")
	}
	if st.Delete(s.ID) {
		t.Fatal("expected second delete to report a miss")
	}
	if _, ok := st.Get(s.ID); ok {
		t.Fatal("expected session to be gone")
	}
}

func TestSessionApplyReportsBeforeAndAfter(t *testing.T) {
	st := NewStore(0)
	s := st.Create()

	k, err := keypad.ParseKey("7")
	if err != nil {
		t.Fatalf("parsing key: %v", err)
	}

	before, after := s.Apply(k)
	if before.Text != "0" {
		t.Fatalf("expected before %q, got %q", "0", before.Text)
	}
	if after.Text != "7" {
		t.Fatalf("expected after %q, got %q", "7", after.Text)
	}
}

func TestSessionComputesAcrossKeys(t *testing.T) {
	st := NewStore(0)
	s := st.Create()

	state := applyKeys(t, s, "12+34=")
	if state.Text != "46" {
		t.Fatalf("expected display %q, got %q", "46", state.Text)
	}
	if state.Error {
		t.Fatal("expected error state off")
	}
}

func TestSessionErrorAutoClearsWithRealTimer(t *testing.T) {
	st := NewStore(20 * time.Millisecond)
	s := st.Create()

	state := applyKeys(t, s, "6/0=")
	if state.Text != keypad.DivideByZeroMessage || !state.Error {
		t.Fatalf("expected error display, got %+v", state)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		got := s.Display()
		if got.Text == "0" && !got.Error {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("display never auto-cleared, last state %+v", got)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSessionInputAfterErrorIsNotWipedByStaleTimer(t *testing.T) {
	st := NewStore(20 * time.Millisecond)
	s := st.Create()

	applyKeys(t, s, "6/0=")
	state := applyKeys(t, s, "5")
	if state.Text != "5" || state.Error {
		t.Fatalf("expected fresh operand after error, got %+v", state)
	}

	// The cancelled auto-clear must not fire later and wipe the operand.
	time.Sleep(100 * time.Millisecond)
	if got := s.Display(); got.Text != "5" {
		t.Fatalf("expected display to stay %q, got %q", "5", got.Text)
	}
}
