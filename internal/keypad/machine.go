// Package keypad implements a token-driven calculator state machine: digits,
// decimal point, operators, equals, clear and backspace arrive as discrete
// input events and the machine maintains a single running calculation with
// one pending operator and one accumulated operand.
package keypad

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrDivideByZero is returned by Evaluate when the divisor is exactly zero.
var ErrDivideByZero = errors.New("division by zero")

// DivideByZeroMessage is the display text shown when a division by zero is
// attempted. The display reverts to "0" after the error-clear delay.
const DivideByZeroMessage = "Cannot divide by zero"

// DefaultErrorClearDelay is how long an error message stays on the display
// before the machine resets itself.
const DefaultErrorClearDelay = 2 * time.Second

// maxOperandLen caps the typed operand; digits beyond it are ignored.
const maxOperandLen = 10

// machineEpsilon is added before rounding to compensate binary
// floating-point error (0.1+0.2 must display as 0.3).
var machineEpsilon = math.Nextafter(1, 2) - 1

// Operator is a pending arithmetic operator, or OpNone.
type Operator byte

const (
	OpNone     Operator = 0
	OpAdd      Operator = '+'
	OpSubtract Operator = '-'
	OpMultiply Operator = '*'
	OpDivide   Operator = '/'
)

// Display receives the text to show after every state-changing operation,
// plus the error visual state. Implementations must not call back into the
// Machine.
type Display interface {
	SetText(text string)
	SetError(on bool)
}

// Scheduler runs a function once after a delay and returns a cancel
// function. Cancelling after the function has run is a no-op.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

// Config carries the machine's collaborators. Zero values are usable:
// a nil Display discards output, a nil Scheduler uses real timers and a
// zero ErrorClearDelay means DefaultErrorClearDelay.
type Config struct {
	Display         Display
	Scheduler       Scheduler
	ErrorClearDelay time.Duration
}

// Machine owns all calculator state. It is not safe for concurrent use;
// callers serialise events, including the scheduled error auto-clear.
type Machine struct {
	display    Display
	sched      Scheduler
	clearDelay time.Duration

	current     string  // operand being typed or last computed, always parseable
	previous    float64 // operand captured before the pending operator
	hasPrevious bool    // set and cleared together with pending
	pending     Operator
	awaiting    bool // next digit/decimal starts a fresh operand
	completed   bool // last action was a successful equals

	errActive   bool   // error message currently on the display
	cancelClear func() // pending error auto-clear, nil when none
}

// New returns a machine in its initial state and emits "0" to the display.
func New(cfg Config) *Machine {
	m := &Machine{
		display:    cfg.Display,
		sched:      cfg.Scheduler,
		clearDelay: cfg.ErrorClearDelay,
	}
	if m.display == nil {
		m.display = discardDisplay{}
	}
	if m.sched == nil {
		m.sched = timerScheduler{}
	}
	if m.clearDelay <= 0 {
		m.clearDelay = DefaultErrorClearDelay
	}
	m.current = "0"
	m.emit()
	return m
}

// InputDigit appends digit d ('0'..'9') to the current operand, starting a
// fresh operand after an operator or a completed calculation. Digits past
// the ten-character cap are ignored.
func (m *Machine) InputDigit(d byte) {
	m.resolveError()
	if m.completed {
		m.current = "0"
		m.completed = false
	}
	if m.awaiting || m.current == "0" {
		m.current = string(d)
		m.awaiting = false
	} else if len(m.current) < maxOperandLen {
		m.current += string(d)
	}
	m.emit()
}

// InputDecimalPoint appends a decimal point unless the current operand
// already has one. After an operator it starts the operand at "0.".
func (m *Machine) InputDecimalPoint() {
	m.resolveError()
	if m.completed {
		m.current = "0"
		m.completed = false
	}
	if m.awaiting {
		m.current = "0."
		m.awaiting = false
	} else if !strings.Contains(m.current, ".") {
		m.current += "."
	}
	m.emit()
}

// InputOperator captures op as the pending operator. If an evaluation is
// already pending and a second operand has been typed, it is evaluated
// first and the result becomes both operands of the chain. Pressing a new
// operator before any digit simply replaces the pending one.
func (m *Machine) InputOperator(op Operator) {
	m.resolveError()
	value, err := strconv.ParseFloat(m.current, 64)
	if err != nil {
		return
	}
	if !m.hasPrevious {
		m.previous = value
		m.hasPrevious = true
	} else if m.pending != OpNone && !m.awaiting {
		result, err := Evaluate(m.previous, m.pending, value)
		if err != nil {
			m.ShowError(DivideByZeroMessage)
			return
		}
		m.current = operandText(result)
		m.previous = result
		m.emit()
	}
	m.awaiting = true
	m.pending = op
}

// Equals evaluates the pending calculation. It is a no-op when no operator
// is pending or the second operand has not been typed yet. On divide by
// zero the state is left untouched apart from the error display.
func (m *Machine) Equals() {
	m.resolveError()
	if m.pending == OpNone || !m.hasPrevious || m.awaiting {
		return
	}
	value, err := strconv.ParseFloat(m.current, 64)
	if err != nil {
		return
	}
	result, err := Evaluate(m.previous, m.pending, value)
	if err != nil {
		m.ShowError(DivideByZeroMessage)
		return
	}
	m.current = operandText(result)
	m.previous = 0
	m.hasPrevious = false
	m.pending = OpNone
	m.awaiting = false
	m.completed = true
	m.emit()
}

// ClearAll restores the initial state, cancels any pending error
// auto-clear, clears the error visual state and emits "0".
func (m *Machine) ClearAll() {
	if m.cancelClear != nil {
		m.cancelClear()
		m.cancelClear = nil
	}
	m.current = "0"
	m.previous = 0
	m.hasPrevious = false
	m.pending = OpNone
	m.awaiting = false
	m.completed = false
	m.errActive = false
	m.display.SetError(false)
	m.emit()
}

// DeleteLast removes the last typed character, leaving "0" when one
// character remains. Right after a completed calculation it clears the
// whole state instead.
func (m *Machine) DeleteLast() {
	if m.errActive || m.completed {
		m.ClearAll()
		return
	}
	if len(m.current) > 1 {
		m.current = m.current[:len(m.current)-1]
	} else {
		m.current = "0"
	}
	m.emit()
}

// ShowError puts msg on the display, marks the error visual state and
// schedules a full reset after the error-clear delay. A newer error
// replaces the previous one's pending reset.
func (m *Machine) ShowError(msg string) {
	if m.cancelClear != nil {
		m.cancelClear()
	}
	m.display.SetText(msg)
	m.display.SetError(true)
	m.errActive = true
	m.cancelClear = m.sched.Schedule(m.clearDelay, m.ClearAll)
}

// resolveError resets the machine when an error message is still on the
// display, so fresh input never races the scheduled auto-clear.
func (m *Machine) resolveError() {
	if m.errActive {
		m.ClearAll()
	}
}

// Evaluate applies op to a and b and rounds the raw result to 9 decimal
// places. Division by a zero b yields ErrDivideByZero.
func Evaluate(a float64, op Operator, b float64) (float64, error) {
	var raw float64
	switch op {
	case OpAdd:
		raw = a + b
	case OpSubtract:
		raw = a - b
	case OpMultiply:
		raw = a * b
	case OpDivide:
		if b == 0 {
			return 0, ErrDivideByZero
		}
		raw = a / b
	default:
		return 0, fmt.Errorf("unknown operator %q", byte(op))
	}
	return round9(raw), nil
}

func round9(v float64) float64 {
	return math.Round((v+machineEpsilon)*1e9) / 1e9
}

// operandText is the stored, full-precision form of a computed result.
// Display truncation is applied separately by FormatDisplay.
func operandText(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (m *Machine) emit() {
	m.display.SetText(FormatDisplay(m.current))
}

type discardDisplay struct{}

func (discardDisplay) SetText(string) {}
func (discardDisplay) SetError(bool)  {}
