package keypad

import "fmt"

// KeyKind classifies an input token.
type KeyKind int

const (
	KeyDigit KeyKind = iota
	KeyDecimal
	KeyOperator
	KeyEquals
	KeyClear
	KeyBackspace
)

// Key is one calculator input token, produced from a pointer control or a
// keyboard key name.
type Key struct {
	Kind  KeyKind
	Digit byte     // '0'..'9' when Kind is KeyDigit
	Op    Operator // when Kind is KeyOperator
}

// ParseKey maps a key name to an input token. It accepts digits, the four
// operators, "." or "," for the decimal point, "=" or "Enter" for equals,
// "Escape"/"c"/"C" for clear and "Backspace" for delete-last. Anything
// else is rejected, so the state machine never sees an unfiltered input.
func ParseKey(name string) (Key, error) {
	switch name {
	case "=", "Enter":
		return Key{Kind: KeyEquals}, nil
	case "Escape", "c", "C":
		return Key{Kind: KeyClear}, nil
	case "Backspace":
		return Key{Kind: KeyBackspace}, nil
	case ".", ",":
		return Key{Kind: KeyDecimal}, nil
	case "+", "-", "*", "/":
		return Key{Kind: KeyOperator, Op: Operator(name[0])}, nil
	}
	if len(name) == 1 && name[0] >= '0' && name[0] <= '9' {
		return Key{Kind: KeyDigit, Digit: name[0]}, nil
	}
	return Key{}, fmt.Errorf("unsupported key %q", name)
}

// Press dispatches one token to the matching operation.
func (m *Machine) Press(k Key) {
	switch k.Kind {
	case KeyDigit:
		m.InputDigit(k.Digit)
	case KeyDecimal:
		m.InputDecimalPoint()
	case KeyOperator:
		m.InputOperator(k.Op)
	case KeyEquals:
		m.Equals()
	case KeyClear:
		m.ClearAll()
	case KeyBackspace:
		m.DeleteLast()
	}
}
