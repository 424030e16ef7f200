package keypad

import "testing"

func TestParseKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want Key
	}{
		{name: "digit", key: "5", want: Key{Kind: KeyDigit, Digit: '5'}},
		{name: "zero", key: "0", want: Key{Kind: KeyDigit, Digit: '0'}},
		{name: "plus", key: "+", want: Key{Kind: KeyOperator, Op: OpAdd}},
		{name: "minus", key: "-", want: Key{Kind: KeyOperator, Op: OpSubtract}},
		{name: "star", key: "*", want: Key{Kind: KeyOperator, Op: OpMultiply}},
		{name: "slash", key: "/", want: Key{Kind: KeyOperator, Op: OpDivide}},
		{name: "dot", key: ".", want: Key{Kind: KeyDecimal}},
		{name: "comma maps to decimal", key: ",", want: Key{Kind: KeyDecimal}},
		{name: "equals", key: "=", want: Key{Kind: KeyEquals}},
		{name: "enter maps to equals", key: "Enter", want: Key{Kind: KeyEquals}},
		{name: "escape maps to clear", key: "Escape", want: Key{Kind: KeyClear}},
		{name: "lowercase c maps to clear", key: "c", want: Key{Kind: KeyClear}},
		{name: "uppercase C maps to clear", key: "C", want: Key{Kind: KeyClear}},
		{name: "backspace", key: "Backspace", want: Key{Kind: KeyBackspace}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseKey(tc.key)
			if err != nil {
				t.Fatalf("ParseKey(%q): %v", tc.key, err)
			}
			if got != tc.want {
				t.Fatalf("ParseKey(%q): expected %+v, got %+v", tc.key, tc.want, got)
			}
		})
	}

	t.Run("unsupported keys rejected", func(t *testing.T) {
		for _, key := range []string{"x", "Tab", "%", "", "12"} {
			if _, err := ParseKey(key); err == nil {
				t.Fatalf("ParseKey(%q): expected error", key)
			}
		}
	})
}
