package keypad

import "testing"

func TestFormatDisplay(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "short text unchanged", text: "0", want: "0"},
		{name: "typed operand unchanged", text: "1234567890", want: "1234567890"},
		{name: "twelve characters unchanged", text: "123456789.12", want: "123456789.12"},
		{name: "long fraction goes exponential", text: "0.1234567891234", want: "1.234568e-01"},
		{name: "large result goes exponential", text: "10000000000000", want: "1.000000e+13"},
		{name: "negative long result", text: "-10000000000000", want: "-1.000000e+13"},
		{name: "unparseable text passes through", text: "Cannot divide by zero", want: "Cannot divide by zero"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FormatDisplay(tc.text)
			if got != tc.want {
				t.Fatalf("FormatDisplay(%q): expected %q, got %q", tc.text, tc.want, got)
			}
		})
	}
}
