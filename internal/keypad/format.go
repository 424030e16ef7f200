package keypad

import "strconv"

// maxDisplayLen is the widest plain-decimal text the display shows before
// switching to exponential notation.
const maxDisplayLen = 12

// FormatDisplay renders a stored operand for display: plain decimal text
// as-is, or exponential notation with 6 fractional digits once the text
// exceeds 12 characters. A pure function of its input; the stored operand
// keeps full precision.
func FormatDisplay(text string) string {
	if len(text) <= maxDisplayLen {
		return text
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return text
	}
	return strconv.FormatFloat(v, 'e', 6, 64)
}
