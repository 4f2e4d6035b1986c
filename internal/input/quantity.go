package input

import (
	"errors"
	"strconv"
	"strings"
)

// NormalizeQuantity drops every character that is not a digit: "12a3" -> "123".
func NormalizeQuantity(text string) string {
	return strings.Map(func(r rune) rune {
		if isDigit(r) {
			return r
		}
		return -1
	}, text)
}

// ParseQuantity parses the digits of text as a base-10 integer.
// Empty or out-of-range input yields 0.
func ParseQuantity(text string) int64 {
	v, _ := parseQuantity(NormalizeQuantity(text))
	return v
}

// QuantityOutOfRange reports whether the digits of text exceed an int64.
func QuantityOutOfRange(text string) bool {
	_, outOfRange := parseQuantity(NormalizeQuantity(text))
	return outOfRange
}

func parseQuantity(digits string) (int64, bool) {
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, errors.Is(err, strconv.ErrRange)
	}
	return v, false
}
