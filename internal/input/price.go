package input

import (
	"errors"
	"strconv"
	"strings"
)

// maxFractionDigits is the number of decimal places kept in a price.
const maxFractionDigits = 2

// PriceInput is a masked price field.
type PriceInput struct {
	// Display is the cleaned text to echo back into the field.
	Display string
	// Raw is the parsed value of Display, 0 when empty, unparsable or out of range.
	Raw float64
	// OutOfRange is set when Display holds more digits than a float64 can represent.
	OutOfRange bool
}

// NormalizePrice masks price text as the user types.
//
// Everything but digits, commas and dots is dropped. The first comma becomes a dot,
// only the first dot is kept as the decimal separator, and the fraction is truncated
// (not rounded) to two digits: "12,345" -> "12.34", "1.2.3" -> "1.23".
func NormalizePrice(text string) PriceInput {
	var b strings.Builder
	for _, r := range text {
		if isDigit(r) || r == ',' || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.Replace(b.String(), ",", ".", 1)

	if whole, frac, ok := strings.Cut(cleaned, "."); ok {
		frac = strings.NewReplacer(".", "", ",", "").Replace(frac)
		if len(frac) > maxFractionDigits {
			frac = frac[:maxFractionDigits]
		}
		cleaned = whole + "." + frac
	}

	raw, outOfRange := parsePrice(cleaned)
	return PriceInput{Display: cleaned, Raw: raw, OutOfRange: outOfRange}
}

func parsePrice(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Is(err, strconv.ErrRange)
	}
	return v, false
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
