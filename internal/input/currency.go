package input

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency used by FormatCurrency.
const DefaultCurrency = money.BRL

var defaultFormatter = mustFormatter(DefaultCurrency)

// CurrencyFormatter renders amounts with the symbol and separators of one currency.
type CurrencyFormatter struct {
	currency money.Currency
}

// NewCurrencyFormatter returns a formatter for an ISO 4217 currency code.
func NewCurrencyFormatter(code string) (*CurrencyFormatter, error) {
	cur := money.GetCurrency(code)
	if cur == nil {
		return nil, fmt.Errorf("unknown currency code %q", code)
	}
	return &CurrencyFormatter{currency: *cur}, nil
}

func mustFormatter(code string) *CurrencyFormatter {
	f, err := NewCurrencyFormatter(code)
	if err != nil {
		panic(err)
	}
	return f
}

// Code returns the ISO 4217 code of the formatter's currency.
func (f *CurrencyFormatter) Code() string { return f.currency.Code }

// Format renders value rounded to the currency's minor unit, e.g. 1234.5 -> "R$1.234,50".
// Non-finite values render as zero.
func (f *CurrencyFormatter) Format(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0
	}
	minor := decimal.NewFromFloat(value).Shift(int32(f.currency.Fraction)).Round(0)
	if minor.GreaterThan(maxMinor) || minor.LessThan(minMinor) {
		return f.formatLarge(minor)
	}
	return f.currency.Formatter().Format(minor.IntPart())
}

var (
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// formatLarge renders minor units that do not fit in an int64, laid out like
// money.Formatter.Format does for the ones that do.
func (f *CurrencyFormatter) formatLarge(minor decimal.Decimal) string {
	cf := f.currency.Formatter()
	digits := minor.Abs().Shift(-int32(cf.Fraction)).StringFixed(int32(cf.Fraction))
	whole, frac, _ := strings.Cut(digits, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(cf.Thousand)
		}
		b.WriteRune(r)
	}
	amount := b.String()
	if cf.Fraction > 0 {
		amount += cf.Decimal + frac
	}

	out := strings.Replace(cf.Template, "1", amount, 1)
	out = strings.Replace(out, "$", cf.Grapheme, 1)
	if minor.IsNegative() {
		out = "-" + out
	}
	return out
}

// FormatCurrency renders value in DefaultCurrency.
func FormatCurrency(value float64) string {
	return defaultFormatter.Format(value)
}
