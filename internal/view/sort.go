// Package view derives the visible product list and its summary from the loaded items.
// Every function here is pure and never mutates its input.
package view

import (
	"fmt"
	"strings"
)

// SortMode selects the order of the visible list.
type SortMode int

const (
	SortRecent SortMode = iota
	SortAlphabet
	SortPrice
	SortQuantity

	sortModeCount
)

var sortModeNames = [sortModeCount]string{"recent", "alphabet", "price", "quantity"}

// String returns the mode name.
func (m SortMode) String() string {
	if m < 0 || m >= sortModeCount {
		return fmt.Sprintf("SortMode(%d)", int(m))
	}
	return sortModeNames[m]
}

// Next advances one step in the cycle recent -> alphabet -> price -> quantity -> recent.
func (m SortMode) Next() SortMode {
	return (m + 1) % sortModeCount
}

// ParseSortMode parses a mode name, case-insensitively.
func ParseSortMode(s string) (SortMode, error) {
	for i, name := range sortModeNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return SortMode(i), nil
		}
	}
	return SortRecent, fmt.Errorf("unknown sort mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m SortMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *SortMode) UnmarshalText(text []byte) error {
	parsed, err := ParseSortMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
