package view

import (
	"cmp"
	"slices"
	"strings"

	"github.com/abgdnv/inventory/internal/store"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collation is the locale used to order names in SortAlphabet.
var Collation = language.BrazilianPortuguese

// DeriveVisibleItems returns a fresh slice holding the items whose name contains the
// trimmed query (case-insensitive), ordered by mode. The sort is stable and items is
// left untouched.
func DeriveVisibleItems(items []store.Product, query string, mode SortMode) []store.Product {
	needle := strings.ToLower(strings.TrimSpace(query))

	visible := make([]store.Product, 0, len(items))
	for _, item := range items {
		if needle == "" || strings.Contains(strings.ToLower(item.Name), needle) {
			visible = append(visible, item)
		}
	}

	slices.SortStableFunc(visible, comparator(mode))
	return visible
}

func comparator(mode SortMode) func(a, b store.Product) int {
	switch mode {
	case SortAlphabet:
		// collators keep internal buffers and must not be shared between goroutines
		c := collate.New(Collation)
		return func(a, b store.Product) int {
			return c.CompareString(a.Name, b.Name)
		}
	case SortPrice:
		return func(a, b store.Product) int {
			return cmp.Compare(a.Price, b.Price)
		}
	case SortQuantity:
		return func(a, b store.Product) int {
			return cmp.Compare(a.Quantity, b.Quantity)
		}
	default:
		return func(a, b store.Product) int {
			return cmp.Compare(b.ID, a.ID)
		}
	}
}
