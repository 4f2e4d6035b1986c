package view

import (
	"math"

	"github.com/abgdnv/inventory/internal/store"
	"github.com/shopspring/decimal"
)

// Totals is the live summary of the loaded items.
type Totals struct {
	Count         int     `json:"count"`
	TotalQuantity int64   `json:"totalQuantity"`
	TotalValue    float64 `json:"totalValue"`
}

// ComputeTotals sums quantities and price*quantity over items. The value is
// accumulated in decimal so that cents do not drift; non-finite prices count as 0.
func ComputeTotals(items []store.Product) Totals {
	totals := Totals{Count: len(items)}
	value := decimal.Zero
	for _, item := range items {
		totals.TotalQuantity += item.Quantity
		if math.IsNaN(item.Price) || math.IsInf(item.Price, 0) {
			continue
		}
		value = value.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(item.Quantity)))
	}
	totals.TotalValue = value.InexactFloat64()
	return totals
}
