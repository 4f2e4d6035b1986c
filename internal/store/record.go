package store

import (
	"math"

	"github.com/spf13/cast"
)

// Product is the strongly typed inventory record.
type Product struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
}

// Record is a row as returned by the storage engine. Field types depend on the
// driver (int64, int32, float64, string, []byte, nil ...) and are never trusted.
type Record struct {
	ID       any
	Name     any
	Price    any
	Quantity any
}

// Decode coerces a Record into a Product. Missing or non-numeric values become 0,
// a missing name becomes the empty string.
func Decode(r Record) Product {
	return Product{
		ID:       cast.ToInt64(r.ID),
		Name:     cast.ToString(r.Name),
		Price:    finite(cast.ToFloat64(r.Price)),
		Quantity: cast.ToInt64(r.Quantity),
	}
}

// DecodeAll decodes every record, preserving order.
func DecodeAll(records []Record) []Product {
	products := make([]Product, len(records))
	for i, r := range records {
		products[i] = Decode(r)
	}
	return products
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
