package rest

import (
	"github.com/abgdnv/inventory/internal/controller"
	"github.com/abgdnv/inventory/internal/input"
	"github.com/abgdnv/inventory/internal/store"
	"github.com/abgdnv/inventory/internal/view"
)

// ItemDto is a product row as rendered by the list.
type ItemDto struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	PriceText string  `json:"priceText"`
	Quantity  int64   `json:"quantity"`
	ValueText string  `json:"valueText"`
}

// SummaryDto is the totals block.
type SummaryDto struct {
	Count          int     `json:"count"`
	TotalQuantity  int64   `json:"totalQuantity"`
	TotalValue     float64 `json:"totalValue"`
	TotalValueText string  `json:"totalValueText"`
}

// ScreenDto is everything the shell renders.
type ScreenDto struct {
	Items         []ItemDto           `json:"items"`
	Summary       SummaryDto          `json:"summary"`
	Loading       bool                `json:"loading"`
	Form          controller.Form     `json:"form"`
	Search        string              `json:"search"`
	Sort          view.SortMode       `json:"sort"`
	PendingDelete *ItemDto            `json:"pendingDelete,omitempty"`
	Notices       []controller.Notice `json:"notices"`
	Currency      string              `json:"currency"`
}

// FormUpdateDto carries the form fields being typed. Absent fields are left unchanged.
type FormUpdateDto struct {
	Name     *string `json:"name"`
	Price    *string `json:"price"`
	Quantity *string `json:"quantity"`
}

type SearchDto struct {
	Query string `json:"query"`
}

type SortDto struct {
	Mode string `json:"mode" validate:"required"`
}

func toItemDto(p store.Product, f *input.CurrencyFormatter) ItemDto {
	return ItemDto{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		PriceText: f.Format(p.Price),
		Quantity:  p.Quantity,
		ValueText: f.Format(p.Price * float64(p.Quantity)),
	}
}

func toScreenDto(s controller.Screen, notices []controller.Notice, f *input.CurrencyFormatter) ScreenDto {
	items := make([]ItemDto, 0, len(s.Items))
	for _, p := range s.Items {
		items = append(items, toItemDto(p, f))
	}
	dto := ScreenDto{
		Items: items,
		Summary: SummaryDto{
			Count:          s.Totals.Count,
			TotalQuantity:  s.Totals.TotalQuantity,
			TotalValue:     s.Totals.TotalValue,
			TotalValueText: f.Format(s.Totals.TotalValue),
		},
		Loading:  s.Loading,
		Form:     s.Form,
		Search:   s.Search,
		Sort:     s.Sort,
		Notices:  notices,
		Currency: f.Code(),
	}
	if dto.Notices == nil {
		dto.Notices = []controller.Notice{}
	}
	if s.PendingDelete != nil {
		pending := toItemDto(*s.PendingDelete, f)
		dto.PendingDelete = &pending
	}
	return dto
}
