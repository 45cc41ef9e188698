package service

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/vbonduro/pantraqa/internal/domain"
)

// StatusFilter narrows the loaded stock page by status.
type StatusFilter string

const (
	FilterAll StatusFilter = "all"
	FilterLow StatusFilter = "low"
	FilterOK  StatusFilter = "ok"
)

// ParseStatusFilter falls back to FilterAll for unknown values.
func ParseStatusFilter(s string) StatusFilter {
	switch f := StatusFilter(s); f {
	case FilterLow, FilterOK:
		return f
	default:
		return FilterAll
	}
}

type SortKey string

const (
	SortName      SortKey = "name"
	SortQuantity  SortKey = "quantity"
	SortUpdatedAt SortKey = "updatedAt"
)

// ParseSortKey falls back to SortUpdatedAt for unknown values.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(s); k {
	case SortName, SortQuantity:
		return k
	default:
		return SortUpdatedAt
	}
}

// Arrange filters and sorts items of a single loaded page. It returns a new
// slice and leaves items untouched. Name order ignores case, quantity is
// highest first and updatedAt is most recent first. Ties keep their server
// order.
func Arrange(items []domain.StockItem, filter StatusFilter, key SortKey) []domain.StockItem {
	out := make([]domain.StockItem, 0, len(items))
	for _, it := range items {
		switch filter {
		case FilterLow:
			if !it.IsLow() {
				continue
			}
		case FilterOK:
			if it.IsLow() {
				continue
			}
		}
		out = append(out, it)
	}

	switch key {
	case SortName:
		col := collate.New(language.English, collate.IgnoreCase)
		slices.SortStableFunc(out, func(a, b domain.StockItem) int {
			return col.CompareString(a.Drink.Name, b.Drink.Name)
		})
	case SortQuantity:
		slices.SortStableFunc(out, func(a, b domain.StockItem) int {
			return b.Quantity - a.Quantity
		})
	default:
		slices.SortStableFunc(out, func(a, b domain.StockItem) int {
			return b.UpdatedAt.Compare(a.UpdatedAt)
		})
	}
	return out
}

// StepPage moves current by delta and clamps the result to [1, total].
func StepPage(current, delta, total int) int {
	if total < 1 {
		total = 1
	}
	return min(max(current+delta, 1), total)
}
