package service

import "github.com/vbonduro/pantraqa/internal/domain"

// ChartBar is the stocked-in and stocked-out total of one drink.
type ChartBar struct {
	Drink string
	In    int
	Out   int
}

// Aggregate totals quantities per drink name over the given logs, which are a
// single loaded page. Bars are in order of first appearance.
func Aggregate(logs []domain.StockLog) []ChartBar {
	var bars []ChartBar
	index := make(map[string]int)
	for _, l := range logs {
		i, ok := index[l.Drink.Name]
		if !ok {
			i = len(bars)
			index[l.Drink.Name] = i
			bars = append(bars, ChartBar{Drink: l.Drink.Name})
		}
		switch l.Action {
		case domain.ActionIn:
			bars[i].In += l.Quantity
		case domain.ActionOut:
			bars[i].Out += l.Quantity
		}
	}
	return bars
}

// MaxBarValue is the largest in or out total across bars, at least 1.
func MaxBarValue(bars []ChartBar) int {
	m := 1
	for _, b := range bars {
		m = max(m, b.In, b.Out)
	}
	return m
}
