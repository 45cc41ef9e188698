package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/vbonduro/pantraqa/internal/domain"
)

type StockMovement struct {
	DrinkID           int64 `json:"drinkId"`
	StorageLocationID int64 `json:"storageLocationId"`
	Quantity          int   `json:"quantity"`
}

type StockPage struct {
	Stocks     []domain.StockItem `json:"stocks"`
	Pagination domain.Pagination  `json:"pagination"`
}

// RecordStock posts a stock-in or stock-out movement.
func (c *Client) RecordStock(ctx context.Context, action domain.StockAction, m StockMovement) error {
	if _, ok := domain.ParseStockAction(string(action)); !ok {
		return fmt.Errorf("unknown stock action %q", action)
	}
	return c.do(ctx, http.MethodPost, "/stocks/"+string(action), nil, m, nil)
}

func (c *Client) ListStocks(ctx context.Context, page, limit int) (*StockPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var out StockPage
	if err := c.do(ctx, http.MethodGet, "/stocks", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateThreshold(ctx context.Context, stockID int64, threshold int) error {
	body := map[string]int{"threshold": threshold}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/stocks/%d/threshold", stockID), nil, body, nil)
}
