package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vbonduro/pantraqa/internal/api"
	"github.com/vbonduro/pantraqa/internal/domain"
)

// stockAPI is the subset of api.Client that StockService requires.
type stockAPI interface {
	ListStocks(ctx context.Context, page, limit int) (*api.StockPage, error)
	UpdateThreshold(ctx context.Context, stockID int64, threshold int) error
	RecordStock(ctx context.Context, action domain.StockAction, m api.StockMovement) error
}

type StockService struct {
	api      stockAPI
	pageSize int
	logger   *slog.Logger
}

func NewStockService(client stockAPI, pageSize int, logger *slog.Logger) *StockService {
	return &StockService{api: client, pageSize: pageSize, logger: logger}
}

// StockPage is one server page of stock items.
type StockPage struct {
	Items      []domain.StockItem
	Page       int
	TotalPages int
	TotalItems int
}

// ListPage fetches page (1-based) using the configured page size.
func (s *StockService) ListPage(ctx context.Context, page int) (*StockPage, error) {
	if page < 1 {
		page = 1
	}
	res, err := s.api.ListStocks(ctx, page, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock page %d: %w", page, err)
	}

	out := &StockPage{
		Items:      res.Stocks,
		Page:       res.Pagination.CurrentPage,
		TotalPages: res.Pagination.TotalPages,
		TotalItems: res.Pagination.TotalItems,
	}
	if out.Page < 1 {
		out.Page = page
	}
	if out.TotalPages < 1 {
		out.TotalPages = 1
	}
	return out, nil
}

// UpdateThreshold changes the reorder threshold of one stock item.
func (s *StockService) UpdateThreshold(ctx context.Context, stockID int64, in ThresholdInput) error {
	if err := validateInput(in); err != nil {
		return err
	}
	if err := s.api.UpdateThreshold(ctx, stockID, in.Threshold); err != nil {
		return fmt.Errorf("failed to update threshold for stock %d: %w", stockID, err)
	}
	s.logger.Info("threshold updated", "stock_id", stockID, "threshold", in.Threshold)
	return nil
}

// Record posts a stock-in or stock-out movement.
func (s *StockService) Record(ctx context.Context, action domain.StockAction, in MovementInput) error {
	if err := validateInput(in); err != nil {
		return err
	}
	m := api.StockMovement{DrinkID: in.DrinkID, StorageLocationID: in.LocationID, Quantity: in.Quantity}
	if err := s.api.RecordStock(ctx, action, m); err != nil {
		return fmt.Errorf("failed to record stock %s: %w", action, err)
	}
	s.logger.Info("stock recorded",
		"action", action,
		"drink_id", in.DrinkID,
		"storage_location_id", in.LocationID,
		"quantity", in.Quantity,
	)
	return nil
}
