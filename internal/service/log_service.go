package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/vbonduro/pantraqa/internal/api"
	"github.com/vbonduro/pantraqa/internal/domain"
)

// logAPI is the subset of api.Client that LogService requires.
type logAPI interface {
	ListStockLogs(ctx context.Context, query url.Values) (*api.LogPage, error)
	ExportStockLogs(ctx context.Context, format string, filters url.Values) (*api.Export, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListDrinks(ctx context.Context) ([]domain.Drink, error)
	ListLocations(ctx context.Context) ([]domain.StorageLocation, error)
}

type LogService struct {
	api    logAPI
	logger *slog.Logger
}

func NewLogService(client logAPI, logger *slog.Logger) *LogService {
	return &LogService{api: client, logger: logger}
}

// LogResult is one fetched page of the audit log and its chart.
type LogResult struct {
	Query      LogQuery
	Logs       []domain.StockLog
	TotalPages int
	Chart      []ChartBar
}

// Fetch requests the page and filters in q.
func (s *LogService) Fetch(ctx context.Context, q LogQuery) (*LogResult, error) {
	page, err := s.api.ListStockLogs(ctx, q.Values())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stock logs: %w", err)
	}
	total := max(page.TotalPages, 1)
	return &LogResult{
		Query:      q,
		Logs:       page.Logs,
		TotalPages: total,
		Chart:      Aggregate(page.Logs),
	}, nil
}

// LogOptions are the choices offered by the filter selectors.
type LogOptions struct {
	Users     []domain.User
	Drinks    []domain.Drink
	Locations []domain.StorageLocation
}

// Options fetches the three option lists independently. A list that fails to
// load is left empty and the failure is only logged.
func (s *LogService) Options(ctx context.Context) LogOptions {
	var (
		opts LogOptions
		wg   sync.WaitGroup
	)
	wg.Go(func() {
		users, err := s.api.ListUsers(ctx)
		if err != nil {
			s.logger.Warn("failed to load user filter options", "error", err)
			return
		}
		opts.Users = users
	})
	wg.Go(func() {
		drinks, err := s.api.ListDrinks(ctx)
		if err != nil {
			s.logger.Warn("failed to load drink filter options", "error", err)
			return
		}
		opts.Drinks = drinks
	})
	wg.Go(func() {
		locations, err := s.api.ListLocations(ctx)
		if err != nil {
			s.logger.Warn("failed to load location filter options", "error", err)
			return
		}
		opts.Locations = locations
	})
	wg.Wait()
	return opts
}

// Export requests the filtered log rendered as format. The page of q is not
// sent. The caller must close the returned body.
func (s *LogService) Export(ctx context.Context, format string, q LogQuery) (*api.Export, error) {
	exp, err := s.api.ExportStockLogs(ctx, format, q.ExportValues())
	if err != nil {
		return nil, fmt.Errorf("failed to export stock logs as %s: %w", format, err)
	}
	s.logger.Info("stock logs exported", "format", format, "filtered", q.Filtered())
	return exp, nil
}
