package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/vbonduro/pantraqa/internal/api"
	"github.com/vbonduro/pantraqa/internal/domain"
)

// catalogAPI is the subset of api.Client that CatalogService requires.
type catalogAPI interface {
	ListDrinks(ctx context.Context) ([]domain.Drink, error)
	CreateDrink(ctx context.Context, r api.CreateDrinkRequest) error
	DeleteDrink(ctx context.Context, id int64) error
	ListLocations(ctx context.Context) ([]domain.StorageLocation, error)
	CreateLocation(ctx context.Context, r api.CreateLocationRequest) error
}

type CatalogService struct {
	api    catalogAPI
	logger *slog.Logger
}

func NewCatalogService(client catalogAPI, logger *slog.Logger) *CatalogService {
	return &CatalogService{api: client, logger: logger}
}

func (s *CatalogService) ListDrinks(ctx context.Context) ([]domain.Drink, error) {
	drinks, err := s.api.ListDrinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list drinks: %w", err)
	}
	return drinks, nil
}

func (s *CatalogService) CreateDrink(ctx context.Context, in DrinkInput) error {
	if err := validateInput(in); err != nil {
		return err
	}
	if err := s.api.CreateDrink(ctx, api.CreateDrinkRequest{Name: in.Name, Size: in.Size, Category: in.Category}); err != nil {
		return fmt.Errorf("failed to create drink: %w", err)
	}
	s.logger.Info("drink created", "name", in.Name, "size", in.Size)
	return nil
}

func (s *CatalogService) DeleteDrink(ctx context.Context, id int64) error {
	if err := s.api.DeleteDrink(ctx, id); err != nil {
		return fmt.Errorf("failed to delete drink %d: %w", id, err)
	}
	s.logger.Info("drink deleted", "drink_id", id)
	return nil
}

func (s *CatalogService) ListLocations(ctx context.Context) ([]domain.StorageLocation, error) {
	locations, err := s.api.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list storage locations: %w", err)
	}
	return locations, nil
}

func (s *CatalogService) CreateLocation(ctx context.Context, in LocationInput) error {
	if err := validateInput(in); err != nil {
		return err
	}
	req := api.CreateLocationRequest{Name: in.Name, Type: in.Type, Description: in.Description}
	if err := s.api.CreateLocation(ctx, req); err != nil {
		return fmt.Errorf("failed to create storage location: %w", err)
	}
	s.logger.Info("storage location created", "name", in.Name, "type", in.Type)
	return nil
}

// MovementOptions holds the selector contents of the stock-in and stock-out
// forms.
type MovementOptions struct {
	Drinks    []domain.Drink
	Locations []domain.StorageLocation
}

// MovementOptions fetches drinks and locations concurrently. If either fetch
// fails the error is logged and both lists are left empty.
func (s *CatalogService) MovementOptions(ctx context.Context) MovementOptions {
	var opts MovementOptions
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		drinks, err := s.api.ListDrinks(gctx)
		if err != nil {
			return fmt.Errorf("drinks: %w", err)
		}
		opts.Drinks = drinks
		return nil
	})
	g.Go(func() error {
		locations, err := s.api.ListLocations(gctx)
		if err != nil {
			return fmt.Errorf("storage locations: %w", err)
		}
		opts.Locations = locations
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("failed to load stock form options", "error", err)
		return MovementOptions{}
	}
	return opts
}
