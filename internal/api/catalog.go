package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vbonduro/pantraqa/internal/domain"
)

type CreateDrinkRequest struct {
	Name     string `json:"name"`
	Size     string `json:"size"`
	Category string `json:"category"`
}

type CreateLocationRequest struct {
	Name        string              `json:"name"`
	Type        domain.LocationType `json:"type"`
	Description string              `json:"description"`
}

func (c *Client) ListDrinks(ctx context.Context) ([]domain.Drink, error) {
	var out struct {
		Drinks []domain.Drink `json:"drinks"`
	}
	if err := c.do(ctx, http.MethodGet, "/drinks", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Drinks, nil
}

func (c *Client) CreateDrink(ctx context.Context, r CreateDrinkRequest) error {
	return c.do(ctx, http.MethodPost, "/drinks/create-drink", nil, r, nil)
}

func (c *Client) DeleteDrink(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/drinks/%d", id), nil, nil, nil)
}

func (c *Client) ListLocations(ctx context.Context) ([]domain.StorageLocation, error) {
	var out struct {
		Locations []domain.StorageLocation `json:"locations"`
	}
	if err := c.do(ctx, http.MethodGet, "/storage-locations", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Locations, nil
}

func (c *Client) CreateLocation(ctx context.Context, r CreateLocationRequest) error {
	return c.do(ctx, http.MethodPost, "/storage-locations", nil, r, nil)
}
