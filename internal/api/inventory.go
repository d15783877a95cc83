package api

import (
	"context"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/types"
)

func (c *Client) Dashboard(ctx context.Context) (*types.Dashboard, error) {
	var out types.Dashboard
	if err := c.GetJSON(ctx, "/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, in types.ProductInput) (*types.Product, error) {
	var out types.Product
	if err := c.PostJSON(ctx, types.EntityProducts.Path(), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, in types.ProductInput) (*types.Product, error) {
	var out types.Product
	if err := c.PutJSON(ctx, types.EntityProducts.ItemPath(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCategory(ctx context.Context, in types.CategoryInput) (*types.Category, error) {
	var out types.Category
	if err := c.PostJSON(ctx, types.EntityCategories.Path(), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id int64, in types.CategoryInput) (*types.Category, error) {
	var out types.Category
	if err := c.PutJSON(ctx, types.EntityCategories.ItemPath(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateMovement(ctx context.Context, in types.MovementInput) (*types.Movement, error) {
	var out types.Movement
	if err := c.PostJSON(ctx, types.EntityMovements.Path(), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateMovement(ctx context.Context, id int64, in types.MovementInput) (*types.Movement, error) {
	var out types.Movement
	if err := c.PutJSON(ctx, types.EntityMovements.ItemPath(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteEntity removes one record. For movements the backend also reverts the
// stock change the movement caused.
func (c *Client) DeleteEntity(ctx context.Context, entity types.Entity, id int64) error {
	return c.Delete(ctx, entity.ItemPath(id))
}
