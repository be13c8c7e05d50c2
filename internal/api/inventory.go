// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"net/url"

	"github.com/n3t-labs/n3t-tui/internal/model"
)

// =============================================================================
// ITEMS
// =============================================================================

// ItemRequest is the payload for creating a catalog item.
type ItemRequest struct {
	Name       string  `json:"name"`
	SKU        string  `json:"sku"`
	Quantity   int     `json:"quantity"`
	Unit       string  `json:"unit"`
	Price      float64 `json:"price"`
	Category   string  `json:"category"`
	SupplierID string  `json:"supplier_id,omitempty"`
}

// ItemPatch is a partial update: nil fields are omitted from the payload and
// left untouched by the backend.
type ItemPatch struct {
	Name       *string  `json:"name,omitempty"`
	SKU        *string  `json:"sku,omitempty"`
	Quantity   *int     `json:"quantity,omitempty"`
	Unit       *string  `json:"unit,omitempty"`
	Price      *float64 `json:"price,omitempty"`
	Category   *string  `json:"category,omitempty"`
	SupplierID *string  `json:"supplier_id,omitempty"`
}

// Items fetches the full item catalog.
func (c *Client) Items(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	err := c.do(ctx, "GET", "/items", nil, &items, "items", "Failed to load items")
	return items, err
}

// CreateItem adds a new catalog item and returns the server copy.
func (c *Client) CreateItem(ctx context.Context, req ItemRequest) (model.Item, error) {
	var item model.Item
	err := c.do(ctx, "POST", "/items", req, &item, "items", "Failed to create item")
	return item, err
}

// UpdateItem applies a partial update to an existing item.
func (c *Client) UpdateItem(ctx context.Context, id string, patch ItemPatch) (model.Item, error) {
	var item model.Item
	err := c.do(ctx, "PUT", "/items/"+url.PathEscape(id), patch, &item, "items", "Failed to update item")
	return item, err
}

// DeleteItem removes an item from the catalog.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", "/items/"+url.PathEscape(id), nil, nil, "items", "Failed to delete item")
}

// =============================================================================
// STOCK TRANSACTIONS
// =============================================================================

// TransactionRequest is the payload for recording a stock movement.
type TransactionRequest struct {
	Type     model.TransactionType `json:"type"`
	ItemID   string                `json:"item_id"`
	Quantity int                   `json:"quantity"`
	Note     string                `json:"note,omitempty"`
}

// StockTransactions fetches the movement history, most recent first.
func (c *Client) StockTransactions(ctx context.Context) ([]model.StockTransaction, error) {
	var txs []model.StockTransaction
	err := c.do(ctx, "GET", "/stock/transactions", nil, &txs, "transactions", "Failed to load transactions")
	return txs, err
}

// CreateStockTransaction records a stock movement. The backend adjusts the
// item quantity; the caller is expected to refetch rather than mutate its copy.
func (c *Client) CreateStockTransaction(ctx context.Context, req TransactionRequest) (model.StockTransaction, error) {
	var tx model.StockTransaction
	err := c.do(ctx, "POST", "/stock/transactions", req, &tx, "transactions", "Failed to record transaction")
	return tx, err
}

// =============================================================================
// SUPPLIERS
// =============================================================================

// SupplierRequest is the payload for creating a vendor record.
type SupplierRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Address string `json:"address"`
}

// Suppliers fetches all vendor records.
func (c *Client) Suppliers(ctx context.Context) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	err := c.do(ctx, "GET", "/suppliers", nil, &suppliers, "suppliers", "Failed to load suppliers")
	return suppliers, err
}

// CreateSupplier adds a vendor record and returns the server copy.
func (c *Client) CreateSupplier(ctx context.Context, req SupplierRequest) (model.Supplier, error) {
	var supplier model.Supplier
	err := c.do(ctx, "POST", "/suppliers", req, &supplier, "suppliers", "Failed to create supplier")
	return supplier, err
}

// =============================================================================
// DASHBOARD
// =============================================================================

// DashboardStats fetches the server-computed overview snapshot.
func (c *Client) DashboardStats(ctx context.Context) (model.DashboardStats, error) {
	var stats model.DashboardStats
	err := c.do(ctx, "GET", "/dashboard/stats", nil, &stats, "dashboard", "Failed to load dashboard")
	return stats, err
}
