// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

package model

import "time"

// =============================================================================
// INVENTORY ENTITIES
// =============================================================================

// Item is a catalog entry. Identity is the server-assigned ID; quantity and
// price are never negative on the wire.
type Item struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	SKU        string  `json:"sku"`
	Quantity   int     `json:"quantity"`
	Unit       string  `json:"unit"`
	Price      float64 `json:"price"`
	Category   string  `json:"category"`
	SupplierID string  `json:"supplier_id,omitempty"`
}

// Value returns the stock value of the item (quantity x unit price).
func (i Item) Value() float64 {
	return float64(i.Quantity) * i.Price
}

// LowStock reports whether the item is at or below the given threshold.
func (i Item) LowStock(threshold int) bool {
	return i.Quantity <= threshold
}

// TransactionType is the direction of a stock movement.
type TransactionType string

const (
	TxIn  TransactionType = "in"
	TxOut TransactionType = "out"
)

// Label returns a human-readable label for display.
func (t TransactionType) Label() string {
	switch t {
	case TxIn:
		return "Stock in"
	case TxOut:
		return "Stock out"
	default:
		return string(t)
	}
}

// StockTransaction is an immutable stock movement. The backend treats the
// transaction log as append-only; inventory corrections are new transactions,
// never edits to history.
type StockTransaction struct {
	ID        string          `json:"id"`
	Type      TransactionType `json:"type"`
	ItemID    string          `json:"item_id"`
	Quantity  int             `json:"quantity"`
	Timestamp string          `json:"timestamp"` // ISO-8601, assigned server-side
	Note      string          `json:"note,omitempty"`
}

// Time parses the server-assigned timestamp. A malformed timestamp yields
// the zero time rather than an error; callers treat it as "unknown".
func (t StockTransaction) Time() time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, t.Timestamp); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// Supplier is a vendor record.
type Supplier struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Address string `json:"address"`
}

// DashboardStats is a read-only snapshot computed server-side.
// RecentTransactions arrives most-recent first.
type DashboardStats struct {
	TotalItems         int                `json:"total_items"`
	LowStockCount      int                `json:"low_stock_count"`
	TotalValue         float64            `json:"total_value"`
	RecentTransactions []StockTransaction `json:"recent_transactions"`
}

// =============================================================================
// USERS
// =============================================================================

// User is the authenticated identity held by the session store.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
}

// DisplayName returns the name, falling back to the email.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
