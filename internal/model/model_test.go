// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItem_Value(t *testing.T) {
	item := Item{Quantity: 3, Price: 12.5}
	assert.Equal(t, 37.5, item.Value())
}

func TestItem_LowStock(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		threshold int
		want      bool
	}{
		{"below threshold", 4, 10, true},
		{"at threshold", 10, 10, true},
		{"above threshold", 11, 10, false},
		{"zero stock", 0, 10, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			item := Item{Quantity: tc.quantity}
			assert.Equal(t, tc.want, item.LowStock(tc.threshold))
		})
	}
}

func TestTransactionType_Label(t *testing.T) {
	assert.Equal(t, "Stock in", TxIn.Label())
	assert.Equal(t, "Stock out", TxOut.Label())
}

func TestItem_WireShape(t *testing.T) {
	// Field names must match the backend contract exactly.
	item := Item{ID: "i1", Name: "Screws M8", SKU: "SCR-8", Quantity: 5, Unit: "box", Price: 2.5, Category: "hardware", SupplierID: "s1"}
	data, err := json.Marshal(item)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	for _, key := range []string{"id", "name", "sku", "quantity", "unit", "price", "category", "supplier_id"} {
		assert.Contains(t, m, key)
	}
}

func TestDashboardStats_WireShape(t *testing.T) {
	payload := `{
		"total_items": 245,
		"low_stock_count": 14,
		"total_value": 156780000,
		"recent_transactions": [
			{"id": "1", "type": "in", "item_id": "item-1", "quantity": 50, "timestamp": "2025-11-13T10:00:00Z", "note": "restock"}
		]
	}`

	var stats DashboardStats
	require.NoError(t, json.Unmarshal([]byte(payload), &stats))
	assert.Equal(t, 245, stats.TotalItems)
	assert.Equal(t, 14, stats.LowStockCount)
	require.Len(t, stats.RecentTransactions, 1)
	assert.Equal(t, TxIn, stats.RecentTransactions[0].Type)
}

func TestStockTransaction_Time(t *testing.T) {
	tests := []struct {
		name      string
		timestamp string
		wantZero  bool
	}{
		{"rfc3339", "2025-11-13T10:00:00Z", false},
		{"no timezone", "2025-11-13T10:00:00", false},
		{"malformed", "yesterday-ish", true},
		{"empty", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tx := StockTransaction{Timestamp: tc.timestamp}
			assert.Equal(t, tc.wantZero, tx.Time().IsZero())
		})
	}
}

func TestConversation_Append(t *testing.T) {
	conv := &Conversation{ID: "c1", Kind: KindAssistant}
	assert.Equal(t, 0, conv.MessageCount())
	assert.Nil(t, conv.LastMessage())

	conv.Append(NewUserMessage("hello"))
	conv.Append(NewBotMessage("hi there"))

	assert.Equal(t, 2, conv.MessageCount())
	assert.Equal(t, SenderBot, conv.LastMessage().Sender)
	assert.Equal(t, "hi there", conv.LastMessage().Text)
}

func TestConversation_Preview(t *testing.T) {
	conv := &Conversation{}
	assert.Equal(t, "", conv.Preview(40))

	conv.Append(NewUserMessage("line one\nline two with a fairly long tail that should be cut"))
	preview := conv.Preview(20)
	assert.NotContains(t, preview, "\n")
	assert.LessOrEqual(t, len([]rune(preview)), 20)
}

func TestDefaultConversations(t *testing.T) {
	convs := DefaultConversations()
	require.NotEmpty(t, convs)

	// The assistant thread comes first, carries the greeting, and is the
	// only thread wired to the backend.
	assert.Equal(t, AssistantConversationID, convs[0].ID)
	assert.True(t, convs[0].IsAssistant())
	assert.Equal(t, 1, convs[0].MessageCount())

	for _, c := range convs[1:] {
		assert.False(t, c.IsAssistant())
		assert.Equal(t, 0, c.MessageCount())
	}
}

func TestNewMessage_IDsUnique(t *testing.T) {
	a := NewUserMessage("x")
	b := NewUserMessage("x")
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, SenderUser, a.Sender)
}
