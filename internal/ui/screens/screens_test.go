// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

package screens

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n3t-labs/n3t-tui/internal/api"
	"github.com/n3t-labs/n3t-tui/internal/model"
	"github.com/n3t-labs/n3t-tui/internal/ui/styles"
)

func testDeps() Deps {
	return Deps{
		Theme:             styles.NewTheme(),
		Client:            api.NewClient("http://localhost:0"),
		LowStockThreshold: 10,
	}
}

func TestRoute_Protected(t *testing.T) {
	assert.False(t, RouteLogin.Protected())
	assert.False(t, RouteRegister.Protected())
	assert.False(t, RouteForgot.Protected())
	for _, r := range ProtectedRoutes {
		assert.True(t, r.Protected(), r.Title())
	}
}

func TestNew_CoversEveryRoute(t *testing.T) {
	routes := append([]Route{RouteLogin, RouteRegister, RouteForgot}, ProtectedRoutes...)
	for _, r := range routes {
		require.NotNil(t, New(r, testDeps()), r.Title())
	}
}

func TestDashboard_StaleResponseDiscarded(t *testing.T) {
	d := NewDashboard(testDeps())
	d.SetSize(100, 30)
	d.fetch() // gen 1
	d.fetch() // gen 2, supersedes

	// The gen-1 response arrives late and must be ignored.
	next, _ := d.Update(statsMsg{Gen: 1, Stats: model.DashboardStats{TotalItems: 999}})
	d = next.(*Dashboard)
	assert.True(t, d.loading)
	assert.Zero(t, d.stats.TotalItems)

	next, _ = d.Update(statsMsg{Gen: 2, Stats: model.DashboardStats{TotalItems: 42}})
	d = next.(*Dashboard)
	assert.False(t, d.loading)
	assert.Equal(t, 42, d.stats.TotalItems)
}

func TestDashboard_ErrorShowsEmptyState(t *testing.T) {
	d := NewDashboard(testDeps())
	d.SetSize(100, 30)
	d.fetch()

	next, _ := d.Update(statsMsg{Gen: 1, Err: errors.New("Failed to load dashboard")})
	d = next.(*Dashboard)
	assert.Contains(t, d.View(), "Failed to load dashboard")

	// Stale data never lingers behind an error.
	assert.Zero(t, d.stats.TotalItems)
}

func TestItems_FilterIsClientSide(t *testing.T) {
	s := NewItems(testDeps())
	s.SetSize(100, 30)
	s.fetch()

	items := []model.Item{
		{ID: "1", Name: "Screws M8", SKU: "SCR-8", Category: "hardware"},
		{ID: "2", Name: "Paint, white", SKU: "PNT-W", Category: "finish"},
		{ID: "3", Name: "Wood screws", SKU: "SCR-W", Category: "hardware"},
	}
	next, _ := s.Update(itemsMsg{Gen: 1, Items: items})
	s = next.(*Items)
	assert.Len(t, s.visible, 3)

	s.filter.SetValue("screw")
	s.applyFilter()
	assert.Len(t, s.visible, 2)

	// Clearing the filter restores the full fetched list.
	s.filter.SetValue("")
	s.applyFilter()
	assert.Len(t, s.visible, 3)
}

func TestItems_StaleFetchDiscarded(t *testing.T) {
	s := NewItems(testDeps())
	s.fetch()
	s.fetch()

	next, _ := s.Update(itemsMsg{Gen: 1, Items: []model.Item{{ID: "old"}}})
	s = next.(*Items)
	assert.True(t, s.loading)
	assert.Empty(t, s.items)
}

func TestItems_FormValidation(t *testing.T) {
	s := NewItems(testDeps())
	s.openForm(nil)

	// Missing required fields.
	cmd := s.submitForm()
	assert.Nil(t, cmd)
	assert.NotEmpty(t, s.formErr)

	s.fields[0].SetValue("Screws")
	s.fields[1].SetValue("SCR-1")
	s.fields[2].SetValue("-3")
	s.fields[4].SetValue("10")
	cmd = s.submitForm()
	assert.Nil(t, cmd)
	assert.Contains(t, s.formErr, "Quantity")

	s.fields[2].SetValue("5")
	s.fields[4].SetValue("abc")
	cmd = s.submitForm()
	assert.Nil(t, cmd)
	assert.Contains(t, s.formErr, "Price")
}

func TestTracking_DirectionFilter(t *testing.T) {
	s := NewTracking(testDeps())
	s.SetSize(100, 30)
	s.fetch()

	txs := []model.StockTransaction{
		{ID: "1", Type: model.TxIn, ItemID: "a", Quantity: 5},
		{ID: "2", Type: model.TxOut, ItemID: "b", Quantity: 2},
		{ID: "3", Type: model.TxIn, ItemID: "c", Quantity: 1},
	}
	next, _ := s.Update(transactionsMsg{Gen: 1, Txs: txs})
	s = next.(*Tracking)
	assert.Len(t, s.tbl.Rows(), 3)

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'i'}})
	s = next.(*Tracking)
	assert.Len(t, s.tbl.Rows(), 2)

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})
	s = next.(*Tracking)
	assert.Len(t, s.tbl.Rows(), 1)

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	s = next.(*Tracking)
	assert.Len(t, s.tbl.Rows(), 3)
}

func TestStock_RejectsOverdraw(t *testing.T) {
	s := NewStock(testDeps())
	s.fetch()
	next, _ := s.Update(stockItemsMsg{Gen: 1, Items: []model.Item{
		{ID: "i1", Name: "Screws", Quantity: 4, Unit: "box"},
	}})
	s = next.(*Stock)

	s.txType = model.TxOut
	s.qty.SetValue("10")
	cmd := s.submit()
	assert.Nil(t, cmd)
	assert.Contains(t, s.formErr, "Only 4")

	// Stock-in of the same quantity is fine.
	s.txType = model.TxIn
	cmd = s.submit()
	assert.NotNil(t, cmd)
	assert.Empty(t, s.formErr)
}

func TestStock_QuantityValidation(t *testing.T) {
	s := NewStock(testDeps())
	s.fetch()
	next, _ := s.Update(stockItemsMsg{Gen: 1, Items: []model.Item{{ID: "i1", Quantity: 100}}})
	s = next.(*Stock)

	for _, bad := range []string{"", "0", "-1", "abc"} {
		s.qty.SetValue(bad)
		assert.Nil(t, s.submit(), "quantity %q", bad)
	}
}

func TestLogin_EmitsAuthSuccess(t *testing.T) {
	s := NewLogin(testDeps())
	s.gen = 1

	next, cmd := s.Update(loginResultMsg{
		Gen:   1,
		User:  model.User{ID: "u1", Name: "An"},
		Token: "tok",
	})
	require.NotNil(t, cmd)
	msg := cmd()
	auth, ok := msg.(AuthSuccessMsg)
	require.True(t, ok)
	assert.Equal(t, "An", auth.User.Name)
	assert.Equal(t, "tok", auth.Token)
	_ = next
}

func TestLogin_ErrorShownInline(t *testing.T) {
	s := NewLogin(testDeps())
	s.SetSize(100, 30)
	s.gen = 1

	next, cmd := s.Update(loginResultMsg{Gen: 1, Err: errors.New("Invalid credentials")})
	assert.Nil(t, cmd)
	s = next.(*Login)
	assert.Contains(t, s.View(), "Invalid credentials")
}

func TestRegister_Validation(t *testing.T) {
	s := NewRegister(testDeps())

	s.fields[0].SetValue("An")
	s.fields[1].SetValue("not-an-email")
	s.fields[2].SetValue("password1")
	s.fields[3].SetValue("password1")
	assert.Nil(t, s.submit())
	assert.Contains(t, s.errMsg, "email")

	s.fields[1].SetValue("an@n3t.vn")
	s.fields[2].SetValue("short")
	s.fields[3].SetValue("short")
	assert.Nil(t, s.submit())
	assert.Contains(t, s.errMsg, "8 characters")

	s.fields[2].SetValue("password1")
	s.fields[3].SetValue("password2")
	assert.Nil(t, s.submit())
	assert.Contains(t, s.errMsg, "match")

	s.fields[3].SetValue("password1")
	assert.NotNil(t, s.submit())
}

func TestForgot_SuccessMessage(t *testing.T) {
	s := NewForgot(testDeps())
	s.SetSize(100, 30)
	s.gen = 1

	next, _ := s.Update(forgotResultMsg{Gen: 1})
	s = next.(*Forgot)
	assert.True(t, s.sent)
	assert.Contains(t, s.View(), "reset email")
}

func TestReports_LowStockUsesThreshold(t *testing.T) {
	deps := testDeps()
	deps.LowStockThreshold = 5
	s := NewReports(deps)
	s.SetSize(100, 30)
	s.fetch()

	next, _ := s.Update(reportsMsg{Gen: 1, Items: []model.Item{
		{Name: "Low", Quantity: 5, Category: "a", Price: 1},
		{Name: "Fine", Quantity: 6, Category: "a", Price: 1},
	}})
	s = next.(*Reports)

	view := s.lowStockList()
	assert.Contains(t, view, "Low")
	assert.NotContains(t, view, "Fine")
}

func TestReports_TrendBucketsLastWeek(t *testing.T) {
	s := NewReports(testDeps())
	s.SetSize(100, 30)
	s.fetch()

	now := time.Now()
	next, _ := s.Update(reportsMsg{Gen: 1,
		Items: []model.Item{{Name: "Widget", Quantity: 3, Category: "a", Price: 1}},
		Transactions: []model.StockTransaction{
			{Type: model.TxIn, Quantity: 40, Timestamp: now.Format(time.RFC3339)},
			{Type: model.TxOut, Quantity: 15, Timestamp: now.AddDate(0, 0, -2).Format(time.RFC3339)},
			{Type: model.TxIn, Quantity: 99, Timestamp: now.AddDate(0, 0, -30).Format(time.RFC3339)},
			{Type: model.TxIn, Quantity: 7, Timestamp: "not-a-time"},
		},
	})
	s = next.(*Reports)

	view := s.trendChart()
	assert.Contains(t, view, "in 40")
	assert.Contains(t, view, "out 15")
	assert.NotContains(t, view, "99")
	assert.NotContains(t, view, "in 7")
}
