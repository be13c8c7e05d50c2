// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n3t-labs/n3t-tui/internal/api"
	"github.com/n3t-labs/n3t-tui/internal/config"
	"github.com/n3t-labs/n3t-tui/internal/model"
	"github.com/n3t-labs/n3t-tui/internal/state"
	"github.com/n3t-labs/n3t-tui/internal/ui/screens"
	"github.com/n3t-labs/n3t-tui/internal/ui/styles"
)

func testShell(t *testing.T, baseURL string) *appModel {
	t.Helper()
	dir := t.TempDir()
	if baseURL == "" {
		baseURL = "http://localhost:0"
	}
	m := newAppModel(
		styles.NewTheme(),
		api.NewClient(baseURL),
		state.OpenSession(dir),
		state.OpenPrefs(dir),
		nil,
		config.Default(),
	)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func signIn(t *testing.T, m *appModel) {
	t.Helper()
	require.NoError(t, m.session.Login(model.User{Name: "An", Email: "an@n3t.vn"}, "tok"))
}

func TestShell_SignedOutLandsOnLogin(t *testing.T) {
	m := testShell(t, "")

	m.Init()

	assert.Equal(t, screens.RouteLogin, m.route)
	assert.True(t, m.hasReturnTo)
	assert.Equal(t, screens.RouteDashboard, m.returnTo)
}

func TestShell_GuardRemembersDestination(t *testing.T) {
	m := testShell(t, "")
	m.Init()

	m.Update(screens.NavigateMsg{To: screens.RouteSuppliers})

	assert.Equal(t, screens.RouteLogin, m.route)
	assert.Equal(t, screens.RouteSuppliers, m.returnTo)

	m.Update(screens.AuthSuccessMsg{
		User:  model.User{Name: "An", Email: "an@n3t.vn"},
		Token: "tok",
	})

	assert.Equal(t, screens.RouteSuppliers, m.route)
	assert.False(t, m.hasReturnTo)
	assert.True(t, m.session.IsAuthenticated())
	assert.Equal(t, "tok", m.session.Token())
}

func TestShell_AuthSuccessDefaultsToDashboard(t *testing.T) {
	m := testShell(t, "")
	m.route = screens.RouteLogin
	m.screen = screens.New(screens.RouteLogin, m.deps)

	m.Update(screens.AuthSuccessMsg{User: model.User{Email: "an@n3t.vn"}})

	assert.Equal(t, screens.RouteDashboard, m.route)
}

func TestShell_SignedInSkipsAuthScreens(t *testing.T) {
	m := testShell(t, "")
	signIn(t, m)
	m.Init()

	m.Update(screens.NavigateMsg{To: screens.RouteLogin})

	assert.Equal(t, screens.RouteDashboard, m.route)
}

func TestShell_LogoutClearsLocallyWhenBackendFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	m := testShell(t, server.URL)
	signIn(t, m)
	m.Init()
	require.Equal(t, screens.RouteDashboard, m.route)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlO})

	assert.False(t, m.session.IsAuthenticated())
	assert.Equal(t, screens.RouteLogin, m.route)
	require.NotNil(t, cmd)
	// The backend half runs in the batch; its failure stays advisory.
	m.Update(logoutDoneMsg{err: assert.AnError})
	assert.False(t, m.session.IsAuthenticated())
}

func TestShell_CycleProtectedScreens(t *testing.T) {
	m := testShell(t, "")
	signIn(t, m)
	m.Init()
	require.Equal(t, screens.RouteDashboard, m.route)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Equal(t, screens.RouteItems, m.route)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.Equal(t, screens.RouteDashboard, m.route)

	// Wraps backwards from the first entry.
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.Equal(t, screens.RouteReports, m.route)
}

func TestShell_TogglesPersistPrefs(t *testing.T) {
	m := testShell(t, "")
	signIn(t, m)
	m.Init()

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlJ})
	assert.True(t, m.chatOpen)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	assert.True(t, m.collapsed)

	got := m.prefs.Get()
	assert.True(t, got.ChatOpen)
	assert.True(t, got.SidebarCollapsed)
}

func TestShell_AuthTogglesIgnored(t *testing.T) {
	m := testShell(t, "")
	m.Init()
	require.Equal(t, screens.RouteLogin, m.route)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlJ})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlB})

	got := m.prefs.Get()
	assert.False(t, got.ChatOpen)
	assert.False(t, got.SidebarCollapsed)
}

func TestShell_ConfigReloadUpdatesDeps(t *testing.T) {
	m := testShell(t, "")
	signIn(t, m)
	m.Init()

	cfg := config.Default()
	cfg.UI.LowStockThreshold = 25
	cfg.Chat.SystemInstruction = "updated"
	m.Update(configReloadedMsg{cfg: cfg})

	assert.Equal(t, 25, m.deps.LowStockThreshold)
}

func TestShell_ViewRendersChrome(t *testing.T) {
	m := testShell(t, "")
	signIn(t, m)
	m.Init()

	view := m.View()
	assert.Contains(t, view, "n3t")
	assert.Contains(t, view, "Dashboard")
	assert.Contains(t, view, "An")
}
