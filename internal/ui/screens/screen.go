// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

// Package screens contains the feature screens of the n3t terminal and
// the route table that binds them together. Exactly one screen is
// mounted at a time; navigating away destroys the screen, navigating
// back rebuilds it and refetches its data.
package screens

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/n3t-labs/n3t-tui/internal/api"
	"github.com/n3t-labs/n3t-tui/internal/model"
	"github.com/n3t-labs/n3t-tui/internal/telemetry"
	"github.com/n3t-labs/n3t-tui/internal/ui/styles"
)

// =============================================================================
// ROUTES
// =============================================================================

// Route identifies a screen in the shell.
type Route int

const (
	RouteLogin Route = iota
	RouteRegister
	RouteForgot
	RouteDashboard
	RouteItems
	RouteTracking
	RouteStock
	RouteSuppliers
	RouteReports
)

// ProtectedRoutes lists the authenticated screens in sidebar order.
var ProtectedRoutes = []Route{
	RouteDashboard,
	RouteItems,
	RouteTracking,
	RouteStock,
	RouteSuppliers,
	RouteReports,
}

// Protected reports whether the route requires a signed-in user.
func (r Route) Protected() bool {
	switch r {
	case RouteLogin, RouteRegister, RouteForgot:
		return false
	}
	return true
}

// Title returns the human-readable screen title.
func (r Route) Title() string {
	switch r {
	case RouteLogin:
		return "Sign in"
	case RouteRegister:
		return "Create account"
	case RouteForgot:
		return "Reset password"
	case RouteDashboard:
		return "Dashboard"
	case RouteItems:
		return "Items"
	case RouteTracking:
		return "Tracking"
	case RouteStock:
		return "Stock"
	case RouteSuppliers:
		return "Suppliers"
	case RouteReports:
		return "Reports"
	default:
		return "Unknown"
	}
}

// =============================================================================
// SCREEN INTERFACE
// =============================================================================

// Screen is one mounted feature screen. Update returns the next screen
// state; screens never navigate directly, they emit messages the shell
// interprets.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Deps carries the shared dependencies every screen constructor needs.
type Deps struct {
	Theme    *styles.Theme
	Client   *api.Client
	Activity *telemetry.Store

	// LowStockThreshold marks items at or below this quantity.
	LowStockThreshold int
}

// =============================================================================
// SHELL MESSAGES
// =============================================================================

// NavigateMsg asks the shell to switch screens.
type NavigateMsg struct {
	To Route
}

// AuthSuccessMsg reports a completed login or registration. The shell
// stores the session and navigates to the pending destination.
type AuthSuccessMsg struct {
	User  model.User
	Token string
}

// Navigate returns a command that emits a NavigateMsg.
func Navigate(to Route) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{To: to}
	}
}
