// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

// Package components holds the shell chrome shared by every screen: the
// navigation sidebar, the header, and the status bar.
package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/n3t-labs/n3t-tui/internal/ui/screens"
	"github.com/n3t-labs/n3t-tui/internal/ui/styles"
)

// navIcon is the two-character icon shown in collapsed mode.
var navIcons = map[screens.Route]string{
	screens.RouteDashboard: "▦",
	screens.RouteItems:     "≡",
	screens.RouteTracking:  "⇄",
	screens.RouteStock:     "⇅",
	screens.RouteSuppliers: "☎",
	screens.RouteReports:   "◫",
}

// Sidebar renders the navigation column.
type Sidebar struct {
	theme *styles.Theme
}

// NewSidebar builds the sidebar.
func NewSidebar(theme *styles.Theme) *Sidebar {
	return &Sidebar{theme: theme}
}

// View renders the sidebar for the active route. Collapsed mode shows
// icons only.
func (s *Sidebar) View(active screens.Route, collapsed bool, height int) string {
	t := s.theme

	lines := make([]string, 0, len(screens.ProtectedRoutes))
	for _, route := range screens.ProtectedRoutes {
		label := navIcons[route]
		if !collapsed {
			label += " " + route.Title()
		}
		if route == active {
			lines = append(lines, t.NavItemActive.Render(label))
		} else {
			lines = append(lines, t.NavItem.Render(label))
		}
	}
	body := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return t.Sidebar.Height(height).Render(body)
}

// Width returns the rendered width for layout math.
func (s *Sidebar) Width(collapsed bool) int {
	if collapsed {
		return 7
	}
	return 18
}
