// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

package components

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/n3t-labs/n3t-tui/internal/model"
	"github.com/n3t-labs/n3t-tui/internal/ui/screens"
	"github.com/n3t-labs/n3t-tui/internal/ui/styles"
)

func TestSidebar_ListsAllProtectedRoutes(t *testing.T) {
	sb := NewSidebar(styles.NewTheme())

	view := sb.View(screens.RouteDashboard, false, 20)
	for _, route := range screens.ProtectedRoutes {
		assert.Contains(t, view, route.Title())
	}
}

func TestSidebar_CollapsedHidesTitles(t *testing.T) {
	sb := NewSidebar(styles.NewTheme())

	view := sb.View(screens.RouteItems, true, 20)
	assert.NotContains(t, view, "Dashboard")
	assert.Less(t, sb.Width(true), sb.Width(false))
}

func TestHeader_ShowsUserWhenSignedIn(t *testing.T) {
	h := NewHeader(styles.NewTheme())

	signedOut := h.View("Dashboard", nil, 80)
	assert.Contains(t, signedOut, "Dashboard")

	user := &model.User{Name: "An Nguyen", Email: "an@n3t.vn"}
	signedIn := h.View("Dashboard", user, 80)
	assert.Contains(t, signedIn, "An Nguyen")
}

func TestHeader_FallsBackToEmail(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	user := &model.User{Email: "an@n3t.vn"}
	assert.Contains(t, h.View("Items", user, 80), "an@n3t.vn")
}

func TestStatusBar_RendersHints(t *testing.T) {
	bar := NewStatusBar(styles.NewTheme())
	view := bar.View([]Hint{
		{Key: "ctrl+b", Desc: "sidebar"},
		{Key: "ctrl+j", Desc: "chat"},
	}, 80)
	assert.Contains(t, view, "ctrl+b")
	assert.Contains(t, view, "chat")
}
