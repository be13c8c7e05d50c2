// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/n3t-labs/n3t-tui/internal/model"
	"github.com/n3t-labs/n3t-tui/internal/ui/styles"
	"github.com/n3t-labs/n3t-tui/internal/util"
)

// Header renders the top bar: brand, screen title, and the signed-in user.
type Header struct {
	theme *styles.Theme
}

// NewHeader builds the header.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{theme: theme}
}

// View renders the header line for the given width.
func (h *Header) View(title string, user *model.User, width int) string {
	t := h.theme

	left := t.Brand.Render("n3t") + "  " + t.Title.Render(title)
	right := ""
	if user != nil {
		right = t.UserBadge.Render(util.Truncate(user.DisplayName(), 24))
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return t.Header.Width(width).Render(left + util.PadRight("", gap) + right)
}
