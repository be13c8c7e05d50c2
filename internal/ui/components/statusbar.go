// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

package components

import (
	"strings"

	"github.com/n3t-labs/n3t-tui/internal/ui/styles"
)

// Hint is one key binding shown in the status bar.
type Hint struct {
	Key  string
	Desc string
}

// StatusBar renders the bottom hint line.
type StatusBar struct {
	theme *styles.Theme
}

// NewStatusBar builds the status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{theme: theme}
}

// View renders the hints for the given width.
func (b *StatusBar) View(hints []Hint, width int) string {
	t := b.theme

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = t.StatusKey.Render(h.Key) + " " + h.Desc
	}
	return t.StatusBar.Width(width).Render(strings.Join(parts, "  "))
}
