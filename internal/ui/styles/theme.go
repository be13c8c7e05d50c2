// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all styled components for the application. One instance is
// created at startup and shared by every screen.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// SHELL CHROME
	// ==========================================================================

	App       lipgloss.Style
	Header    lipgloss.Style
	Brand     lipgloss.Style
	Title     lipgloss.Style
	UserBadge lipgloss.Style
	StatusBar lipgloss.Style
	StatusKey lipgloss.Style

	// ==========================================================================
	// SIDEBAR
	// ==========================================================================

	Sidebar       lipgloss.Style
	NavItem       lipgloss.Style
	NavItemActive lipgloss.Style

	// ==========================================================================
	// CONTENT
	// ==========================================================================

	Card       lipgloss.Style
	CardTitle  lipgloss.Style
	CardValue  lipgloss.Style
	TableHead  lipgloss.Style
	TableRow   lipgloss.Style
	TableSel   lipgloss.Style
	EmptyState lipgloss.Style
	ErrorText  lipgloss.Style
	Spinner    lipgloss.Style

	// Badges
	BadgeLowStock lipgloss.Style
	BadgeIn       lipgloss.Style
	BadgeOut      lipgloss.Style

	// ==========================================================================
	// FORMS
	// ==========================================================================

	FormLabel   lipgloss.Style
	FormInput   lipgloss.Style
	FormFocused lipgloss.Style
	FormError   lipgloss.Style
	FormHint    lipgloss.Style

	// ==========================================================================
	// CHAT
	// ==========================================================================

	ChatPanel   lipgloss.Style
	ChatTitle   lipgloss.Style
	ThreadItem  lipgloss.Style
	ThreadSel   lipgloss.Style
	UserBubble  lipgloss.Style
	BotBubble   lipgloss.Style
	ChatPending lipgloss.Style
}

// NewTheme creates a theme, detecting terminal capabilities.
func NewTheme() *Theme {
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		ColorProfile: termenv.ColorProfile(),
	}
	t.initStyles()
	return t
}

// SetDarkMode forces the light/dark palette regardless of what the
// terminal reports. The persisted preference wins over detection.
func (t *Theme) SetDarkMode(dark bool) {
	t.IsDark = dark
	lipgloss.DefaultRenderer().SetHasDarkBackground(dark)
	t.initStyles()
}

func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle()

	// Shell chrome
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)
	t.Brand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Teal)
	t.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)
	t.UserBadge = lipgloss.NewStyle().
		Foreground(TextSecondary)
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextMuted).
		Padding(0, 1)
	t.StatusKey = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		Background(SurfaceDim).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(Overlay).
		Padding(1, 1)
	t.NavItem = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)
	t.NavItemActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Teal).
		Bold(true).
		Padding(0, 1)

	// Content
	t.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 2)
	t.CardTitle = lipgloss.NewStyle().
		Foreground(TextSecondary)
	t.CardValue = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)
	t.TableHead = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay)
	t.TableRow = lipgloss.NewStyle().
		Foreground(TextPrimary)
	t.TableSel = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SelectionBg).
		Bold(true)
	t.EmptyState = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		Padding(1, 2)
	t.ErrorText = lipgloss.NewStyle().
		Foreground(Rose)
	t.Spinner = lipgloss.NewStyle().
		Foreground(Teal)

	t.BadgeLowStock = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)
	t.BadgeIn = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)
	t.BadgeOut = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	// Forms
	t.FormLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)
	t.FormInput = lipgloss.NewStyle().
		Foreground(TextPrimary)
	t.FormFocused = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)
	t.FormError = lipgloss.NewStyle().
		Foreground(Rose)
	t.FormHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Chat
	t.ChatPanel = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.ChatTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo)
	t.ThreadItem = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)
	t.ThreadSel = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Indigo).
		Padding(0, 1)
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1).
		MarginLeft(4)
	t.BotBubble = lipgloss.NewStyle().
		Foreground(BotBubbleFg).
		Background(BotBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(BotBubbleBorder).
		Padding(0, 1).
		MarginRight(4)
	t.ChatPending = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)
}

// SetSize records the terminal dimensions for layout decisions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// LayoutMode describes how much horizontal room the shell has.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // sidebar hidden
	LayoutNormal                   // sidebar collapsed to icons
	LayoutWide                     // full sidebar
)

// GetLayoutMode returns the layout mode for the current width.
func (t *Theme) GetLayoutMode() LayoutMode {
	switch {
	case t.Width < 70:
		return LayoutNarrow
	case t.Width < 110:
		return LayoutNormal
	default:
		return LayoutWide
	}
}
