// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

package screens

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/n3t-labs/n3t-tui/internal/model"
	"github.com/n3t-labs/n3t-tui/internal/telemetry"
	"github.com/n3t-labs/n3t-tui/internal/util"
)

// statsMsg carries a dashboard fetch result. Gen guards against stale
// responses landing after a refresh.
type statsMsg struct {
	Gen   int
	Stats model.DashboardStats
	Err   error
}

// activityMsg carries the local activity log snapshot.
type activityMsg struct {
	Gen     int
	Entries []telemetry.Entry
}

// Dashboard is the overview screen: stat cards, the recent movement
// list, and the local activity footer.
type Dashboard struct {
	deps   Deps
	width  int
	height int

	gen     int
	loading bool
	errMsg  string
	stats   model.DashboardStats

	activity []telemetry.Entry
	spin     spinner.Model
}

// NewDashboard builds the dashboard screen.
func NewDashboard(deps Deps) *Dashboard {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = deps.Theme.Spinner
	return &Dashboard{deps: deps, spin: sp}
}

// Init kicks off the initial fetch.
func (d *Dashboard) Init() tea.Cmd {
	return tea.Batch(d.fetch(), d.fetchActivity(), d.spin.Tick)
}

func (d *Dashboard) fetch() tea.Cmd {
	d.gen++
	gen := d.gen
	d.loading = true
	d.errMsg = ""
	client := d.deps.Client
	return func() tea.Msg {
		stats, err := client.DashboardStats(context.Background())
		return statsMsg{Gen: gen, Stats: stats, Err: err}
	}
}

func (d *Dashboard) fetchActivity() tea.Cmd {
	gen := d.gen
	store := d.deps.Activity
	return func() tea.Msg {
		if store == nil {
			return activityMsg{Gen: gen}
		}
		entries, err := store.Recent(5)
		if err != nil {
			return activityMsg{Gen: gen}
		}
		return activityMsg{Gen: gen, Entries: entries}
	}
}

// Update handles messages.
func (d *Dashboard) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsMsg:
		if msg.Gen != d.gen {
			return d, nil
		}
		d.loading = false
		if msg.Err != nil {
			d.errMsg = msg.Err.Error()
			d.stats = model.DashboardStats{}
			return d, nil
		}
		d.stats = msg.Stats
		return d, nil

	case activityMsg:
		d.activity = msg.Entries
		return d, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		d.spin, cmd = d.spin.Update(msg)
		return d, cmd

	case tea.KeyMsg:
		if msg.String() == "r" {
			return d, tea.Batch(d.fetch(), d.fetchActivity())
		}
	}
	return d, nil
}

// SetSize records the content area dimensions.
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the screen.
func (d *Dashboard) View() string {
	t := d.deps.Theme

	if d.loading {
		return t.EmptyState.Render(d.spin.View() + " Loading dashboard...")
	}
	if d.errMsg != "" {
		return lipgloss.JoinVertical(lipgloss.Left,
			t.ErrorText.Render(d.errMsg),
			t.EmptyState.Render("Press r to retry."),
		)
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		d.card("Total items", util.FormatCount(d.stats.TotalItems)),
		" ",
		d.card("Low stock", util.FormatCount(d.stats.LowStockCount)),
		" ",
		d.card("Stock value", util.FormatMoney(d.stats.TotalValue)),
	)

	sections := []string{cards, "", d.recentView()}
	if footer := d.activityView(); footer != "" {
		sections = append(sections, "", footer)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (d *Dashboard) card(title, value string) string {
	t := d.deps.Theme
	body := lipgloss.JoinVertical(lipgloss.Left,
		t.CardTitle.Render(title),
		t.CardValue.Render(value),
	)
	return t.Card.Render(body)
}

func (d *Dashboard) recentView() string {
	t := d.deps.Theme
	if len(d.stats.RecentTransactions) == 0 {
		return t.EmptyState.Render("No recent movements.")
	}

	var b strings.Builder
	b.WriteString(t.CardTitle.Render("Recent movements"))
	b.WriteString("\n")
	for _, tx := range d.stats.RecentTransactions {
		badge := t.BadgeIn.Render("IN ")
		if tx.Type == model.TxOut {
			badge = t.BadgeOut.Render("OUT")
		}
		line := fmt.Sprintf("%s  %s x%d  %s",
			badge, tx.ItemID, tx.Quantity, t.UserBadge.Render(tx.Timestamp))
		if tx.Note != "" {
			line += "  " + t.FormHint.Render(util.Truncate(tx.Note, 40))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (d *Dashboard) activityView() string {
	if len(d.activity) == 0 {
		return ""
	}
	t := d.deps.Theme

	var b strings.Builder
	b.WriteString(t.CardTitle.Render("Local activity"))
	b.WriteString("\n")
	for _, e := range d.activity {
		status := t.BadgeIn.Render("ok")
		if !e.OK {
			status = t.BadgeOut.Render("fail")
		}
		b.WriteString(fmt.Sprintf("%s  %s  %dms  %s\n",
			status, e.Resource, e.DurationMS,
			t.UserBadge.Render(e.At.Format(time.Kitchen))))
	}
	return b.String()
}
