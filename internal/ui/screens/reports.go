// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

package screens

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/n3t-labs/n3t-tui/internal/model"
	"github.com/n3t-labs/n3t-tui/internal/util"
)

// reportsMsg carries the snapshots the report charts are built from.
type reportsMsg struct {
	Gen          int
	Items        []model.Item
	Transactions []model.StockTransaction
	Err          error
}

// Reports renders terminal bar charts: stock value by category, the weekly
// in/out movement trend, and the low-stock list. Charts are computed
// client-side from the fetched snapshots.
type Reports struct {
	deps   Deps
	width  int
	height int

	gen     int
	loading bool
	errMsg  string
	items   []model.Item
	txs     []model.StockTransaction
}

// NewReports builds the reports screen.
func NewReports(deps Deps) *Reports {
	return &Reports{deps: deps}
}

// Init kicks off the initial fetch.
func (s *Reports) Init() tea.Cmd {
	return s.fetch()
}

func (s *Reports) fetch() tea.Cmd {
	s.gen++
	gen := s.gen
	s.loading = true
	s.errMsg = ""
	client := s.deps.Client
	return func() tea.Msg {
		items, err := client.Items(context.Background())
		if err != nil {
			return reportsMsg{Gen: gen, Err: err}
		}
		txs, err := client.StockTransactions(context.Background())
		return reportsMsg{Gen: gen, Items: items, Transactions: txs, Err: err}
	}
}

// Update handles messages.
func (s *Reports) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsMsg:
		if msg.Gen != s.gen {
			return s, nil
		}
		s.loading = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			s.items = nil
			s.txs = nil
		} else {
			s.items = msg.Items
			s.txs = msg.Transactions
		}
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			return s, s.fetch()
		}
	}
	return s, nil
}

// SetSize records the content area dimensions.
func (s *Reports) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// View renders the screen.
func (s *Reports) View() string {
	t := s.deps.Theme

	if s.loading {
		return t.EmptyState.Render("Building reports...")
	}
	if s.errMsg != "" {
		return lipgloss.JoinVertical(lipgloss.Left,
			t.ErrorText.Render(s.errMsg),
			t.EmptyState.Render("Press r to retry."),
		)
	}
	if len(s.items) == 0 {
		return t.EmptyState.Render("No data to report on yet.")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.categoryChart(),
		"",
		s.trendChart(),
		"",
		s.lowStockList(),
		"",
		t.FormHint.Render("r refresh"),
	)
}

// categoryChart renders stock value per category as horizontal bars.
func (s *Reports) categoryChart() string {
	t := s.deps.Theme

	totals := map[string]float64{}
	for _, item := range s.items {
		cat := item.Category
		if cat == "" {
			cat = "uncategorized"
		}
		totals[cat] += item.Value()
	}

	cats := make([]string, 0, len(totals))
	var max float64
	for cat, v := range totals {
		cats = append(cats, cat)
		if v > max {
			max = v
		}
	}
	sort.Slice(cats, func(i, j int) bool { return totals[cats[i]] > totals[cats[j]] })

	barSpace := s.width - 46
	if barSpace < 10 {
		barSpace = 10
	}

	var b strings.Builder
	b.WriteString(t.CardTitle.Render("Stock value by category"))
	b.WriteString("\n")
	for _, cat := range cats {
		barLen := 0
		if max > 0 {
			barLen = int(totals[cat] / max * float64(barSpace))
		}
		if barLen < 1 {
			barLen = 1
		}
		bar := t.Spinner.Render(strings.Repeat("█", barLen))
		b.WriteString(fmt.Sprintf("%-16s %s %s\n",
			util.Truncate(cat, 16), bar, util.FormatMoney(totals[cat])))
	}
	return b.String()
}

// trendChart renders the in/out movement volumes for the last seven days.
func (s *Reports) trendChart() string {
	t := s.deps.Theme

	const days = 7
	today := time.Now().Truncate(24 * time.Hour)
	in := make([]int, days)
	out := make([]int, days)
	var max int
	for _, tx := range s.txs {
		ts := tx.Time()
		if ts.IsZero() {
			continue
		}
		offset := int(today.Sub(ts.Truncate(24*time.Hour)).Hours() / 24)
		if offset < 0 || offset >= days {
			continue
		}
		day := days - 1 - offset
		if tx.Type == model.TxIn {
			in[day] += tx.Quantity
		} else {
			out[day] += tx.Quantity
		}
		if in[day] > max {
			max = in[day]
		}
		if out[day] > max {
			max = out[day]
		}
	}

	barSpace := (s.width - 30) / 2
	if barSpace < 8 {
		barSpace = 8
	}

	var b strings.Builder
	b.WriteString(t.CardTitle.Render("Stock movement (last 7 days)"))
	b.WriteString("\n")
	if max == 0 {
		b.WriteString(t.EmptyState.Render("No movement in the last week."))
		return b.String()
	}
	for day := 0; day < days; day++ {
		date := today.AddDate(0, 0, day-(days-1))
		b.WriteString(fmt.Sprintf("%s  %s %s%s %s\n",
			date.Format("Mon 02"),
			t.BadgeIn.Render(bar(in[day], max, barSpace)),
			util.PadRight("", barSpace-barWidth(in[day], max, barSpace)),
			t.BadgeOut.Render(bar(out[day], max, barSpace)),
			fmt.Sprintf("in %s / out %s", util.FormatCount(in[day]), util.FormatCount(out[day]))))
	}
	return b.String()
}

func barWidth(v, max, space int) int {
	if max == 0 || v == 0 {
		return 0
	}
	w := v * space / max
	if w < 1 {
		w = 1
	}
	return w
}

func bar(v, max, space int) string {
	return strings.Repeat("█", barWidth(v, max, space))
}

// lowStockList renders the items at or below the low-stock threshold.
func (s *Reports) lowStockList() string {
	t := s.deps.Theme

	var low []model.Item
	for _, item := range s.items {
		if item.LowStock(s.deps.LowStockThreshold) {
			low = append(low, item)
		}
	}
	sort.Slice(low, func(i, j int) bool { return low[i].Quantity < low[j].Quantity })

	var b strings.Builder
	b.WriteString(t.CardTitle.Render(fmt.Sprintf("Low stock (threshold %d)", s.deps.LowStockThreshold)))
	b.WriteString("\n")
	if len(low) == 0 {
		b.WriteString(t.EmptyState.Render("Nothing is running low."))
		return b.String()
	}
	for _, item := range low {
		b.WriteString(fmt.Sprintf("%s %-30s %d %s\n",
			t.BadgeLowStock.Render("[!]"),
			util.Truncate(item.Name, 30), item.Quantity, item.Unit))
	}
	return b.String()
}
