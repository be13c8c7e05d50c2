// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

package screens

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/n3t-labs/n3t-tui/internal/model"
	"github.com/n3t-labs/n3t-tui/internal/util"
)

// transactionsMsg carries a movement history fetch result.
type transactionsMsg struct {
	Gen int
	Txs []model.StockTransaction
	Err error
}

// Tracking is the movement history screen: the append-only transaction
// log with a direction filter.
type Tracking struct {
	deps   Deps
	width  int
	height int

	gen     int
	loading bool
	errMsg  string
	txs     []model.StockTransaction

	// filter is "", "in", or "out".
	filter model.TransactionType
	tbl    table.Model
}

// NewTracking builds the movement history screen.
func NewTracking(deps Deps) *Tracking {
	tbl := table.New(
		table.WithColumns(trackingColumns(80)),
		table.WithFocused(true),
	)
	tblStyles := table.DefaultStyles()
	tblStyles.Header = deps.Theme.TableHead
	tblStyles.Selected = deps.Theme.TableSel
	tbl.SetStyles(tblStyles)

	return &Tracking{deps: deps, tbl: tbl}
}

func trackingColumns(width int) []table.Column {
	noteWidth := width - 56
	if noteWidth < 12 {
		noteWidth = 12
	}
	return []table.Column{
		{Title: "Type", Width: 10},
		{Title: "Item", Width: 20},
		{Title: "Qty", Width: 6},
		{Title: "When", Width: 20},
		{Title: "Note", Width: noteWidth},
	}
}

// Init kicks off the initial fetch.
func (s *Tracking) Init() tea.Cmd {
	return s.fetch()
}

func (s *Tracking) fetch() tea.Cmd {
	s.gen++
	gen := s.gen
	s.loading = true
	s.errMsg = ""
	client := s.deps.Client
	return func() tea.Msg {
		txs, err := client.StockTransactions(context.Background())
		return transactionsMsg{Gen: gen, Txs: txs, Err: err}
	}
}

// Update handles messages.
func (s *Tracking) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case transactionsMsg:
		if msg.Gen != s.gen {
			return s, nil
		}
		s.loading = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			s.txs = nil
		} else {
			s.txs = msg.Txs
		}
		s.rebuildRows()
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "i":
			s.filter = model.TxIn
			s.rebuildRows()
			return s, nil
		case "o":
			s.filter = model.TxOut
			s.rebuildRows()
			return s, nil
		case "a":
			s.filter = ""
			s.rebuildRows()
			return s, nil
		case "r":
			return s, s.fetch()
		}
		var cmd tea.Cmd
		s.tbl, cmd = s.tbl.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Tracking) rebuildRows() {
	var rows []table.Row
	for _, tx := range s.txs {
		if s.filter != "" && tx.Type != s.filter {
			continue
		}
		rows = append(rows, table.Row{
			tx.Type.Label(),
			tx.ItemID,
			strconv.Itoa(tx.Quantity),
			tx.Timestamp,
			util.Truncate(tx.Note, 60),
		})
	}
	s.tbl.SetRows(rows)
	s.tbl.SetCursor(0)
}

// SetSize records the content area dimensions.
func (s *Tracking) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.tbl.SetColumns(trackingColumns(width))
	if height > 8 {
		s.tbl.SetHeight(height - 4)
	}
}

// View renders the screen.
func (s *Tracking) View() string {
	t := s.deps.Theme

	if s.loading {
		return t.EmptyState.Render("Loading movements...")
	}
	if s.errMsg != "" {
		return lipgloss.JoinVertical(lipgloss.Left,
			t.ErrorText.Render(s.errMsg),
			t.EmptyState.Render("Press r to retry."),
		)
	}

	label := "all"
	switch s.filter {
	case model.TxIn:
		label = "stock in"
	case model.TxOut:
		label = "stock out"
	}
	header := t.FormHint.Render("i in  o out  a all  r refresh") +
		"  " + t.FormLabel.Render("showing: "+label)

	if len(s.tbl.Rows()) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			t.EmptyState.Render("No movements recorded."),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, s.tbl.View())
}
