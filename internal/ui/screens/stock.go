// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

package screens

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/n3t-labs/n3t-tui/internal/api"
	"github.com/n3t-labs/n3t-tui/internal/model"
)

// stockItemsMsg carries the item list used by the picker.
type stockItemsMsg struct {
	Gen   int
	Items []model.Item
	Err   error
}

// stockSavedMsg carries the result of recording a movement.
type stockSavedMsg struct {
	Gen int
	Tx  model.StockTransaction
	Err error
}

// Stock is the movement entry screen: pick an item, a direction, a
// quantity, and an optional note, then record the transaction.
type Stock struct {
	deps   Deps
	width  int
	height int

	gen     int
	loading bool
	errMsg  string
	items   []model.Item

	cursor  int // selected item index
	txType  model.TransactionType
	qty     textinput.Model
	note    textinput.Model
	focus   int // 0 = item picker, 1 = quantity, 2 = note
	formErr string
	savedTx *model.StockTransaction
}

// NewStock builds the movement entry screen.
func NewStock(deps Deps) *Stock {
	qty := textinput.New()
	qty.Placeholder = "quantity"
	qty.CharLimit = 8

	note := textinput.New()
	note.Placeholder = "note (optional)"
	note.CharLimit = 120

	return &Stock{deps: deps, txType: model.TxIn, qty: qty, note: note}
}

// Init fetches the items for the picker.
func (s *Stock) Init() tea.Cmd {
	return s.fetch()
}

func (s *Stock) fetch() tea.Cmd {
	s.gen++
	gen := s.gen
	s.loading = true
	s.errMsg = ""
	client := s.deps.Client
	return func() tea.Msg {
		items, err := client.Items(context.Background())
		return stockItemsMsg{Gen: gen, Items: items, Err: err}
	}
}

// Update handles messages.
func (s *Stock) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case stockItemsMsg:
		if msg.Gen != s.gen {
			return s, nil
		}
		s.loading = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			s.items = nil
		} else {
			s.items = msg.Items
		}
		if s.cursor >= len(s.items) {
			s.cursor = 0
		}
		return s, nil

	case stockSavedMsg:
		if msg.Gen != s.gen {
			return s, nil
		}
		if msg.Err != nil {
			s.formErr = msg.Err.Error()
			return s, nil
		}
		s.savedTx = &msg.Tx
		s.formErr = ""
		s.qty.SetValue("")
		s.note.SetValue("")
		// Quantities changed server-side; refresh the picker.
		return s, s.fetch()

	case tea.KeyMsg:
		return s.updateKeys(msg)
	}
	return s, nil
}

func (s *Stock) updateKeys(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case "tab":
		s.setFocus(s.focus + 1)
		return s, textinput.Blink
	case "shift+tab":
		s.setFocus(s.focus - 1)
		return s, textinput.Blink
	case "ctrl+t":
		s.toggleType()
		return s, nil
	case "enter":
		return s, s.submit()
	}

	switch s.focus {
	case 0:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.items)-1 {
				s.cursor++
			}
		case "i":
			s.txType = model.TxIn
		case "o":
			s.txType = model.TxOut
		case "r":
			return s, s.fetch()
		}
		return s, nil
	case 1:
		var cmd tea.Cmd
		s.qty, cmd = s.qty.Update(msg)
		return s, cmd
	default:
		var cmd tea.Cmd
		s.note, cmd = s.note.Update(msg)
		return s, cmd
	}
}

func (s *Stock) toggleType() {
	if s.txType == model.TxIn {
		s.txType = model.TxOut
	} else {
		s.txType = model.TxIn
	}
}

func (s *Stock) setFocus(idx int) {
	if idx < 0 {
		idx = 2
	}
	if idx > 2 {
		idx = 0
	}
	s.focus = idx
	s.qty.Blur()
	s.note.Blur()
	switch idx {
	case 1:
		s.qty.Focus()
	case 2:
		s.note.Focus()
	}
}

func (s *Stock) submit() tea.Cmd {
	s.savedTx = nil
	if s.cursor >= len(s.items) {
		s.formErr = "Pick an item first."
		return nil
	}
	item := s.items[s.cursor]

	qty, err := strconv.Atoi(strings.TrimSpace(s.qty.Value()))
	if err != nil || qty <= 0 {
		s.formErr = "Quantity must be a positive number."
		return nil
	}
	if s.txType == model.TxOut && qty > item.Quantity {
		s.formErr = fmt.Sprintf("Only %d %s in stock.", item.Quantity, item.Unit)
		return nil
	}

	s.formErr = ""
	gen := s.gen
	client := s.deps.Client
	req := api.TransactionRequest{
		Type:     s.txType,
		ItemID:   item.ID,
		Quantity: qty,
		Note:     strings.TrimSpace(s.note.Value()),
	}
	return func() tea.Msg {
		tx, err := client.CreateStockTransaction(context.Background(), req)
		return stockSavedMsg{Gen: gen, Tx: tx, Err: err}
	}
}

// SetSize records the content area dimensions.
func (s *Stock) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// View renders the screen.
func (s *Stock) View() string {
	t := s.deps.Theme

	if s.loading {
		return t.EmptyState.Render("Loading items...")
	}
	if s.errMsg != "" {
		return lipgloss.JoinVertical(lipgloss.Left,
			t.ErrorText.Render(s.errMsg),
			t.EmptyState.Render("Press r to retry."),
		)
	}
	if len(s.items) == 0 {
		return t.EmptyState.Render("No items in the catalog yet. Add one on the Items screen.")
	}

	typeBadge := t.BadgeIn.Render("STOCK IN")
	if s.txType == model.TxOut {
		typeBadge = t.BadgeOut.Render("STOCK OUT")
	}

	lines := []string{
		t.Title.Render("Record movement") + "  " + typeBadge +
			"  " + t.FormHint.Render("ctrl+t toggle direction"),
		"",
	}

	// Item picker
	visibleFrom := 0
	const pickerRows = 8
	if s.cursor >= pickerRows {
		visibleFrom = s.cursor - pickerRows + 1
	}
	for i := visibleFrom; i < len(s.items) && i < visibleFrom+pickerRows; i++ {
		item := s.items[i]
		line := fmt.Sprintf("%-30s %5d %s", item.Name, item.Quantity, item.Unit)
		if i == s.cursor {
			line = t.TableSel.Render("> " + line)
		} else {
			line = t.TableRow.Render("  " + line)
		}
		lines = append(lines, line)
	}

	qtyLabel := t.FormLabel.Render("Quantity")
	noteLabel := t.FormLabel.Render("Note    ")
	switch s.focus {
	case 1:
		qtyLabel = t.FormFocused.Render("Quantity")
	case 2:
		noteLabel = t.FormFocused.Render("Note    ")
	}
	lines = append(lines, "",
		qtyLabel+" "+s.qty.View(),
		noteLabel+" "+s.note.View(),
	)

	if s.formErr != "" {
		lines = append(lines, "", t.FormError.Render(s.formErr))
	}
	if s.savedTx != nil {
		lines = append(lines, "", t.BadgeIn.Render("[OK]")+" Movement recorded.")
	}
	lines = append(lines, "", t.FormHint.Render("enter record  tab next field  r refresh items"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
