// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

package screens

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/n3t-labs/n3t-tui/internal/api"
	"github.com/n3t-labs/n3t-tui/internal/model"
	"github.com/n3t-labs/n3t-tui/internal/util"
)

// itemsMsg carries an item list fetch result.
type itemsMsg struct {
	Gen   int
	Items []model.Item
	Err   error
}

// itemSavedMsg carries the result of a create, update, or delete.
type itemSavedMsg struct {
	Gen int
	Err error
}

type itemsMode int

const (
	itemsList itemsMode = iota
	itemsFilter
	itemsForm
)

// Items is the catalog screen: a filterable table with create, edit,
// and delete.
type Items struct {
	deps   Deps
	width  int
	height int

	gen     int
	loading bool
	errMsg  string
	items   []model.Item

	mode    itemsMode
	tbl     table.Model
	filter  textinput.Model
	visible []model.Item

	// Form state. editID is empty for a create.
	editID  string
	fields  []textinput.Model
	focus   int
	formErr string
}

var itemFieldLabels = []string{"Name", "SKU", "Quantity", "Unit", "Price", "Category"}

// NewItems builds the catalog screen.
func NewItems(deps Deps) *Items {
	filter := textinput.New()
	filter.Placeholder = "filter by name, SKU, or category"
	filter.CharLimit = 64

	tbl := table.New(
		table.WithColumns(itemColumns(80)),
		table.WithFocused(true),
	)
	tblStyles := table.DefaultStyles()
	tblStyles.Header = deps.Theme.TableHead
	tblStyles.Selected = deps.Theme.TableSel
	tbl.SetStyles(tblStyles)

	return &Items{deps: deps, tbl: tbl, filter: filter}
}

func itemColumns(width int) []table.Column {
	nameWidth := width - 52
	if nameWidth < 16 {
		nameWidth = 16
	}
	return []table.Column{
		{Title: "Name", Width: nameWidth},
		{Title: "SKU", Width: 10},
		{Title: "Qty", Width: 6},
		{Title: "Unit", Width: 6},
		{Title: "Price", Width: 14},
		{Title: "Category", Width: 12},
	}
}

// Init kicks off the initial fetch.
func (s *Items) Init() tea.Cmd {
	return s.fetch()
}

func (s *Items) fetch() tea.Cmd {
	s.gen++
	gen := s.gen
	s.loading = true
	s.errMsg = ""
	client := s.deps.Client
	return func() tea.Msg {
		items, err := client.Items(context.Background())
		return itemsMsg{Gen: gen, Items: items, Err: err}
	}
}

// Update handles messages.
func (s *Items) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case itemsMsg:
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
		s.applyFilter()
		return s, nil

	case itemSavedMsg:
		if msg.Gen != s.gen {
			return s, nil
		}
		if msg.Err != nil {
			s.formErr = msg.Err.Error()
			return s, nil
		}
		s.mode = itemsList
		return s, s.fetch()

	case tea.KeyMsg:
		switch s.mode {
		case itemsFilter:
			return s.updateFilter(msg)
		case itemsForm:
			return s.updateForm(msg)
		default:
			return s.updateList(msg)
		}
	}
	return s, nil
}

func (s *Items) updateList(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case "/":
		s.mode = itemsFilter
		s.filter.Focus()
		return s, textinput.Blink
	case "a":
		s.openForm(nil)
		return s, textinput.Blink
	case "e":
		if item := s.selected(); item != nil {
			s.openForm(item)
			return s, textinput.Blink
		}
	case "d":
		if item := s.selected(); item != nil {
			return s, s.deleteItem(item.ID)
		}
	case "r":
		return s, s.fetch()
	}

	var cmd tea.Cmd
	s.tbl, cmd = s.tbl.Update(msg)
	return s, cmd
}

func (s *Items) updateFilter(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		s.mode = itemsList
		s.filter.Blur()
		return s, nil
	}
	var cmd tea.Cmd
	s.filter, cmd = s.filter.Update(msg)
	s.applyFilter()
	return s, cmd
}

func (s *Items) updateForm(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.mode = itemsList
		return s, nil
	case "tab", "down":
		s.setFocus(s.focus + 1)
		return s, textinput.Blink
	case "shift+tab", "up":
		s.setFocus(s.focus - 1)
		return s, textinput.Blink
	case "enter":
		if s.focus < len(s.fields)-1 {
			s.setFocus(s.focus + 1)
			return s, textinput.Blink
		}
		return s, s.submitForm()
	}
	var cmd tea.Cmd
	s.fields[s.focus], cmd = s.fields[s.focus].Update(msg)
	return s, cmd
}

// openForm prepares the form, prefilled when editing.
func (s *Items) openForm(item *model.Item) {
	s.mode = itemsForm
	s.formErr = ""
	s.editID = ""
	s.fields = make([]textinput.Model, len(itemFieldLabels))
	values := []string{"", "", "", "", "", ""}
	if item != nil {
		s.editID = item.ID
		values = []string{
			item.Name, item.SKU,
			strconv.Itoa(item.Quantity), item.Unit,
			strconv.FormatFloat(item.Price, 'f', -1, 64), item.Category,
		}
	}
	for i := range s.fields {
		in := textinput.New()
		in.CharLimit = 64
		in.SetValue(values[i])
		s.fields[i] = in
	}
	s.setFocus(0)
}

func (s *Items) setFocus(idx int) {
	if idx < 0 {
		idx = len(s.fields) - 1
	}
	if idx >= len(s.fields) {
		idx = 0
	}
	s.focus = idx
	for i := range s.fields {
		if i == idx {
			s.fields[i].Focus()
		} else {
			s.fields[i].Blur()
		}
	}
}

func (s *Items) submitForm() tea.Cmd {
	name := strings.TrimSpace(s.fields[0].Value())
	sku := strings.TrimSpace(s.fields[1].Value())
	if name == "" || sku == "" {
		s.formErr = "Name and SKU are required."
		return nil
	}
	qty, err := strconv.Atoi(strings.TrimSpace(s.fields[2].Value()))
	if err != nil || qty < 0 {
		s.formErr = "Quantity must be a non-negative number."
		return nil
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(s.fields[4].Value()), 64)
	if err != nil || price < 0 {
		s.formErr = "Price must be a non-negative number."
		return nil
	}
	unit := strings.TrimSpace(s.fields[3].Value())
	category := strings.TrimSpace(s.fields[5].Value())

	gen := s.gen
	client := s.deps.Client
	if s.editID == "" {
		req := api.ItemRequest{
			Name: name, SKU: sku, Quantity: qty,
			Unit: unit, Price: price, Category: category,
		}
		return func() tea.Msg {
			_, err := client.CreateItem(context.Background(), req)
			return itemSavedMsg{Gen: gen, Err: err}
		}
	}

	id := s.editID
	patch := api.ItemPatch{
		Name: &name, SKU: &sku, Quantity: &qty,
		Unit: &unit, Price: &price, Category: &category,
	}
	return func() tea.Msg {
		_, err := client.UpdateItem(context.Background(), id, patch)
		return itemSavedMsg{Gen: gen, Err: err}
	}
}

func (s *Items) deleteItem(id string) tea.Cmd {
	gen := s.gen
	client := s.deps.Client
	return func() tea.Msg {
		err := client.DeleteItem(context.Background(), id)
		return itemSavedMsg{Gen: gen, Err: err}
	}
}

// selected returns the item under the table cursor.
func (s *Items) selected() *model.Item {
	idx := s.tbl.Cursor()
	if idx < 0 || idx >= len(s.visible) {
		return nil
	}
	return &s.visible[idx]
}

// applyFilter recomputes visible rows from the filter text. Filtering is
// client-side only; the fetched list is the source of truth.
func (s *Items) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(s.filter.Value()))
	s.visible = s.visible[:0]
	for _, item := range s.items {
		if query == "" ||
			strings.Contains(strings.ToLower(item.Name), query) ||
			strings.Contains(strings.ToLower(item.SKU), query) ||
			strings.Contains(strings.ToLower(item.Category), query) {
			s.visible = append(s.visible, item)
		}
	}

	rows := make([]table.Row, len(s.visible))
	for i, item := range s.visible {
		qty := strconv.Itoa(item.Quantity)
		if item.LowStock(s.deps.LowStockThreshold) {
			qty += " !"
		}
		rows[i] = table.Row{
			item.Name, item.SKU, qty, item.Unit,
			util.FormatMoney(item.Price), item.Category,
		}
	}
	s.tbl.SetRows(rows)
}

// SetSize records the content area dimensions.
func (s *Items) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.tbl.SetColumns(itemColumns(width))
	if height > 8 {
		s.tbl.SetHeight(height - 6)
	}
}

// View renders the screen.
func (s *Items) View() string {
	t := s.deps.Theme

	if s.mode == itemsForm {
		return s.formView()
	}
	if s.loading {
		return t.EmptyState.Render("Loading items...")
	}
	if s.errMsg != "" {
		return lipgloss.JoinVertical(lipgloss.Left,
			t.ErrorText.Render(s.errMsg),
			t.EmptyState.Render("Press r to retry."),
		)
	}

	header := t.FormHint.Render("a add  e edit  d delete  / filter  r refresh")
	if s.mode == itemsFilter || s.filter.Value() != "" {
		header = t.FormLabel.Render("Filter: ") + s.filter.View()
	}
	if len(s.visible) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			t.EmptyState.Render("No items found."),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, s.tbl.View())
}

func (s *Items) formView() string {
	t := s.deps.Theme

	title := "New item"
	if s.editID != "" {
		title = "Edit item"
	}
	lines := []string{t.Title.Render(title), ""}
	for i, in := range s.fields {
		label := t.FormLabel.Render(fmt.Sprintf("%-10s", itemFieldLabels[i]))
		if i == s.focus {
			label = t.FormFocused.Render(fmt.Sprintf("%-10s", itemFieldLabels[i]))
		}
		lines = append(lines, label+" "+in.View())
	}
	if s.formErr != "" {
		lines = append(lines, "", t.FormError.Render(s.formErr))
	}
	lines = append(lines, "", t.FormHint.Render("enter save  tab next field  esc cancel"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
