// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

package screens

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/n3t-labs/n3t-tui/internal/api"
	"github.com/n3t-labs/n3t-tui/internal/model"
)

// suppliersMsg carries a supplier list fetch result.
type suppliersMsg struct {
	Gen       int
	Suppliers []model.Supplier
	Err       error
}

// supplierSavedMsg carries the result of creating a supplier.
type supplierSavedMsg struct {
	Gen int
	Err error
}

// Suppliers is the vendor directory screen: a table plus a create form.
type Suppliers struct {
	deps   Deps
	width  int
	height int

	gen       int
	loading   bool
	errMsg    string
	suppliers []model.Supplier

	tbl     table.Model
	inForm  bool
	fields  []textinput.Model
	focus   int
	formErr string
}

var supplierFieldLabels = []string{"Name", "Contact", "Address"}

// NewSuppliers builds the vendor directory screen.
func NewSuppliers(deps Deps) *Suppliers {
	tbl := table.New(
		table.WithColumns(supplierColumns(80)),
		table.WithFocused(true),
	)
	tblStyles := table.DefaultStyles()
	tblStyles.Header = deps.Theme.TableHead
	tblStyles.Selected = deps.Theme.TableSel
	tbl.SetStyles(tblStyles)

	return &Suppliers{deps: deps, tbl: tbl}
}

func supplierColumns(width int) []table.Column {
	addrWidth := width - 48
	if addrWidth < 16 {
		addrWidth = 16
	}
	return []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Contact", Width: 20},
		{Title: "Address", Width: addrWidth},
	}
}

// Init kicks off the initial fetch.
func (s *Suppliers) Init() tea.Cmd {
	return s.fetch()
}

func (s *Suppliers) fetch() tea.Cmd {
	s.gen++
	gen := s.gen
	s.loading = true
	s.errMsg = ""
	client := s.deps.Client
	return func() tea.Msg {
		suppliers, err := client.Suppliers(context.Background())
		return suppliersMsg{Gen: gen, Suppliers: suppliers, Err: err}
	}
}

// Update handles messages.
func (s *Suppliers) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case suppliersMsg:
		if msg.Gen != s.gen {
			return s, nil
		}
		s.loading = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			s.suppliers = nil
		} else {
			s.suppliers = msg.Suppliers
		}
		s.rebuildRows()
		return s, nil

	case supplierSavedMsg:
		if msg.Gen != s.gen {
			return s, nil
		}
		if msg.Err != nil {
			s.formErr = msg.Err.Error()
			return s, nil
		}
		s.inForm = false
		return s, s.fetch()

	case tea.KeyMsg:
		if s.inForm {
			return s.updateForm(msg)
		}
		switch msg.String() {
		case "a":
			s.openForm()
			return s, textinput.Blink
		case "r":
			return s, s.fetch()
		}
		var cmd tea.Cmd
		s.tbl, cmd = s.tbl.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Suppliers) updateForm(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.inForm = false
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
		return s, s.submit()
	}
	var cmd tea.Cmd
	s.fields[s.focus], cmd = s.fields[s.focus].Update(msg)
	return s, cmd
}

func (s *Suppliers) openForm() {
	s.inForm = true
	s.formErr = ""
	s.fields = make([]textinput.Model, len(supplierFieldLabels))
	for i := range s.fields {
		in := textinput.New()
		in.CharLimit = 120
		s.fields[i] = in
	}
	s.setFocus(0)
}

func (s *Suppliers) setFocus(idx int) {
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

func (s *Suppliers) submit() tea.Cmd {
	name := strings.TrimSpace(s.fields[0].Value())
	if name == "" {
		s.formErr = "Name is required."
		return nil
	}

	gen := s.gen
	client := s.deps.Client
	req := api.SupplierRequest{
		Name:    name,
		Contact: strings.TrimSpace(s.fields[1].Value()),
		Address: strings.TrimSpace(s.fields[2].Value()),
	}
	return func() tea.Msg {
		_, err := client.CreateSupplier(context.Background(), req)
		return supplierSavedMsg{Gen: gen, Err: err}
	}
}

func (s *Suppliers) rebuildRows() {
	rows := make([]table.Row, len(s.suppliers))
	for i, sup := range s.suppliers {
		rows[i] = table.Row{sup.Name, sup.Contact, sup.Address}
	}
	s.tbl.SetRows(rows)
}

// SetSize records the content area dimensions.
func (s *Suppliers) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.tbl.SetColumns(supplierColumns(width))
	if height > 8 {
		s.tbl.SetHeight(height - 4)
	}
}

// View renders the screen.
func (s *Suppliers) View() string {
	t := s.deps.Theme

	if s.inForm {
		lines := []string{t.Title.Render("New supplier"), ""}
		for i, in := range s.fields {
			label := t.FormLabel.Render(fmt.Sprintf("%-8s", supplierFieldLabels[i]))
			if i == s.focus {
				label = t.FormFocused.Render(fmt.Sprintf("%-8s", supplierFieldLabels[i]))
			}
			lines = append(lines, label+" "+in.View())
		}
		if s.formErr != "" {
			lines = append(lines, "", t.FormError.Render(s.formErr))
		}
		lines = append(lines, "", t.FormHint.Render("enter save  tab next field  esc cancel"))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	if s.loading {
		return t.EmptyState.Render("Loading suppliers...")
	}
	if s.errMsg != "" {
		return lipgloss.JoinVertical(lipgloss.Left,
			t.ErrorText.Render(s.errMsg),
			t.EmptyState.Render("Press r to retry."),
		)
	}
	if len(s.suppliers) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			t.FormHint.Render("a add  r refresh"),
			t.EmptyState.Render("No suppliers yet."),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		t.FormHint.Render("a add  r refresh"),
		s.tbl.View(),
	)
}
