// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

package screens

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/n3t-labs/n3t-tui/internal/model"
)

// registerResultMsg carries a signup attempt result.
type registerResultMsg struct {
	Gen   int
	User  model.User
	Token string
	Err   error
}

// Register is the account creation screen. A successful signup signs the
// user in directly.
type Register struct {
	deps   Deps
	width  int
	height int

	fields []textinput.Model // name, email, password, confirm
	focus  int
	gen    int
	busy   bool
	errMsg string
}

var registerFieldLabels = []string{"Name    ", "Email   ", "Password", "Confirm "}

// NewRegister builds the signup screen.
func NewRegister(deps Deps) *Register {
	fields := make([]textinput.Model, 4)
	for i := range fields {
		in := textinput.New()
		in.CharLimit = 128
		if i >= 2 {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		fields[i] = in
	}
	fields[0].Focus()
	return &Register{deps: deps, fields: fields}
}

// Init starts the cursor blink.
func (s *Register) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (s *Register) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case registerResultMsg:
		if msg.Gen != s.gen {
			return s, nil
		}
		s.busy = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		user, token := msg.User, msg.Token
		return s, func() tea.Msg {
			return AuthSuccessMsg{User: user, Token: token}
		}

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		switch msg.String() {
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
		case "ctrl+l":
			return s, Navigate(RouteLogin)
		}
		var cmd tea.Cmd
		s.fields[s.focus], cmd = s.fields[s.focus].Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Register) setFocus(idx int) {
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

func (s *Register) submit() tea.Cmd {
	name := strings.TrimSpace(s.fields[0].Value())
	email := strings.TrimSpace(s.fields[1].Value())
	password := s.fields[2].Value()
	confirm := s.fields[3].Value()

	switch {
	case name == "" || email == "" || password == "":
		s.errMsg = "All fields are required."
		return nil
	case !strings.Contains(email, "@"):
		s.errMsg = "That does not look like an email address."
		return nil
	case len(password) < 8:
		s.errMsg = "Password must be at least 8 characters."
		return nil
	case password != confirm:
		s.errMsg = "Passwords do not match."
		return nil
	}

	s.gen++
	gen := s.gen
	s.busy = true
	s.errMsg = ""
	client := s.deps.Client
	return func() tea.Msg {
		resp, err := client.Register(context.Background(), email, password, name)
		return registerResultMsg{Gen: gen, User: resp.User, Token: resp.Token, Err: err}
	}
}

// SetSize records the content area dimensions.
func (s *Register) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// View renders the screen.
func (s *Register) View() string {
	t := s.deps.Theme

	lines := []string{
		t.Brand.Render("n3t") + " " + t.Title.Render("Create account"),
		"",
	}
	for i, in := range s.fields {
		label := t.FormLabel.Render(registerFieldLabels[i])
		if i == s.focus {
			label = t.FormFocused.Render(registerFieldLabels[i])
		}
		lines = append(lines, label+" "+in.View())
	}
	if s.busy {
		lines = append(lines, "", t.ChatPending.Render("Creating account..."))
	}
	if s.errMsg != "" {
		lines = append(lines, "", t.FormError.Render(s.errMsg))
	}
	lines = append(lines, "", t.FormHint.Render("enter submit  ctrl+l back to sign in"))

	form := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, form)
}
