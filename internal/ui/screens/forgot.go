// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

package screens

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// forgotResultMsg carries a password reset request result.
type forgotResultMsg struct {
	Gen int
	Err error
}

// Forgot is the password reset request screen.
type Forgot struct {
	deps   Deps
	width  int
	height int

	email  textinput.Model
	gen    int
	busy   bool
	sent   bool
	errMsg string
}

// NewForgot builds the password reset screen.
func NewForgot(deps Deps) *Forgot {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128
	email.Focus()
	return &Forgot{deps: deps, email: email}
}

// Init starts the cursor blink.
func (s *Forgot) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (s *Forgot) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case forgotResultMsg:
		if msg.Gen != s.gen {
			return s, nil
		}
		s.busy = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.sent = true
		return s, nil

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		switch msg.String() {
		case "enter":
			return s, s.submit()
		case "ctrl+l", "esc":
			return s, Navigate(RouteLogin)
		}
		var cmd tea.Cmd
		s.email, cmd = s.email.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Forgot) submit() tea.Cmd {
	email := strings.TrimSpace(s.email.Value())
	if email == "" {
		s.errMsg = "Enter the email you signed up with."
		return nil
	}

	s.gen++
	gen := s.gen
	s.busy = true
	s.errMsg = ""
	s.sent = false
	client := s.deps.Client
	return func() tea.Msg {
		err := client.ForgotPassword(context.Background(), email)
		return forgotResultMsg{Gen: gen, Err: err}
	}
}

// SetSize records the content area dimensions.
func (s *Forgot) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// View renders the screen.
func (s *Forgot) View() string {
	t := s.deps.Theme

	lines := []string{
		t.Brand.Render("n3t") + " " + t.Title.Render("Reset password"),
		"",
		t.FormLabel.Render("Email") + " " + s.email.View(),
	}
	if s.busy {
		lines = append(lines, "", t.ChatPending.Render("Sending..."))
	}
	if s.sent {
		lines = append(lines, "", t.BadgeIn.Render("[OK]")+" If that account exists, a reset email is on its way.")
	}
	if s.errMsg != "" {
		lines = append(lines, "", t.FormError.Render(s.errMsg))
	}
	lines = append(lines, "", t.FormHint.Render("enter send  esc back to sign in"))

	form := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, form)
}
