// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

package screens

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/n3t-labs/n3t-tui/internal/api"
	"github.com/n3t-labs/n3t-tui/internal/model"
)

// loginResultMsg carries a login attempt result.
type loginResultMsg struct {
	Gen   int
	User  model.User
	Token string
	Err   error
}

// Login is the sign-in screen.
type Login struct {
	deps   Deps
	width  int
	height int

	email    textinput.Model
	password textinput.Model
	focus    int
	gen      int
	busy     bool
	errMsg   string
}

// NewLogin builds the sign-in screen.
func NewLogin(deps Deps) *Login {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &Login{deps: deps, email: email, password: password}
}

// Init starts the cursor blink.
func (s *Login) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (s *Login) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
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
		case "tab", "shift+tab", "up", "down":
			s.toggleFocus()
			return s, textinput.Blink
		case "enter":
			if s.focus == 0 {
				s.toggleFocus()
				return s, textinput.Blink
			}
			return s, s.submit()
		case "ctrl+r":
			return s, Navigate(RouteRegister)
		case "ctrl+f":
			return s, Navigate(RouteForgot)
		}
		var cmd tea.Cmd
		if s.focus == 0 {
			s.email, cmd = s.email.Update(msg)
		} else {
			s.password, cmd = s.password.Update(msg)
		}
		return s, cmd
	}
	return s, nil
}

func (s *Login) toggleFocus() {
	s.focus = 1 - s.focus
	if s.focus == 0 {
		s.email.Focus()
		s.password.Blur()
	} else {
		s.password.Focus()
		s.email.Blur()
	}
}

func (s *Login) submit() tea.Cmd {
	email := strings.TrimSpace(s.email.Value())
	password := s.password.Value()
	if email == "" || password == "" {
		s.errMsg = "Email and password are required."
		return nil
	}

	s.gen++
	gen := s.gen
	s.busy = true
	s.errMsg = ""
	client := s.deps.Client
	return func() tea.Msg {
		resp, err := client.Login(context.Background(), api.Credentials{
			Email:    email,
			Password: password,
		})
		return loginResultMsg{Gen: gen, User: resp.User, Token: resp.Token, Err: err}
	}
}

// SetSize records the content area dimensions.
func (s *Login) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// View renders the screen.
func (s *Login) View() string {
	t := s.deps.Theme

	emailLabel := t.FormLabel.Render("Email   ")
	passLabel := t.FormLabel.Render("Password")
	if s.focus == 0 {
		emailLabel = t.FormFocused.Render("Email   ")
	} else {
		passLabel = t.FormFocused.Render("Password")
	}

	lines := []string{
		t.Brand.Render("n3t") + " " + t.Title.Render("Sign in"),
		"",
		emailLabel + " " + s.email.View(),
		passLabel + " " + s.password.View(),
	}
	if s.busy {
		lines = append(lines, "", t.ChatPending.Render("Signing in..."))
	}
	if s.errMsg != "" {
		lines = append(lines, "", t.FormError.Render(s.errMsg))
	}
	lines = append(lines, "",
		t.FormHint.Render("enter sign in  ctrl+r create account  ctrl+f forgot password"))

	form := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, form)
}
