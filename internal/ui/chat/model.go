// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

// Package chat implements the assistant widget: a panel docked to the
// right of whatever screen is mounted, holding the conversation list and
// the active thread. Only the assistant thread talks to the backend;
// the human threads are local placeholders.
package chat

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"

	"github.com/n3t-labs/n3t-tui/internal/api"
	"github.com/n3t-labs/n3t-tui/internal/model"
	"github.com/n3t-labs/n3t-tui/internal/ui/styles"
)

// focusArea is which part of the panel receives keys.
type focusArea int

const (
	focusInput focusArea = iota
	focusThreads
)

// Widget is the chat panel state.
type Widget struct {
	theme  *styles.Theme
	client *api.Client

	// systemInstruction rides along with every assistant prompt.
	systemInstruction string

	convs  []*model.Conversation
	active int

	input    textinput.Model
	vp       viewport.Model
	focus    focusArea
	renderer *glamour.TermRenderer

	// pending counts assistant calls in flight. Each submission is an
	// independent call; replies land in resolution order.
	pending int

	width  int
	height int
}

// New builds the chat widget with the default conversation set.
func New(theme *styles.Theme, client *api.Client, systemInstruction string) *Widget {
	input := textinput.New()
	input.Placeholder = "ask the assistant"
	input.CharLimit = 500
	input.Focus()

	return &Widget{
		theme:             theme,
		client:            client,
		systemInstruction: systemInstruction,
		convs:             model.DefaultConversations(),
		input:             input,
		vp:                viewport.New(0, 0),
	}
}

// SetSystemInstruction swaps the instruction used for new prompts, for
// config reloads while the widget is open.
func (w *Widget) SetSystemInstruction(instruction string) {
	w.systemInstruction = instruction
}

// Active returns the selected conversation.
func (w *Widget) Active() *model.Conversation {
	return w.convs[w.active]
}

// Pending reports how many assistant replies are in flight.
func (w *Widget) Pending() int {
	return w.pending
}

// SetSize resizes the panel.
func (w *Widget) SetSize(width, height int) {
	w.width = width
	w.height = height

	vpHeight := height - 7 - len(w.convs)
	if vpHeight < 3 {
		vpHeight = 3
	}
	w.vp.Width = width - 4
	w.vp.Height = vpHeight
	w.input.Width = width - 8

	// Wrap width changed, rebuild the markdown renderer lazily.
	w.renderer = nil
	w.refreshViewport()
}
