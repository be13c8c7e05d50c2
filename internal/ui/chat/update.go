// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

package chat

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/n3t-labs/n3t-tui/internal/api"
	"github.com/n3t-labs/n3t-tui/internal/model"
)

// ReplyMsg carries one assistant reply. ConvID pins the reply to the
// thread the prompt was sent from, so a reply never lands in a thread
// the user has since switched to.
type ReplyMsg struct {
	ConvID string
	Reply  string
	Err    error
}

// Update handles messages routed to the widget while it is open.
func (w *Widget) Update(msg tea.Msg) (*Widget, tea.Cmd) {
	switch msg := msg.(type) {
	case ReplyMsg:
		w.pending--
		if w.pending < 0 {
			w.pending = 0
		}
		text := msg.Reply
		if msg.Err != nil {
			// Failures surface as a bot message, never a modal.
			text = msg.Err.Error()
		}
		if conv := w.findConv(msg.ConvID); conv != nil {
			conv.Append(model.NewBotMessage(text))
		}
		w.refreshViewport()
		w.vp.GotoBottom()
		return w, nil

	case tea.KeyMsg:
		return w.updateKeys(msg)
	}
	return w, nil
}

func (w *Widget) updateKeys(msg tea.KeyMsg) (*Widget, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if w.focus == focusInput {
			w.focus = focusThreads
			w.input.Blur()
		} else {
			w.focus = focusInput
			w.input.Focus()
		}
		return w, textinput.Blink
	}

	if w.focus == focusThreads {
		switch msg.String() {
		case "up", "k":
			if w.active > 0 {
				w.active--
				w.refreshViewport()
			}
		case "down", "j":
			if w.active < len(w.convs)-1 {
				w.active++
				w.refreshViewport()
			}
		case "enter":
			w.focus = focusInput
			w.input.Focus()
			return w, textinput.Blink
		}
		return w, nil
	}

	switch msg.String() {
	case "enter":
		return w, w.submit()
	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		w.vp, cmd = w.vp.Update(msg)
		return w, cmd
	}

	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	return w, cmd
}

// submit sends the typed prompt. The user message is appended
// immediately; the reply (or the error standing in for it) arrives as a
// second message, so every submission grows the thread by exactly two.
func (w *Widget) submit() tea.Cmd {
	text := strings.TrimSpace(w.input.Value())
	if text == "" {
		return nil
	}
	w.input.SetValue("")

	conv := w.Active()
	conv.Append(model.NewUserMessage(text))
	w.refreshViewport()
	w.vp.GotoBottom()

	// Human threads are local-only placeholders.
	if !conv.IsAssistant() {
		return nil
	}

	w.pending++
	convID := conv.ID
	client := w.client
	req := api.ChatRequest{Prompt: text, SystemInstruction: w.systemInstruction}
	return func() tea.Msg {
		resp, err := client.Chat(context.Background(), req)
		return ReplyMsg{ConvID: convID, Reply: resp.Reply, Err: err}
	}
}

func (w *Widget) findConv(id string) *model.Conversation {
	for _, c := range w.convs {
		if c.ID == id {
			return c
		}
	}
	return nil
}
