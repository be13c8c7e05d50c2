// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

package chat

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/n3t-labs/n3t-tui/internal/model"
	"github.com/n3t-labs/n3t-tui/internal/util"
)

// View renders the docked panel.
func (w *Widget) View() string {
	t := w.theme

	sections := []string{
		t.ChatTitle.Render("Chat"),
		w.threadList(),
		w.vp.View(),
	}
	if w.pending > 0 {
		sections = append(sections, t.ChatPending.Render("assistant is typing..."))
	}
	sections = append(sections,
		w.input.View(),
		t.FormHint.Render("enter send  tab threads"),
	)
	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return t.ChatPanel.Height(w.height).Render(body)
}

func (w *Widget) threadList() string {
	t := w.theme
	lines := make([]string, len(w.convs))
	for i, conv := range w.convs {
		label := conv.Title
		if preview := conv.Preview(18); preview != "" {
			label += "  " + preview
		}
		label = util.Truncate(label, w.width-6)
		if i == w.active {
			lines[i] = t.ThreadSel.Render(label)
		} else {
			lines[i] = t.ThreadItem.Render(label)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// refreshViewport re-renders the active thread into the viewport.
func (w *Widget) refreshViewport() {
	conv := w.Active()
	bubbleWidth := w.vp.Width - 6
	if bubbleWidth < 10 {
		bubbleWidth = 10
	}

	var parts []string
	for _, msg := range conv.Messages {
		if msg.Sender == model.SenderUser {
			parts = append(parts, w.theme.UserBubble.Width(bubbleWidth).Render(msg.Text))
		} else {
			parts = append(parts, w.theme.BotBubble.Width(bubbleWidth).Render(w.renderMarkdown(msg.Text)))
		}
	}
	if len(parts) == 0 {
		parts = append(parts, w.theme.EmptyState.Render("No messages yet."))
	}
	if conv.IsAssistant() && conv.MessageCount() <= 1 {
		parts = append(parts, w.theme.FormHint.Render(suggestedPrompts()))
	}
	w.vp.SetContent(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// suggestedPrompts seeds a fresh assistant thread with example questions.
func suggestedPrompts() string {
	return strings.Join([]string{
		"Try asking:",
		"  Which items are running low?",
		"  Summarize this week's stock movement.",
		"  Which supplier do we order from most?",
	}, "\n")
}

// renderMarkdown renders assistant replies as markdown, falling back to
// the raw text when rendering fails.
func (w *Widget) renderMarkdown(text string) string {
	if w.renderer == nil {
		wrap := w.vp.Width - 8
		if wrap < 20 {
			wrap = 20
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			return text
		}
		w.renderer = r
	}
	out, err := w.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}
