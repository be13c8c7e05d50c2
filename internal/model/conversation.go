// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

package model

import (
	"time"

	"github.com/n3t-labs/n3t-tui/internal/util"
)

// ConversationKind distinguishes the assistant thread from placeholder
// human threads. Only the assistant thread is wired to the backend.
type ConversationKind string

const (
	KindAssistant ConversationKind = "assistant"
	KindHuman     ConversationKind = "human"
)

// Conversation is one chat thread: a title, a kind, and an ordered message
// list. Threads are fully isolated; switching the active thread never leaks
// state between them.
type Conversation struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Kind      ConversationKind `json:"kind"`
	Messages  []ChatMessage    `json:"messages"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Append adds a message to the thread and bumps the updated time.
func (c *Conversation) Append(msg ChatMessage) {
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
}

// MessageCount returns the number of messages in the thread.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// LastMessage returns the most recent message, or nil if the thread is empty.
func (c *Conversation) LastMessage() *ChatMessage {
	if len(c.Messages) == 0 {
		return nil
	}
	return &c.Messages[len(c.Messages)-1]
}

// Preview returns a one-line preview of the latest message for the thread list.
func (c *Conversation) Preview(maxLen int) string {
	last := c.LastMessage()
	if last == nil {
		return ""
	}
	return util.Truncate(util.CollapseSpace(last.Text), maxLen)
}

// IsAssistant reports whether this is the backend-wired assistant thread.
func (c *Conversation) IsAssistant() bool {
	return c.Kind == KindAssistant
}

// AssistantConversationID is the fixed ID of the assistant thread.
const AssistantConversationID = "bot"

// DefaultConversations builds the initial thread list: the assistant thread
// with its greeting, plus placeholder human threads. The human threads are
// mock data and are intentionally not wired to any backend.
func DefaultConversations() []*Conversation {
	now := time.Now()
	return []*Conversation{
		{
			ID:    AssistantConversationID,
			Title: "N3T Assistant",
			Kind:  KindAssistant,
			Messages: []ChatMessage{
				{
					ID:        "greeting",
					Sender:    SenderBot,
					Text:      "Hello! I'm the N3T assistant. Ask me anything about your warehouse.",
					CreatedAt: now,
				},
			},
			UpdatedAt: now,
		},
		{
			ID:        "minh",
			Title:     "Minh (Purchasing)",
			Kind:      KindHuman,
			UpdatedAt: now,
		},
		{
			ID:        "lan",
			Title:     "Lan (Warehouse B)",
			Kind:      KindHuman,
			UpdatedAt: now,
		},
	}
}
