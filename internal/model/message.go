// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

package model

import (
	"time"

	"github.com/google/uuid"
)

// Sender identifies who authored a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ChatMessage is a single message in a conversation thread. Messages are
// ephemeral: they live in memory only and do not survive a restart.
type ChatMessage struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserMessage creates a user-authored message with a fresh ID.
func NewUserMessage(text string) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Sender:    SenderUser,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// NewBotMessage creates an assistant-authored message with a fresh ID.
func NewBotMessage(text string) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Sender:    SenderBot,
		Text:      text,
		CreatedAt: time.Now(),
	}
}
