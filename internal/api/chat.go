// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

package api

import "context"

// ChatRequest is the payload sent to the assistant endpoint. The system
// instruction is optional; an empty value lets the backend use its default.
type ChatRequest struct {
	Prompt            string `json:"prompt"`
	SystemInstruction string `json:"system_instruction,omitempty"`
}

// ChatResponse is the assistant's reply. Model names which backend model
// produced it.
type ChatResponse struct {
	Reply string `json:"reply"`
	Model string `json:"model"`
}

// Chat sends a prompt to the assistant and waits for the full reply. There
// is no streaming; the reply arrives in one piece.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	var resp ChatResponse
	err := c.do(ctx, "POST", "/ai/chat", req, &resp, "chat", "The assistant is unavailable right now")
	return resp, err
}
