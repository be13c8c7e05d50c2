// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

package api

import (
	"context"

	"github.com/n3t-labs/n3t-tui/internal/model"
)

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerRequest is the signup payload. The backend contract names the
// display name "full_name", not "name".
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// AuthResponse is the backend's answer to a successful login or signup.
type AuthResponse struct {
	User         model.User `json:"user"`
	Token        string     `json:"token"`
	RefreshToken string     `json:"refresh_token,omitempty"`
}

// Login authenticates with email and password. On success the returned token
// is stored on the client for subsequent requests.
func (c *Client) Login(ctx context.Context, creds Credentials) (AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, "POST", "/auth/login", creds, &resp, "auth", "Login failed")
	if err == nil {
		c.SetToken(resp.Token)
	}
	return resp, err
}

// Register creates an account. The name field is translated to the backend's
// full_name key; on success the session token is stored like a login.
func (c *Client) Register(ctx context.Context, email, password, name string) (AuthResponse, error) {
	req := registerRequest{Email: email, Password: password, FullName: name}
	var resp AuthResponse
	err := c.do(ctx, "POST", "/auth/register", req, &resp, "auth", "Registration failed")
	if err == nil {
		c.SetToken(resp.Token)
	}
	return resp, err
}

// Logout tells the backend to invalidate the session. The local token is
// cleared regardless of the outcome; callers treat the error as advisory.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, "POST", "/auth/logout", nil, nil, "auth", "Logout failed")
	c.SetToken("")
	return err
}

// ForgotPassword requests a password reset email for the given address.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	req := map[string]string{"email": email}
	return c.do(ctx, "POST", "/auth/forgot-password", req, nil, "auth", "Failed to request password reset")
}
