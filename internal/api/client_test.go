// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n3t-labs/n3t-tui/internal/model"
)

func TestResolveErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"detail wins", `{"detail":"SKU already exists","message":"ignored"}`, "SKU already exists"},
		{"message fallback", `{"message":"quantity must be positive"}`, "quantity must be positive"},
		{"empty object", `{}`, "Failed to load items"},
		{"not json", `<html>502 Bad Gateway</html>`, "Failed to load items"},
		{"empty body", ``, "Failed to load items"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := resolveErrorMessage([]byte(tc.body), "Failed to load items")
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClient_Items(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/items", r.URL.Path)
		json.NewEncoder(w).Encode([]model.Item{
			{ID: "i1", Name: "Screws M8", Quantity: 40, Price: 2.5},
		})
	}))
	defer srv.Close()

	items, err := NewClient(srv.URL).Items(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Screws M8", items[0].Name)
}

func TestClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"database is on fire"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Items(context.Background())
	require.Error(t, err)

	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusInternalServerError, remote.Status)
	assert.Equal(t, "items", remote.Resource)
	assert.Equal(t, "database is on fire", remote.Message)
}

func TestClient_ServerErrorNonJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream timeout"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).DashboardStats(context.Background())
	require.Error(t, err)

	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "Failed to load dashboard", remote.Message)
}

func TestClient_TransportError(t *testing.T) {
	// Closed server: the dial fails before any HTTP status exists.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := NewClient(srv.URL).Suppliers(context.Background())
	require.Error(t, err)

	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, 0, remote.Status)
	assert.Equal(t, "Failed to load suppliers", remote.Message)
}

func TestClient_Register_WireShape(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/register", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(AuthResponse{
			User:  model.User{ID: "u1", Email: "an@n3t.vn", Name: "An"},
			Token: "tok-123",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.Register(context.Background(), "an@n3t.vn", "secret", "An")
	require.NoError(t, err)

	// The display name travels as full_name, never name.
	assert.Equal(t, "An", body["full_name"])
	assert.NotContains(t, body, "name")
	assert.Equal(t, "tok-123", resp.Token)
	assert.Equal(t, "tok-123", client.token)
}

func TestClient_Login_SetsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(AuthResponse{Token: "tok-9"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Login(context.Background(), Credentials{Email: "a@b.c", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "tok-9", client.token)
}

func TestClient_Logout_ClearsTokenEvenOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	client.SetToken("tok-5")
	err := client.Logout(context.Background())
	require.Error(t, err)
	assert.Empty(t, client.token)
}

func TestClient_AuthorizationHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	client.SetToken("tok-7")
	_, err := client.Items(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-7", gotAuth)
}

func TestClient_Chat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "how many screws are left?", req.Prompt)
		assert.Equal(t, "be brief", req.SystemInstruction)
		json.NewEncoder(w).Encode(ChatResponse{Reply: "Forty boxes.", Model: "gemini-2.0-flash"})
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).Chat(context.Background(), ChatRequest{
		Prompt:            "how many screws are left?",
		SystemInstruction: "be brief",
	})
	require.NoError(t, err)
	assert.Equal(t, "Forty boxes.", resp.Reply)
	assert.Equal(t, "gemini-2.0-flash", resp.Model)
}

func TestClient_UpdateItem_OmitsNilFields(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PUT", r.Method)
		assert.Equal(t, "/items/i1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(model.Item{ID: "i1", Quantity: 99})
	}))
	defer srv.Close()

	qty := 99
	item, err := NewClient(srv.URL).UpdateItem(context.Background(), "i1", ItemPatch{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 99, item.Quantity)

	assert.Contains(t, body, "quantity")
	assert.NotContains(t, body, "name")
	assert.NotContains(t, body, "price")
}

// recordingObserver captures gateway outcomes for assertions.
type recordingObserver struct {
	mu      sync.Mutex
	entries []struct {
		resource string
		ok       bool
	}
}

func (o *recordingObserver) Observe(resource string, ok bool, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.entries = append(o.entries, struct {
		resource string
		ok       bool
	}{resource, ok})
}

func TestClient_ObserverSeesOutcomes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/items" {
			w.Write([]byte("[]"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	client := NewClient(srv.URL).WithObserver(obs)

	_, err := client.Items(context.Background())
	require.NoError(t, err)
	_, err = client.Suppliers(context.Background())
	require.Error(t, err)

	require.Len(t, obs.entries, 2)
	assert.Equal(t, "items", obs.entries[0].resource)
	assert.True(t, obs.entries[0].ok)
	assert.Equal(t, "suppliers", obs.entries[1].resource)
	assert.False(t, obs.entries[1].ok)
}
