// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/n3t-labs/n3t-tui/internal/logger"
	"github.com/n3t-labs/n3t-tui/internal/util"
)

const prefsFile = "ui.json"

// Prefs are the persisted interface preferences. The three flags are
// independent; toggling one never touches the others.
type Prefs struct {
	DarkMode         bool `json:"dark_mode"`
	SidebarCollapsed bool `json:"sidebar_collapsed"`
	ChatOpen         bool `json:"chat_open"`
}

// PrefStore persists interface preferences across restarts.
type PrefStore struct {
	mu     sync.RWMutex
	path   string
	prefs  Prefs
	loaded bool

	// OnDarkModeChange runs after every dark-mode flip, outside the lock.
	// Set once at startup, before the UI loop.
	OnDarkModeChange func(dark bool)
}

// OpenPrefs loads preferences from the given directory. A missing or
// corrupt file yields all-false defaults.
func OpenPrefs(dir string) *PrefStore {
	p := &PrefStore{path: filepath.Join(dir, prefsFile)}

	data, err := os.ReadFile(p.path)
	if err != nil {
		return p
	}
	var prefs Prefs
	if err := json.Unmarshal(data, &prefs); err != nil {
		logger.L().Warn("discarding corrupt prefs file", zap.Error(err))
		return p
	}
	p.prefs = prefs
	p.loaded = true
	return p
}

// Loaded reports whether preferences were read from disk. When false the
// caller may keep terminal-detected defaults instead of the zero values.
func (p *PrefStore) Loaded() bool {
	return p.loaded
}

// Get returns a copy of the current preferences.
func (p *PrefStore) Get() Prefs {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.prefs
}

// ToggleDarkMode flips the theme flag, persists, and fires the change hook.
func (p *PrefStore) ToggleDarkMode() (bool, error) {
	p.mu.Lock()
	p.prefs.DarkMode = !p.prefs.DarkMode
	dark := p.prefs.DarkMode
	p.mu.Unlock()

	if p.OnDarkModeChange != nil {
		p.OnDarkModeChange(dark)
	}
	return dark, p.save()
}

// ToggleSidebar flips the sidebar collapsed flag and persists.
func (p *PrefStore) ToggleSidebar() (bool, error) {
	p.mu.Lock()
	p.prefs.SidebarCollapsed = !p.prefs.SidebarCollapsed
	collapsed := p.prefs.SidebarCollapsed
	p.mu.Unlock()
	return collapsed, p.save()
}

// ToggleChat flips the chat panel flag and persists.
func (p *PrefStore) ToggleChat() (bool, error) {
	p.mu.Lock()
	p.prefs.ChatOpen = !p.prefs.ChatOpen
	open := p.prefs.ChatOpen
	p.mu.Unlock()
	return open, p.save()
}

func (p *PrefStore) save() error {
	p.mu.RLock()
	data, err := json.MarshalIndent(p.prefs, "", "  ")
	p.mu.RUnlock()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return err
	}
	return util.AtomicWriteFile(p.path, data, 0600)
}
