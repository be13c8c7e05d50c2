// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

// Package util provides small shared helpers: atomic file writes for the
// persisted stores and config, and rune-safe string formatting for the UI.
package util
