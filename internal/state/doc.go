// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

// Package state holds the two persisted client-side stores: the session
// (who is signed in) and the UI preferences. Each store is a small JSON
// file under the config directory, written atomically on every change.
//
// A corrupt or missing file never fails startup; the store falls back to
// its zero state and overwrites the file on the next write.
package state
