// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

// Package model contains the domain entities exchanged with the inventory
// backend (items, stock transactions, suppliers, dashboard stats, users) and
// the in-memory chat conversation model used by the assistant widget.
package model
