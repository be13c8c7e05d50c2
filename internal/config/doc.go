// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

// Package config provides configuration loading and management for the
// n3t inventory terminal.
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (N3T_*)
//   - ~/.n3t/config.toml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Or use the global instance:
//
//	cfg := config.Global()
//
// A Watcher can be attached to pick up edits to the file while the
// application is running.
package config
