// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInit_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	require.NoError(t, Init(path, "info"))
	defer SetForTesting(zap.NewNop())

	L().Info("hello", zap.String("key", "value"))
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), "value")
}

func TestInit_LevelFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, Init(path, "warn"))
	defer SetForTesting(zap.NewNop())

	L().Info("quiet")
	L().Warn("loud")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "quiet")
	assert.Contains(t, string(data), "loud")
}

func TestInit_InvalidLevel(t *testing.T) {
	err := Init(filepath.Join(t.TempDir(), "app.log"), "chatty")
	assert.Error(t, err)
}

func TestL_NeverNil(t *testing.T) {
	// Must not panic even before Init.
	L().Debug("ignored")
}
