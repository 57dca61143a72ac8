// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package plugin

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError string
	}{
		{
			name:        "missing path",
			config:      Config{Name: "file"},
			expectError: "path is required",
		},
		{
			name:        "remote url",
			config:      Config{URL: "https://example.com/plugin.wasm"},
			expectError: "only file:// urls are supported",
		},
		{
			name:        "short checksum",
			config:      Config{Path: "bin/plugin", SHA256: "abc"},
			expectError: "sha256 must be 64 hexadecimal characters",
		},
		{
			name:        "non hex checksum",
			config:      Config{Path: "bin/plugin", SHA256: strings.Repeat("z", 64)},
			expectError: "sha256 must be 64 hexadecimal characters",
		},
		{
			name:        "bad timeout",
			config:      Config{Path: "bin/plugin", Timeout: "soon"},
			expectError: "invalid timeout",
		},
		{
			name:        "negative timeout",
			config:      Config{Path: "bin/plugin", Timeout: "-1s"},
			expectError: "must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestConfig_Validate_AcceptsValidConfig(t *testing.T) {
	config := Config{
		Path:    "bin/changeset-plugin-file",
		SHA256:  strings.Repeat("ab", 32),
		Timeout: "5s",
	}
	require.NoError(t, config.Validate())
	assert.Equal(t, "changeset-plugin-file", config.Name)

	timeout, err := config.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, timeout)
}

func TestConfig_Validate_NormalisesFileURL(t *testing.T) {
	config := Config{URL: "file://plugins/pyproject"}
	require.NoError(t, config.Validate())
	assert.Equal(t, "plugins/pyproject", config.Path)
	assert.Equal(t, "pyproject", config.Name)
}

func TestConfig_ResolvePath(t *testing.T) {
	root := filepath.FromSlash("/repo")

	assert.Equal(t, filepath.Join(root, "bin", "plugin"), (&Config{Path: "bin/plugin"}).ResolvePath(root))
	assert.Equal(t, "changeset-plugin-file", (&Config{Path: "changeset-plugin-file"}).ResolvePath(root))

	abs := filepath.FromSlash("/opt/plugins/file")
	assert.Equal(t, abs, (&Config{Path: abs}).ResolvePath(root))
}

func TestConfig_Environ_IsSorted(t *testing.T) {
	config := Config{Env: map[string]string{"B": "2", "A": "1"}}
	assert.Equal(t, []string{"A=1", "B=2"}, config.Environ())
}
