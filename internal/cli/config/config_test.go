// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoriesFollowHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnvVar, home)

	assert.Equal(t, filepath.Join(home, ".config", "changeset"), Config.ConfigDirectory())
	assert.Equal(t, filepath.Join(home, ".local", "share", "changeset"), Config.DataDirectory())
	assert.Equal(t, filepath.Join(home, ".local", "share", "changeset", "log", "changeset.log"), Config.LogFile())

	require.NoError(t, Config.EnsureConfigDirectory())
	require.NoError(t, Config.EnsureDataDirectory())

	info, err := os.Stat(Config.DataDirectory())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
