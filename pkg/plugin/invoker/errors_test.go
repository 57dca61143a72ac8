// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package invoker

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platform-engineering-labs/changeset/pkg/plugin"
	"github.com/platform-engineering-labs/changeset/pkg/plugin/protocol"
)

func TestNew_FromConfig(t *testing.T) {
	root := t.TempDir()
	inv, err := New(plugin.Config{
		Path:    "bin/changeset-plugin-file",
		Env:     map[string]string{"B": "2", "A": "1"},
		Timeout: "5s",
	}, root)
	require.NoError(t, err)

	assert.Equal(t, "changeset-plugin-file", inv.Name)
	assert.Equal(t, filepath.Join(root, "bin/changeset-plugin-file"), inv.Path)
	assert.Equal(t, []string{"A=1", "B=2"}, inv.Env)
	assert.Equal(t, root, inv.Dir)
	assert.Equal(t, 5*time.Second, inv.Timeout)

	_, err = New(plugin.Config{}, root)
	assert.Error(t, err)
}

func TestTailBuffer_KeepsLastBytes(t *testing.T) {
	b := &tailBuffer{limit: 8}
	n, err := b.Write([]byte("hello "))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	_, _ = b.Write([]byte("world"))
	assert.Equal(t, "lo world", b.String())

	n, _ = b.Write([]byte("0123456789abcdef"))
	assert.Equal(t, 16, n)
	assert.Equal(t, "89abcdef", b.String())
}

func TestProcessError_Message(t *testing.T) {
	err := &ProcessError{Plugin: "file", ExitCode: 2, Stderr: "boom", Err: errors.New("exit status 2")}
	assert.Equal(t, "plugin file exited with status 2: exit status 2\nboom", err.Error())

	err = &ProcessError{Plugin: "file", ExitCode: -1}
	assert.Equal(t, "plugin file failed", err.Error())
	assert.ErrorIs(t, err, protocol.ErrPluginProcessFailure)
}
