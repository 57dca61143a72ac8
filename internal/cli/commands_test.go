// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platform-engineering-labs/changeset/internal/cli/app"
	"github.com/platform-engineering-labs/changeset/internal/cli/config"
)

func TestCommandTree(t *testing.T) {
	root := NewRootCmd(app.NewApp())

	for _, path := range [][]string{
		{"add"},
		{"version"},
		{"consume"},
		{"get"},
		{"get-version"},
		{"preview", "version"},
	} {
		found, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.NotEqual(t, root, found, path)
	}

	assert.NotNil(t, root.Flags().Lookup("bump-type"), "root runs add by default")
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("log-level"))
}

func TestExecute_HelpAndVersion(t *testing.T) {
	t.Setenv(config.HomeEnvVar, t.TempDir())

	var stdout, stderr bytes.Buffer
	code := Execute([]string{"--help"}, strings.NewReader(""), &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "preview")

	stdout.Reset()
	code = Execute([]string{"--version"}, strings.NewReader(""), &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "changeset version:")
}

func TestExecute_UnknownCommand(t *testing.T) {
	t.Setenv(config.HomeEnvVar, t.TempDir())

	var stdout, stderr bytes.Buffer
	code := Execute([]string{"frobnicate"}, strings.NewReader(""), &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "unknown command")
}
