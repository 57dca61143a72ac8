// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platform-engineering-labs/changeset/internal/cli/app"
)

func TestFlagError(t *testing.T) {
	err := FlagErrorf("unknown bump type %q", "huge")
	var flagErr *FlagError
	require.True(t, errors.As(err, &flagErr))
	assert.Equal(t, `unknown bump type "huge"`, err.Error())

	assert.Nil(t, FlagErrorWrap(nil))
	cause := errors.New("cause")
	assert.ErrorIs(t, FlagErrorWrap(cause), cause)
}

func TestAppFromContext(t *testing.T) {
	_, err := AppFromContext(context.Background(), "")
	assert.ErrorIs(t, err, ErrAppNotFound)

	a := app.NewApp()
	command := InitCommandWithContext(&cobra.Command{Use: "test"}, a)
	_, err = AppFromContext(command.Context(), "/no/such/project/.changeset/config.yaml")
	assert.ErrorContains(t, err, "Configuration docs")
}
