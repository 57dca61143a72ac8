// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package prompter

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInput(t *testing.T) {
	p := NewBasicPrompter(strings.NewReader("  Fix the parser \n"), io.Discard)
	answer, err := p.Input("Message")
	require.NoError(t, err)
	assert.Equal(t, "Fix the parser", answer)

	p = NewBasicPrompter(strings.NewReader("\n"), io.Discard)
	_, err = p.Input("Message")
	assert.ErrorIs(t, err, ErrNoAnswer)

	p = NewBasicPrompter(strings.NewReader(""), io.Discard)
	_, err = p.Input("Message")
	assert.ErrorIs(t, err, ErrNoAnswer)
}

func TestSelect(t *testing.T) {
	options := []string{"major", "minor", "patch"}

	p := NewBasicPrompter(strings.NewReader("2\n"), io.Discard)
	i, err := p.Select("Type of change", options)
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	p = NewBasicPrompter(strings.NewReader("7\nPATCH"), io.Discard)
	i, err = p.Select("Type of change", options)
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	p = NewBasicPrompter(strings.NewReader("nope\n"), io.Discard)
	_, err = p.Select("Type of change", options)
	assert.ErrorIs(t, err, ErrNoAnswer)
}
