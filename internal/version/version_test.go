// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBumpType(t *testing.T) {
	for _, b := range BumpTypes {
		parsed, err := ParseBumpType(b.String())
		require.NoError(t, err)
		assert.Equal(t, b, parsed)
	}

	parsed, err := ParseBumpType(" Minor ")
	require.NoError(t, err)
	assert.Equal(t, Minor, parsed)

	_, err = ParseBumpType("huge")
	assert.ErrorContains(t, err, "must be one of")
}

func TestHighest(t *testing.T) {
	assert.Equal(t, Undetermined, Highest())
	assert.Equal(t, None, Highest(None, None))
	assert.Equal(t, Minor, Highest(Patch, Minor, None))
	assert.Equal(t, Major, Highest(Major, Patch))
}

func TestParse(t *testing.T) {
	v, err := Parse("1.2.3")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", v.String())

	v, err = Parse("v2.0.0\n")
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", v.String())

	_, err = Parse("")
	assert.ErrorContains(t, err, "no version determined")

	_, err = Parse("not-a-version")
	assert.ErrorContains(t, err, "invalid version")
}

func TestBump(t *testing.T) {
	v, err := Parse("1.2.3")
	require.NoError(t, err)

	tests := []struct {
		bump     BumpType
		expected string
	}{
		{Major, "2.0.0"},
		{Minor, "1.3.0"},
		{Patch, "1.2.4"},
		{None, "1.2.3"},
		{Undetermined, "1.2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.bump.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, Bump(v, tt.bump).String())
		})
	}

	assert.Equal(t, "1.2.3", v.String(), "bump must not modify its input")
}

func TestBump_Prerelease(t *testing.T) {
	v, err := Parse("1.3.0-rc.1")
	require.NoError(t, err)
	assert.Equal(t, "1.3.0", Bump(v, Patch).String())
}
