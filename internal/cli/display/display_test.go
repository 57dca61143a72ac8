// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package display

import (
	"bytes"
	"testing"

	gkcolor "github.com/gookit/color"
	"github.com/stretchr/testify/assert"
)

func TestMessages(t *testing.T) {
	gkcolor.Disable()
	defer func() { gkcolor.Enable = true }()

	var buf bytes.Buffer
	Success(&buf, "done")
	Warning(&buf, "careful")
	Error(&buf, "broken")
	assert.Equal(t, "done\nWarning: careful\nError: broken\n", buf.String())
}

func TestLinks(t *testing.T) {
	gkcolor.Disable()
	defer func() { gkcolor.Enable = true }()

	links := Links("Configuration docs", "configuration.md")
	assert.Contains(t, links, "Configuration docs: "+DocRoot+"/configuration.md")
	assert.Contains(t, links, "/issues")
}

func TestBump(t *testing.T) {
	gkcolor.Disable()
	defer func() { gkcolor.Enable = true }()

	for _, name := range []string{"major", "minor", "patch", "none"} {
		assert.Equal(t, name, Bump(name))
	}
}
