// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package printer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/platform-engineering-labs/changeset/internal/cli/app"
)

var testPreview = app.Preview{
	CurrentVersion: "1.0.0",
	NextVersion:    "1.0.1",
	Bump:           "patch",
	Changes: []app.PreviewChange{
		{Name: "cat-dog-mars", Bump: "patch", Message: "Fix it"},
	},
}

func TestMachineReadablePrinter(t *testing.T) {
	t.Run("prints json objects", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		printer := NewMachineReadablePrinter[app.Preview](buf, "json")
		err := printer.Print(&testPreview)
		assert.NoError(t, err)
		expected := `{"currentVersion":"1.0.0","nextVersion":"1.0.1","bump":"patch","changes":[{"name":"cat-dog-mars","bump":"patch","message":"Fix it"}],"consumed":false}` + "\n"
		assert.Equal(t, expected, buf.String())
	})

	t.Run("prints yaml", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		printer := NewMachineReadablePrinter[app.Preview](buf, "yaml")
		err := printer.Print(&testPreview)
		assert.NoError(t, err)

		var result app.Preview
		err = yaml.Unmarshal(buf.Bytes(), &result)
		assert.NoError(t, err)
		assert.Equal(t, testPreview, result)
		assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		err := NewMachineReadablePrinter[app.Preview](bytes.NewBuffer(nil), "xml").Print(&testPreview)
		assert.Error(t, err)
	})
}

func TestHumanReadablePrinter(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	p := NewHumanReadablePrinter(buf)

	require.NoError(t, p.Print(&testPreview, PrintOptions{}))
	assert.Contains(t, buf.String(), "cat-dog-mars")

	assert.Error(t, p.Print(42, PrintOptions{}))
}

func TestValidateOutput(t *testing.T) {
	assert.NoError(t, ValidateOutput(ConsumerHuman, ""))
	assert.NoError(t, ValidateOutput(ConsumerMachine, "yaml"))
	assert.Error(t, ValidateOutput(ConsumerMachine, "xml"))
	assert.Error(t, ValidateOutput("robot", "json"))
}
