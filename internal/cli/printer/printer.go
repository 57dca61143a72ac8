// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package printer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/platform-engineering-labs/changeset/internal/cli/app"
	"github.com/platform-engineering-labs/changeset/internal/cli/renderer"
)

type Consumer string

const (
	ConsumerHuman   Consumer = "human"
	ConsumerMachine Consumer = "machine"
)

// ValidateOutput checks the output flags shared by commands that print results.
func ValidateOutput(consumer Consumer, schema string) error {
	if consumer != ConsumerHuman && consumer != ConsumerMachine {
		return fmt.Errorf("output consumer must be either 'human' or 'machine'")
	}
	if consumer == ConsumerMachine && schema != "json" && schema != "yaml" {
		return fmt.Errorf("output schema must be either 'json' or 'yaml' for machine consumer")
	}
	return nil
}

type MachineReadablePrinter[T any] struct {
	w      io.Writer
	format string
}

func NewMachineReadablePrinter[T any](w io.Writer, format string) *MachineReadablePrinter[T] {
	return &MachineReadablePrinter[T]{
		w:      w,
		format: format,
	}
}

func (p *MachineReadablePrinter[T]) Print(v *T) error {
	var data []byte
	var err error
	switch p.format {
	case "json":
		data, err = json.Marshal(v)
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
	case "yaml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err = enc.Encode(v); err != nil {
			return fmt.Errorf("yaml encode: %w", err)
		}
		data = buf.Bytes()
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}
	_, err = p.w.Write(data)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

type HumanReadablePrinter struct {
	w io.Writer
}

func NewHumanReadablePrinter(w io.Writer) *HumanReadablePrinter {
	return &HumanReadablePrinter{
		w: w,
	}
}

type PrintOptions struct {
	// ChangesOnly prints the changes table without versions.
	ChangesOnly bool
}

func (p *HumanReadablePrinter) Print(v any, opts PrintOptions) error {
	var output string
	var err error

	switch v := v.(type) {
	case *app.Preview:
		if opts.ChangesOnly {
			output, err = renderer.RenderChanges(v.Changes)
		} else {
			output, err = renderer.RenderPreview(v)
		}
		if err != nil {
			return fmt.Errorf("render preview: %w", err)
		}
	case []app.PreviewChange:
		output, err = renderer.RenderChanges(v)
		if err != nil {
			return fmt.Errorf("render changes: %w", err)
		}
	default:
		return fmt.Errorf("unsupported type: %T", v)
	}

	_, err = p.w.Write([]byte(output))
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
