// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Release command to consume pending changes into the next version.
package release

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/changeset/internal/changeset"
	"github.com/platform-engineering-labs/changeset/internal/cli/app"
	"github.com/platform-engineering-labs/changeset/internal/cli/cmd"
	"github.com/platform-engineering-labs/changeset/internal/cli/display"
	"github.com/platform-engineering-labs/changeset/internal/cli/printer"
	"github.com/platform-engineering-labs/changeset/internal/cli/renderer"
)

type ReleaseOptions struct {
	DryRun         bool
	OutputConsumer printer.Consumer
	OutputSchema   string
}

func VersionCmd() *cobra.Command {
	command := &cobra.Command{
		Use:     "version",
		Aliases: []string{"consume"},
		Short:   "Consume changesets and determine the next version",
		RunE: func(command *cobra.Command, args []string) error {
			opts := &ReleaseOptions{}
			opts.DryRun, _ = command.Flags().GetBool("dry-run")
			consumer, _ := command.Flags().GetString("output-consumer")
			opts.OutputConsumer = printer.Consumer(consumer)
			opts.OutputSchema, _ = command.Flags().GetString("output-schema")

			if err := printer.ValidateOutput(opts.OutputConsumer, opts.OutputSchema); err != nil {
				return cmd.FlagErrorWrap(err)
			}

			a, err := cmd.AppFromContext(command.Context(), cmd.ConfigFlag(command))
			if err != nil {
				return err
			}

			return runRelease(command, a, opts)
		},
		Annotations: map[string]string{
			"type":     "Release",
			"examples": "{{.Name}} {{.Command}} --dry-run  |  {{.Name}} consume",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	command.Flags().Bool("dry-run", false, "Show the next version without consuming changesets")
	command.Flags().String("output-consumer", string(printer.ConsumerHuman), "Consumer of the command result (human | machine)")
	command.Flags().String("output-schema", "json", "The schema to use for the machine output (json | yaml)")

	return command
}

func runRelease(command *cobra.Command, a *app.App, opts *ReleaseOptions) error {
	out := command.OutOrStdout()

	preview, err := a.Release(command.Context(), opts.DryRun)
	if errors.Is(err, changeset.ErrNoChanges) && opts.OutputConsumer == printer.ConsumerHuman {
		display.Info(out, renderer.RenderVerdict(&app.Preview{}))
		return nil
	}
	if err != nil {
		return errors.New(renderer.RenderErrorMessage(err))
	}

	if opts.OutputConsumer == printer.ConsumerMachine {
		return printer.NewMachineReadablePrinter[app.Preview](out, opts.OutputSchema).Print(preview)
	}

	display.Info(out, renderer.RenderVerdict(preview))
	switch {
	case preview.Consumed && preview.Changelog != "":
		display.Success(out, "Changesets consumed, changelog updated at "+preview.Changelog)
	case preview.Consumed:
		display.Success(out, "Changesets consumed successfully.")
	}
	return nil
}
