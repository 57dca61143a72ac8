// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Preview command to show the effect of the pending changes without
// consuming them.
package preview

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/changeset/internal/cli/app"
	"github.com/platform-engineering-labs/changeset/internal/cli/cmd"
	"github.com/platform-engineering-labs/changeset/internal/cli/printer"
	"github.com/platform-engineering-labs/changeset/internal/cli/renderer"
)

type PreviewOptions struct {
	OutputConsumer printer.Consumer
	OutputSchema   string
	ChangesOnly    bool
}

func PreviewCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "preview",
		Short: "Preview the next release",
		Annotations: map[string]string{
			"type": "Release",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)
	command.AddCommand(versionCmd())

	return command
}

func versionCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "version",
		Short: "Show the pending changes and the version they lead to",
		RunE: func(command *cobra.Command, args []string) error {
			opts := &PreviewOptions{}
			consumer, _ := command.Flags().GetString("output-consumer")
			opts.OutputConsumer = printer.Consumer(consumer)
			opts.OutputSchema, _ = command.Flags().GetString("output-schema")
			opts.ChangesOnly, _ = command.Flags().GetBool("changes-only")

			if err := printer.ValidateOutput(opts.OutputConsumer, opts.OutputSchema); err != nil {
				return cmd.FlagErrorWrap(err)
			}

			a, err := cmd.AppFromContext(command.Context(), cmd.ConfigFlag(command))
			if err != nil {
				return err
			}

			return runPreview(command, a, opts)
		},
		Annotations: map[string]string{
			"examples": "{{.Name}} preview {{.Command}}  |  {{.Name}} preview {{.Command}} --output-consumer machine --output-schema yaml",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	command.Flags().String("output-consumer", string(printer.ConsumerHuman), "Consumer of the command result (human | machine)")
	command.Flags().String("output-schema", "json", "The schema to use for the machine output (json | yaml)")
	command.Flags().Bool("changes-only", false, "Only list the pending changes")

	return command
}

func runPreview(command *cobra.Command, a *app.App, opts *PreviewOptions) error {
	preview, err := a.Preview(command.Context())
	if err != nil {
		return errors.New(renderer.RenderErrorMessage(err))
	}

	if opts.OutputConsumer == printer.ConsumerMachine {
		return printer.NewMachineReadablePrinter[app.Preview](command.OutOrStdout(), opts.OutputSchema).Print(preview)
	}

	return printer.NewHumanReadablePrinter(command.OutOrStdout()).Print(preview, printer.PrintOptions{ChangesOnly: opts.ChangesOnly})
}
