// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Get command to print the version reported by the configured plugin.
package get

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/changeset/internal/cli/cmd"
	"github.com/platform-engineering-labs/changeset/internal/cli/renderer"
)

func GetCmd() *cobra.Command {
	command := &cobra.Command{
		Use:     "get",
		Aliases: []string{"get-version"},
		Short:   "Print the current version",
		RunE: func(command *cobra.Command, args []string) error {
			a, err := cmd.AppFromContext(command.Context(), cmd.ConfigFlag(command))
			if err != nil {
				return err
			}

			raw, _ := command.Flags().GetBool("raw")
			if raw {
				v, err := a.RawVersion(command.Context())
				if err != nil {
					return errors.New(renderer.RenderErrorMessage(err))
				}
				_, err = fmt.Fprintln(command.OutOrStdout(), v)
				return err
			}

			v, err := a.CurrentVersion(command.Context())
			if err != nil {
				return errors.New(renderer.RenderErrorMessage(err))
			}
			_, err = fmt.Fprintln(command.OutOrStdout(), v.String())
			return err
		},
		Annotations: map[string]string{
			"type":     "Release",
			"examples": "{{.Name}} {{.Command}}  |  {{.Name}} get-version --raw",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)
	command.Flags().Bool("raw", false, "Print the version exactly as the plugin reported it")

	return command
}
