// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Add command to record a pending change.
package add

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/changeset/internal/cli/app"
	"github.com/platform-engineering-labs/changeset/internal/cli/cmd"
	"github.com/platform-engineering-labs/changeset/internal/cli/display"
	"github.com/platform-engineering-labs/changeset/internal/cli/prompter"
	"github.com/platform-engineering-labs/changeset/internal/version"
)

type AddOptions struct {
	BumpType string
	Message  string
}

func AddCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "add",
		Short: "Record a change for the next release",
		RunE:  Run,
		Annotations: map[string]string{
			"type":     "Changes",
			"examples": "{{.Name}} {{.Command}} -t minor -m 'Add the json plugin'",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)
	AddFlags(command)

	return command
}

// AddFlags registers the add flags on command. The root command shares
// them because add is its default action.
func AddFlags(command *cobra.Command) {
	command.Flags().StringP("bump-type", "t", "", "Type of change (major | minor | patch | none)")
	command.Flags().StringP("message", "m", "", "Description of the change")
}

// Run creates a changeset, prompting for anything the flags leave out.
func Run(command *cobra.Command, args []string) error {
	opts := &AddOptions{}
	opts.BumpType, _ = command.Flags().GetString("bump-type")
	opts.Message, _ = command.Flags().GetString("message")

	if err := validateAddOptions(opts); err != nil {
		return err
	}

	a, err := cmd.AppFromContext(command.Context(), cmd.ConfigFlag(command))
	if err != nil {
		return err
	}

	p := prompter.NewBasicPrompter(command.InOrStdin(), command.OutOrStdout())
	return runAdd(command, a, p, opts)
}

func validateAddOptions(opts *AddOptions) error {
	if opts.BumpType == "" {
		return nil
	}
	if _, err := version.ParseBumpType(opts.BumpType); err != nil {
		return cmd.FlagErrorf("--bump-type: %w", err)
	}
	return nil
}

func runAdd(command *cobra.Command, a *app.App, p prompter.Prompter, opts *AddOptions) error {
	bump, err := bumpOrPrompt(p, opts.BumpType)
	if err != nil {
		return err
	}

	message := strings.TrimSpace(opts.Message)
	if message == "" {
		if message, err = p.Input("Message"); err != nil {
			return fmt.Errorf("a message is required: %w", err)
		}
	}

	change, err := a.AddChange(bump, message)
	if err != nil {
		return err
	}

	out := command.OutOrStdout()
	display.Success(out, "Created changeset "+change.Path)
	display.Info(out, "You can now edit the file and commit it to version control.")
	return nil
}

func bumpOrPrompt(p prompter.Prompter, flag string) (version.BumpType, error) {
	if flag != "" {
		return version.ParseBumpType(flag)
	}

	options := make([]string, len(version.BumpTypes))
	for i, b := range version.BumpTypes {
		options[i] = b.String()
	}

	i, err := p.Select("Type of change", options)
	if err != nil {
		return version.Undetermined, fmt.Errorf("a bump type is required: %w", err)
	}
	return version.BumpTypes[i], nil
}
