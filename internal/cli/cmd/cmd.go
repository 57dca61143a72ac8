// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/changeset/internal/cli/app"
	"github.com/platform-engineering-labs/changeset/internal/cli/display"
)

type contextKey string

const appContextKey contextKey = "app"

var ErrAppNotFound = errors.New("changeset application missing from command context")

var RootCmdUsageTemplate = display.Grey("Usage: ") + display.Green("{{.CommandPath}} [OPTIONS]{{if .HasAvailableSubCommands}} [COMMAND]{{end}}\n") +
	"{{if .HasAvailableSubCommands}}\n" + display.Gold("Commands:") + "{{$types := typeMap .Commands}}" +
	"{{$first := true}}{{range $type, $cmds := $types}}" +
	"{{if $first}}{{$first = false}}{{else}}\n{{end}}\n  " + display.Gold("{{$type}}:") +
	"{{range $cmd := $cmds}}\n    " + display.Green("{{rpad $cmd.Name $cmd.NamePadding}}") + "     {{$cmd.Short}}" +
	"{{if (index $cmd.Annotations \"examples\")}}\n                   " +
	display.Grey("  {{formatExamples (index $cmd.Annotations \"examples\") $cmd}}") + "{{end}}" +
	"{{if (index $cmd.Annotations \"doc\")}}\n" +
	display.Grey("{{formatDoc (index $cmd.Annotations \"doc\") $cmd}}\n") + "{{end}}" +
	"{{end}}{{end}}\n{{end}}" +
	"{{if .HasAvailableLocalFlags}}\n" + display.Gold("Options:\n") +
	"{{range .LocalFlags | optionsUsage}}{{.}}\n{{end}}" +
	"{{end}}" +
	display.Links("Docs", "cli.md") +
	"\n"

var SimpleCmdUsageTemplate = display.Grey("Usage: ") + display.Green("{{.CommandPath}}{{if .HasAvailableLocalFlags}} [OPTIONS]{{end}}{{if .HasAvailableSubCommands}} [COMMAND]{{end}}") +
	display.Green("{{if index .Annotations \"args\"}} {{index .Annotations \"args\"}}{{end}}") + "\n" +
	"{{if .HasAvailableSubCommands}}\n" + display.Gold("Commands:") +
	"{{range $cmd := .Commands}}\n  " + display.Green("{{rpad $cmd.Name $cmd.NamePadding}}") + "       {{$cmd.Short}}" +
	"{{if (index $cmd.Annotations \"examples\")}}\n                   " +
	display.Grey("  {{formatExamples (index $cmd.Annotations \"examples\") $cmd}}") + "{{end}}" +
	"{{if (index $cmd.Annotations \"doc\")}}\n" +
	display.Grey("{{formatDoc (index $cmd.Annotations \"doc\") $cmd}}\n") + "{{end}}" +
	"{{end}}\n{{end}}" +
	"{{if .HasAvailableLocalFlags}}\n" + display.Gold("Options:\n") +
	"{{range .LocalFlags | optionsUsage}}{{.}}\n{{end}}" +
	"{{end}}\n" +
	display.Links("Docs", "cli.md") +
	"\n"

// AppFromContext returns the application stored by InitCommandWithContext
// with the project configuration loaded.
func AppFromContext(ctx context.Context, configFilePath string) (*app.App, error) {
	a, ok := ctx.Value(appContextKey).(*app.App)
	if !ok {
		return nil, ErrAppNotFound
	}

	if err := a.LoadConfig(configFilePath, app.WorkingDir()); err != nil {
		return nil, fmt.Errorf("%w%s", err, display.Links("Configuration docs", "configuration.md"))
	}

	return a, nil
}

// ConfigFlag reads the persistent --config flag.
func ConfigFlag(command *cobra.Command) string {
	path, _ := command.Flags().GetString("config")
	return path
}

func InitCommandWithContext(cmd *cobra.Command, a *app.App) *cobra.Command {
	ctx := context.WithValue(context.Background(), appContextKey, a)
	cmd.SetContext(ctx)
	return cmd
}
