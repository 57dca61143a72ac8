// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/platform-engineering-labs/changeset"
	"github.com/platform-engineering-labs/changeset/internal/cli/add"
	"github.com/platform-engineering-labs/changeset/internal/cli/app"
	"github.com/platform-engineering-labs/changeset/internal/cli/cmd"
	"github.com/platform-engineering-labs/changeset/internal/cli/config"
	"github.com/platform-engineering-labs/changeset/internal/cli/display"
	"github.com/platform-engineering-labs/changeset/internal/cli/get"
	"github.com/platform-engineering-labs/changeset/internal/cli/preview"
	"github.com/platform-engineering-labs/changeset/internal/cli/release"
	"github.com/platform-engineering-labs/changeset/internal/logging"
)

func longDescription() string {
	return display.Tool + ": " + display.Green("Record changes as you make them, release them as one version bump")
}

func init() {
	cobra.AddTemplateFunc("typeMap", func(cmds []*cobra.Command) map[string][]*cobra.Command {
		m := make(map[string][]*cobra.Command)
		for _, c := range cmds {
			if c.IsAvailableCommand() {
				t := c.Annotations["type"]
				if t == "" {
					t = "Tooling"
				}

				m[t] = append(m[t], c)
			}
		}
		return m
	})

	cobra.AddTemplateFunc("formatExamples", func(examples string, cmd *cobra.Command) string {
		cliName := cmd.Root().Name()
		cmdName := cmd.Name()
		replaced := strings.ReplaceAll(examples, "{{.Name}}", cliName)
		return strings.ReplaceAll(replaced, "{{.Command}}", cmdName)
	})

	cobra.AddTemplateFunc("formatDoc", func(doc string, cmd *cobra.Command) string {
		lines := strings.Split(doc, "\n")
		for i, line := range lines {
			lines[i] = "                     " + line
		}

		return strings.Join(lines, "\n")
	})

	cobra.AddTemplateFunc("optionsUsage", func(f *pflag.FlagSet) []string {
		var usage []string
		longestFlagName := 0

		f.VisitAll(func(flag *pflag.Flag) {
			length := len(flag.Name)
			if flag.Shorthand != "" {
				length += 6
			}

			if length > longestFlagName {
				longestFlagName = length
			}
		})

		longestFlagName += 10

		f.VisitAll(func(flag *pflag.Flag) {
			s := fmt.Sprintf("      --%s ", flag.Name)
			if flag.Shorthand != "" {
				s = fmt.Sprintf("  -%s, --%s ", flag.Shorthand, flag.Name)
			}

			s = fmt.Sprintf("%-*s%s", longestFlagName, s, flag.Usage)
			if flag.DefValue != "" &&
				flag.DefValue != "[]" &&
				flag.DefValue != "false" &&
				flag.Name != "help" &&
				flag.Name != "version" {
				s += display.Grey(fmt.Sprintf(" [default: %q]", flag.DefValue))
			}

			usage = append(usage, s)
		})
		return usage
	})
}

// NewRootCmd builds the command tree. Running the root command without a
// subcommand records a change, like add.
func NewRootCmd(a *app.App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     display.Tool,
		Short:   display.Tool + " CLI",
		Long:    longDescription(),
		Version: changeset.Version,
		PersistentPreRunE: func(command *cobra.Command, args []string) error {
			levelName, _ := command.Flags().GetString("log-level")
			level, err := logging.ParseLevel(levelName)
			if err != nil {
				return cmd.FlagErrorWrap(err)
			}

			if logFile := config.Config.LogFile(); logFile != "" {
				logging.SetupClientLogging(logFile, level)
			}
			return nil
		},
		RunE:          add.Run,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	hp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		display.PrintBanner(cmd.OutOrStdout())
		hp(cmd, args)
	})

	rootCmd.SetHelpCommand(&cobra.Command{
		Hidden: true,
	})

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetUsageTemplate(cmd.RootCmdUsageTemplate)

	add.AddFlags(rootCmd)

	rootCmd.AddCommand(add.AddCmd())
	rootCmd.AddCommand(release.VersionCmd())
	rootCmd.AddCommand(get.GetCmd())
	rootCmd.AddCommand(preview.PreviewCmd())

	rootCmd.PersistentFlags().BoolP("help", "h", false, "Show help for "+rootCmd.Use)
	for _, cmd := range rootCmd.Commands() {
		cmd.PersistentFlags().BoolP("help", "h", false, fmt.Sprintf("Show help for %s command", cmd.Name()))
		cmd.SilenceUsage = true
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the project configuration (default: discovered from .changeset)")
	rootCmd.PersistentFlags().String("log-level", "off", "Console log level (off | debug | info | warn | error)")

	rootCmd.Flags().BoolP("version", "v", false, "Show "+rootCmd.Use+" version information")
	rootCmd.SetVersionTemplate(fmt.Sprintf("changeset version: %s\ngo version: %s\n", changeset.Version, runtime.Version()))

	return cmd.InitCommandWithContext(rootCmd, a)
}

// Execute runs the CLI with args and returns the process exit status.
func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd(app.NewApp())
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	executed, err := rootCmd.ExecuteC()
	if err == nil {
		return 0
	}

	display.Error(stderr, err.Error())

	var flagErr *cmd.FlagError
	if errors.As(err, &flagErr) {
		fmt.Fprintln(stderr)
		_ = executed.Usage()
	}
	return 1
}

func Start() {
	for _, ensure := range []func() error{config.Config.EnsureConfigDirectory, config.Config.EnsureDataDirectory} {
		if err := ensure(); err != nil {
			display.Error(os.Stderr, err.Error())
			os.Exit(1)
		}
	}

	os.Exit(Execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
