// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// The json plugin reads the version from a JSON document such as
// package.json. The value is selected with a gjson path.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/platform-engineering-labs/changeset/pkg/plugin/resolvers"
	"github.com/platform-engineering-labs/changeset/pkg/plugin/sdk"
)

const queryEnvVar = "CHANGESET_JSON_QUERY"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("changeset-plugin-json", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	query := flags.String("query", "", "gjson path of the version (default \""+resolvers.DefaultJSONQuery+"\")")
	if err := flags.Parse(args); err != nil {
		fmt.Fprintln(stderr, err)
		return sdk.ExitUsage
	}

	if *query == "" {
		*query = os.Getenv(queryEnvVar)
	}

	return sdk.Main("json", resolvers.JSON(*query), stdin, stdout, stderr)
}
