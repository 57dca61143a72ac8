// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// The pyproject plugin reads project.version from pyproject.toml, falling
// back to tool.poetry.version.
package main

import (
	"github.com/platform-engineering-labs/changeset/pkg/plugin/resolvers"
	"github.com/platform-engineering-labs/changeset/pkg/plugin/sdk"
)

func main() {
	sdk.Run("pyproject", resolvers.Pyproject())
}
