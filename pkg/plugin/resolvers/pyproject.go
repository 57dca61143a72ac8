// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package resolvers

import (
	"context"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/platform-engineering-labs/changeset/pkg/plugin/protocol"
	"github.com/platform-engineering-labs/changeset/pkg/plugin/sdk"
)

type pyproject struct {
	Project struct {
		Version string `toml:"version"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Version string `toml:"version"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// Pyproject resolves the version declared in a pyproject.toml: PEP 621
// project.version first, then tool.poetry.version.
func Pyproject() sdk.Resolver {
	return sdk.ResolverFunc(func(ctx context.Context, req *protocol.GetVersionRequest) (string, error) {
		data, ok, err := sdk.ReadInput(req)
		if err != nil || !ok {
			return "", err
		}

		var doc pyproject
		if err := toml.Unmarshal(data, &doc); err != nil {
			return "", &protocol.Error{Kind: protocol.InputUnreadable, Op: "parse input", Err: err}
		}

		log := sdk.LoggerFromContext(ctx)
		if v := strings.TrimSpace(doc.Project.Version); v != "" {
			log.Debug("Found version", "key", "project.version")
			return v, nil
		}
		if v := strings.TrimSpace(doc.Tool.Poetry.Version); v != "" {
			log.Debug("Found version", "key", "tool.poetry.version")
			return v, nil
		}
		log.Warn("pyproject.toml declares no version")
		return "", nil
	})
}
