// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package resolvers

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/platform-engineering-labs/changeset/pkg/plugin/protocol"
	"github.com/platform-engineering-labs/changeset/pkg/plugin/sdk"
)

// DefaultJSONQuery matches the version of a package.json document.
const DefaultJSONQuery = "version"

// JSON resolves the version as the string found at query (gjson path
// syntax) in the input document. A document without the key yields an
// empty version.
func JSON(query string) sdk.Resolver {
	if query == "" {
		query = DefaultJSONQuery
	}

	return sdk.ResolverFunc(func(ctx context.Context, req *protocol.GetVersionRequest) (string, error) {
		data, ok, err := sdk.ReadInput(req)
		if err != nil || !ok {
			return "", err
		}

		if !gjson.ValidBytes(data) {
			return "", &protocol.Error{
				Kind: protocol.InputUnreadable,
				Op:   "parse input",
				Err:  fmt.Errorf("%s: not a valid JSON document", req.Inputs.Path),
			}
		}

		result := gjson.GetBytes(data, query)
		switch result.Type {
		case gjson.Null:
			sdk.LoggerFromContext(ctx).Warn("Document has no version", "query", query)
			return "", nil
		case gjson.String:
			return strings.TrimSpace(result.Str), nil
		default:
			return "", &protocol.Error{
				Kind: protocol.InputUnreadable,
				Op:   "parse input",
				Err:  fmt.Errorf("%s: %q is a %s, not a string", req.Inputs.Path, query, result.Type),
			}
		}
	})
}
