// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package sdk

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/platform-engineering-labs/changeset/pkg/plugin/protocol"
)

// ReadInput returns the contents of the request's input file. ok is false
// when the request carries no inputs. Any failure to read is reported as
// InputUnreadable.
func ReadInput(req *protocol.GetVersionRequest) (data []byte, ok bool, err error) {
	if req.Inputs == nil {
		return nil, false, nil
	}

	data, err = os.ReadFile(req.Inputs.Path)
	if err != nil {
		return nil, true, &protocol.Error{Kind: protocol.InputUnreadable, Op: "read input", Err: err}
	}
	return data, true, nil
}

// FileContents resolves the version as the input file's text with leading
// and trailing whitespace removed. Without inputs the version is empty.
func FileContents() Resolver {
	return ResolverFunc(func(_ context.Context, req *protocol.GetVersionRequest) (string, error) {
		data, ok, err := ReadInput(req)
		if err != nil || !ok {
			return "", err
		}

		if !utf8.Valid(data) {
			return "", &protocol.Error{
				Kind: protocol.InputUnreadable,
				Op:   "read input",
				Err:  fmt.Errorf("%s: not valid UTF-8 text", req.Inputs.Path),
			}
		}

		return strings.TrimSpace(string(data)), nil
	})
}
