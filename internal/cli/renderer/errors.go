// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package renderer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/platform-engineering-labs/changeset/internal/cli/display"
	"github.com/platform-engineering-labs/changeset/pkg/plugin/invoker"
	"github.com/platform-engineering-labs/changeset/pkg/plugin/protocol"
)

// RenderErrorMessage turns plugin failures into a message with a hint on
// what to check. Other errors are returned as they are.
func RenderErrorMessage(err error) string {
	var procErr *invoker.ProcessError
	if errors.As(err, &procErr) {
		var b strings.Builder
		b.WriteString(err.Error())
		switch {
		case errors.Is(err, invoker.ErrChecksumMismatch):
			b.WriteString("\n" + display.Gold("Hint: ") + "the plugin executable does not match the sha256 in the configuration")
		case procErr.ExitCode == -1:
			fmt.Fprintf(&b, "\n%s make sure '%s' exists and is executable", display.Gold("Hint:"), procErr.Plugin)
		}
		return b.String()
	}

	if kind, ok := protocol.KindOf(err); ok && kind == protocol.MalformedMessage {
		return err.Error() + "\n" + display.Gold("Hint: ") +
			"the plugin exited cleanly but did not answer with a " + protocol.SchemaVersion + " response"
	}

	return err.Error()
}
