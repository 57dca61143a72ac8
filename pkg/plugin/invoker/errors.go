// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package invoker

import (
	"errors"
	"fmt"

	"github.com/platform-engineering-labs/changeset/pkg/plugin/protocol"
)

var ErrChecksumMismatch = errors.New("plugin checksum mismatch")

// ProcessError reports a plugin process that could not be started, was
// killed, or exited with a non-zero status. Whatever it wrote to stdout
// has been discarded.
type ProcessError struct {
	Plugin string
	// ExitCode is -1 when the process never started or was terminated by a signal.
	ExitCode int
	// Stderr is the tail of the plugin's standard error.
	Stderr string
	Err    error
}

func (e *ProcessError) Error() string {
	msg := fmt.Sprintf("plugin %s failed", e.Plugin)
	if e.ExitCode >= 0 {
		msg = fmt.Sprintf("plugin %s exited with status %d", e.Plugin, e.ExitCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Stderr != "" {
		msg += "\n" + e.Stderr
	}
	return msg
}

func (e *ProcessError) Unwrap() []error {
	if e.Err == nil {
		return []error{protocol.ErrPluginProcessFailure}
	}
	return []error{protocol.ErrPluginProcessFailure, e.Err}
}
