// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package logging

import (
	"log/slog"
	"strings"
)

// slogWriter receives output of the standard log package.
type slogWriter struct{}

func (w *slogWriter) Write(p []byte) (n int, err error) {
	msg := strings.TrimRight(string(p), "\n")

	if rest, ok := strings.CutPrefix(msg, "ERROR "); ok {
		slog.Error(rest)
	} else if rest, ok := strings.CutPrefix(msg, "WARN "); ok {
		slog.Warn(rest)
	} else if rest, ok := strings.CutPrefix(msg, "INFO "); ok {
		slog.Info(rest)
	} else {
		slog.Debug(msg)
	}

	return len(p), nil
}
