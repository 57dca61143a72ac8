// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package sdk provides the entry point for version plugins.
// Plugin developers call Run from main with a Resolver:
//
//	func main() {
//		sdk.Run("file", sdk.FileContents())
//	}
//
// A plugin answers exactly one query per process. It reads the whole of
// standard input, decodes a GetVersionRequest, resolves the version and
// writes one GetVersionResponse to standard output. Every failure ends the
// process with a non-zero status and nothing on standard output.
package sdk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"unicode/utf8"

	"github.com/platform-engineering-labs/changeset/internal/logging"
	"github.com/platform-engineering-labs/changeset/pkg/plugin/protocol"
)

// Exit statuses of a plugin process.
const (
	ExitOK               = 0
	ExitMalformedRequest = 1
	ExitInputUnreadable  = 2
	ExitResponseFailed   = 3
	// ExitUsage is for plugins that reject their own command line before
	// any request is read.
	ExitUsage = 4
)

// LogLevelEnvVar selects the plugin's stderr log level (debug, info, warn, error).
const LogLevelEnvVar = "CHANGESET_PLUGIN_LOG_LEVEL"

// ErrResponseNotWritten marks failures after the version was resolved.
var ErrResponseNotWritten = errors.New("response not written")

// Resolver computes the version for a decoded request.
type Resolver interface {
	ResolveVersion(ctx context.Context, req *protocol.GetVersionRequest) (string, error)
}

type ResolverFunc func(ctx context.Context, req *protocol.GetVersionRequest) (string, error)

func (f ResolverFunc) ResolveVersion(ctx context.Context, req *protocol.GetVersionRequest) (string, error) {
	return f(ctx, req)
}

// Serve runs one exchange: read all of in, decode, resolve, encode, write
// to out. The response is fully encoded before anything is written, so a
// failed exchange never leaves partial bytes on out.
func Serve(ctx context.Context, in io.Reader, out io.Writer, resolver Resolver) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return &protocol.Error{Kind: protocol.MalformedMessage, Op: "read request", Err: err}
	}

	req, err := protocol.DecodeRequest(data)
	if err != nil {
		return err
	}

	log := LoggerFromContext(ctx)
	if req.Inputs != nil {
		log = log.With("input", req.Inputs.Path)
		ctx = WithLogger(ctx, log)
	}

	version, err := resolver.ResolveVersion(ctx, req)
	if err != nil {
		if _, ok := protocol.KindOf(err); ok {
			return err
		}
		return &protocol.Error{Kind: protocol.InputUnreadable, Op: "resolve version", Err: err}
	}
	if !utf8.ValidString(version) {
		return &protocol.Error{Kind: protocol.InputUnreadable, Op: "resolve version", Err: fmt.Errorf("version is not valid UTF-8")}
	}
	log.Debug("Resolved version", "version", version)

	b, err := (&protocol.GetVersionResponse{Version: version}).MarshalBinary()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrResponseNotWritten, err)
	}

	n, err := out.Write(b)
	if err == nil && n < len(b) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrResponseNotWritten, err)
	}

	return nil
}

// ExitCode maps the result of Serve to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrResponseNotWritten):
		return ExitResponseFailed
	case errors.Is(err, protocol.ErrInputUnreadable):
		return ExitInputUnreadable
	case errors.Is(err, protocol.ErrMalformedMessage):
		return ExitMalformedRequest
	default:
		return ExitResponseFailed
	}
}

// Main runs a plugin against the given streams and returns its exit status.
// Logs go to stderr only.
func Main(name string, resolver Resolver, stdin io.Reader, stdout, stderr io.Writer) int {
	level := slog.LevelWarn
	if l, err := logging.ParseLevel(os.Getenv(LogLevelEnvVar)); err == nil {
		level = l
	}
	logging.SetupPluginLogging(stderr, level)
	logger := slog.With("plugin", name)

	if schema := os.Getenv(protocol.SchemaEnvVar); schema != "" && schema != protocol.SchemaVersion {
		logger.Warn("Host speaks a different plugin schema", "host", schema, "plugin", protocol.SchemaVersion)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = WithLogger(ctx, NewLogger(logger))

	err := Serve(ctx, stdin, stdout, resolver)
	code := ExitCode(err)
	if err != nil {
		logger.Error("Version query failed", "error", err, "exit_code", code)
		return code
	}

	logger.Debug("Version query answered")
	return code
}

// Run is the plugin process entry point. It never returns.
func Run(name string, resolver Resolver) {
	os.Exit(Main(name, resolver, os.Stdin, os.Stdout, os.Stderr))
}
