// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build integration

package invoker

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/platform-engineering-labs/changeset/internal/logging"
	"github.com/platform-engineering-labs/changeset/pkg/plugin/protocol"
	"github.com/platform-engineering-labs/changeset/pkg/plugin/sdk"
)

// helperModeEnv turns the test binary into a plugin. Each mode emulates
// one plugin behaviour the host has to cope with.
const helperModeEnv = "CHANGESET_TEST_PLUGIN_MODE"

func TestMain(m *testing.M) {
	if mode, ok := os.LookupEnv(helperModeEnv); ok {
		os.Exit(runHelperPlugin(mode))
	}
	os.Exit(m.Run())
}

func runHelperPlugin(mode string) int {
	switch mode {
	case "file":
		return sdk.Main("file", sdk.FileContents(), os.Stdin, os.Stdout, os.Stderr)
	case "fail-after-output":
		os.Stdout.Write(protowire.AppendString(protowire.AppendTag(nil, 1, protowire.BytesType), "9.9.9"))
		os.Stderr.WriteString("could not finish\n")
		return 3
	case "garbage":
		os.Stdout.WriteString("this is not a response")
		return 0
	case "unknown-fields":
		var b []byte
		b = protowire.AppendTag(b, 7, protowire.VarintType)
		b = protowire.AppendVarint(b, 42)
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendString(b, "4.5.6")
		b = protowire.AppendTag(b, 15, protowire.BytesType)
		b = protowire.AppendString(b, "ignored")
		os.Stdout.Write(b)
		return 0
	case "echo-env":
		b := protowire.AppendTag(nil, 1, protowire.BytesType)
		b = protowire.AppendString(b, os.Getenv(protocol.SchemaEnvVar)+"|"+os.Getenv("EXTRA")+"|"+strings.Join(os.Args[1:], ","))
		os.Stdout.Write(b)
		return 0
	case "ignore-stdin":
		b := protowire.AppendTag(nil, 1, protowire.BytesType)
		os.Stdout.Write(protowire.AppendString(b, "1.0.0"))
		return 0
	case "hang":
		time.Sleep(time.Minute)
		return 0
	}
	return 99
}

func helperInvoker(t *testing.T, mode string) *Invoker {
	t.Helper()
	exe, err := os.Executable()
	require.NoError(t, err)
	return &Invoker{
		Name: mode,
		Path: exe,
		Env:  []string{helperModeEnv + "=" + mode},
		Dir:  t.TempDir(),
	}
}

func writeVersionFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "VERSION")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestGetVersion_FilePluginTrimsWhitespace(t *testing.T) {
	inv := helperInvoker(t, "file")

	version, err := inv.GetVersion(context.Background(), writeVersionFile(t, " 2.0.0 \n"))
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", version)
}

func TestGetVersion_NoInputsYieldsEmptyVersion(t *testing.T) {
	inv := helperInvoker(t, "file")

	version, err := inv.GetVersion(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "", version)
}

func TestGetVersion_MissingFileIsProcessFailure(t *testing.T) {
	inv := helperInvoker(t, "file")

	_, err := inv.GetVersion(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, protocol.ErrPluginProcessFailure)

	var procErr *ProcessError
	require.True(t, errors.As(err, &procErr))
	assert.Equal(t, sdk.ExitInputUnreadable, procErr.ExitCode)
	assert.Contains(t, procErr.Stderr, "Version query failed")
}

func TestInvoke_NonZeroExitDiscardsOutput(t *testing.T) {
	inv := helperInvoker(t, "fail-after-output")

	resp, err := inv.Invoke(context.Background(), &protocol.GetVersionRequest{})
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, protocol.ErrPluginProcessFailure)
	assert.NotErrorIs(t, err, protocol.ErrMalformedMessage)

	var procErr *ProcessError
	require.True(t, errors.As(err, &procErr))
	assert.Equal(t, 3, procErr.ExitCode)
	assert.Equal(t, "could not finish", procErr.Stderr)
}

func TestGetVersion_CleanExitWithoutReadingRequest(t *testing.T) {
	inv := helperInvoker(t, "ignore-stdin")

	// Large enough to overflow the pipe buffer, so the write fails once the
	// plugin is gone.
	version, err := inv.GetVersion(context.Background(), strings.Repeat("a", 200000))
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", version)
}

func TestInvoke_GarbageResponseIsMalformed(t *testing.T) {
	inv := helperInvoker(t, "garbage")

	_, err := inv.Invoke(context.Background(), &protocol.GetVersionRequest{})
	assert.ErrorIs(t, err, protocol.ErrMalformedMessage)
	assert.NotErrorIs(t, err, protocol.ErrPluginProcessFailure)
}

func TestInvoke_ToleratesUnknownResponseFields(t *testing.T) {
	inv := helperInvoker(t, "unknown-fields")

	version, err := inv.GetVersion(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "4.5.6", version)
}

func TestInvoke_PassesSchemaEnvAndArgs(t *testing.T) {
	inv := helperInvoker(t, "echo-env")
	inv.Env = append(inv.Env, "EXTRA=yes")
	inv.Args = []string{"-query", "version"}

	version, err := inv.GetVersion(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, protocol.SchemaVersion+"|yes|-query,version", version)
}

func TestInvoke_TimeoutKillsPlugin(t *testing.T) {
	inv := helperInvoker(t, "hang")
	inv.Timeout = 200 * time.Millisecond

	start := time.Now()
	_, err := inv.GetVersion(context.Background(), "")
	assert.ErrorIs(t, err, protocol.ErrPluginProcessFailure)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestInvoke_CancelledContext(t *testing.T) {
	inv := helperInvoker(t, "hang")
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	_, err := inv.GetVersion(ctx, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInvoke_MissingExecutable(t *testing.T) {
	inv := &Invoker{Name: "ghost", Path: filepath.Join(t.TempDir(), "no-such-plugin")}

	_, err := inv.GetVersion(context.Background(), "")
	assert.ErrorIs(t, err, protocol.ErrPluginProcessFailure)

	var procErr *ProcessError
	require.True(t, errors.As(err, &procErr))
	assert.Equal(t, -1, procErr.ExitCode)
}

func TestInvoke_ChecksumMismatchRefusesToRun(t *testing.T) {
	inv := helperInvoker(t, "file")
	inv.SHA256 = strings.Repeat("0", 64)

	_, err := inv.GetVersion(context.Background(), writeVersionFile(t, "1.0.0"))
	assert.ErrorIs(t, err, ErrChecksumMismatch)
	assert.ErrorIs(t, err, protocol.ErrPluginProcessFailure)
}

func TestInvoke_ChecksumMatchRuns(t *testing.T) {
	inv := helperInvoker(t, "file")
	sum, err := Checksum(inv.Path)
	require.NoError(t, err)
	inv.SHA256 = strings.ToUpper(sum)

	version, err := inv.GetVersion(context.Background(), writeVersionFile(t, "1.0.0"))
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", version)
}

func TestInvoke_LogsCorrelatedRecords(t *testing.T) {
	capture := logging.NewTestLogCaptureQuiet()
	defer capture.Install(slog.LevelDebug)()

	inv := helperInvoker(t, "file")
	inv.Env = append(inv.Env, sdk.LogLevelEnvVar+"=debug")

	_, err := inv.GetVersion(context.Background(), writeVersionFile(t, "5.0.0"))
	require.NoError(t, err)

	assert.True(t, capture.ContainsAll("Invoking plugin", "Plugin answered", "version=5.0.0", "invocation="))
	assert.True(t, capture.ContainsAll("Plugin stderr"), "plugin debug output is relayed")
}
