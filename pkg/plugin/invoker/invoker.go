// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package invoker runs a version plugin as a child process for exactly one
// request/response exchange.
//
// An exchange has two phases. The encoded request is written to the
// child's stdin, which is then closed; the child's stdout is read to end of
// stream. Both phases run concurrently so neither pipe can fill up and
// stall the other, but stdin is always closed as soon as the request is
// delivered. Only after the child exits with status zero are the collected
// bytes decoded.
package invoker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/sourcegraph/conc"

	"github.com/platform-engineering-labs/changeset/pkg/plugin"
	"github.com/platform-engineering-labs/changeset/pkg/plugin/protocol"
)

const stderrTailSize = 4096

// Invoker describes how to run one plugin executable.
type Invoker struct {
	Name string
	Path string
	Args []string
	// Env is appended to the host environment.
	Env []string
	Dir string
	// SHA256 is the expected hex digest of the executable, if any.
	SHA256  string
	Timeout time.Duration
}

// New builds an Invoker from a validated plugin configuration. Relative
// plugin paths are resolved against root, which is also the child's
// working directory.
func New(config plugin.Config, root string) (*Invoker, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	timeout, err := config.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	return &Invoker{
		Name:    config.Name,
		Path:    config.ResolvePath(root),
		Args:    config.Args,
		Env:     config.Environ(),
		Dir:     root,
		SHA256:  config.SHA256,
		Timeout: timeout,
	}, nil
}

// GetVersion asks the plugin for the version derived from path. An empty
// path sends a request without inputs. An empty version is a valid result.
func (i *Invoker) GetVersion(ctx context.Context, path string) (string, error) {
	resp, err := i.Invoke(ctx, protocol.NewGetVersionRequest(path))
	if err != nil {
		return "", err
	}
	return resp.Version, nil
}

// Invoke runs one exchange. Failures of the child process are reported as
// *ProcessError; a clean exit whose output does not decode is reported as
// a MalformedMessage protocol error.
func (i *Invoker) Invoke(ctx context.Context, req *protocol.GetVersionRequest) (*protocol.GetVersionResponse, error) {
	logger := slog.With("plugin", i.Name, "invocation", ksuid.New().String())

	payload, err := req.MarshalBinary()
	if err != nil {
		return nil, err
	}

	if i.SHA256 != "" {
		if err := verifyChecksum(i.Path, i.SHA256); err != nil {
			return nil, &ProcessError{Plugin: i.Name, ExitCode: -1, Err: err}
		}
	}

	if i.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.Timeout)
		defer cancel()
	}

	logger.Debug("Invoking plugin", "path", i.Path, "args", i.Args, "request_bytes", len(payload))
	start := time.Now()

	stdout, err := i.exchange(ctx, payload, logger)
	if err != nil {
		logger.Debug("Plugin failed", "error", err, "duration", time.Since(start))
		return nil, err
	}

	resp, err := protocol.DecodeResponse(stdout)
	if err != nil {
		logger.Warn("Plugin exited cleanly but its response does not decode", "response_bytes", len(stdout))
		return nil, fmt.Errorf("plugin %s: %w", i.Name, err)
	}

	logger.Debug("Plugin answered", "version", resp.Version, "duration", time.Since(start))
	return resp, nil
}

func (i *Invoker) exchange(ctx context.Context, payload []byte, logger *slog.Logger) ([]byte, error) {
	cmd := exec.CommandContext(ctx, i.Path, i.Args...)
	cmd.Dir = i.Dir
	cmd.Env = append(os.Environ(), protocol.SchemaEnvVar+"="+protocol.SchemaVersion)
	cmd.Env = append(cmd.Env, i.Env...)
	cmd.WaitDelay = time.Second

	stderr := &tailBuffer{limit: stderrTailSize}
	cmd.Stderr = stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, i.processError(-1, stderr, err)
	}
	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, i.processError(-1, stderr, err)
	}

	if err := cmd.Start(); err != nil {
		return nil, i.processError(-1, stderr, fmt.Errorf("start: %w", err))
	}

	var (
		wg       conc.WaitGroup
		writeErr error
	)
	wg.Go(func() {
		writeErr = writeRequest(stdin, payload)
	})

	stdout, readErr := io.ReadAll(stdoutPipe)
	wg.Wait()
	waitErr := cmd.Wait()

	logStderr(logger, stderr.String())

	if waitErr != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			waitErr = fmt.Errorf("%w: %w", ctxErr, waitErr)
		}
		return nil, i.processError(exitCode, stderr, waitErr)
	}

	if readErr != nil {
		return nil, i.processError(0, stderr, fmt.Errorf("read response: %w", readErr))
	}
	if writeErr != nil {
		// A clean exit vouches for stdout even if the plugin never read
		// its request.
		if !errors.Is(writeErr, syscall.EPIPE) && !errors.Is(writeErr, os.ErrClosed) {
			return nil, i.processError(0, stderr, fmt.Errorf("write request: %w", writeErr))
		}
		logger.Debug("Plugin exited without reading the request", "error", writeErr)
	}

	return stdout, nil
}

func writeRequest(stdin io.WriteCloser, payload []byte) error {
	_, err := stdin.Write(payload)
	if closeErr := stdin.Close(); err == nil {
		err = closeErr
	}
	return err
}

func (i *Invoker) processError(exitCode int, stderr *tailBuffer, err error) *ProcessError {
	return &ProcessError{
		Plugin:   i.Name,
		ExitCode: exitCode,
		Stderr:   strings.TrimSpace(stderr.String()),
		Err:      err,
	}
}

func logStderr(logger *slog.Logger, output string) {
	for line := range strings.Lines(output) {
		if line = strings.TrimSpace(line); line != "" {
			logger.Debug("Plugin stderr", "line", line)
		}
	}
}

// tailBuffer keeps the last limit bytes written to it.
type tailBuffer struct {
	buf   bytes.Buffer
	limit int
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	n := len(p)
	if len(p) > b.limit {
		p = p[len(p)-b.limit:]
	}
	if overflow := b.buf.Len() + len(p) - b.limit; overflow > 0 {
		b.buf.Next(overflow)
	}
	b.buf.Write(p)
	return n, nil
}

func (b *tailBuffer) String() string {
	return b.buf.String()
}
