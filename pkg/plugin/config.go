// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package plugin describes how the changeset host runs a version plugin.
package plugin

import (
	"encoding/hex"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Config tells the host which executable answers version queries and
// what it should be asked. It is the contract between a project's
// configuration file and the invoker. Keep this minimal.
type Config struct {
	// Name labels the plugin in logs and errors (e.g., "file", "pyproject")
	Name string `json:"name" yaml:"name"`

	// Path is the plugin executable. Relative paths are resolved against
	// the project root; a bare name is looked up in PATH.
	Path string `json:"path" yaml:"path"`

	// URL is accepted for configuration files written for earlier releases.
	// Only file:// URLs are supported and they are treated as Path.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Args are passed to the plugin executable verbatim.
	Args []string `json:"args,omitempty" yaml:"args,omitempty"`

	// Env is added to the environment the plugin inherits from the host.
	Env map[string]string `json:"env,omitempty" yaml:"env,omitempty"`

	// SHA256 is the expected hex digest of the executable. When set the
	// host refuses to run an executable that does not match.
	SHA256 string `json:"sha256,omitempty" yaml:"sha256,omitempty"`

	// VersionedFile is sent to the plugin as the request's input file.
	// Empty means the request carries no inputs.
	VersionedFile string `json:"versionedFile,omitempty" yaml:"versionedFile,omitempty"`

	// Timeout bounds one invocation, as a Go duration string (e.g., "30s").
	Timeout string `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// Validate checks the configuration and normalises the legacy URL field.
func (c *Config) Validate() error {
	if c.Path == "" && c.URL != "" {
		path, ok := strings.CutPrefix(c.URL, "file://")
		if !ok {
			return fmt.Errorf("plugin: unsupported url %q, only file:// urls are supported", c.URL)
		}
		c.Path = path
	}

	if c.Path == "" {
		return fmt.Errorf("plugin: path is required")
	}

	if c.Name == "" {
		c.Name = strings.TrimSuffix(filepath.Base(c.Path), filepath.Ext(c.Path))
	}

	if c.SHA256 != "" {
		sum, err := hex.DecodeString(c.SHA256)
		if err != nil || len(sum) != 32 {
			return fmt.Errorf("plugin: sha256 must be 64 hexadecimal characters")
		}
	}

	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	return nil
}

// TimeoutDuration parses Timeout. Zero means no timeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("plugin: invalid timeout %q: %w", c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("plugin: timeout must not be negative")
	}
	return d, nil
}

// ResolvePath returns the executable path with relative paths anchored at
// root. Bare names without a separator are left for PATH lookup.
func (c *Config) ResolvePath(root string) string {
	bare := !strings.ContainsRune(c.Path, filepath.Separator) && !strings.ContainsRune(c.Path, '/')
	if filepath.IsAbs(c.Path) || bare {
		return c.Path
	}
	return filepath.Join(root, c.Path)
}

// Environ renders Env as KEY=VALUE pairs in a stable order.
func (c *Config) Environ() []string {
	env := make([]string, 0, len(c.Env))
	for _, k := range slices.Sorted(maps.Keys(c.Env)) {
		env = append(env, k+"="+c.Env[k])
	}
	return env
}
