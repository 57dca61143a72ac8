// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package config loads a project's .changeset configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/platform-engineering-labs/changeset/internal/changelog"
	"github.com/platform-engineering-labs/changeset/internal/changeset"
	"github.com/platform-engineering-labs/changeset/internal/util"
	"github.com/platform-engineering-labs/changeset/pkg/plugin"
)

// FileNames are tried in order inside the .changeset directory.
var FileNames = []string{"config.yaml", "config.yml", "config.json"}

var ErrNoProject = errors.New("no .changeset directory found, run from inside a project")

type Changelog struct {
	// Enabled defaults to true.
	Enabled *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
}

type Config struct {
	Plugin    plugin.Config `json:"plugin" yaml:"plugin"`
	Changelog Changelog     `json:"changelog" yaml:"changelog"`

	// Root is the directory holding .changeset. Not part of the file.
	Root string `json:"-" yaml:"-"`
	// File is where the configuration was read from.
	File string `json:"-" yaml:"-"`
}

func (c *Config) ChangelogEnabled() bool {
	return c.Changelog.Enabled == nil || *c.Changelog.Enabled
}

// ChangelogPath is absolute, relative paths are taken from Root.
func (c *Config) ChangelogPath() string {
	path := c.Changelog.Path
	if path == "" {
		path = changelog.DefaultPath
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Root, path)
}

// VersionedFile is the path sent to the plugin, or empty when the plugin
// is queried without inputs.
func (c *Config) VersionedFile() string {
	path := c.Plugin.VersionedFile
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Root, path)
}

// Find locates the project enclosing dir and loads its configuration.
func Find(dir string) (*Config, error) {
	root, err := util.FindUp(dir, changeset.Directory)
	if errors.Is(err, util.ErrNotFound) {
		return nil, ErrNoProject
	}
	if err != nil {
		return nil, err
	}

	for _, name := range FileNames {
		path := filepath.Join(root, changeset.Directory, name)
		if _, err := os.Stat(path); err == nil {
			return load(path, root)
		}
	}

	return nil, fmt.Errorf("no configuration in %s, expected one of %s",
		filepath.Join(root, changeset.Directory), strings.Join(FileNames, ", "))
}

// Load reads the configuration at path. The project root is the parent of
// the directory holding the file.
func Load(path string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return load(abs, filepath.Dir(filepath.Dir(abs)))
}

func load(path, root string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	cfg := &Config{Root: root, File: path}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(cfg)
	default:
		return nil, fmt.Errorf("unsupported configuration format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration from '%s': %w", path, err)
	}

	cfg.Plugin.Path = util.ExpandHomePath(cfg.Plugin.Path)
	cfg.Plugin.VersionedFile = util.ExpandHomePath(cfg.Plugin.VersionedFile)
	cfg.Changelog.Path = util.ExpandHomePath(cfg.Changelog.Path)

	if err := cfg.Plugin.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}
