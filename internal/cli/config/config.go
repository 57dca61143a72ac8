// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package config locates the per-user directories of the changeset CLI.
// Project configuration lives in internal/config.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	ConfigDirectory = ".config/changeset"
	DataDirectory   = ".local/share/changeset"
	LogFileName     = "changeset.log"

	// HomeEnvVar overrides the user's home directory for the CLI.
	HomeEnvVar = "CHANGESET_HOME"
)

var Config = cliconfig{}

type cliconfig struct{}

func home() string {
	if dir := os.Getenv(HomeEnvVar); dir != "" {
		return dir
	}

	homePath, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return homePath
}

func (cliconfig) ConfigDirectory() string {
	homePath := home()
	if homePath == "" {
		return ""
	}

	return filepath.Join(homePath, ConfigDirectory)
}

func (cliconfig) DataDirectory() string {
	homePath := home()
	if homePath == "" {
		return ""
	}

	return filepath.Join(homePath, DataDirectory)
}

func (cliconfig) LogFile() string {
	dataPath := Config.DataDirectory()
	if dataPath == "" {
		return ""
	}

	return filepath.Join(dataPath, "log", LogFileName)
}

func (cliconfig) EnsureConfigDirectory() error {
	configPath := Config.ConfigDirectory()
	if configPath == "" {
		return fmt.Errorf("failed to ensure changeset config directory")
	}

	return os.MkdirAll(configPath, 0700)
}

func (cliconfig) EnsureDataDirectory() error {
	dataPath := Config.DataDirectory()
	if dataPath == "" {
		return fmt.Errorf("failed to ensure changeset data directory")
	}

	return os.MkdirAll(dataPath, 0700)
}
