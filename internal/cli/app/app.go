// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/masterminds/semver"

	"github.com/platform-engineering-labs/changeset/internal/changelog"
	"github.com/platform-engineering-labs/changeset/internal/changeset"
	"github.com/platform-engineering-labs/changeset/internal/config"
	"github.com/platform-engineering-labs/changeset/internal/version"
	"github.com/platform-engineering-labs/changeset/pkg/plugin/invoker"
)

var ErrNoVersion = errors.New("no version determined")

// VersionQuerier answers the current version of the project.
type VersionQuerier interface {
	GetVersion(ctx context.Context, path string) (string, error)
}

type App struct {
	Config *config.Config
	Store  *changeset.Store
	Plugin VersionQuerier
	Now    func() time.Time
	loaded bool
}

func NewApp() *App {
	return &App{Now: time.Now}
}

// LoadConfig reads the project configuration from path, or discovers it
// from dir when path is empty. Loading is done once.
func (a *App) LoadConfig(path, dir string) error {
	if a.loaded {
		return nil
	}

	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.Find(dir)
	}
	if err != nil {
		return err
	}

	inv, err := invoker.New(cfg.Plugin, cfg.Root)
	if err != nil {
		return err
	}

	slog.Debug("Loaded configuration", "file", cfg.File, "root", cfg.Root, "plugin", inv.Name)

	a.Config = cfg
	a.Store = changeset.NewStore(cfg.Root)
	a.Plugin = inv
	a.loaded = true
	return nil
}

// RawVersion asks the plugin for the version string as reported.
func (a *App) RawVersion(ctx context.Context) (string, error) {
	raw, err := a.Plugin.GetVersion(ctx, a.Config.VersionedFile())
	if err != nil {
		return "", fmt.Errorf("failed to get version: %w", err)
	}
	if raw == "" {
		return "", ErrNoVersion
	}
	return raw, nil
}

func (a *App) CurrentVersion(ctx context.Context) (*semver.Version, error) {
	raw, err := a.RawVersion(ctx)
	if err != nil {
		return nil, err
	}
	return version.Parse(raw)
}

func (a *App) AddChange(bump version.BumpType, message string) (*changeset.Change, error) {
	change, err := a.Store.Create(bump, message)
	if err != nil {
		return nil, err
	}
	slog.Info("Created changeset", "name", change.Name, "bump", change.Bump.String())
	return change, nil
}

// Plan queries the current version and collects the pending changes.
func (a *App) Plan(ctx context.Context) (*changeset.Plan, error) {
	changes, err := a.Store.List()
	if err != nil {
		return nil, err
	}
	return a.plan(ctx, changes)
}

func (a *App) plan(ctx context.Context, changes []changeset.Change) (*changeset.Plan, error) {
	current, err := a.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}
	return &changeset.Plan{Current: current, Changes: changes}, nil
}

func (a *App) Preview(ctx context.Context) (*Preview, error) {
	plan, err := a.Plan(ctx)
	if err != nil {
		return nil, err
	}
	return NewPreview(plan), nil
}

// Release consumes the pending changes: the changelog gets a new section
// and the changeset files are removed. With dryRun nothing is written.
// The plugin is not queried when there is nothing to release.
func (a *App) Release(ctx context.Context, dryRun bool) (*Preview, error) {
	changes, err := a.Store.List()
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return nil, changeset.ErrNoChanges
	}

	plan, err := a.plan(ctx, changes)
	if err != nil {
		return nil, err
	}

	preview := NewPreview(plan)
	if dryRun || plan.FinalBump() == version.None {
		return preview, nil
	}

	if a.Config.ChangelogEnabled() {
		path := a.Config.ChangelogPath()
		if err := changelog.Prepend(path, changelog.Render(plan, a.Now())); err != nil {
			return nil, fmt.Errorf("failed to update changelog: %w", err)
		}
		preview.Changelog = path
	}

	if err := a.Store.Consume(plan.Changes); err != nil {
		return nil, fmt.Errorf("failed to remove consumed changesets: %w", err)
	}
	preview.Consumed = true

	slog.Info("Consumed changesets", "count", len(plan.Changes), "version", preview.NextVersion)
	return preview, nil
}

// WorkingDir is the directory discovery starts from.
func WorkingDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}
