// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package changeset stores pending changes as markdown files with YAML
// front matter:
//
//	---
//	changeset/type: minor
//	---
//
//	# Add the pyproject plugin
package changeset

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/masterminds/semver"
	"github.com/sourcegraph/conc/iter"
	"gopkg.in/yaml.v3"

	"github.com/platform-engineering-labs/changeset/internal/version"
)

const (
	Directory = ".changeset"
	TypeKey   = "changeset/type"

	nameParts    = 3
	createTries  = 16
	frontMatter  = "---"
	readmeFile   = "README.md"
	changeSuffix = ".md"
)

var ErrNoChanges = errors.New("no changesets found")

var words = []string{
	"hello", "world", "dog", "arnold", "cat", "kitten", "puppy", "armadillo",
	"giraffe", "happy", "sad", "emotional", "earth", "mars", "car", "robot",
	"whale", "python", "otter", "maple", "comet", "lantern", "pebble", "violet",
}

// Change is one pending changeset file.
type Change struct {
	Name    string
	Path    string
	Bump    version.BumpType
	Message string
}

// Store reads and writes changeset files in a single directory.
type Store struct {
	Dir string
}

func NewStore(root string) *Store {
	return &Store{Dir: filepath.Join(root, Directory)}
}

// Create writes a new changeset file under a random name and returns it.
func (s *Store) Create(bump version.BumpType, message string) (*Change, error) {
	if bump == version.Undetermined {
		return nil, fmt.Errorf("a changeset needs a bump type")
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("a changeset needs a message")
	}

	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", s.Dir, err)
	}

	contents, err := render(bump, message)
	if err != nil {
		return nil, err
	}

	for range createTries {
		name := randomName()
		path := filepath.Join(s.Dir, name+changeSuffix)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return nil, err
		}

		_, err = f.Write(contents)
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			_ = os.Remove(path)
			return nil, fmt.Errorf("failed to write changeset %s: %w", path, err)
		}

		return &Change{Name: name, Path: path, Bump: bump, Message: message}, nil
	}

	return nil, fmt.Errorf("could not find a free changeset name in %s", s.Dir)
}

// List parses every changeset in the directory, ordered by name. A missing
// directory holds no changes.
func (s *Store) List() ([]Change, error) {
	entries, err := os.ReadDir(s.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, changeSuffix) || strings.EqualFold(name, readmeFile) {
			continue
		}
		paths = append(paths, filepath.Join(s.Dir, name))
	}
	slices.Sort(paths)

	return iter.MapErr(paths, func(path *string) (Change, error) {
		return Load(*path)
	})
}

// Consume deletes the files of the given changes.
func (s *Store) Consume(changes []Change) error {
	var errs []error
	for _, c := range changes {
		if err := os.Remove(c.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Load parses a single changeset file.
func Load(path string) (Change, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Change{}, err
	}

	bump, message, err := Parse(data)
	if err != nil {
		return Change{}, fmt.Errorf("changeset %s: %w", path, err)
	}

	return Change{
		Name:    strings.TrimSuffix(filepath.Base(path), changeSuffix),
		Path:    path,
		Bump:    bump,
		Message: message,
	}, nil
}

// Parse splits a changeset document into its bump type and message. The
// message is the body with a leading heading marker removed.
func Parse(data []byte) (version.BumpType, string, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	rest, ok := strings.CutPrefix(text, frontMatter+"\n")
	if !ok {
		return version.Undetermined, "", fmt.Errorf("missing front matter")
	}
	header, body, ok := strings.Cut(rest, "\n"+frontMatter)
	if !ok {
		if header, ok = strings.CutPrefix(rest, frontMatter); !ok {
			return version.Undetermined, "", fmt.Errorf("unterminated front matter")
		}
		header, body = "", header
	}

	var meta map[string]any
	if err := yaml.Unmarshal([]byte(header), &meta); err != nil {
		return version.Undetermined, "", fmt.Errorf("invalid front matter: %w", err)
	}

	raw, ok := meta[TypeKey].(string)
	if !ok || raw == "" {
		return version.Undetermined, "", fmt.Errorf("front matter does not set %s", TypeKey)
	}
	bump, err := version.ParseBumpType(raw)
	if err != nil {
		return version.Undetermined, "", err
	}

	body = strings.TrimSpace(body)
	body = strings.TrimSpace(strings.TrimPrefix(body, "#"))
	return bump, body, nil
}

func render(bump version.BumpType, message string) ([]byte, error) {
	header, err := yaml.Marshal(map[string]string{TypeKey: bump.String()})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(frontMatter + "\n")
	buf.Write(header)
	buf.WriteString(frontMatter + "\n\n# ")
	buf.WriteString(message)
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

func randomName() string {
	parts := make([]string, nameParts)
	for i := range parts {
		parts[i] = words[rand.IntN(len(words))]
	}
	return strings.Join(parts, "-")
}

// Plan is the release computed from the current version and the pending
// changes.
type Plan struct {
	Current *semver.Version
	Changes []Change
}

// FinalBump is the most significant bump across all changes, or
// Undetermined when there are none.
func (p *Plan) FinalBump() version.BumpType {
	bumps := make([]version.BumpType, len(p.Changes))
	for i, c := range p.Changes {
		bumps[i] = c.Bump
	}
	return version.Highest(bumps...)
}

func (p *Plan) NextVersion() *semver.Version {
	return version.Bump(p.Current, p.FinalBump())
}

// ByBump groups messages by bump type.
func (p *Plan) ByBump() map[version.BumpType][]Change {
	groups := make(map[version.BumpType][]Change)
	for _, c := range p.Changes {
		groups[c.Bump] = append(groups[c.Bump], c)
	}
	return groups
}
