// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package changelog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/platform-engineering-labs/changeset/internal/changeset"
	"github.com/platform-engineering-labs/changeset/internal/util"
	"github.com/platform-engineering-labs/changeset/internal/version"
)

const (
	DefaultPath = "CHANGELOG.md"
	title       = "# Changelog"
)

var sectionTitles = map[version.BumpType]string{
	version.Major: "Major Changes",
	version.Minor: "Minor Changes",
	version.Patch: "Patch Changes",
	version.None:  "Other Changes",
}

// Render formats the release section for the plan's next version.
func Render(plan *changeset.Plan, date time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s (%s)\n", plan.NextVersion(), date.Format(time.DateOnly))

	groups := plan.ByBump()
	for _, bump := range version.BumpTypes {
		changes := groups[bump]
		if len(changes) == 0 {
			continue
		}

		fmt.Fprintf(&b, "\n### %s\n\n", sectionTitles[bump])
		for _, c := range changes {
			fmt.Fprintf(&b, "- %s\n", indentContinuation(c.Message))
		}
	}

	return b.String()
}

// Prepend inserts section at the top of the changelog at path, below its
// title. The file is created when it does not exist.
func Prepend(path, section string) error {
	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	rest := strings.TrimLeft(string(existing), "\n")
	if after, ok := strings.CutPrefix(rest, title+"\n"); ok {
		rest = strings.TrimLeft(after, "\n")
	} else if rest == title {
		rest = ""
	}

	var b strings.Builder
	b.WriteString(title + "\n\n")
	b.WriteString(strings.TrimRight(section, "\n") + "\n")
	if rest != "" {
		b.WriteString("\n" + rest)
	}

	if err := util.EnsureFileFolderHierarchy(path); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}

func indentContinuation(message string) string {
	return strings.ReplaceAll(strings.TrimSpace(message), "\n", "\n  ")
}
