// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package version

import (
	"fmt"
	"strings"

	"github.com/masterminds/semver"
)

// BumpType is the release impact of a change. Higher values win when
// changes are combined.
type BumpType int8

const (
	Undetermined BumpType = -1
	None         BumpType = 0
	Patch        BumpType = 1
	Minor        BumpType = 2
	Major        BumpType = 3
)

// BumpTypes lists the bump types a change can declare, most significant first.
var BumpTypes = []BumpType{Major, Minor, Patch, None}

func (b BumpType) String() string {
	switch b {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Patch:
		return "patch"
	case None:
		return "none"
	}
	return "undetermined"
}

func ParseBumpType(s string) (BumpType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "major":
		return Major, nil
	case "minor":
		return Minor, nil
	case "patch":
		return Patch, nil
	case "none":
		return None, nil
	}
	return Undetermined, fmt.Errorf("invalid bump type %q, must be one of: major, minor, patch, none", s)
}

// Highest returns the most significant bump type, or Undetermined when
// there is none.
func Highest(bumps ...BumpType) BumpType {
	highest := Undetermined
	for _, b := range bumps {
		highest = max(highest, b)
	}
	return highest
}

// Parse reads a semantic version as reported by a plugin. A leading "v" is
// accepted.
func Parse(s string) (*semver.Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("no version determined")
	}

	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", s, err)
	}
	return v, nil
}

// Bump returns v raised by b. None and Undetermined leave the version
// unchanged. Bumping a prerelease drops the prerelease suffix first.
func Bump(v *semver.Version, b BumpType) *semver.Version {
	var next semver.Version
	switch b {
	case Major:
		next = v.IncMajor()
	case Minor:
		next = v.IncMinor()
	case Patch:
		next = v.IncPatch()
	default:
		return v
	}
	return &next
}
