// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package app

import (
	"github.com/platform-engineering-labs/changeset/internal/changeset"
)

type PreviewChange struct {
	Name    string `json:"name" yaml:"name"`
	Bump    string `json:"bump" yaml:"bump"`
	Message string `json:"message" yaml:"message"`
}

// Preview is the outcome of a release, whether or not it was applied.
type Preview struct {
	CurrentVersion string          `json:"currentVersion" yaml:"currentVersion"`
	NextVersion    string          `json:"nextVersion" yaml:"nextVersion"`
	Bump           string          `json:"bump" yaml:"bump"`
	Changes        []PreviewChange `json:"changes" yaml:"changes"`
	Changelog      string          `json:"changelog,omitempty" yaml:"changelog,omitempty"`
	Consumed       bool            `json:"consumed" yaml:"consumed"`
}

func NewPreview(plan *changeset.Plan) *Preview {
	p := &Preview{
		CurrentVersion: plan.Current.String(),
		NextVersion:    plan.NextVersion().String(),
		Bump:           plan.FinalBump().String(),
		Changes:        make([]PreviewChange, 0, len(plan.Changes)),
	}
	for _, c := range plan.Changes {
		p.Changes = append(p.Changes, PreviewChange{Name: c.Name, Bump: c.Bump.String(), Message: c.Message})
	}
	return p
}
