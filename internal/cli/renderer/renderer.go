// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package renderer

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/platform-engineering-labs/changeset/internal/cli/app"
	"github.com/platform-engineering-labs/changeset/internal/cli/display"
)

// RenderChanges renders the pending changes as a table.
func RenderChanges(changes []app.PreviewChange) (string, error) {
	if len(changes) == 0 {
		return display.Gold("No changesets found.\n"), nil
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRowAutoWrap(tw.WrapNormal),
		tablewriter.WithHeaderAutoFormat(tw.Off),
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.On, ShowHeader: tw.On}},
		})))
	table.Header(display.LightBlue("Changeset"), "Type", "Message")

	data := make([][]string, len(changes))
	for i, c := range changes {
		data[i] = []string{display.LightBlue(c.Name), display.Bump(c.Bump), c.Message}
	}

	if err := table.Bulk(data); err != nil {
		return "", fmt.Errorf("error rendering changes: %v", err)
	}
	if err := table.Render(); err != nil {
		return "", fmt.Errorf("error rendering changes: %v", err)
	}

	return buf.String(), nil
}

// RenderPreview renders the full release preview: versions, the changes
// table and a one-line verdict.
func RenderPreview(p *app.Preview) (string, error) {
	var buf strings.Builder
	fmt.Fprintf(&buf, "%s %s\n\n", display.Gold("Current version:"), p.CurrentVersion)

	changes, err := RenderChanges(p.Changes)
	if err != nil {
		return "", err
	}
	buf.WriteString(changes)

	buf.WriteString("\n" + RenderVerdict(p) + "\n")
	return buf.String(), nil
}

// RenderVerdict explains which version the changes lead to.
func RenderVerdict(p *app.Preview) string {
	switch {
	case len(p.Changes) == 0:
		return fmt.Sprintf("No changesets found. Run '%s add' to add changes.", display.Tool)
	case p.Bump == "none":
		return fmt.Sprintf("The version will remain at %s as all changes are not version impacting.",
			display.LightBlue(p.CurrentVersion))
	}
	return fmt.Sprintf("The version will be bumped to %s because a %s change was determined from the changes.",
		display.Green(p.NextVersion), display.Bump(p.Bump))
}
