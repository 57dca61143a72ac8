// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/platform-engineering-labs/changeset"
)

func combineBanners(bannerBlue, bannerGold string) string {
	linesBlue := strings.Split(bannerBlue, "\n")
	linesGold := strings.Split(bannerGold, "\n")
	maxLines := max(len(linesGold), len(linesBlue))

	var combinedLines []string
	for i := range maxLines {
		line1 := ""
		if i < len(linesBlue) {
			line1 = LightBlue(linesBlue[i])
		}

		line2 := ""
		if i < len(linesGold) {
			line2 = Gold(linesGold[i])
		}

		combinedLines = append(combinedLines, line1+line2)
	}

	return strings.Join(combinedLines, "\n")
}

var banner = combineBanners(BannerBlue, BannerGold)

func PrintBanner(w io.Writer) {
	fmt.Fprintln(w, strings.Replace(banner, "version", changeset.Version, 1))
}

func Success(w io.Writer, msg string) {
	fmt.Fprint(w, Green(msg+"\n"))
}

func Info(w io.Writer, msg string) {
	fmt.Fprintln(w, msg)
}

func Warning(w io.Writer, msg string) {
	fmt.Fprint(w, Gold("Warning: "+msg+"\n"))
}

func Error(w io.Writer, msg string) {
	fmt.Fprint(w, Red("Error: "+msg+"\n"))
}

func Links(docLinkName string, deepLinkName string) string {
	deepLink := DocRoot
	if deepLinkName != "" {
		deepLink += "/" + deepLinkName
	}

	return "\n" + Gold("Code: ") + changeset.Repository +
		"\n" + Gold(fmt.Sprintf("%s: ", docLinkName)) + deepLink +
		"\n" + Gold("Bugs: ") + changeset.Repository + "/issues"
}
