// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// The file plugin reports the contents of the versioned file, with
// surrounding whitespace removed, as the version.
package main

import "github.com/platform-engineering-labs/changeset/pkg/plugin/sdk"

func main() {
	sdk.Run("file", sdk.FileContents())
}
