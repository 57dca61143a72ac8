// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package changeset

// Version is set at build time with -ldflags "-X github.com/platform-engineering-labs/changeset.Version=...".
var Version = "0.0.0"

const Repository = "https://github.com/platform-engineering-labs/changeset"
