// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package resolvers holds sdk.Resolver implementations that extract a
// version from structured manifests rather than plain text files.
package resolvers
