// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package display

const (
	Tool       = "changeset"
	BannerBlue = `
  ___ _  _   _   _  _  ___ ___ 
 / __| || | /_\ | \| |/ __| __|
| (__| __ |/ _ \| .' | (_ | _| 
 \___|_||_/_/ \_\_|\_|\___|___|
`
	BannerGold = `
 ___ ___ _____ 
/ __| __|_   _|
\__ \ _|  | |  
|___/___| |_|   vversion
`
	DocRoot = "https://github.com/platform-engineering-labs/changeset/blob/main/docs"
)
