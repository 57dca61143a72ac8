// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package display

import (
	gkcolor "github.com/gookit/color"
)

var (
	gold = gkcolor.RGB(181, 181, 91)
	grey = gkcolor.RGB(138, 138, 138)
)

func Gold(s string) string {
	return gold.Sprint(s)
}

func Green(s string) string {
	return gkcolor.FgGreen.Sprint(s)
}

func Grey(s string) string {
	return grey.Sprint(s)
}
func Greyf(format string, args ...any) string {
	return grey.Sprintf(format, args...)
}

func LightBlue(s string) string {
	return gkcolor.HiBlue.Sprint(s)
}

func Red(s string) string {
	return gkcolor.FgRed.Sprint(s)
}
func Redf(s string, args ...any) string {
	return gkcolor.FgRed.Sprintf(s, args...)
}

// Bump colors a bump type name by how disruptive the release is.
func Bump(name string) string {
	switch name {
	case "major":
		return Red(name)
	case "minor":
		return Gold(name)
	case "patch":
		return Green(name)
	}
	return Grey(name)
}
