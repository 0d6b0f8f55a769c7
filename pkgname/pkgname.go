// Copyright (c) 2026, the Panda Stack contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package pkgname validates and normalizes npm registry package names
package pkgname

import (
	"regexp"
	"strings"
)

var (
	validName      = regexp.MustCompile(`^(?:@[a-z0-9-*~][a-z0-9-*._~]*/)?[a-z0-9-~][a-z0-9-._~]*$`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
	leadingDotOrUS = regexp.MustCompile(`^[._]`)
	disallowedRuns = regexp.MustCompile(`[^a-z0-9-~]+`)
)

// IsValid reports whether name is acceptable as a registry package name, optionally scoped as @scope/name
func IsValid(name string) bool {
	return validName.MatchString(name)
}

// Normalize turns any string into a package name, the result is valid unless it is empty
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = whitespaceRuns.ReplaceAllString(name, "-")
	name = leadingDotOrUS.ReplaceAllString(name, "")

	return disallowedRuns.ReplaceAllString(name, "-")
}
