// Copyright (c) 2026, the Panda Stack contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package templates holds the project templates bundled into the binary
package templates

import "embed"

// FS holds one directory per template, named after the registry entry using it
//
//go:embed all:mern
var FS embed.FS
