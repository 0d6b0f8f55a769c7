// Copyright (c) 2026, the Panda Stack contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package markup colorizes strings containing tags like {red}text{/red}
package markup

import (
	"regexp"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
)

var (
	colors = map[string]text.Color{
		"bold":      text.Bold,
		"black":     text.FgBlack,
		"red":       text.FgRed,
		"green":     text.FgGreen,
		"yellow":    text.FgYellow,
		"blue":      text.FgBlue,
		"magenta":   text.FgMagenta,
		"cyan":      text.FgCyan,
		"white":     text.FgWhite,
		"hiblack":   text.FgHiBlack,
		"hired":     text.FgHiRed,
		"higreen":   text.FgHiGreen,
		"hiyellow":  text.FgHiYellow,
		"hiblue":    text.FgHiBlue,
		"himagenta": text.FgHiMagenta,
		"hicyan":    text.FgHiCyan,
		"hiwhite":   text.FgHiWhite,
	}

	// matches tags with no other tag inside them
	innermost = regexp.MustCompile(`\{([a-zA-Z]+)\}([^{]*)\{/([a-zA-Z]+)\}`)
)

// Colorize replaces color tags with terminal escape sequences, innermost tags first.
// Tags naming unknown colors are removed while keeping their content.
func Colorize(input string) string {
	result := input

	for {
		changed := false

		for _, m := range innermost.FindAllStringSubmatchIndex(result, -1) {
			open := result[m[2]:m[3]]
			content := result[m[4]:m[5]]
			closing := result[m[6]:m[7]]

			if open != closing {
				continue
			}

			replacement := content
			if color, ok := colors[strings.ToLower(open)]; ok {
				replacement = text.Colors{color}.Sprint(content)
			}

			result = result[:m[0]] + replacement + result[m[1]:]
			changed = true
			break
		}

		if !changed {
			return result
		}
	}
}

// Tag wraps s in tags for color so it can be passed to Colorize, s is returned as is when color is empty
func Tag(color string, s string) string {
	if color == "" {
		return s
	}

	return "{" + color + "}" + s + "{/" + color + "}"
}

// IsColor reports whether color is a known color name
func IsColor(color string) bool {
	_, ok := colors[strings.ToLower(color)]
	return ok
}
