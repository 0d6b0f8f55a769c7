// Copyright (c) 2026, the Panda Stack contributors
//
// SPDX-License-Identifier: Apache-2.0

package create

import (
	"fmt"
	"path/filepath"

	"github.com/kballard/go-shellquote"
	"github.com/pandastack/create-panda/internal/markup"
)

func colorize(color string, s string) string {
	return markup.Colorize(markup.Tag(color, s))
}

// report prints the commands to run in the new project, tailored to the package manager that invoked us
func (c *Creator) report(res *Result) {
	out := c.cfg.Output

	manager := DefaultPackageManager
	if pm, ok := PackageManagerFromUserAgent(c.cfg.UserAgent); ok {
		manager = pm.Name
	}

	c.debugf("Reporting next steps for package manager %s", manager)

	fmt.Fprintln(out, colorize("hired", "\nDone. Now run the following commands:\n"))

	rel, err := filepath.Rel(c.cfg.Workspace.Root(), res.Root)
	if err != nil {
		rel = res.Root
	}
	if rel != "." {
		fmt.Fprintf(out, "  %s %s\n\n", colorize("green", "cd"), shellquote.Join(rel))
	}

	for _, hint := range NextSteps(manager) {
		fmt.Fprintln(out, colorize("green", "  "+hint.Command))
		fmt.Fprintf(out, "    %s\n\n", hint.Description)
	}

	if manager != "yarn" {
		fmt.Fprintln(out, colorize("cyan", "  Happy Panda Coding 🐼⚡️"))
	}
	fmt.Fprintln(out)
}
