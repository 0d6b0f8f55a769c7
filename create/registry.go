// Copyright (c) 2026, the Panda Stack contributors
//
// SPDX-License-Identifier: Apache-2.0

package create

import (
	"fmt"

	"github.com/pandastack/create-panda/internal/markup"
)

// Variant is a flavour of a framework with its own template
type Variant struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
	// Template is the template directory, defaults to Name
	Template string `json:"template" yaml:"template"`
}

// Framework is a selectable project type, frameworks with variants are materialized from the selected variant
type Framework struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
	// Template is the template directory, defaults to Name
	Template string    `json:"template" yaml:"template"`
	Variants []Variant `json:"variants" yaml:"variants"`
}

// Registry lists the frameworks that can be scaffolded in the order they are presented
type Registry []Framework

// DefaultRegistry is the registry of the templates bundled with the tool
func DefaultRegistry() Registry {
	return Registry{
		{Name: "mern", Color: "magenta", Template: "mern"},
	}
}

// Title is the colorized name shown when selecting the framework
func (f Framework) Title() string {
	return markup.Colorize(markup.Tag(f.Color, f.Name))
}

// Title is the colorized name shown when selecting the variant
func (v Variant) Title() string {
	return markup.Colorize(markup.Tag(v.Color, v.Name))
}

// HasVariants reports whether a variant has to be selected for the framework
func (f Framework) HasVariants() bool {
	return len(f.Variants) > 0
}

// Validate checks names are set and unique and colors are known
func (r Registry) Validate() error {
	if len(r) == 0 {
		return fmt.Errorf("no frameworks registered")
	}

	seen := map[string]bool{}
	check := func(name string, color string) error {
		if name == "" {
			return fmt.Errorf("frameworks and variants require a name")
		}
		if seen[name] {
			return fmt.Errorf("duplicate template name %s", name)
		}
		if color != "" && !markup.IsColor(color) {
			return fmt.Errorf("%s has unknown color %s", name, color)
		}
		seen[name] = true

		return nil
	}

	for _, f := range r {
		err := check(f.Name, f.Color)
		if err != nil {
			return err
		}

		for _, v := range f.Variants {
			err = check(v.Name, v.Color)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// Names lists every selectable template name, frameworks with variants are represented by their variants
func (r Registry) Names() []string {
	var names []string
	for _, f := range r {
		if !f.HasVariants() {
			names = append(names, f.Name)
			continue
		}

		for _, v := range f.Variants {
			names = append(names, v.Name)
		}
	}

	return names
}

// Framework finds a framework by name
func (r Registry) Framework(name string) (Framework, bool) {
	for _, f := range r {
		if f.Name == name {
			return f, true
		}
	}

	return Framework{}, false
}

// TemplateDir resolves a framework or variant name to its template directory
func (r Registry) TemplateDir(name string) (string, bool) {
	for _, f := range r {
		if !f.HasVariants() && f.Name == name {
			return orDefault(f.Template, f.Name), true
		}

		for _, v := range f.Variants {
			if v.Name == name {
				return orDefault(v.Template, v.Name), true
			}
		}
	}

	return "", false
}

func orDefault(v string, dflt string) string {
	if v == "" {
		return dflt
	}

	return v
}
