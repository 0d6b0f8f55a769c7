// Copyright (c) 2026, the Panda Stack contributors
//
// SPDX-License-Identifier: Apache-2.0

package create

//go:generate mockgen -source prompts.go -destination mock_test.go -package create -typed

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/pandastack/create-panda/internal/validator"
	"golang.org/x/term"
)

// DefaultProjectName is offered as the project name and used when no usable name was given
const DefaultProjectName = "panda-template"

const (
	packageNameValidation = "isValidPackageName(value)"
	invalidPackageName    = "Invalid package name"
)

// surveyor abstracts the survey library for testability.
type surveyor interface {
	AskOne(p survey.Prompt, response any, opts ...survey.AskOpt) error
}

type defaultSurveyor struct{}

func (d *defaultSurveyor) AskOne(p survey.Prompt, response any, opts ...survey.AskOpt) error {
	return survey.AskOne(p, response, opts...)
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// prompter asks the questions making up an Answers record, steps are asked in order
// and steps whose condition is false are skipped
type prompter struct {
	surveyor surveyor
	registry Registry
	template string
	// targetIsEmpty reports whether the target for a project name can be written without clearing it
	targetIsEmpty func(projectName string) (bool, error)
}

type promptStep struct {
	name string
	when func(a *Answers) (bool, error)
	ask  func(a *Answers) error
}

func (p *prompter) steps() []promptStep {
	return []promptStep{
		{name: "project name", ask: p.askProjectName},
		{name: "overwrite", when: p.targetNotEmpty, ask: p.askOverwrite},
		{name: "package name", ask: p.askPackageName},
		{name: "framework", when: p.needsFramework, ask: p.askFramework},
		{name: "variant", when: p.needsVariant, ask: p.askVariant},
		{name: "description", ask: p.askDescription},
		{name: "author", ask: p.askAuthor},
	}
}

// collect runs the prompt sequence, interrupting it results in ErrCancelled
func (p *prompter) collect() (*Answers, error) {
	answers := &Answers{}

	for _, step := range p.steps() {
		if step.when != nil {
			should, err := step.when(answers)
			if err != nil {
				return nil, err
			}
			if !should {
				continue
			}
		}

		err := step.ask(answers)
		if err != nil {
			if errors.Is(err, terminal.InterruptErr) || errors.Is(err, ErrCancelled) {
				return nil, ErrCancelled
			}

			return nil, fmt.Errorf("%s prompt failed: %w", step.name, err)
		}
	}

	return answers, nil
}

func (p *prompter) askProjectName(a *Answers) error {
	return p.surveyor.AskOne(&survey.Input{
		Message: "Enter the name of your project:",
		Default: DefaultProjectName,
	}, &a.ProjectName, survey.WithValidator(survey.Required))
}

func (p *prompter) targetNotEmpty(a *Answers) (bool, error) {
	empty, err := p.targetIsEmpty(a.ProjectName)
	if err != nil {
		return false, err
	}

	return !empty, nil
}

func (p *prompter) askOverwrite(a *Answers) error {
	target := FormatTargetDir(a.ProjectName)
	msg := fmt.Sprintf("Target directory %q is not empty. Remove existing files and continue?", target)
	if target == "." {
		msg = "Current directory is not empty. Remove existing files and continue?"
	}

	err := p.surveyor.AskOne(&survey.Confirm{Message: msg, Default: false}, &a.Overwrite)
	if err != nil {
		return err
	}

	if !a.Overwrite {
		return ErrCancelled
	}

	return nil
}

func (p *prompter) askPackageName(a *Answers) error {
	return p.surveyor.AskOne(&survey.Input{
		Message: "Package name:",
		Default: fallbackPackageName(FormatTargetDir(a.ProjectName)),
	}, &a.PackageName, survey.WithValidator(validator.SurveyValidator(packageNameValidation, invalidPackageName)))
}

func (p *prompter) needsFramework(_ *Answers) (bool, error) {
	_, known := p.registry.TemplateDir(p.template)
	return !known, nil
}

func (p *prompter) askFramework(a *Answers) error {
	var titles []string
	for _, f := range p.registry {
		titles = append(titles, f.Title())
	}

	var idx int
	err := p.surveyor.AskOne(&survey.Select{
		Message: "Select a framework:",
		Options: titles,
	}, &idx)
	if err != nil {
		return err
	}

	if idx < 0 || idx >= len(p.registry) {
		return fmt.Errorf("invalid framework selection %d", idx)
	}

	a.Framework = p.registry[idx].Name

	return nil
}

func (p *prompter) needsVariant(a *Answers) (bool, error) {
	f, ok := p.registry.Framework(a.Framework)
	return ok && f.HasVariants(), nil
}

func (p *prompter) askVariant(a *Answers) error {
	f, _ := p.registry.Framework(a.Framework)

	var titles []string
	for _, v := range f.Variants {
		titles = append(titles, v.Title())
	}

	var idx int
	err := p.surveyor.AskOne(&survey.Select{
		Message: "Select a variant:",
		Options: titles,
	}, &idx)
	if err != nil {
		return err
	}

	if idx < 0 || idx >= len(f.Variants) {
		return fmt.Errorf("invalid variant selection %d", idx)
	}

	a.Variant = f.Variants[idx].Name

	return nil
}

func (p *prompter) askDescription(a *Answers) error {
	return p.surveyor.AskOne(&survey.Input{Message: "Description:"}, &a.Description)
}

func (p *prompter) askAuthor(a *Answers) error {
	return p.surveyor.AskOne(&survey.Input{Message: "Author:"}, &a.Author)
}
