// Copyright (c) 2026, the Panda Stack contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package create scaffolds new projects from the bundled templates.
//
// A run collects the answers, prepares the target directory below the
// workspace, materializes the selected template, writes the patched
// package.json and finally reports the commands to run next.
package create

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	scaffold "github.com/pandastack/create-panda"
	"github.com/pandastack/create-panda/internal/validator"
	"github.com/pandastack/create-panda/manifest"
	"github.com/pandastack/create-panda/pkgname"
)

var (
	// ErrCancelled indicates the user aborted the prompts or declined to clear the target
	ErrCancelled = errors.New("operation cancelled")
	// ErrNotTerminal indicates answers have to be prompted for without a terminal
	ErrNotTerminal = errors.New("can only prompt for answers on a valid terminal, use --answers to supply them")
	// ErrTargetNotEmpty indicates the target has content and overwriting was not requested
	ErrTargetNotEmpty = errors.New("target directory is not empty")
	// ErrUnknownTemplate indicates the selected template is not in the registry
	ErrUnknownTemplate = errors.New("unknown template")
	// ErrInvalidPackageName indicates a supplied package name is not valid
	ErrInvalidPackageName = errors.New("invalid package name")
)

// Answers are the choices made by the user for a single project
type Answers struct {
	ProjectName string `json:"project_name" yaml:"project_name"`
	PackageName string `json:"package_name" yaml:"package_name"`
	Framework   string `json:"framework" yaml:"framework"`
	Variant     string `json:"variant" yaml:"variant"`
	Description string `json:"description" yaml:"description"`
	Author      string `json:"author" yaml:"author"`
	// Overwrite clears a non empty target directory
	Overwrite bool `json:"overwrite" yaml:"overwrite"`
}

// Config configures a scaffolding run
type Config struct {
	// Workspace is the working directory projects are created in
	Workspace billy.Filesystem `yaml:"-"`
	// Templates holds a directory per template named in the Registry
	Templates fs.FS `yaml:"-"`
	// Registry lists the selectable frameworks, defaults to DefaultRegistry()
	Registry Registry `yaml:"frameworks"`
	// Template is used when no framework or variant was selected
	Template string `yaml:"template"`
	// UserAgent is the package manager user agent used to tailor the printed commands
	UserAgent string `yaml:"user_agent"`
	// Answers skips prompting when set
	Answers *Answers `yaml:"answers"`
	// Render renders .tmpl and .jet template files
	Render bool `yaml:"render"`
	// Output receives the progress and completion messages, defaults to os.Stdout
	Output io.Writer `yaml:"-"`
}

type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
}

// Result describes a completed run
type Result struct {
	// Root is the absolute target directory
	Root string
	// Directory is the target directory relative to the workspace
	Directory string
	Template  string
	Answers   Answers
	Files     []string
}

type Creator struct {
	cfg        *Config
	log        Logger
	surveyor   surveyor
	isTerminal func() bool
}

type Option func(*Creator)

func withSurveyor(s surveyor) Option {
	return func(c *Creator) {
		c.surveyor = s
	}
}

func withIsTerminal(f func() bool) Option {
	return func(c *Creator) {
		c.isTerminal = f
	}
}

// New creates a new Creator
func New(cfg Config, opts ...Option) (*Creator, error) {
	if cfg.Workspace == nil {
		return nil, fmt.Errorf("workspace is required")
	}
	if cfg.Templates == nil {
		return nil, fmt.Errorf("templates are required")
	}
	if cfg.Registry == nil {
		cfg.Registry = DefaultRegistry()
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	err := cfg.Registry.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid registry: %w", err)
	}

	c := &Creator{
		cfg:        &cfg,
		surveyor:   &defaultSurveyor{},
		isTerminal: isTerminal,
	}

	for _, o := range opts {
		o(c)
	}

	return c, nil
}

// Logger configures a logger to use, no logging is done without this
func (c *Creator) Logger(log Logger) {
	c.log = log
}

func (c *Creator) debugf(format string, v ...any) {
	if c.log != nil {
		c.log.Debugf(format, v...)
	}
}

// Run scaffolds a single project, nothing is written before all answers are known
func (c *Creator) Run() (*Result, error) {
	answers, err := c.collectAnswers()
	if err != nil {
		return nil, err
	}

	dir := FormatTargetDir(answers.ProjectName)
	if dir == "" {
		dir = DefaultProjectName
	}

	tmpl, err := c.resolveTemplate(answers)
	if err != nil {
		return nil, err
	}

	src, err := fs.Sub(c.cfg.Templates, tmpl)
	if err != nil {
		return nil, fmt.Errorf("cannot open template %s: %w", tmpl, err)
	}

	// the template has to be usable before the target is cleared
	sc, err := scaffold.New(scaffold.Config{
		Source:    src,
		Renames:   scaffold.DefaultRenames,
		Generated: []string{manifest.FileName},
		Render:    c.cfg.Render,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot use template %s: %w", tmpl, err)
	}
	if c.log != nil {
		sc.Logger(c.log)
	}

	target, err := c.resolveTarget(dir, answers.Overwrite)
	if err != nil {
		return nil, err
	}

	root := filepath.Join(c.cfg.Workspace.Root(), dir)
	fmt.Fprintf(c.cfg.Output, "\nCreating a new project in directory: %s...\n", colorize("cyan", root))

	err = sc.Materialize(target, answers)
	if err != nil {
		return nil, fmt.Errorf("could not create project files: %w", err)
	}

	err = c.patchManifest(sc, src, target, root, answers)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Root:      root,
		Directory: dir,
		Template:  tmpl,
		Answers:   *answers,
		Files:     sc.ChangedFiles(),
	}

	c.report(res)

	return res, nil
}

func (c *Creator) collectAnswers() (*Answers, error) {
	if c.cfg.Answers != nil {
		answers := *c.cfg.Answers

		err := c.checkAnswers(&answers)
		if err != nil {
			return nil, err
		}

		return &answers, nil
	}

	if !c.isTerminal() {
		return nil, ErrNotTerminal
	}

	p := &prompter{
		surveyor:      c.surveyor,
		registry:      c.cfg.Registry,
		template:      c.cfg.Template,
		targetIsEmpty: c.targetIsEmpty,
	}

	return p.collect()
}

// checkAnswers applies to supplied answers the checks prompting would have done
func (c *Creator) checkAnswers(a *Answers) error {
	if a.PackageName != "" {
		err := validator.ValidateValue(a.PackageName, packageNameValidation, invalidPackageName)
		if err != nil {
			return fmt.Errorf("%w %q", ErrInvalidPackageName, a.PackageName)
		}
	}

	if a.Overwrite {
		return nil
	}

	empty, err := c.targetIsEmpty(a.ProjectName)
	if err != nil {
		return err
	}
	if !empty {
		return fmt.Errorf("%w: %s", ErrTargetNotEmpty, FormatTargetDir(a.ProjectName))
	}

	return nil
}

func (c *Creator) targetIsEmpty(projectName string) (bool, error) {
	dir := FormatTargetDir(projectName)
	if dir == "" {
		dir = DefaultProjectName
	}

	return scaffold.IsEmptyDir(c.cfg.Workspace, dir)
}

// resolveTemplate picks the template directory giving precedence to the variant, then the framework and finally the configured template
func (c *Creator) resolveTemplate(a *Answers) (string, error) {
	name := a.Variant
	if name == "" {
		name = a.Framework
	}
	if name == "" {
		name = c.cfg.Template
	}
	if name == "" {
		return "", fmt.Errorf("%w: no template selected", ErrUnknownTemplate)
	}

	dir, ok := c.cfg.Registry.TemplateDir(name)
	if !ok {
		return "", fmt.Errorf("%w %q, valid templates are %s", ErrUnknownTemplate, name, strings.Join(c.cfg.Registry.Names(), ", "))
	}

	c.debugf("Using template %s from directory %s", name, dir)

	return dir, nil
}

// resolveTarget clears or creates dir in the workspace and returns a filesystem rooted at it
func (c *Creator) resolveTarget(dir string, overwrite bool) (billy.Filesystem, error) {
	ws := c.cfg.Workspace

	if overwrite {
		c.debugf("Removing existing files in %s", dir)

		err := scaffold.EmptyDir(ws, dir)
		if err != nil {
			return nil, fmt.Errorf("could not empty %s: %w", dir, err)
		}
	}

	if dir == "." {
		return ws, nil
	}

	err := ws.MkdirAll(dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("could not create %s: %w", dir, err)
	}

	return ws.Chroot(dir)
}

func (c *Creator) patchManifest(sc *scaffold.Scaffold, src fs.FS, target billy.Filesystem, root string, a *Answers) error {
	raw, err := fs.ReadFile(src, manifest.FileName)
	if err != nil {
		return fmt.Errorf("could not read template manifest: %w", err)
	}

	name := a.PackageName
	if name == "" {
		name = fallbackPackageName(root)
	}

	c.debugf("Patching template manifest %q as %q", manifest.Name(raw), name)

	patched, err := manifest.Patch(raw, manifest.Fields{
		Name:        name,
		Description: a.Description,
		Author:      a.Author,
	})
	if err != nil {
		return err
	}

	return sc.Write(target, manifest.FileName, patched)
}

// FormatTargetDir trims spaces and trailing slashes from a project name
func FormatTargetDir(projectName string) string {
	return strings.TrimRight(strings.TrimSpace(projectName), "/")
}

// fallbackPackageName is the package name used when none was given, derived from the target directory
func fallbackPackageName(root string) string {
	name := pkgname.Normalize(baseName(root))
	if !pkgname.IsValid(name) || !strings.ContainsFunc(name, isAlphanumeric) {
		return DefaultProjectName
	}

	return name
}

func isAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

func baseName(dir string) string {
	if dir == "" {
		return ""
	}

	return filepath.Base(dir)
}
