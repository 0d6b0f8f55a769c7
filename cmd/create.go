// Copyright (c) 2026, the Panda Stack contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/choria-io/fisk"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/pandastack/create-panda/create"
	"github.com/pandastack/create-panda/internal/markup"
	"github.com/pandastack/create-panda/templates"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

var (
	template    string
	answersFile string
	userAgent   string
	debug       bool
	version     string
)

func main() {
	app := fisk.New("create-panda", "Scaffolds new Panda Stack projects")
	app.Version(version)

	app.Help = `
Creates a new project from one of the bundled templates.

The project name, package name, framework, description and author are
prompted for unless supplied in an answers file.
`
	app.Flag("template", "The template to use, skips the framework selection").Short('t').PlaceHolder("NAME").StringVar(&template)
	app.Flag("answers", "Loads answers from a YAML file instead of prompting").PlaceHolder("FILE").ExistingFileVar(&answersFile)
	app.Flag("user-agent", "The package manager user agent").Envar("npm_config_user_agent").Hidden().StringVar(&userAgent)
	app.Flag("debug", "Enables debug logging").BoolVar(&debug)
	app.Action(createAction)

	app.MustParseWithUsage(os.Args[1:])
}

func newLogger() (*zap.SugaredLogger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return log.Sugar(), nil
}

func loadAnswers(file string) (*create.Answers, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	answers := &create.Answers{}
	err = yaml.Unmarshal(b, answers)
	if err != nil {
		return nil, fmt.Errorf("invalid answers file %s: %w", file, err)
	}

	return answers, nil
}

func createAction(_ *fisk.ParseContext) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	cfg := create.Config{
		Workspace: osfs.New(cwd),
		Templates: templates.FS,
		Template:  template,
		UserAgent: userAgent,
		Render:    true,
		Output:    os.Stdout,
	}

	if answersFile != "" {
		cfg.Answers, err = loadAnswers(answersFile)
		if err != nil {
			return err
		}
	}

	c, err := create.New(cfg)
	if err != nil {
		return err
	}
	c.Logger(log)

	_, err = c.Run()
	switch {
	case errors.Is(err, create.ErrCancelled):
		fmt.Fprintln(os.Stderr, markup.Colorize(markup.Tag("red", "✖")+" Operation cancelled"))
		log.Sync()
		os.Exit(1)
	case err != nil:
		log.Debugf("Scaffolding failed: %v", err)
		return err
	}

	return nil
}
