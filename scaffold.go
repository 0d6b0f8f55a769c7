// Copyright (c) 2026, the Panda Stack contributors
//
// SPDX-License-Identifier: Apache-2.0

package scaffold

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/CloudyKit/jet/v6"
	"github.com/Masterminds/sprig/v3"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// Config configures a materialization of a template tree
type Config struct {
	// Source is the template tree, it is only read from
	Source fs.FS `yaml:"-"`
	// Renames maps top level template file names to the name written in the target
	Renames map[string]string `yaml:"renames"`
	// Generated lists top level file names whose content is supplied using Write rather than read from Source
	Generated []string `yaml:"generated"`
	// Render enables rendering of .tmpl files using Go templates and .jet files using Jet
	Render bool `yaml:"render"`
}

// DefaultRenames are the renames applied to templates that cannot ship the real file name
var DefaultRenames = map[string]string{
	"_gitignore": ".gitignore",
}

type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
}

// Strategy is how a template file is turned into a file in the target
type Strategy string

const (
	// StrategyCopy copies the file byte for byte
	StrategyCopy Strategy = "copy"
	// StrategyRender renders the file as a template and strips the template suffix
	StrategyRender Strategy = "render"
	// StrategyGenerate writes content supplied by the caller
	StrategyGenerate Strategy = "generate"
)

const (
	goTemplateSuffix  = ".tmpl"
	jetTemplateSuffix = ".jet"
)

// PlannedFile is a top level template entry and how it will be materialized
type PlannedFile struct {
	// Source is the name in the template tree
	Source string
	// Path is the name in the target directory
	Path     string
	Strategy Strategy
	IsDir    bool
}

type Scaffold struct {
	cfg          *Config
	funcs        template.FuncMap
	log          Logger
	changedFiles []string
}

// New creates a new scaffold for the template tree in cfg, funcs are added to the functions available to .tmpl files
func New(cfg Config, funcs template.FuncMap) (*Scaffold, error) {
	err := validateConfig(&cfg)
	if err != nil {
		return nil, err
	}

	return &Scaffold{cfg: &cfg, funcs: funcs}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Source == nil {
		return fmt.Errorf("no source provided")
	}

	_, err := fs.ReadDir(cfg.Source, ".")
	if err != nil {
		return fmt.Errorf("cannot read source: %w", err)
	}

	for k, v := range cfg.Renames {
		if !validName(k) || !validName(v) {
			return fmt.Errorf("invalid rename %s to %s", k, v)
		}
	}

	for _, g := range cfg.Generated {
		if !validName(g) {
			return fmt.Errorf("invalid generated file name %s", g)
		}
	}

	return nil
}

func validName(name string) bool {
	return name != "" && name != "." && !strings.Contains(name, "..") && !strings.ContainsAny(name, `/\`)
}

// Logger configures a logger to use, no logging is done without this
func (s *Scaffold) Logger(log Logger) {
	s.log = log
}

// ChangedFiles returns the files written since the most recent Materialize call.
// Paths are relative to the target and always use forward slashes as separators.
func (s *Scaffold) ChangedFiles() []string {
	return s.changedFiles
}

// Strategy determines how the template file name will be materialized
func (s *Scaffold) Strategy(name string) Strategy {
	switch {
	case slices.Contains(s.cfg.Generated, name):
		return StrategyGenerate
	case s.cfg.Render && isTemplate(name):
		return StrategyRender
	default:
		return StrategyCopy
	}
}

func isTemplate(name string) bool {
	return strings.HasSuffix(name, goTemplateSuffix) || strings.HasSuffix(name, jetTemplateSuffix)
}

// targetName is the top level name name is written as
func (s *Scaffold) targetName(name string) string {
	if renamed, ok := s.cfg.Renames[name]; ok {
		return renamed
	}

	return name
}

// Plan lists the top level template entries in the order the source enumerates them
func (s *Scaffold) Plan() ([]PlannedFile, error) {
	entries, err := fs.ReadDir(s.cfg.Source, ".")
	if err != nil {
		return nil, err
	}

	var plan []PlannedFile
	for _, e := range entries {
		pf := PlannedFile{
			Source:   e.Name(),
			Path:     s.targetName(e.Name()),
			Strategy: s.Strategy(e.Name()),
			IsDir:    e.IsDir(),
		}

		if pf.IsDir && pf.Strategy != StrategyGenerate {
			pf.Strategy = StrategyCopy
		}

		if pf.Strategy == StrategyRender {
			pf.Path = stripTemplateSuffix(pf.Path)
		}

		plan = append(plan, pf)
	}

	return plan, nil
}

// Materialize writes every top level template entry into dst except those with generated content.
// Data is passed to rendered templates.
func (s *Scaffold) Materialize(dst billy.Filesystem, data any) error {
	s.changedFiles = nil

	plan, err := s.Plan()
	if err != nil {
		return err
	}

	for _, pf := range plan {
		switch pf.Strategy {
		case StrategyGenerate:
			if s.log != nil {
				s.log.Debugf("Skipping generated file %s", pf.Source)
			}

		case StrategyRender:
			err = s.renderFile(dst, pf.Source, pf.Path, data)

		default:
			err = s.materialize(dst, pf.Source, pf.Path, data)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// Write writes content to the top level file name in dst applying any renames
func (s *Scaffold) Write(dst billy.Filesystem, name string, content []byte) error {
	if !validName(name) {
		return fmt.Errorf("invalid file name %s", name)
	}

	return s.saveFile(dst, s.targetName(name), content, 0644)
}

func (s *Scaffold) materialize(dst billy.Filesystem, src string, out string, data any) error {
	info, err := fs.Stat(s.cfg.Source, src)
	if err != nil {
		return err
	}

	switch {
	case info.IsDir():
		err = dst.MkdirAll(out, 0755)
		if err != nil {
			return err
		}

		entries, err := fs.ReadDir(s.cfg.Source, src)
		if err != nil {
			return err
		}

		for _, e := range entries {
			srcPath := path.Join(src, e.Name())
			outPath := dst.Join(out, e.Name())

			if s.cfg.Render && !e.IsDir() && isTemplate(e.Name()) {
				err = s.renderFile(dst, srcPath, stripTemplateSuffix(outPath), data)
			} else {
				err = s.materialize(dst, srcPath, outPath, data)
			}
			if err != nil {
				return err
			}
		}

		return nil

	default:
		err = copyFile(s.cfg.Source, src, dst, out, info.Mode())
		if err != nil {
			return err
		}

		s.changed(out)

		return nil
	}
}

func (s *Scaffold) saveFile(dst billy.Filesystem, out string, content []byte, perm os.FileMode) error {
	err := writeFile(dst, out, content, perm)
	if err != nil {
		return err
	}

	s.changed(out)

	return nil
}

func (s *Scaffold) changed(out string) {
	s.changedFiles = append(s.changedFiles, filepath.ToSlash(out))

	if s.log != nil {
		s.log.Infof("Wrote %s", out)
	}
}

func (s *Scaffold) renderFile(dst billy.Filesystem, src string, out string, data any) error {
	tmpl, err := fs.ReadFile(s.cfg.Source, src)
	if err != nil {
		return err
	}

	var res []byte
	if strings.HasSuffix(src, jetTemplateSuffix) {
		res, err = renderJet(path.Base(src), tmpl, data)
	} else {
		res, err = s.renderGoTemplate(path.Base(src), tmpl, data)
	}
	if err != nil {
		return err
	}

	if s.log != nil {
		s.log.Debugf("Rendered %s", src)
	}

	return s.saveFile(dst, out, res, 0644)
}

func (s *Scaffold) renderGoTemplate(name string, tmpl []byte, data any) ([]byte, error) {
	funcs := sprig.TxtFuncMap()
	for k, v := range s.funcs {
		funcs[k] = v
	}

	templ, err := template.New(name).Funcs(funcs).Parse(string(tmpl))
	if err != nil {
		return nil, fmt.Errorf("parsing template %v failed: %w", name, err)
	}

	buf := bytes.NewBuffer([]byte{})
	err = templ.Execute(buf, data)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func renderJet(name string, tmpl []byte, data any) ([]byte, error) {
	loader := jet.NewInMemLoader()
	loader.Set(name, string(tmpl))

	set := jet.NewSet(loader, jet.WithSafeWriter(nil))

	t, err := set.GetTemplate(name)
	if err != nil {
		return nil, fmt.Errorf("parsing template %v failed: %w", name, err)
	}

	buf := bytes.NewBuffer([]byte{})
	err = t.Execute(buf, nil, data)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func stripTemplateSuffix(name string) string {
	return strings.TrimSuffix(strings.TrimSuffix(name, goTemplateSuffix), jetTemplateSuffix)
}

// filePerm keeps the executable bit of template files, embedded templates are read only
func filePerm(mode fs.FileMode) os.FileMode {
	if mode.Perm()&0111 != 0 {
		return 0755
	}

	return 0644
}

func writeFile(dst billy.Filesystem, name string, content []byte, perm os.FileMode) error {
	f, err := dst.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	_, err = f.Write(content)
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	return err
}

// Copy copies src from the source tree to dst, directories are copied recursively
func Copy(src fs.FS, srcPath string, dst billy.Filesystem, dstPath string) error {
	info, err := fs.Stat(src, srcPath)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		return copyFile(src, srcPath, dst, dstPath, info.Mode())
	}

	err = dst.MkdirAll(dstPath, 0755)
	if err != nil {
		return err
	}

	entries, err := fs.ReadDir(src, srcPath)
	if err != nil {
		return err
	}

	for _, e := range entries {
		err = Copy(src, path.Join(srcPath, e.Name()), dst, dst.Join(dstPath, e.Name()))
		if err != nil {
			return err
		}
	}

	return nil
}

func copyFile(src fs.FS, srcPath string, dst billy.Filesystem, dstPath string, mode fs.FileMode) error {
	if !mode.IsRegular() {
		return fmt.Errorf("invalid file in source: %v", srcPath)
	}

	in, err := src.Open(srcPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := dst.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm(mode))
	if err != nil {
		return err
	}

	_, err = io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}

	return err
}

// EmptyDir removes everything inside dir but not dir itself, it does nothing when dir does not exist
func EmptyDir(fsys billy.Filesystem, dir string) error {
	entries, err := fsys.ReadDir(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return err
	}

	for _, e := range entries {
		err = util.RemoveAll(fsys, fsys.Join(dir, e.Name()))
		if err != nil {
			return err
		}
	}

	return nil
}

// IsEmptyDir reports whether dir is missing, empty or only holds a .git directory
func IsEmptyDir(fsys billy.Filesystem, dir string) (bool, error) {
	entries, err := fsys.ReadDir(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return true, nil
	case err != nil:
		return false, err
	}

	return len(entries) == 0 || (len(entries) == 1 && entries[0].Name() == ".git"), nil
}
