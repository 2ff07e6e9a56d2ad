package compiler

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"

	"github.com/orion-lang/orion/ast"
	"github.com/orion-lang/orion/errors"
	"github.com/orion-lang/orion/op"
	"github.com/orion-lang/orion/parser"
)

// compileLoad compiles each listed module in file scope. A module whose
// resolved path was already loaded is skipped.
func (c *Compiler) compileLoad(node *ast.Load, table SymbolTable) ([]op.Code, SymbolTable, error) {
	lib, err := c.resolveLibPath()
	if err != nil {
		return nil, table, c.locate(err, node)
	}
	var out []op.Code
	for _, file := range node.Files {
		path, err := c.resolveModule(lib, file)
		if err != nil {
			return nil, table, c.locate(err, node)
		}
		instructions, next, err := c.loadModule(path, table)
		if err != nil {
			return nil, table, c.locate(err, node)
		}
		table = next
		out = append(out, instructions...)
	}
	return out, table, nil
}

// resolveLibPath returns the library path from the compiler options or the
// environment, with a leading ~ expanded.
func (c *Compiler) resolveLibPath() (string, error) {
	lib := c.libPath
	if lib == "" {
		value, found := os.LookupEnv(LibPathEnv)
		if !found {
			return "", errors.Errorf(errors.E2013, "%s variable does not exist", LibPathEnv)
		}
		lib = value
	}
	expanded, err := homedir.Expand(lib)
	if err != nil {
		return "", errors.Errorf(errors.E2013, "invalid library path %q: %v", lib, err)
	}
	return expanded, nil
}

// resolveModule looks for file under the library path, then relative to
// the working directory.
func (c *Compiler) resolveModule(lib, file string) (string, error) {
	candidates := []string{file}
	if !filepath.IsAbs(file) {
		candidates = []string{filepath.Join(lib, file), file}
	}
	for _, candidate := range candidates {
		exists, err := afero.Exists(c.fs, candidate)
		if err != nil {
			return "", errors.Errorf(errors.E2014, "failed to stat %s: %v", candidate, err)
		}
		if exists {
			return filepath.Clean(candidate), nil
		}
	}
	return "", errors.Errorf(errors.E2012, "file not found: %s", file)
}

// loadModule parses and compiles one module as a nested program, threading
// the caller's table.
func (c *Compiler) loadModule(path string, table SymbolTable) ([]op.Code, SymbolTable, error) {
	if c.loaded[path] {
		c.logger.Debug().Str("path", path).Msg("module already loaded")
		return nil, table, nil
	}
	c.loaded[path] = true
	data, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return nil, table, errors.Errorf(errors.E2014, "failed to read file %s: %v", path, err)
	}
	c.logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("loading module")

	source := string(data)
	program, err := parser.Parse(context.Background(), source,
		parser.WithFilename(path),
		parser.WithBuiltins(c.builtins))
	if err != nil {
		return nil, table, err
	}

	prevFilename, prevSource := c.filename, c.source
	c.filename, c.source = path, source
	defer func() { c.filename, c.source = prevFilename, prevSource }()

	return c.compileSequence(program.Exprs, table, true)
}
