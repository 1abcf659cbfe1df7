// Package compiler wires the four compilation phases - lexing,
// parsing, semantic analysis, and code generation - into the single
// public entry point main calls.
package compiler

import (
	"github.com/pkg/errors"

	"github.com/skx/minic/codegen"
	"github.com/skx/minic/parser"
	"github.com/skx/minic/semantic"
)

// Compiler holds the state needed to turn one source file into AT&T
// assembly text.
type Compiler struct {
	filename string
	source   string
	debug    bool
}

// New returns a Compiler for source, reporting diagnostics as
// originating from filename.
func New(filename, source string) *Compiler {
	return &Compiler{filename: filename, source: source}
}

// SetDebug toggles a leading comment identifying the compiler in the
// generated assembly. It has no effect on the emitted instructions.
func (c *Compiler) SetDebug(val bool) {
	c.debug = val
}

// Compile runs the lexer, parser, semantic analyzer, and code
// generator over the compiler's source in sequence, returning the
// resulting assembly text.
//
// The three earlier phases report fatal lexical, parse, and semantic
// errors by terminating the process directly through diag.Reporter,
// so by the time Compile returns an error it can only have come from
// a genuine internal invariant violation - the error return exists so
// callers never need to special-case a panic to find out what went
// wrong.
func (c *Compiler) Compile() (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("internal compiler error: %v", r)
		}
	}()

	prog := parser.New(c.filename, c.source).Parse()

	analyzer := semantic.New(c.filename, c.source)
	analyzer.Analyze(prog)

	gen := codegen.New()
	out = gen.Generate(prog)
	if c.debug {
		out = "# compiled by minic\n" + out
	}
	return out, nil
}
