// Package semantic resolves names, infers types, validates the rules
// listed in spec.md's component design, and desugars the AST in
// place: indexing expressions become pointer arithmetic, and compound
// assignments become plain assignments wrapping a binary expression.
package semantic

import (
	"github.com/skx/minic/ast"
	"github.com/skx/minic/diag"
	"github.com/skx/minic/symtable"
)

// reservedReturn is the magic symbol name under which a function's
// declared return type is stashed in its own scope, so Return
// statements can look it up the same way any other symbol is looked
// up.
const reservedReturn = "__return__"

// sizeofName is pre-registered as a one-parameter function returning
// int in the global scope, so ordinary call validation (arity, type
// conversion) applies to it unchanged; the code generator special-cases
// it by name to avoid ever emitting a real call.
const sizeofName = "sizeof"

// Analyzer runs Pass A (validate and infer) and Pass B (desugar) over
// a parsed ast.Program.
type Analyzer struct {
	reporter *diag.Reporter
}

// New returns an Analyzer, reporting fatal errors as originating from
// filename.
func New(filename, source string) *Analyzer {
	return &Analyzer{reporter: diag.New(filename, source)}
}

// Analyze validates prog and, on success, desugars it in place.
// Validation failures terminate the process with exit code 3 from
// within this call.
func (a *Analyzer) Analyze(prog *ast.Program) {
	a.validateProgram(prog)
	for _, fn := range prog.Functions {
		desugarStatement(fn.Body)
	}
}

func (a *Analyzer) die(line, column int, message string) {
	a.reporter.Die(3, line, column, message)
}

func isReserved(name string) bool {
	return name == reservedReturn || name == sizeofName
}

func (a *Analyzer) validateProgram(prog *ast.Program) {
	global := symtable.New()
	global.AddFunction(sizeofName, ast.Type{}, []ast.Parameter{{Name: "value", Type: ast.Type{}}})

	for _, fn := range prog.Functions {
		if isReserved(fn.Name) {
			a.die(fn.Line, fn.Column, "cannot declare function with reserved identifier '"+fn.Name+"'")
		}
		if global.Exists(fn.Name) {
			a.die(fn.Line, fn.Column, "redefinition of function '"+fn.Name+"'")
		}
		global.AddFunction(fn.Name, fn.ReturnType, fn.Parameters)
		a.validateFunction(fn, global)
	}
}

func (a *Analyzer) validateFunction(fn *ast.Function, global *symtable.Scope) {
	scope := global.NewChild()
	for _, param := range fn.Parameters {
		if isReserved(param.Name) {
			a.die(fn.Line, fn.Column, "cannot declare variable with reserved identifier '"+param.Name+"'")
		}
		scope.Add(param.Name, param.Type)
	}
	scope.Add(reservedReturn, fn.ReturnType)

	hadReturn := false
	for _, stmt := range fn.Body.Statements {
		a.validateStatement(stmt, scope)
		if _, ok := stmt.(*ast.Return); ok {
			hadReturn = true
		}
	}
	if !hadReturn {
		a.die(fn.Line, fn.Column, "function '"+fn.Name+"' has no return statement")
	}
}
