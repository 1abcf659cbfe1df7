// Package symtable implements the lexically-scoped symbol table
// shared by the semantic analyzer and the code generator: a
// parent-linked chain of scopes, each tracking the stack-frame offset
// its locals are assigned at and the loop context its statements
// execute in.
package symtable

import "github.com/skx/minic/ast"

// Symbol is one declared name: a variable, parameter, or function.
type Symbol struct {
	Name string
	Type ast.Type

	// IsFunction distinguishes a function symbol from a variable or
	// parameter symbol; Parameters is only meaningful when true.
	IsFunction bool
	Parameters []ast.Parameter

	// Offset is this symbol's byte offset from %rbp. It is meaningless
	// for function symbols.
	Offset int
}

// Scope is one lexical scope: a flat list of symbols plus a link to
// the enclosing scope. The frame-offset cursor starts wherever the
// parent scope's cursor left off, so sibling scopes reuse stack slots
// but a nested scope never collides with an enclosing one still live
// around it.
type Scope struct {
	parent  *Scope
	symbols []Symbol
	offset  int

	// InLoop, BreakLabel and ContinueLabel describe the nearest
	// enclosing loop, inherited by every nested scope until a new loop
	// overrides them.
	InLoop        bool
	BreakLabel    string
	ContinueLabel string
}

// New returns a root scope with no parent, offset 0, and no loop
// context.
func New() *Scope {
	return &Scope{}
}

// NewChild returns a new scope nested inside s, inheriting s's
// frame-offset cursor and loop context.
func (s *Scope) NewChild() *Scope {
	return &Scope{
		parent:        s,
		offset:        s.offset,
		InLoop:        s.InLoop,
		BreakLabel:    s.BreakLabel,
		ContinueLabel: s.ContinueLabel,
	}
}

// NewLoopChild returns a new scope nested inside s whose loop context
// is overridden to breakLabel/continueLabel, for the body of a new
// while loop.
func (s *Scope) NewLoopChild(breakLabel, continueLabel string) *Scope {
	child := s.NewChild()
	child.InLoop = true
	child.BreakLabel = breakLabel
	child.ContinueLabel = continueLabel
	return child
}

// Add registers a variable or parameter symbol, assigning it the next
// 8-byte stack slot, and returns the assigned symbol.
func (s *Scope) Add(name string, typ ast.Type) Symbol {
	s.offset -= 8
	sym := Symbol{Name: name, Type: typ, Offset: s.offset}
	s.symbols = append(s.symbols, sym)
	return sym
}

// AddAt registers a variable or parameter symbol at a caller-supplied
// offset, bypassing the decreasing-offset cursor. It exists for
// parameters beyond the sixth, which the System V calling convention
// leaves on the caller's stack at a fixed positive offset rather than
// spilling into this function's own frame.
func (s *Scope) AddAt(name string, typ ast.Type, offset int) Symbol {
	sym := Symbol{Name: name, Type: typ, Offset: offset}
	s.symbols = append(s.symbols, sym)
	return sym
}

// AddFunction registers a function symbol. Function symbols carry no
// frame offset.
func (s *Scope) AddFunction(name string, returnType ast.Type, parameters []ast.Parameter) Symbol {
	sym := Symbol{Name: name, Type: returnType, IsFunction: true, Parameters: parameters}
	s.symbols = append(s.symbols, sym)
	return sym
}

// Exists reports whether name is declared in s or any enclosing
// scope.
func (s *Scope) Exists(name string) bool {
	for scope := s; scope != nil; scope = scope.parent {
		if scope.existsLocally(name) {
			return true
		}
	}
	return false
}

// ExistsLocally reports whether name is declared directly in s,
// ignoring enclosing scopes.
func (s *Scope) ExistsLocally(name string) bool {
	return s.existsLocally(name)
}

func (s *Scope) existsLocally(name string) bool {
	for _, sym := range s.symbols {
		if sym.Name == name {
			return true
		}
	}
	return false
}

// Fetch returns the symbol named name, searching s then its ancestors.
// Its second result is false if no such symbol exists; callers must
// check Exists (or this result) before calling Fetch, just as the
// analyzer does before ever looking a name up.
func (s *Scope) Fetch(name string) (Symbol, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		for _, sym := range scope.symbols {
			if sym.Name == name {
				return sym, true
			}
		}
	}
	return Symbol{}, false
}

// Offset returns the scope's current frame-offset cursor: the offset
// that would be assigned to the next symbol Add'd to this exact
// scope, plus 8 (i.e. the most negative offset already handed out
// here or in an ancestor).
func (s *Scope) Offset() int {
	return s.offset
}
