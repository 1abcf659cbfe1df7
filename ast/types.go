// Package ast defines the abstract syntax tree produced by the parser:
// types, expressions, statements, functions and programs.
package ast

import "strings"

// Type fully describes a value's type: one scalar base kind (int,
// 64-bit) plus a pointer depth. Depth 0 is int, depth 1 is int*, and
// so on.
type Type struct {
	PointerDepth int
}

// Pointer returns the type one pointer level deeper than t.
func (t Type) Pointer() Type {
	return Type{PointerDepth: t.PointerDepth + 1}
}

// Dereferenced returns the type one pointer level shallower than t. It
// panics if t is not itself a pointer type; callers must check
// PointerDepth > 0 first (the semantic analyzer enforces this before
// ever calling it).
func (t Type) Dereferenced() Type {
	if t.PointerDepth == 0 {
		panic("ast: Dereferenced called on non-pointer type")
	}
	return Type{PointerDepth: t.PointerDepth - 1}
}

// IsPointer reports whether t has a non-zero pointer depth.
func (t Type) IsPointer() bool {
	return t.PointerDepth > 0
}

// ConvertibleTo reports whether a value of type t may be converted to
// u. The language currently treats every pair of types as mutually
// convertible; pointer arithmetic rules are enforced separately, and
// structurally, by the semantic analyzer.
func (t Type) ConvertibleTo(u Type) bool {
	return true
}

// String renders t as source-level syntax, e.g. "int", "int*", "int**".
func (t Type) String() string {
	return "int" + strings.Repeat("*", t.PointerDepth)
}
