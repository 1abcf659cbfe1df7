package codegen

import (
	"github.com/skx/minic/ast"
	"github.com/skx/minic/symtable"
)

var argRegisters = [6]string{"%rdi", "%rsi", "%rdx", "%rcx", "%r8", "%r9"}

// genExpression lowers expr, leaving its value in %rax.
func (g *Generator) genExpression(expr ast.Expression, scope *symtable.Scope) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		g.emit("    movq    $%d, %%rax\n", e.Value)

	case *ast.CharacterLiteral:
		g.emit("    movq    $%d, %%rax\n", e.Byte)

	case *ast.StringLiteral:
		g.emit("    leaq    S%d(%%rip), %%rax\n", e.StringLabel)

	case *ast.Identifier:
		sym, _ := scope.Fetch(e.Name)
		g.emit("    movq    %d(%%rbp), %%rax\n", sym.Offset)

	case *ast.Call:
		g.genCall(e, scope)

	case *ast.Binary:
		g.genBinary(e, scope)

	case *ast.Unary:
		g.genUnary(e, scope)

	default:
		panic("codegen: genExpression: unhandled expression node")
	}
}

func (g *Generator) genCall(e *ast.Call, scope *symtable.Scope) {
	if e.Name == "sizeof" {
		arg := e.Args[0]
		g.genExpression(arg, scope)
		if str, ok := arg.(*ast.StringLiteral); ok {
			g.emit("    movq    $%d, %%rax\n", len(str.Expanded)*8+8)
		} else {
			g.emit("    movq    $8, %%rax\n")
		}
		return
	}

	args := e.Args
	if len(args) <= 6 {
		for i, arg := range args {
			g.genExpression(arg, scope)
			g.emit("    movq    %%rax, %s\n", argRegisters[i])
		}
		g.emit("    callq   %s\n", mangle(e.Name))
		return
	}

	for i := 0; i < 6; i++ {
		g.genExpression(args[i], scope)
		g.emit("    movq    %%rax, %s\n", argRegisters[i])
	}
	spilled := args[6:]
	for i := len(spilled) - 1; i >= 0; i-- {
		g.genExpression(spilled[i], scope)
		g.emit("    pushq   %%rax\n")
	}
	g.emit("    callq   %s\n", mangle(e.Name))
	g.emit("    addq    $%d, %%rsp\n", len(spilled)*8)
}

func (g *Generator) genBinary(e *ast.Binary, scope *symtable.Scope) {
	switch e.Op {
	case ast.Add:
		g.genAdd(e, scope)
	case ast.Sub:
		g.genExpression(e.Right, scope)
		g.emit("    pushq   %%rax\n")
		g.genExpression(e.Left, scope)
		g.emit("    popq    %%rcx\n")
		g.emit("    subq    %%rcx, %%rax\n")
	case ast.Mul:
		g.genExpression(e.Left, scope)
		g.emit("    pushq   %%rax\n")
		g.genExpression(e.Right, scope)
		g.emit("    popq    %%rcx\n")
		g.emit("    imulq   %%rcx, %%rax\n")
	case ast.Div:
		g.genExpression(e.Right, scope)
		g.emit("    pushq   %%rax\n")
		g.genExpression(e.Left, scope)
		g.emit("    popq    %%rcx\n")
		g.emit("    cqto\n")
		g.emit("    idivq   %%rcx\n")
	case ast.Mod:
		g.genExpression(e.Right, scope)
		g.emit("    pushq   %%rax\n")
		g.genExpression(e.Left, scope)
		g.emit("    popq    %%rcx\n")
		g.emit("    cqto\n")
		g.emit("    idivq   %%rcx\n")
		g.emit("    movq    %%rdx, %%rax\n")
	case ast.BitAnd:
		g.genBitwise(e, scope, "andq")
	case ast.BitOr:
		g.genBitwise(e, scope, "orq")
	case ast.BitXor:
		g.genBitwise(e, scope, "xorq")
	case ast.Shl:
		g.genShift(e, scope, "salq")
	case ast.Shr:
		g.genShift(e, scope, "sarq")
	case ast.Assign:
		g.genAssign(e, scope)
	case ast.LogicalAnd:
		g.genLogicalAnd(e, scope)
	case ast.LogicalOr:
		g.genLogicalOr(e, scope)
	case ast.Eq:
		g.genComparison(e, scope, "sete", false)
	case ast.Ne:
		g.genComparison(e, scope, "setne", false)
	case ast.Gt:
		g.genComparison(e, scope, "setg", true)
	case ast.Lt:
		g.genComparison(e, scope, "setl", true)
	case ast.Ge:
		g.genComparison(e, scope, "setge", true)
	case ast.Le:
		g.genComparison(e, scope, "setle", true)
	default:
		panic("codegen: genBinary: unhandled (undesugared?) binary operator")
	}
}

// genAdd scales either operand by the 8-byte element size when the
// other operand is pointer-typed, so `p + i` advances by whole
// elements rather than bytes.
func (g *Generator) genAdd(e *ast.Binary, scope *symtable.Scope) {
	leftPointer := e.Left.Base().ReturnType.IsPointer()
	rightPointer := e.Right.Base().ReturnType.IsPointer()

	g.genExpression(e.Left, scope)
	if leftPointer || rightPointer {
		if !leftPointer {
			g.emit("    salq    $3, %%rax\n")
		}
		g.emit("    pushq   %%rax\n")
		g.genExpression(e.Right, scope)
		if !rightPointer {
			g.emit("    salq    $3, %%rax\n")
		}
	} else {
		g.emit("    pushq   %%rax\n")
		g.genExpression(e.Right, scope)
	}
	g.emit("    popq    %%rcx\n")
	g.emit("    addq    %%rcx, %%rax\n")
}

func (g *Generator) genBitwise(e *ast.Binary, scope *symtable.Scope, op string) {
	g.genExpression(e.Left, scope)
	g.emit("    pushq   %%rax\n")
	g.genExpression(e.Right, scope)
	g.emit("    popq    %%rcx\n")
	g.emit("    %s    %%rcx, %%rax\n", op)
}

// genShift lowers a shift: the count must be in %cl on entry, so the
// amount is evaluated first and moved aside before the value is
// evaluated into %rax.
func (g *Generator) genShift(e *ast.Binary, scope *symtable.Scope, op string) {
	g.genExpression(e.Right, scope)
	g.emit("    movq    %%rax, %%rcx\n")
	g.emit("    pushq   %%rcx\n")
	g.genExpression(e.Left, scope)
	g.emit("    popq    %%rcx\n")
	g.emit("    %s    %%cl, %%rax\n", op)
}

func (g *Generator) genAssign(e *ast.Binary, scope *symtable.Scope) {
	if ident, ok := e.Left.(*ast.Identifier); ok {
		g.genExpression(e.Right, scope)
		sym, _ := scope.Fetch(ident.Name)
		g.emit("    movq    %%rax, %d(%%rbp)\n", sym.Offset)
		return
	}

	// The left side is a value-of unary expression: store through the
	// pointer its operand evaluates to, then reload so the assignment
	// expression's own value is the freshly stored one.
	unary := e.Left.(*ast.Unary)
	g.genExpression(e.Right, scope)
	g.emit("    pushq   %%rax\n")
	g.genExpression(unary.Operand, scope)
	g.emit("    popq    %%rcx\n")
	g.emit("    movq    %%rcx, (%%rax)\n")
	g.emit("    movq    (%%rax), %%rax\n")
}

func (g *Generator) genLogicalAnd(e *ast.Binary, scope *symtable.Scope) {
	l0 := g.nextLabel()
	l1 := g.nextLabel()
	g.genExpression(e.Left, scope)
	g.emit("    cmpq    $0, %%rax\n")
	g.emit("    jne     L%d\n", l0)
	g.emit("    jmp     L%d\n", l1)
	g.emit("L%d:\n", l0)
	g.genExpression(e.Right, scope)
	g.emit("    cmpq    $0, %%rax\n")
	g.emit("    movq    $0, %%rax\n")
	g.emit("    setne   %%al\n")
	g.emit("L%d:\n", l1)
}

func (g *Generator) genLogicalOr(e *ast.Binary, scope *symtable.Scope) {
	l0 := g.nextLabel()
	l1 := g.nextLabel()
	g.genExpression(e.Left, scope)
	g.emit("    cmpq    $0, %%rax\n")
	g.emit("    je      L%d\n", l0)
	g.emit("    movq    $1, %%rax\n")
	g.emit("    jmp     L%d\n", l1)
	g.emit("L%d:\n", l0)
	g.genExpression(e.Right, scope)
	g.emit("    cmpq    $0, %%rax\n")
	g.emit("    movq    $0, %%rax\n")
	g.emit("    setne   %%al\n")
	g.emit("L%d:\n", l1)
}

// genComparison lowers a relational or equality operator. swapped
// operators (`< > <= >=`) evaluate the right side first so the
// operands land in the order the eventual `cmpq %rcx, %rax` expects.
func (g *Generator) genComparison(e *ast.Binary, scope *symtable.Scope, set string, swapped bool) {
	if swapped {
		g.genExpression(e.Right, scope)
		g.emit("    pushq   %%rax\n")
		g.genExpression(e.Left, scope)
	} else {
		g.genExpression(e.Left, scope)
		g.emit("    pushq   %%rax\n")
		g.genExpression(e.Right, scope)
	}
	g.emit("    popq    %%rcx\n")
	g.emit("    cmpq    %%rcx, %%rax\n")
	g.emit("    %s    %%al\n", set)
	g.emit("    movzbq  %%al, %%rax\n")
}

func (g *Generator) genUnary(e *ast.Unary, scope *symtable.Scope) {
	switch e.Op {
	case ast.ValueOf:
		g.genExpression(e.Operand, scope)
		g.emit("    movq    (%%rax), %%rax\n")

	case ast.AddressOf:
		g.genAddressOf(e.Operand, scope)

	case ast.Positive:
		g.genExpression(e.Operand, scope)

	case ast.Negative:
		g.genExpression(e.Operand, scope)
		g.emit("    negq    %%rax\n")

	case ast.BinaryNot:
		g.genExpression(e.Operand, scope)
		g.emit("    notq    %%rax\n")

	case ast.LogicalNot:
		g.genExpression(e.Operand, scope)
		g.emit("    cmpq    $0, %%rax\n")
		g.emit("    movq    $0, %%rax\n")
		g.emit("    sete    %%al\n")

	default:
		panic("codegen: genUnary: unhandled unary operator")
	}
}

// genAddressOf lowers `&operand`. operand is always an lvalue: either
// an identifier, whose address is its frame slot, or a value-of
// expression, whose address is simply its own operand's value
// (`&*p` is `p`).
func (g *Generator) genAddressOf(operand ast.Expression, scope *symtable.Scope) {
	switch o := operand.(type) {
	case *ast.Identifier:
		sym, _ := scope.Fetch(o.Name)
		g.emit("    leaq    %d(%%rbp), %%rax\n", sym.Offset)
	case *ast.Unary:
		g.genExpression(o.Operand, scope)
	default:
		panic("codegen: genAddressOf: operand is not an lvalue")
	}
}
