package ast

import (
	"bytes"
	"fmt"
)

// indentSize matches the teacher's PrintingVisitor convention of four
// spaces per nesting level.
const indentSize = 4

// DebugPrinter walks a parsed program and writes an indented trace of its
// statement/expression tree. It is not part of the language; the CLI wires
// it up behind a --dump-ast flag for debugging parser output, adapted from
// the teacher's PrintingVisitor (main/print_visitor.go).
type DebugPrinter struct {
	indent int
	buf    bytes.Buffer
}

// String returns everything written to the printer so far.
func (p *DebugPrinter) String() string {
	return p.buf.String()
}

func (p *DebugPrinter) line(format string, args ...interface{}) {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteByte(' ')
	}
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteByte('\n')
}

// PrintProgram dumps an entire program (statement list).
func (p *DebugPrinter) PrintProgram(stmts []Stmt) {
	p.line("Program")
	p.indent += indentSize
	for _, s := range stmts {
		p.PrintStmt(s)
	}
	p.indent -= indentSize
}

// PrintStmt dumps a single statement and, recursively, its children.
func (p *DebugPrinter) PrintStmt(s Stmt) {
	switch n := s.(type) {
	case *EmptyStmt:
		p.line("Empty")
	case *VarStmt:
		p.line("Var %s", n.Name)
		p.indent += indentSize
		p.PrintExpr(n.Init)
		p.indent -= indentSize
	case *AssignStmt:
		p.line("Assign %s", n.Target.Name)
		p.indent += indentSize
		p.PrintExpr(n.Value)
		p.indent -= indentSize
	case *CallStmt:
		p.PrintExpr(n.Call)
	case *IfStmt:
		p.line("If")
		p.indent += indentSize
		p.PrintExpr(n.Cond)
		for _, s := range n.Then {
			p.PrintStmt(s)
		}
		if n.Else != nil {
			p.line("Else")
			for _, s := range n.Else {
				p.PrintStmt(s)
			}
		}
		p.indent -= indentSize
	case *WhileStmt:
		p.line("While")
		p.indent += indentSize
		p.PrintExpr(n.Cond)
		for _, s := range n.Body {
			p.PrintStmt(s)
		}
		p.indent -= indentSize
	case *ForStmt:
		p.line("For key=%q value=%q", n.KeyName, n.ValueName)
		p.indent += indentSize
		p.PrintExpr(n.Iterable)
		for _, s := range n.Body {
			p.PrintStmt(s)
		}
		p.indent -= indentSize
	case *ReturnStmt:
		p.line("Return")
		p.indent += indentSize
		p.PrintExpr(n.Value)
		p.indent -= indentSize
	default:
		p.line("<unknown stmt>")
	}
}

// PrintExpr dumps a single expression and, recursively, its children.
func (p *DebugPrinter) PrintExpr(e Expr) {
	switch n := e.(type) {
	case *NullExpr:
		p.line("Null")
	case *BoolExpr:
		p.line("Bool %t", n.Value)
	case *IntExpr:
		p.line("Int %d", n.Value)
	case *FloatExpr:
		p.line("Float %v", n.Value)
	case *StringExpr:
		p.line("String %q", string(n.Value))
	case *ArrayExpr:
		p.line("Array")
		p.indent += indentSize
		for _, el := range n.Elements {
			p.PrintExpr(el)
		}
		p.indent -= indentSize
	case *ObjectExpr:
		p.line("Object")
		p.indent += indentSize
		for i, k := range n.Keys {
			p.line("%s:", k)
			p.indent += indentSize
			p.PrintExpr(n.Values[i])
			p.indent -= indentSize
		}
		p.indent -= indentSize
	case *FunctionExpr:
		p.line("Function(%v)", n.Params)
		p.indent += indentSize
		for _, s := range n.Body {
			p.PrintStmt(s)
		}
		p.indent -= indentSize
	case *VariableExpr:
		p.line("Variable %s (%d selectors)", n.Name, len(n.Selectors))
		p.indent += indentSize
		for _, s := range n.Selectors {
			p.PrintExpr(s)
		}
		p.indent -= indentSize
	case *CallExpr:
		p.line("Call %s", n.Callee.Name)
		p.indent += indentSize
		for _, a := range n.Args {
			p.PrintExpr(a)
		}
		p.indent -= indentSize
	case *UnaryExpr:
		p.line("Unary %d", n.Op)
		p.indent += indentSize
		p.PrintExpr(n.Operand)
		p.indent -= indentSize
	case *BinaryExpr:
		p.line("Binary %d", n.Op)
		p.indent += indentSize
		p.PrintExpr(n.Left)
		p.PrintExpr(n.Right)
		p.indent -= indentSize
	default:
		p.line("<unknown expr>")
	}
}
