// Package value defines the Noumenon runtime's tagged value union and the
// polymorphic operator dispatch over it. Every Noumenon value implements
// Value; composite values (Array, Object, Function) are represented with
// pointer receivers so in-place Modify calls are visible through the
// interface without extra indirection.
package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/twied/noumenon/ast"
)

// Type identifies a Value's dynamic type, used both for typeof() and as
// the dispatch key for binary/unary operator tables.
type Type string

const (
	TypeNull     Type = "Null"
	TypeBool     Type = "Bool"
	TypeInt      Type = "Int"
	TypeFloat    Type = "Float"
	TypeString   Type = "String"
	TypeArray    Type = "Array"
	TypeObject   Type = "Object"
	TypeFunction Type = "Function"
)

// Value is implemented by every Noumenon runtime value.
type Value interface {
	Type() Type
	// String renders the "Display" form used by print/println.
	String() string
}

// Runtime is the interface a host (builtin) function uses to invoke
// Noumenon callables and run a separate file, without value depending on
// the scope or eval packages directly (mirrors the teacher's
// std.Runtime/std.CallbackFunc split). callScope/scopeParent are typed
// any and hold a *scope.Scope; value cannot name that type without
// creating an import cycle (scope already imports value for storage).
type Runtime interface {
	Call(callScope any, callee Value, args []Value) Value
	RunFile(path string, scopeParent any, args []Value) (Value, error)
}

// Null is the unique null value.
type Null struct{}

func (Null) Type() Type     { return TypeNull }
func (Null) String() string { return "null" }

// Bool is a boolean value.
type Bool struct{ Value bool }

func (Bool) Type() Type { return TypeBool }
func (b Bool) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// Int is a 64-bit two's-complement integer.
type Int struct{ Value int64 }

func (Int) Type() Type       { return TypeInt }
func (i Int) String() string { return strconv.FormatInt(i.Value, 10) }

// Float is a 64-bit IEEE-754 float.
type Float struct{ Value float64 }

func (Float) Type() Type { return TypeFloat }
func (f Float) String() string {
	return strconv.FormatFloat(f.Value, 'g', -1, 64)
}

// String is a sequence of Unicode code points.
type String struct{ Value []rune }

func (String) Type() Type       { return TypeString }
func (s String) String() string { return string(s.Value) }

// NewString builds a String value from a Go string.
func NewString(s string) String { return String{Value: []rune(s)} }

// Array is a mutable, ordered, heterogeneous sequence.
type Array struct{ Elements []Value }

func (*Array) Type() Type { return TypeArray }
func (a *Array) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Object is a mutable string-keyed map. Unlike the teacher's Map, it keeps
// no insertion-order side table: iteration order is always the sorted key
// order mandated by the language's iteration rules, computed on demand.
type Object struct{ Fields map[string]Value }

// NewObject returns an empty Object ready for use.
func NewObject() *Object { return &Object{Fields: make(map[string]Value)} }

func (*Object) Type() Type { return TypeObject }

// SortedKeys returns this object's keys in ascending order.
func (o *Object) SortedKeys() []string {
	keys := make([]string, 0, len(o.Fields))
	for k := range o.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (o *Object) String() string {
	keys := o.SortedKeys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, o.Fields[k].String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Function is either a user-defined function body or a host builtin. It
// captures no defining scope: free variables in Body resolve dynamically
// against the caller's scope chain at call time (see the eval package).
type Function struct {
	// Params/Body are set for user functions; Host is set for builtins.
	// Host is non-nil exactly for builtins; a user function with an empty
	// body has a nil Body as well.
	Params []string
	Body   []ast.Stmt
	Host   func(rt Runtime, callScope any, args []Value) Value
	Name   string // builtins carry a name for diagnostics; user functions may be ""
}

func (*Function) Type() Type { return TypeFunction }
func (f *Function) String() string {
	if f.Name != "" {
		return "Function<" + f.Name + ">"
	}
	return "Function"
}

// IsUserFunction reports whether f is a Noumenon-defined function rather
// than a host builtin.
func (f *Function) IsUserFunction() bool { return f.Host == nil }
