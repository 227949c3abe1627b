package value

import "github.com/twied/noumenon/ast"

// Unary applies a prefix operator. Any combination not named here yields
// Null, per the default-undefined rule of §4.3.
func Unary(op ast.UnaryOp, operand Value) Value {
	switch op {
	case ast.NEG:
		switch v := operand.(type) {
		case Int:
			return Int{Value: -v.Value} // two's-complement; -MinInt64 wraps to itself
		case Float:
			return Float{Value: -v.Value}
		}
	case ast.NOT:
		if b, ok := operand.(Bool); ok {
			return Bool{Value: !b.Value}
		}
	}
	return Null{}
}

// Binary dispatches an infix operator on the dynamic types of both
// operands, following the table in §4.3 exactly. Undefined combinations
// yield Null.
func Binary(op ast.BinaryOp, left, right Value) Value {
	switch op {
	case ast.ADD:
		return add(left, right)
	case ast.SUB:
		return sub(left, right)
	case ast.MUL:
		return numeric(left, right, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b })
	case ast.DIV:
		return div(left, right)
	case ast.MOD:
		return mod(left, right)
	case ast.AND:
		return and(left, right)
	case ast.OR:
		return or(left, right)
	case ast.EQU:
		if !definesEquality(left, right) {
			return Null{}
		}
		return Bool{Value: equal(left, right)}
	case ast.NEQ:
		if !definesEquality(left, right) {
			return Null{}
		}
		return Bool{Value: !equal(left, right)}
	case ast.LES:
		return compare(left, right, func(c int) bool { return c < 0 })
	case ast.LEQ:
		return compare(left, right, func(c int) bool { return c <= 0 })
	case ast.GRT:
		return compare(left, right, func(c int) bool { return c > 0 })
	case ast.GEQ:
		return compare(left, right, func(c int) bool { return c >= 0 })
	}
	return Null{}
}

func asFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case Int:
		return float64(n.Value), true
	case Float:
		return n.Value, true
	}
	return 0, false
}

func bothInt(left, right Value) (int64, int64, bool) {
	l, ok1 := left.(Int)
	r, ok2 := right.(Int)
	if ok1 && ok2 {
		return l.Value, r.Value, true
	}
	return 0, 0, false
}

func numeric(left, right Value, intOp func(a, b int64) int64, floatOp func(a, b float64) float64) Value {
	if l, r, ok := bothInt(left, right); ok {
		return Int{Value: intOp(l, r)}
	}
	lf, ok1 := asFloat(left)
	rf, ok2 := asFloat(right)
	if ok1 && ok2 {
		return Float{Value: floatOp(lf, rf)}
	}
	return Null{}
}

func add(left, right Value) Value {
	if l, r, ok := bothInt(left, right); ok {
		return Int{Value: l + r}
	}
	if lf, ok1 := asFloat(left); ok1 {
		if rf, ok2 := asFloat(right); ok2 {
			return Float{Value: lf + rf}
		}
	}
	if s, ok := left.(String); ok {
		return String{Value: append(append([]rune(nil), s.Value...), []rune(concatOperand(right))...)}
	}
	if arr, ok := left.(*Array); ok {
		return &Array{Elements: append(append([]Value(nil), arr.Elements...), right)}
	}
	return Null{}
}

// concatOperand stringifies the right-hand operand of String + X per the
// rules in §4.3.1, which differ from Value.String for composite types
// (e.g. an Array renders as the literal word "Array", not its elements).
func concatOperand(v Value) string {
	switch t := v.(type) {
	case *Array:
		return "Array"
	case *Object:
		return "Object"
	case *Function:
		return "Function"
	default:
		return t.String()
	}
}

func sub(left, right Value) Value {
	if l, r, ok := bothInt(left, right); ok {
		return Int{Value: l - r}
	}
	if lf, ok1 := asFloat(left); ok1 {
		if rf, ok2 := asFloat(right); ok2 {
			return Float{Value: lf - rf}
		}
	}
	if arr, ok := left.(*Array); ok {
		out := make([]Value, 0, len(arr.Elements))
		for _, e := range arr.Elements {
			if !equal(e, right) {
				out = append(out, e)
			}
		}
		return &Array{Elements: out}
	}
	if obj, ok := left.(*Object); ok {
		if key, ok := right.(String); ok {
			out := NewObject()
			for k, v := range obj.Fields {
				if k != string(key.Value) {
					out.Fields[k] = v
				}
			}
			return out
		}
	}
	return Null{}
}

func div(left, right Value) Value {
	if l, r, ok := bothInt(left, right); ok {
		if r == 0 {
			return Null{}
		}
		return Int{Value: l / r}
	}
	if lf, ok1 := asFloat(left); ok1 {
		if rf, ok2 := asFloat(right); ok2 {
			if rf == 0 {
				return Null{}
			}
			return Float{Value: lf / rf}
		}
	}
	return Null{}
}

func mod(left, right Value) Value {
	if l, r, ok := bothInt(left, right); ok {
		if r == 0 {
			return Null{}
		}
		return Int{Value: l % r}
	}
	return Null{}
}

func and(left, right Value) Value {
	if l, ok1 := left.(Bool); ok1 {
		if r, ok2 := right.(Bool); ok2 {
			return Bool{Value: l.Value && r.Value}
		}
	}
	if l, ok1 := left.(*Object); ok1 {
		if r, ok2 := right.(*Object); ok2 {
			out := NewObject()
			for k, v := range l.Fields {
				if _, inRight := r.Fields[k]; inRight {
					out.Fields[k] = v
				}
			}
			return out
		}
	}
	return Null{}
}

func or(left, right Value) Value {
	if l, ok1 := left.(Bool); ok1 {
		if r, ok2 := right.(Bool); ok2 {
			return Bool{Value: l.Value || r.Value}
		}
	}
	if l, ok1 := left.(*Object); ok1 {
		if r, ok2 := right.(*Object); ok2 {
			out := NewObject()
			for k, v := range r.Fields {
				out.Fields[k] = v
			}
			for k, v := range l.Fields {
				out.Fields[k] = v // lhs wins on conflict
			}
			return out
		}
	}
	return Null{}
}

// definesEquality reports whether left/right fall into a pair the language
// gives EQU/NEQ semantics for (Int/Int, Float/Float mixed numeric pairs
// excluded per §4.3's note that Int/Float equality is undefined, Bool/Bool,
// String/String, Object/Object). Anything else is undefined -> Null for NEQ
// as well as EQU.
func definesEquality(left, right Value) bool {
	switch left.(type) {
	case Int:
		_, ok := right.(Int)
		return ok
	case Float:
		_, ok := right.(Float)
		return ok
	case Bool:
		_, ok := right.(Bool)
		return ok
	case String:
		_, ok := right.(String)
		return ok
	case *Object:
		_, ok := right.(*Object)
		return ok
	}
	return false
}

func equal(left, right Value) bool {
	switch l := left.(type) {
	case Int:
		if r, ok := right.(Int); ok {
			return l.Value == r.Value
		}
	case Float:
		if r, ok := right.(Float); ok {
			return l.Value == r.Value
		}
	case Bool:
		if r, ok := right.(Bool); ok {
			return l.Value == r.Value
		}
	case String:
		if r, ok := right.(String); ok {
			return string(l.Value) == string(r.Value)
		}
	case *Object:
		if r, ok := right.(*Object); ok {
			return objectsEqual(l, r)
		}
	}
	return false
}

func objectsEqual(l, r *Object) bool {
	if len(l.Fields) != len(r.Fields) {
		return false
	}
	for k, lv := range l.Fields {
		rv, ok := r.Fields[k]
		if !ok || !equal(lv, rv) {
			return false
		}
	}
	return true
}

// compare implements the four ordering operators: Int/Int compares
// exactly, any other numeric pair compares as Float; all other type pairs
// are undefined and yield Null.
func compare(left, right Value, pred func(int) bool) Value {
	if l, r, ok := bothInt(left, right); ok {
		switch {
		case l < r:
			return Bool{Value: pred(-1)}
		case l > r:
			return Bool{Value: pred(1)}
		default:
			return Bool{Value: pred(0)}
		}
	}
	lf, ok1 := asFloat(left)
	rf, ok2 := asFloat(right)
	if ok1 && ok2 {
		switch {
		case lf < rf:
			return Bool{Value: pred(-1)}
		case lf > rf:
			return Bool{Value: pred(1)}
		default:
			return Bool{Value: pred(0)}
		}
	}
	return Null{}
}

// Select implements a[k] per §4.3.2.
func Select(receiver, key Value) Value {
	switch r := receiver.(type) {
	case *Array:
		if idx, ok := key.(Int); ok {
			if idx.Value >= 0 && idx.Value < int64(len(r.Elements)) {
				return r.Elements[idx.Value]
			}
		}
	case *Object:
		if k, ok := key.(String); ok {
			if v, present := r.Fields[string(k.Value)]; present {
				return v
			}
		}
	case String:
		if idx, ok := key.(Int); ok {
			if idx.Value >= 0 && idx.Value < int64(len(r.Value)) {
				return String{Value: []rune{r.Value[idx.Value]}}
			}
		}
	}
	return Null{}
}

// Modify implements a[k] = v per §4.3.3. Out-of-range or mistyped writes
// are silent no-ops.
func Modify(receiver, key, newValue Value) {
	switch r := receiver.(type) {
	case *Array:
		if idx, ok := key.(Int); ok {
			if idx.Value >= 0 && idx.Value < int64(len(r.Elements)) {
				r.Elements[idx.Value] = newValue
			}
		}
	case *Object:
		if k, ok := key.(String); ok {
			r.Fields[string(k.Value)] = newValue
		}
	}
}

// Length implements getLength per §4.3.4.
func Length(v Value) int64 {
	switch r := v.(type) {
	case *Array:
		return int64(len(r.Elements))
	case *Object:
		return int64(len(r.Fields))
	case String:
		return int64(len(r.Value))
	}
	return 0
}

// IterKey implements getKey(i) per §4.3.4.
func IterKey(v Value, i int64) Value {
	switch r := v.(type) {
	case *Array:
		return Int{Value: i}
	case *Object:
		keys := r.SortedKeys()
		if i >= 0 && i < int64(len(keys)) {
			return NewString(keys[i])
		}
	case String:
		return Int{Value: i}
	}
	return Null{}
}

// IterValue implements getValue(i) per §4.3.4.
func IterValue(v Value, i int64) Value {
	switch r := v.(type) {
	case *Array:
		if i >= 0 && i < int64(len(r.Elements)) {
			return r.Elements[i]
		}
	case *Object:
		keys := r.SortedKeys()
		if i >= 0 && i < int64(len(keys)) {
			return r.Fields[keys[i]]
		}
	case String:
		if i >= 0 && i < int64(len(r.Value)) {
			return String{Value: []rune{r.Value[i]}}
		}
	}
	return Null{}
}

// IsTruthy reports whether v is considered true by if/while conditions.
// Only Bool has defined truthiness; anything else is treated as false,
// matching the language's "undefined combinations collapse to the zero
// case" philosophy.
func IsTruthy(v Value) bool {
	b, ok := v.(Bool)
	return ok && b.Value
}
