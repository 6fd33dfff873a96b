// Package value implements the small runtime value model the sort engine
// works with: numbers, strings, objects, and the hole/undefined sentinels.
package value

import (
	"fmt"
	"strconv"
)

// Kind identifies the dynamic type of a Value.
type Kind uint8

const (
	// KindHole marks an absent element in a sparse collection.
	KindHole Kind = iota
	KindUndefined
	KindNull
	KindBool
	// KindInt is a small integer stored in the engine's native form.
	KindInt
	KindNumber
	KindString
	KindSymbol
	KindObject
)

var kindNames = [...]string{
	KindHole:      "hole",
	KindUndefined: "undefined",
	KindNull:      "null",
	KindBool:      "boolean",
	KindInt:       "int",
	KindNumber:    "number",
	KindString:    "string",
	KindSymbol:    "symbol",
	KindObject:    "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is any runtime value.
type Value interface {
	Kind() Kind
}

type holeValue struct{}

func (holeValue) Kind() Kind     { return KindHole }
func (holeValue) String() string { return "<hole>" }

type undefinedValue struct{}

func (undefinedValue) Kind() Kind     { return KindUndefined }
func (undefinedValue) String() string { return "undefined" }

type nullValue struct{}

func (nullValue) Kind() Kind     { return KindNull }
func (nullValue) String() string { return "null" }

// The sentinels are compared by identity.
var (
	Hole      Value = holeValue{}
	Undefined Value = undefinedValue{}
	Null      Value = nullValue{}
)

// IsHole reports whether v is the hole sentinel. A nil Value counts as a hole.
func IsHole(v Value) bool {
	return v == nil || v == Hole
}

// IsUndefined reports whether v is undefined.
func IsUndefined(v Value) bool {
	return v == Undefined
}

// Bool is a boolean value.
type Bool bool

func (Bool) Kind() Kind { return KindBool }

// Int is an integer small enough to be kept untagged by the engine.
type Int int32

func (Int) Kind() Kind { return KindInt }

// Number is an IEEE 754 double.
type Number float64

func (Number) Kind() Kind { return KindNumber }

// String is a string value.
type String string

func (String) Kind() Kind { return KindString }

// Symbol is a unique value that cannot be converted to a string or number
// implicitly. Symbols compare by pointer identity.
type Symbol struct {
	Description string
}

func (*Symbol) Kind() Kind { return KindSymbol }

func (s *Symbol) String() string {
	return "Symbol(" + s.Description + ")"
}

// Hint selects the preferred primitive type for Object.ToPrimitive.
type Hint int

const (
	HintNumber Hint = iota
	HintString
)

// Function is the native signature of a callable object. Returning a
// non-nil error is an abrupt completion.
type Function func(this Value, args []Value) (Value, error)

// Object is a reference value. Objects with a non-nil Call are callable.
type Object struct {
	// Class is reported by the default string conversion, e.g. "Object".
	Class string
	// Call makes the object callable.
	Call Function
	// ToPrimitive overrides the default valueOf/toString conversion. It may
	// run arbitrary code and fail.
	ToPrimitive func(hint Hint) (Value, error)
	// Data is an opaque payload for the embedder.
	Data any
}

func (*Object) Kind() Kind { return KindObject }

// NewObject returns a plain object carrying data.
func NewObject(data any) *Object {
	return &Object{Class: "Object", Data: data}
}

// NewFunction wraps fn into a callable object.
func NewFunction(fn Function) *Object {
	return &Object{Class: "Function", Call: fn}
}

// IsCallable reports whether v can be invoked with Call.
func IsCallable(v Value) bool {
	o, ok := v.(*Object)
	return ok && o.Call != nil
}

// Call invokes fn with the given receiver and arguments.
func Call(fn Value, this Value, args ...Value) (Value, error) {
	o, ok := fn.(*Object)
	if !ok || o.Call == nil {
		return nil, NewTypeError("%s is not a function", Inspect(fn))
	}
	res, err := o.Call(this, args)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return Undefined, nil
	}
	return res, nil
}

// Inspect renders v for diagnostics without running user code.
func Inspect(v Value) string {
	switch x := v.(type) {
	case nil:
		return "<hole>"
	case String:
		return strconv.Quote(string(x))
	case Int:
		return strconv.Itoa(int(x))
	case Number:
		return NumberToString(float64(x))
	case Bool:
		return strconv.FormatBool(bool(x))
	case *Object:
		if x.Data != nil {
			return fmt.Sprintf("[%s %v]", x.Class, x.Data)
		}
		return "[object " + x.Class + "]"
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
