// Package ast defines the closed set of Pluto syntax tree nodes.
//
// Nodes are built once by the parser and never mutated afterwards; every
// child is owned by exactly one parent.
package ast

import "github.com/lamp100307/Pluto/token"

// Node is implemented by every syntax tree node; the set is closed.
type Node interface {
	Pos() token.Pos
	node()
}

// At records the source position of a node; it is embedded by every
// node type.
type At token.Pos

// Pos returns the position of the node's first token.
func (at At) Pos() token.Pos { return token.Pos(at) }
func (At) node()              {}

// Program is an ordered statement list. It is the parse root, and also the
// body of blocks.
type Program struct {
	At
	Body []Node
}

// Number is an int or float literal; IsFloat selects which field holds it.
type Number struct {
	At
	Int     int64
	Float   float64
	IsFloat bool
}

type Bool struct {
	At
	Value bool
}

type String struct {
	At
	Value string
}

// Not negates the truthiness of X.
type Not struct {
	At
	X Node
}

// Array is a list literal.
type Array struct {
	At
	Elems []Node
}

// ArrayAccess indexes a list or string: X[Index].
type ArrayAccess struct {
	At
	X     Node
	Index Node
}

// ArraySet assigns an element of the list or string bound to Name.
type ArraySet struct {
	At
	Name  string
	Index Node
	Value Node
}

// ArrayAdd appends to the list bound to Name: Name.add(Value).
type ArrayAdd struct {
	At
	Name  string
	Value Node
}

// Random draws an int uniformly from [Lo, Hi].
type Random struct {
	At
	Lo, Hi Node
}

type Len struct {
	At
	X Node
}

// TypeOf evaluates to the runtime type name of X.
type TypeOf struct {
	At
	X Node
}

// TypeCast converts X to one of the TYPETRANS types: int, str, bool or
// array.
type TypeCast struct {
	At
	Type string
	X    Node
}

type Variable struct {
	At
	Name string
}

type FuncCall struct {
	At
	Name string
	Args []Node
}

type Return struct {
	At
	X Node
}

// Param is one function parameter; Type is empty when unannotated.
type Param struct {
	Name string
	Type string
}

func (p Param) String() string {
	if p.Type == "" {
		return p.Name
	}
	return p.Name + ":" + p.Type
}

type Func struct {
	At
	Name   string
	Params []Param
	Body   *Program
}

// If has a nil Else when no else block was written.
type If struct {
	At
	Cond Node
	Then *Program
	Else *Program
}

type While struct {
	At
	Cond Node
	Body *Program
}

// For runs Init once and then loops exactly like a While over Cond and
// Body; nothing is advanced implicitly.
type For struct {
	At
	Init Node
	Cond Node
	Body *Program
}

type BinOp struct {
	At
	Op          string
	Left, Right Node
}

// IncDec is the statement form of ++ and --.
type IncDec struct {
	At
	Op   string
	Name string
}

type Print struct {
	At
	X Node
}

// Input reads a line after writing the Prompt; only a String literal
// prompt is accepted at run time.
type Input struct {
	At
	Prompt Node
}

type Assign struct {
	At
	Name string
	X    Node
}
