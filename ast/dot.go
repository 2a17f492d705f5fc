package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteDot writes prog as a Graphviz digraph, one box per node, with
// edges from parents to children in source order.
func WriteDot(w io.Writer, prog *Program) error {
	dot := dotWriter{out: w}
	dot.printf("digraph AST {\n")
	dot.printf("  node [shape=box fontname=monospace];\n")
	dot.node("Program", prog)
	dot.printf("}\n")
	return dot.err
}

type dotWriter struct {
	out  io.Writer
	next int
	err  error
}

func (dot *dotWriter) printf(format string, args ...interface{}) {
	if dot.err == nil {
		_, dot.err = fmt.Fprintf(dot.out, format, args...)
	}
}

func (dot *dotWriter) vertex(label string) string {
	id := "n" + strconv.Itoa(dot.next)
	dot.next++
	dot.printf("  %v [label=%v];\n", id, strconv.Quote(label))
	return id
}

func (dot *dotWriter) edge(from, to string) {
	dot.printf("  %v -> %v;\n", from, to)
}

// node emits node and its subtree, returning its vertex id; blocks are
// emitted under the given label since they have no syntax of their own.
func (dot *dotWriter) node(blockLabel string, node Node) string {
	var (
		label string
		kids  []Node
		named []string
		progs []*Program
	)
	switch n := node.(type) {
	case *Program:
		label, kids = blockLabel, n.Body
	case *Number:
		if n.IsFloat {
			label = "Number " + strconv.FormatFloat(n.Float, 'g', -1, 64)
		} else {
			label = "Number " + strconv.FormatInt(n.Int, 10)
		}
	case *Bool:
		label = "Bool " + strconv.FormatBool(n.Value)
	case *String:
		label = "String " + strconv.Quote(n.Value)
	case *Variable:
		label = "Variable " + n.Name
	case *Not:
		label, kids = "Not", []Node{n.X}
	case *Array:
		label, kids = "Array", n.Elems
	case *ArrayAccess:
		label, kids = "ArrayAccess", []Node{n.X, n.Index}
	case *ArraySet:
		label, kids = "ArraySet "+n.Name, []Node{n.Index, n.Value}
	case *ArrayAdd:
		label, kids = "ArrayAdd "+n.Name, []Node{n.Value}
	case *Random:
		label, kids = "Random", []Node{n.Lo, n.Hi}
	case *Len:
		label, kids = "Len", []Node{n.X}
	case *TypeOf:
		label, kids = "TypeOf", []Node{n.X}
	case *TypeCast:
		label, kids = "TypeCast "+n.Type, []Node{n.X}
	case *BinOp:
		label, kids = "BinOp "+n.Op, []Node{n.Left, n.Right}
	case *IncDec:
		label = "IncDec " + n.Name + n.Op
	case *Print:
		label, kids = "Print", []Node{n.X}
	case *Input:
		label, kids = "Input", []Node{n.Prompt}
	case *Assign:
		label, kids = "Assign "+n.Name, []Node{n.X}
	case *Return:
		label, kids = "Return", []Node{n.X}
	case *FuncCall:
		label, kids = "FuncCall "+n.Name, n.Args
	case *Func:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.String()
		}
		label = "Func " + n.Name + "(" + strings.Join(params, ", ") + ")"
		named, progs = []string{"Body"}, []*Program{n.Body}
	case *If:
		label, kids = "If", []Node{n.Cond}
		named, progs = []string{"Then", "Else"}, []*Program{n.Then, n.Else}
	case *While:
		label, kids = "While", []Node{n.Cond}
		named, progs = []string{"Body"}, []*Program{n.Body}
	case *For:
		label, kids = "For", []Node{n.Init, n.Cond}
		named, progs = []string{"Body"}, []*Program{n.Body}
	default:
		label = fmt.Sprintf("%T", node)
	}

	id := dot.vertex(label)
	for _, kid := range kids {
		dot.edge(id, dot.node("", kid))
	}
	for i, prog := range progs {
		if prog != nil {
			dot.edge(id, dot.node(named[i], prog))
		}
	}
	return id
}
