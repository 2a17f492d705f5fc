package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump writes an indented outline of the tree rooted at node to w, one
// node per line, children indented two spaces under their parent.
func Dump(w io.Writer, node Node) error {
	dump := dumper{out: w}
	dump.node(node)
	return dump.err
}

type dumper struct {
	out   io.Writer
	depth int
	buf   strings.Builder
	err   error
}

func (dump *dumper) line(label string, args ...interface{}) {
	if dump.err != nil {
		return
	}
	dump.buf.Reset()
	for i := 0; i < dump.depth; i++ {
		dump.buf.WriteString("  ")
	}
	dump.buf.WriteString(label)
	for i, arg := range args {
		if i == 0 {
			dump.buf.WriteString(": ")
		} else {
			dump.buf.WriteByte(' ')
		}
		fmt.Fprint(&dump.buf, arg)
	}
	dump.buf.WriteByte('\n')
	_, dump.err = io.WriteString(dump.out, dump.buf.String())
}

func (dump *dumper) children(nodes ...Node) {
	dump.depth++
	for _, node := range nodes {
		dump.node(node)
	}
	dump.depth--
}

func (dump *dumper) block(label string, prog *Program) {
	if prog == nil {
		return
	}
	dump.depth++
	dump.line(label)
	dump.children(prog.Body...)
	dump.depth--
}

func (dump *dumper) node(node Node) {
	switch n := node.(type) {
	case *Program:
		dump.line("Program")
		dump.children(n.Body...)

	case *Number:
		if n.IsFloat {
			dump.line("Number", strconv.FormatFloat(n.Float, 'g', -1, 64))
		} else {
			dump.line("Number", n.Int)
		}
	case *Bool:
		dump.line("Bool", n.Value)
	case *String:
		dump.line("String", strconv.Quote(n.Value))
	case *Variable:
		dump.line("Variable", n.Name)

	case *Not:
		dump.line("Not")
		dump.children(n.X)
	case *Array:
		dump.line("Array")
		dump.children(n.Elems...)
	case *ArrayAccess:
		dump.line("ArrayAccess")
		dump.children(n.X, n.Index)
	case *ArraySet:
		dump.line("ArraySet", n.Name)
		dump.children(n.Index, n.Value)
	case *ArrayAdd:
		dump.line("ArrayAdd", n.Name)
		dump.children(n.Value)
	case *Random:
		dump.line("Random")
		dump.children(n.Lo, n.Hi)
	case *Len:
		dump.line("Len")
		dump.children(n.X)
	case *TypeOf:
		dump.line("TypeOf")
		dump.children(n.X)
	case *TypeCast:
		dump.line("TypeCast", n.Type)
		dump.children(n.X)
	case *BinOp:
		dump.line("BinOp", n.Op)
		dump.children(n.Left, n.Right)
	case *IncDec:
		dump.line("IncDec", n.Name, n.Op)
	case *Print:
		dump.line("Print")
		dump.children(n.X)
	case *Input:
		dump.line("Input")
		dump.children(n.Prompt)
	case *Assign:
		dump.line("Assign", n.Name)
		dump.children(n.X)
	case *Return:
		dump.line("Return")
		dump.children(n.X)

	case *FuncCall:
		dump.line("FuncCall", n.Name)
		dump.children(n.Args...)
	case *Func:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.String()
		}
		dump.line("Func", n.Name+"("+strings.Join(params, ", ")+")")
		dump.block("Body", n.Body)
	case *If:
		dump.line("If")
		dump.children(n.Cond)
		dump.block("Then", n.Then)
		dump.block("Else", n.Else)
	case *While:
		dump.line("While")
		dump.children(n.Cond)
		dump.block("Body", n.Body)
	case *For:
		dump.line("For")
		dump.children(n.Init, n.Cond)
		dump.block("Body", n.Body)

	case nil:
		dump.line("<nil>")
	default:
		dump.line(fmt.Sprintf("<unknown %T>", node))
	}
}
