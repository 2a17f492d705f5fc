package ast

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamp100307/Pluto/token"
)

func sampleProgram() *Program {
	at := func(line, col int) At { return At(token.Pos{Line: line, Col: col}) }
	return &Program{At: at(1, 1), Body: []Node{
		&Func{At: at(1, 1), Name: "inc", Params: []Param{{Name: "n", Type: "int"}, {Name: "m"}}, Body: &Program{
			At: at(1, 20),
			Body: []Node{
				&Return{At: at(1, 22), X: &BinOp{At: at(1, 29), Op: "+",
					Left:  &Variable{At: at(1, 29), Name: "n"},
					Right: &Number{At: at(1, 33), Int: 1},
				}},
			},
		}},
		&If{At: at(2, 1),
			Cond: &Bool{At: at(2, 5), Value: true},
			Then: &Program{At: at(2, 11), Body: []Node{
				&Print{At: at(2, 13), X: &String{At: at(2, 19), Value: "yes"}},
			}},
		},
		&Assign{At: at(3, 1), Name: "x", X: &Array{At: at(3, 5), Elems: []Node{
			&Number{At: at(3, 6), Float: 1.5, IsFloat: true},
			&FuncCall{At: at(3, 11), Name: "inc", Args: []Node{&Number{At: at(3, 15), Int: 2}, &Number{At: at(3, 18), Int: 3}}},
		}}},
		&IncDec{At: at(4, 1), Op: "++", Name: "y"},
	}}
}

func TestDump(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, Dump(&sb, sampleProgram()))
	assert.Equal(t, strings.Join([]string{
		"Program",
		"  Func: inc(n:int, m)",
		"    Body",
		"      Return",
		"        BinOp: +",
		"          Variable: n",
		"          Number: 1",
		"  If",
		"    Bool: true",
		"    Then",
		"      Print",
		`        String: "yes"`,
		"  Assign: x",
		"    Array",
		"      Number: 1.5",
		"      FuncCall: inc",
		"        Number: 2",
		"        Number: 3",
		"  IncDec: y ++",
		"",
	}, "\n"), sb.String())
}

func TestWriteDot(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteDot(&sb, sampleProgram()))
	out := sb.String()
	assert.True(t, strings.HasPrefix(out, "digraph AST {\n"), "expected digraph header")
	assert.True(t, strings.HasSuffix(out, "}\n"), "expected closing brace")
	assert.Contains(t, out, `n0 [label="Program"];`)
	assert.Contains(t, out, `n1 [label="Func inc(n:int, m)"];`)
	assert.Contains(t, out, `[label="String \"yes\""];`)
	assert.Contains(t, out, `[label="Then"];`)
	assert.NotContains(t, out, `[label="Else"];`, "absent else block should not be drawn")
	assert.Contains(t, out, "n0 -> n1;")
	assert.Equal(t, strings.Count(out, "[label="), strings.Count(out, " -> ")+1,
		"expected a tree: one fewer edge than vertices")
}

func TestPos(t *testing.T) {
	prog := sampleProgram()
	assert.Equal(t, token.Pos{Line: 3, Col: 1}, prog.Body[2].Pos())
	assert.Equal(t, "4:1", prog.Body[3].Pos().String())
}

type failWriter struct{ n int }

func (fw *failWriter) Write(p []byte) (int, error) {
	if fw.n == 0 {
		return 0, assert.AnError
	}
	fw.n--
	return len(p), nil
}

func TestDump_writeError(t *testing.T) {
	assert.Equal(t, assert.AnError, Dump(&failWriter{n: 2}, sampleProgram()))
	assert.Equal(t, assert.AnError, WriteDot(&failWriter{n: 3}, sampleProgram()))
}
