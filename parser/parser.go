// Package parser builds Pluto syntax trees from token sequences by
// recursive descent.
package parser

import (
	"errors"
	"fmt"

	"github.com/lamp100307/Pluto/ast"
	"github.com/lamp100307/Pluto/token"
)

// ParseError describes the first token that did not fit the grammar.
type ParseError struct {
	Pos      token.Pos
	Expected string       // token kind or construct wanted, if any
	Found    *token.Token // nil at end of input
	Msg      string
	AtEOF    bool // input ran out before the construct was complete
}

func (err *ParseError) Error() string {
	if err.Msg != "" {
		return fmt.Sprintf("%v: %v", err.Pos, err.Msg)
	}
	found := "end of input"
	if err.Found != nil {
		found = err.Found.String()
	}
	return fmt.Sprintf("%v: expected %v, found %v", err.Pos, err.Expected, found)
}

// IsIncomplete reports whether err is a ParseError caused by running out
// of input, so that more input could complete the program.
func IsIncomplete(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr) && parseErr.AtEOF
}

// Parser turns token sequences into programs. It remembers the function
// names declared by every successful Parse, so one Parser can be fed a
// program piecewise.
type Parser struct {
	funcs funcNames

	toks []token.Token
	pos  int
}

// New returns a Parser that already treats the given names as declared
// functions.
func New(known ...string) *Parser {
	var p Parser
	for _, name := range known {
		p.funcs.declare(name)
	}
	return &p
}

// Parse parses toks with a fresh Parser.
func Parse(toks []token.Token) (*ast.Program, error) {
	return New().Parse(toks)
}

// Funcs returns the declared function names in declaration order.
func (p *Parser) Funcs() []string { return p.funcs.list() }

// Parse parses toks as a whole program. On failure, function names
// declared during this call are forgotten again.
func (p *Parser) Parse(toks []token.Token) (prog *ast.Program, err error) {
	p.toks, p.pos = toks, 0
	mark := len(p.funcs.names)
	defer func() {
		p.toks = nil
		if e := recover(); e != nil {
			halt, ok := e.(parseHalt)
			if !ok {
				panic(e)
			}
			p.funcs.truncate(mark)
			prog, err = nil, halt.ParseError
		}
	}()

	prog = &ast.Program{At: ast.At(token.Pos{Line: 1, Col: 1})}
	if len(toks) > 0 {
		prog.At = ast.At(toks[0].Pos)
	}
	for p.pos < len(p.toks) {
		prog.Body = append(prog.Body, p.statement())
	}
	return prog, nil
}

type parseHalt struct{ *ParseError }

func (p *Parser) halt(err *ParseError) {
	if err.Pos.Line == 0 {
		if tok := p.peek(); tok != nil {
			err.Pos = tok.Pos
		} else if n := len(p.toks); n > 0 {
			err.Pos = p.toks[n-1].Pos
		}
	}
	if err.Found == nil {
		err.Found = p.peek()
		err.AtEOF = err.Found == nil
	}
	panic(parseHalt{err})
}

func (p *Parser) failf(format string, args ...interface{}) {
	p.halt(&ParseError{Msg: fmt.Sprintf(format, args...)})
}

func (p *Parser) peek() *token.Token {
	if p.pos < len(p.toks) {
		return &p.toks[p.pos]
	}
	return nil
}

func (p *Parser) peekAt(offset int) *token.Token {
	if i := p.pos + offset; i < len(p.toks) {
		return &p.toks[i]
	}
	return nil
}

func (p *Parser) at(kind token.Kind) bool {
	tok := p.peek()
	return tok != nil && tok.Kind == kind
}

func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	p.pos++
	return tok
}

func (p *Parser) expect(kind token.Kind) token.Token {
	if !p.at(kind) {
		p.halt(&ParseError{Expected: kind.String()})
	}
	return p.advance()
}

func (p *Parser) statement() ast.Node {
	switch p.peek().Kind {
	case token.ID:
		return p.identStatement()
	case token.LBRACKET:
		return p.array()
	case token.PRINT:
		return p.print()
	case token.FUNC:
		return p.funcDef()
	case token.IF:
		return p.ifStatement()
	case token.WHILE:
		return p.while()
	case token.FOR:
		return p.forStatement()
	case token.NOT:
		return p.not()
	case token.INPUT:
		return p.input()
	case token.TYPE:
		return p.typeOf()
	case token.TYPETRANS:
		return p.typeCast()
	case token.RANDOM:
		return p.random()
	case token.RETURN:
		return p.returnStatement()
	default:
		return p.expr()
	}
}

// identStatement parses the statements that start with a name: calls,
// assignments, ++/--, element assignment and .add appends.
func (p *Parser) identStatement() ast.Node {
	name := p.expect(token.ID)
	if p.funcs.known(name.Text) {
		return p.call(name)
	}

	at := ast.At(name.Pos)
	next := p.peek()
	switch {
	case next == nil:
		p.halt(&ParseError{Expected: token.OP.String(), Msg: fmt.Sprintf("missing '=' in assignment to %v", name.Text)})

	case next.Kind == token.OP:
		p.advance()
		return &ast.Assign{At: at, Name: name.Text, X: p.expr()}

	case next.Kind == token.SOP:
		return &ast.IncDec{At: at, Op: p.advance().Text, Name: name.Text}

	case next.Kind == token.LBRACKET:
		p.advance()
		index := p.expr()
		p.expect(token.RBRACKET)
		if op := p.expect(token.OP); op.Text != "=" {
			p.halt(&ParseError{Pos: op.Pos, Found: &op, Msg: fmt.Sprintf("missing '=' in assignment to %v[...]", name.Text)})
		}
		return &ast.ArraySet{At: at, Name: name.Text, Index: index, Value: p.expr()}

	case next.Kind == token.DOT:
		p.advance()
		method := p.peek()
		if method == nil {
			p.halt(&ParseError{Expected: "method name"})
		}
		if method.Kind != token.ADD {
			p.failf("method %v is not defined", method.Text)
		}
		p.advance()
		p.expect(token.LPAREN)
		value := p.expr()
		p.expect(token.RPAREN)
		return &ast.ArrayAdd{At: at, Name: name.Text, Value: value}

	case next.Kind == token.LPAREN:
		p.halt(&ParseError{Pos: name.Pos, Msg: fmt.Sprintf("function %v is not defined", name.Text)})
	}
	p.failf("missing '=' in assignment to %v", name.Text)
	return nil
}

// expr parses a comparison level expression; comparison operators do not
// chain.
func (p *Parser) expr() ast.Node {
	left := p.additive()
	tok := p.peek()
	switch {
	case tok == nil:
	case tok.Kind == token.OP && isComparison(tok.Text):
		p.advance()
		return &ast.BinOp{At: ast.At(tok.Pos), Op: tok.Text, Left: left, Right: p.additive()}
	case tok.Kind == token.SOP:
		// only statement position gives ++ and -- meaning
		p.advance()
	}
	return left
}

func isComparison(op string) bool {
	switch op {
	case "==", "!=", "<", ">", "<=", ">=", "and", "or", "xor":
		return true
	}
	return false
}

func (p *Parser) additive() ast.Node {
	left := p.term()
	for {
		tok := p.peek()
		if tok == nil || tok.Kind != token.OP || (tok.Text != "+" && tok.Text != "-") {
			return left
		}
		p.advance()
		left = &ast.BinOp{At: ast.At(tok.Pos), Op: tok.Text, Left: left, Right: p.term()}
	}
}

func (p *Parser) term() ast.Node {
	left := p.atom()
	for {
		tok := p.peek()
		if tok == nil || tok.Kind != token.OP || (tok.Text != "*" && tok.Text != "/") {
			return left
		}
		p.advance()
		left = &ast.BinOp{At: ast.At(tok.Pos), Op: tok.Text, Left: left, Right: p.atom()}
	}
}

func (p *Parser) atom() ast.Node {
	tok := p.peek()
	if tok == nil {
		p.halt(&ParseError{Expected: "expression"})
	}
	at := ast.At(tok.Pos)
	switch tok.Kind {
	case token.NUMBER:
		p.advance()
		switch v := tok.Value.(type) {
		case float64:
			return &ast.Number{At: at, Float: v, IsFloat: true}
		case int64:
			return &ast.Number{At: at, Int: v}
		}
		p.failf("malformed number %v", tok.Text)

	case token.STRING:
		p.advance()
		return &ast.String{At: at, Value: tok.Value.(string)}

	case token.BOOL:
		p.advance()
		return &ast.Bool{At: at, Value: tok.Value.(bool)}

	case token.LBRACKET:
		return p.array()

	case token.ID:
		next := p.peekAt(1)
		if next != nil && next.Kind == token.LPAREN {
			if !p.funcs.known(tok.Text) {
				p.halt(&ParseError{Msg: fmt.Sprintf("function %v is not defined", tok.Text)})
			}
			return p.call(p.advance())
		}
		p.advance()
		v := &ast.Variable{At: at, Name: tok.Text}
		if p.at(token.LBRACKET) {
			p.advance()
			index := p.expr()
			p.expect(token.RBRACKET)
			return &ast.ArrayAccess{At: at, X: v, Index: index}
		}
		return v

	case token.NOT:
		return p.not()
	case token.INPUT:
		return p.input()
	case token.LPAREN:
		p.advance()
		x := p.expr()
		p.expect(token.RPAREN)
		return x
	case token.TYPE:
		return p.typeOf()
	case token.TYPETRANS:
		return p.typeCast()
	case token.RANDOM:
		return p.random()
	case token.LEN:
		return p.length()
	}
	p.failf("unexpected %v", tok)
	return nil
}

// parenthesized parses "( expr )" after a keyword.
func (p *Parser) parenthesized() ast.Node {
	p.expect(token.LPAREN)
	x := p.expr()
	p.expect(token.RPAREN)
	return x
}

func (p *Parser) call(name token.Token) ast.Node {
	p.expect(token.LPAREN)
	call := &ast.FuncCall{At: ast.At(name.Pos), Name: name.Text}
	for !p.at(token.RPAREN) {
		call.Args = append(call.Args, p.expr())
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	p.advance()
	return call
}

func (p *Parser) array() ast.Node {
	arr := &ast.Array{At: ast.At(p.expect(token.LBRACKET).Pos)}
	for !p.at(token.RBRACKET) {
		arr.Elems = append(arr.Elems, p.expr())
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	p.advance()
	return arr
}

func (p *Parser) block() *ast.Program {
	prog := &ast.Program{At: ast.At(p.expect(token.LBRACE).Pos)}
	for !p.at(token.RBRACE) {
		if p.peek() == nil {
			p.halt(&ParseError{Expected: token.RBRACE.String()})
		}
		prog.Body = append(prog.Body, p.statement())
	}
	p.advance()
	return prog
}

func (p *Parser) print() ast.Node {
	at := ast.At(p.expect(token.PRINT).Pos)
	return &ast.Print{At: at, X: p.parenthesized()}
}

func (p *Parser) returnStatement() ast.Node {
	at := ast.At(p.expect(token.RETURN).Pos)
	return &ast.Return{At: at, X: p.parenthesized()}
}

func (p *Parser) not() ast.Node {
	at := ast.At(p.expect(token.NOT).Pos)
	return &ast.Not{At: at, X: p.expr()}
}

func (p *Parser) input() ast.Node {
	at := ast.At(p.expect(token.INPUT).Pos)
	return &ast.Input{At: at, Prompt: p.parenthesized()}
}

func (p *Parser) typeOf() ast.Node {
	at := ast.At(p.expect(token.TYPE).Pos)
	return &ast.TypeOf{At: at, X: p.parenthesized()}
}

func (p *Parser) typeCast() ast.Node {
	tok := p.expect(token.TYPETRANS)
	return &ast.TypeCast{At: ast.At(tok.Pos), Type: tok.Text, X: p.parenthesized()}
}

func (p *Parser) length() ast.Node {
	at := ast.At(p.expect(token.LEN).Pos)
	return &ast.Len{At: at, X: p.parenthesized()}
}

func (p *Parser) random() ast.Node {
	r := &ast.Random{At: ast.At(p.expect(token.RANDOM).Pos)}
	p.expect(token.LPAREN)
	r.Lo = p.expr()
	p.expect(token.COMMA)
	r.Hi = p.expr()
	p.expect(token.RPAREN)
	return r
}

func (p *Parser) ifStatement() ast.Node {
	n := &ast.If{At: ast.At(p.expect(token.IF).Pos)}
	n.Cond = p.parenthesized()
	n.Then = p.block()
	if p.at(token.ELSE) {
		p.advance()
		n.Else = p.block()
	}
	return n
}

func (p *Parser) while() ast.Node {
	n := &ast.While{At: ast.At(p.expect(token.WHILE).Pos)}
	n.Cond = p.parenthesized()
	n.Body = p.block()
	return n
}

func (p *Parser) forStatement() ast.Node {
	n := &ast.For{At: ast.At(p.expect(token.FOR).Pos)}
	p.expect(token.LPAREN)
	n.Init = p.identStatement()
	p.expect(token.COMMA)
	n.Cond = p.expr()
	p.expect(token.RPAREN)
	n.Body = p.block()
	return n
}

// funcDef declares the function name as soon as its header is read, so
// the body may call itself.
func (p *Parser) funcDef() ast.Node {
	n := &ast.Func{At: ast.At(p.expect(token.FUNC).Pos)}
	n.Name = p.expect(token.ID).Text
	p.funcs.declare(n.Name)
	p.expect(token.LPAREN)
	for !p.at(token.RPAREN) {
		param := ast.Param{Name: p.expect(token.ID).Text}
		if p.at(token.COLON) {
			p.advance()
			param.Type = p.expect(token.TYPETRANS).Text
		}
		n.Params = append(n.Params, param)
		if p.at(token.COMMA) {
			p.advance()
		}
	}
	p.advance()
	n.Body = p.block()
	return n
}
