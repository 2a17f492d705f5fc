// Package lexer converts Pluto source text into tokens.
package lexer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/lamp100307/Pluto/internal/runeio"
	"github.com/lamp100307/Pluto/token"
)

// LexError reports the first character that no token rule accepts.
type LexError struct {
	Pos   token.Pos
	Char  rune
	Msg   string
	AtEOF bool // input ended inside a token
}

func (err *LexError) Error() string {
	if err.Msg != "" {
		return fmt.Sprintf("%v: %v", err.Pos, err.Msg)
	}
	return fmt.Sprintf("%v: unexpected character %v", err.Pos, runeio.Name(err.Char))
}

// IsIncomplete reports whether err is a LexError caused by input ending
// inside a token, so that more input could complete it.
func IsIncomplete(err error) bool {
	var lexErr *LexError
	return errors.As(err, &lexErr) && lexErr.AtEOF
}

// Tokenize converts src into its token sequence.
//
// Rules are tried in a fixed priority order at every position and the
// first one that matches wins, so words merely starting with true, false,
// and, or, xor are split: "order" lexes as OP(or) ID(der).
func Tokenize(src string) ([]token.Token, error) {
	lx := lexer{src: src, line: 1, col: 1}
	var toks []token.Token
	for {
		tok, ok, err := lx.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

// Lexer supports only ASCII source outside of string literals, which may
// carry any valid UTF-8. Bytes that are not valid UTF-8 are an error
// anywhere, so every string value holds whole code points.
type lexer struct {
	src  string
	pos  int // byte offset of the next unread character
	line int
	col  int
}

var operators = []string{":=", "==", "!=", "<=", ">=", "+", "-", "*", "/", "=", "<", ">", "or", "and", "xor"}

var punctuation = map[byte]token.Kind{
	'(': token.LPAREN,
	')': token.RPAREN,
	'{': token.LBRACE,
	'}': token.RBRACE,
	'[': token.LBRACKET,
	']': token.RBRACKET,
	',': token.COMMA,
	':': token.COLON,
	'.': token.DOT,
}

func (lx *lexer) next() (tok token.Token, ok bool, err error) {
	lx.skipSpace()
	if lx.pos >= len(lx.src) {
		return tok, false, nil
	}

	tok.Pos = token.Pos{Line: lx.line, Col: lx.col}
	rest := lx.src[lx.pos:]
	ch := rest[0]

	switch {
	case isDigit(ch):
		return lx.number(tok)

	case ch == '"':
		end := strings.IndexByte(rest[1:], '"')
		if end < 0 {
			return tok, false, &LexError{Pos: tok.Pos, Char: '"', Msg: "unterminated string literal", AtEOF: true}
		}
		text := rest[:end+2]
		if i := invalidUTF8(text); i >= 0 {
			lx.advance(i)
			return tok, false, lx.badByte(text[i])
		}
		tok.Kind, tok.Value, tok.Text = token.STRING, text[1:len(text)-1], text
		lx.advance(len(text))
		return tok, true, nil

	case strings.HasPrefix(rest, "true"), strings.HasPrefix(rest, "false"):
		tok.Kind = token.BOOL
		tok.Value = rest[0] == 't'
		tok.Text = "false"
		if tok.Value.(bool) {
			tok.Text = "true"
		}
		lx.advance(len(tok.Text))
		return tok, true, nil

	case strings.HasPrefix(rest, "++"), strings.HasPrefix(rest, "--"):
		return lx.emit(tok, token.SOP, rest[:2]), true, nil
	}

	for _, op := range operators {
		if strings.HasPrefix(rest, op) {
			return lx.emit(tok, token.OP, op), true, nil
		}
	}

	if isLetter(ch) {
		n := 1
		for n < len(rest) && (isLetter(rest[n]) || isDigit(rest[n])) {
			n++
		}
		word := rest[:n]
		return lx.emit(tok, token.LookupIdent(word), word), true, nil
	}

	if kind, isPunct := punctuation[ch]; isPunct {
		return lx.emit(tok, kind, rest[:1]), true, nil
	}

	r, size := utf8.DecodeRuneInString(rest)
	if r == utf8.RuneError && size == 1 {
		return tok, false, lx.badByte(ch)
	}
	return tok, false, &LexError{Pos: tok.Pos, Char: r}
}

// invalidUTF8 returns the offset of the first byte of s that is not part
// of a valid UTF-8 encoding, or -1.
func invalidUTF8(s string) int {
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return i
			}
		}
	}
	return -1
}

func (lx *lexer) badByte(b byte) *LexError {
	return &LexError{
		Pos:  token.Pos{Line: lx.line, Col: lx.col},
		Char: utf8.RuneError,
		Msg:  fmt.Sprintf("invalid UTF-8 byte 0x%02x", b),
	}
}

func (lx *lexer) number(tok token.Token) (token.Token, bool, error) {
	rest := lx.src[lx.pos:]
	n := 0
	for n < len(rest) && isDigit(rest[n]) {
		n++
	}
	isFloat := n < len(rest) && rest[n] == '.'
	if isFloat {
		n++
		for n < len(rest) && isDigit(rest[n]) {
			n++
		}
	}

	tok.Kind, tok.Text = token.NUMBER, rest[:n]
	if isFloat {
		f, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return tok, false, &LexError{Pos: tok.Pos, Char: rune(rest[0]), Msg: fmt.Sprintf("invalid number %q", tok.Text)}
		}
		tok.Value = f
	} else {
		i, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return tok, false, &LexError{Pos: tok.Pos, Char: rune(rest[0]), Msg: fmt.Sprintf("integer %v out of range", tok.Text)}
		}
		tok.Value = i
	}
	lx.advance(n)
	return tok, true, nil
}

func (lx *lexer) emit(tok token.Token, kind token.Kind, text string) token.Token {
	tok.Kind, tok.Value, tok.Text = kind, text, text
	lx.advance(len(text))
	return tok
}

// advance moves past n bytes, keeping line and column current; strings are
// the only tokens that may span lines.
func (lx *lexer) advance(n int) {
	for _, r := range lx.src[lx.pos : lx.pos+n] {
		if r == '\n' {
			lx.line++
			lx.col = 1
		} else {
			lx.col++
		}
	}
	lx.pos += n
}

func (lx *lexer) skipSpace() {
	for lx.pos < len(lx.src) {
		switch lx.src[lx.pos] {
		case ' ', '\t', '\n':
			lx.advance(1)
		default:
			return
		}
	}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
