package token

import "fmt"

// Kind classifies a Token.
type Kind int

const (
	ILLEGAL Kind = iota

	// literals and names
	NUMBER
	STRING
	BOOL
	ID
	TYPETRANS // int str bool array

	// keywords
	keywordsBegin
	PRINT
	IF
	ELSE
	NOT
	INPUT
	TYPE
	RANDOM
	WHILE
	FOR
	FUNC
	RETURN
	ADD
	LEN
	keywordsEnd

	OP  // := == != <= >= + - * / = < > and or xor
	SOP // ++ --

	// punctuation
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	COMMA
	COLON
	DOT
)

var kindNames = [...]string{
	ILLEGAL:   "ILLEGAL",
	NUMBER:    "NUMBER",
	STRING:    "STRING",
	BOOL:      "BOOL",
	ID:        "ID",
	TYPETRANS: "TYPETRANS",
	PRINT:     "PRINT",
	IF:        "IF",
	ELSE:      "ELSE",
	NOT:       "NOT",
	INPUT:     "INPUT",
	TYPE:      "TYPE",
	RANDOM:    "RANDOM",
	WHILE:     "WHILE",
	FOR:       "FOR",
	FUNC:      "FUNC",
	RETURN:    "RETURN",
	ADD:       "ADD",
	LEN:       "LEN",
	OP:        "OP",
	SOP:       "SOP",
	LPAREN:    "LPAREN",
	RPAREN:    "RPAREN",
	LBRACE:    "LBRACE",
	RBRACE:    "RBRACE",
	LBRACKET:  "LBRACKET",
	RBRACKET:  "RBRACKET",
	COMMA:     "COMMA",
	COLON:     "COLON",
	DOT:       "DOT",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword reports whether k is one of the reserved word kinds.
func (k Kind) IsKeyword() bool { return keywordsBegin < k && k < keywordsEnd }

var keywords = map[string]Kind{
	"print":  PRINT,
	"if":     IF,
	"else":   ELSE,
	"not":    NOT,
	"input":  INPUT,
	"type":   TYPE,
	"random": RANDOM,
	"while":  WHILE,
	"for":    FOR,
	"func":   FUNC,
	"return": RETURN,
	"add":    ADD,
	"len":    LEN,
}

// TypeNames are the words recognized as TYPETRANS, usable both as casts
// like int(x) and as parameter annotations like func f(n:int).
var TypeNames = map[string]bool{
	"int":   true,
	"str":   true,
	"bool":  true,
	"array": true,
}

// LookupIdent classifies an identifier-shaped word: a reserved word yields
// its keyword kind, a type name yields TYPETRANS, anything else is an ID.
func LookupIdent(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	if TypeNames[ident] {
		return TYPETRANS
	}
	return ID
}

// Pos is a 1-based line and column within source text.
type Pos struct {
	Line int
	Col  int
}

func (pos Pos) String() string {
	if pos.Line == 0 {
		return "-"
	}
	return fmt.Sprintf("%v:%v", pos.Line, pos.Col)
}

// Token is a classified lexical unit.
//
// Value holds the literal payload: int64 or float64 for NUMBER, the
// unquoted text for STRING, a bool for BOOL, and the raw lexeme (as a
// string) for every other kind.
type Token struct {
	Kind  Kind
	Value interface{}
	Text  string // raw lexeme as it appeared in source
	Pos   Pos
}

func (tok Token) String() string {
	switch tok.Kind {
	case NUMBER, BOOL:
		return fmt.Sprintf("%v(%v)", tok.Kind, tok.Value)
	case STRING:
		return fmt.Sprintf("%v(%q)", tok.Kind, tok.Value)
	}
	if tok.Kind.IsKeyword() {
		return tok.Kind.String()
	}
	return fmt.Sprintf("%v(%v)", tok.Kind, tok.Text)
}

// Is reports whether tok has the given kind and, for OP, SOP and ID
// tokens, the given lexeme.
func (tok Token) Is(kind Kind, text string) bool {
	return tok.Kind == kind && tok.Text == text
}
