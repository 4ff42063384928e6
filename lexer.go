package main

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenKind classifies a lexeme.
type TokenKind uint8

// Token kinds.
const (
	NumberToken TokenKind = iota + 1
	SymbolToken
)

func (kind TokenKind) String() string {
	switch kind {
	case NumberToken:
		return "NUMBER"
	case SymbolToken:
		return "SYMBOL"
	default:
		return fmt.Sprintf("TokenKind(%d)", uint8(kind))
	}
}

// Pos locates a lexeme within a named source; Col counts bytes from 1.
type Pos struct {
	Name string
	Line int
	Col  int
}

func (pos Pos) String() string { return fmt.Sprintf("%v:%v:%v", pos.Name, pos.Line, pos.Col) }

// Token is one classified lexeme.
type Token struct {
	Kind TokenKind
	Text string
	Pos  Pos
}

func (tok Token) String() string { return fmt.Sprintf("%v %v %q", tok.Pos, tok.Kind, tok.Text) }

// Object materializes the token; numeric parsing is left to the consumer.
func (tok Token) Object() Object {
	if tok.Kind == NumberToken {
		return Number(tok.Text)
	}
	return Symbol(tok.Text)
}

// Lexer produces the tokens of one source string, front to back. It cannot be
// rewound; lex the text again from a new Lexer instead.
type Lexer struct {
	name string
	src  string

	off       int
	line      int
	lineStart int
}

// NewLexer returns a lexer over src; name is only used in positions.
func NewLexer(name, src string) *Lexer {
	return &Lexer{name: name, src: src, line: 1}
}

// Lex collects every token of src.
func Lex(name, src string) ([]Token, error) {
	var toks []Token
	lex := NewLexer(name, src)
	for {
		tok, err := lex.Next()
		if err == io.EOF {
			return toks, nil
		} else if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
	}
}

// Next returns the next token, io.EOF once the source is exhausted, or a
// *TokenError wrapping ErrLexical at the first unmatched fragment.
func (lex *Lexer) Next() (Token, error) {
	for lex.off < len(lex.src) {
		switch c := lex.src[lex.off]; c {
		case ' ', '\t', '\r':
			lex.off++

		case '\n':
			lex.off++
			lex.newline()

		case '#', '\\':
			if i := strings.IndexByte(lex.src[lex.off:], '\n'); i >= 0 {
				lex.off += i
			} else {
				lex.off = len(lex.src)
			}

		case '(':
			i := strings.IndexByte(lex.src[lex.off:], ')')
			if i < 0 {
				return Token{}, lex.errorAt(lex.off, len(lex.src))
			}
			end := lex.off + i + 1
			for j := lex.off; j < end; j++ {
				if lex.src[j] == '\n' {
					lex.off = j + 1
					lex.newline()
				}
			}
			lex.off = end

		default:
			if n := scanNumber(lex.src[lex.off:]); n > 0 {
				return lex.emit(NumberToken, n), nil
			}
			if n := scanSymbol(lex.src[lex.off:]); n > 0 {
				return lex.emit(SymbolToken, n), nil
			}
			_, n := utf8.DecodeRuneInString(lex.src[lex.off:])
			return Token{}, lex.errorAt(lex.off, lex.off+n)
		}
	}
	return Token{}, io.EOF
}

func (lex *Lexer) newline() {
	lex.line++
	lex.lineStart = lex.off
}

func (lex *Lexer) pos(off int) Pos {
	return Pos{Name: lex.name, Line: lex.line, Col: off - lex.lineStart + 1}
}

func (lex *Lexer) emit(kind TokenKind, n int) Token {
	tok := Token{Kind: kind, Text: lex.src[lex.off : lex.off+n], Pos: lex.pos(lex.off)}
	lex.off += n
	return tok
}

// errorAt reports the fragment [start, end) clipped to its line, and leaves
// the lexer at the end of the source.
func (lex *Lexer) errorAt(start, end int) error {
	frag := lex.src[start:end]
	if i := strings.IndexByte(frag, '\n'); i > 0 {
		frag = frag[:i]
	}
	pos := lex.pos(start)
	lex.off = len(lex.src)
	return &TokenError{Token: Token{Text: frag, Pos: pos}, Err: ErrLexical}
}

// scanNumber matches [+-]?[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)? at the start of
// s, returning the match length or 0.
func scanNumber(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	n := scanDigits(s[i:])
	if n == 0 {
		return 0
	}
	i += n

	if i < len(s) && s[i] == '.' {
		if n := scanDigits(s[i+1:]); n > 0 {
			i += 1 + n
		}
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if n := scanDigits(s[j:]); n > 0 {
			i = j + n
		}
	}

	return i
}

func scanDigits(s string) int {
	i := 0
	for i < len(s) && '0' <= s[i] && s[i] <= '9' {
		i++
	}
	return i
}

// scanSymbol matches the longest run of symbol runes at the start of s.
func scanSymbol(s string) int {
	i := 0
	for i < len(s) {
		r, n := utf8.DecodeRuneInString(s[i:])
		if !isSymbolRune(r) {
			break
		}
		i += n
	}
	return i
}

func isSymbolRune(r rune) bool {
	switch {
	case '0' <= r && r <= '9', r == '_':
		return true
	case strings.ContainsRune("?:;.+-", r):
		return true
	case r == utf8.RuneError:
		return false
	default:
		return unicode.IsLetter(r)
	}
}
