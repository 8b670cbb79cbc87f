// Package lexer implements the single-pass, one-character-lookahead lexer
// that turns smog source text into a token stream (spec.md §4.1).
package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/smog-lang/smog/lang/token"
)

// Lexer tokenizes a single source file for the parser to consume. It never
// raises: unrecognized bytes are reported as ILLEGAL tokens and scanning
// continues, per spec.md §8 property 1 (lexer totality).
type Lexer struct {
	file *token.File
	src  []byte
	err  func(token.Position, string)

	ch           rune // current character, -1 at end of input
	position     int  // byte offset of ch
	readPosition int  // byte offset right after ch
}

// New creates a Lexer over src, registering its line table in file. errFn, if
// non-nil, is called for every ILLEGAL token or other lexing diagnostic.
func New(file *token.File, src []byte, errFn func(token.Position, string)) *Lexer {
	l := &Lexer{file: file, src: src, err: errFn}
	l.advance()
	return l
}

func (l *Lexer) advance() {
	if l.readPosition >= len(l.src) {
		l.position = len(l.src)
		if l.ch == '\n' {
			l.file.AddLine(l.position)
		}
		l.ch = -1
		return
	}

	l.position = l.readPosition
	if l.ch == '\n' {
		l.file.AddLine(l.position)
	}

	r, w := rune(l.src[l.readPosition]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(l.src[l.readPosition:])
		if r == utf8.RuneError && w == 1 {
			l.errorf("illegal UTF-8 encoding")
		}
	}
	l.readPosition += w
	l.ch = r
}

// peekByte returns the byte following the current character without
// advancing, or 0 at end of input.
func (l *Lexer) peekByte() byte {
	if l.readPosition < len(l.src) {
		return l.src[l.readPosition]
	}
	return 0
}

func (l *Lexer) errorf(format string, args ...any) {
	if l.err != nil {
		l.err(l.file.Position(l.file.Pos(l.position)), fmt.Sprintf(format, args...))
	}
}

// NextToken scans and returns the next token and its value.
func (l *Lexer) NextToken() (token.Token, token.Value) {
	l.skipWhitespace()

	pos := l.file.Pos(l.position)

	switch {
	case l.ch == -1:
		return token.EOF, token.Value{Pos: pos}

	case isLetter(l.ch):
		lit := l.readIdent()
		tok := token.LookupIdent(lit)
		return tok, token.Value{Raw: lit, Pos: pos, Str: lit}

	case isDigit(l.ch):
		lit := l.readNumber()
		v, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			l.errorf("invalid integer literal %q", lit)
		}
		return token.INT, token.Value{Raw: lit, Pos: pos, Int: v}

	case l.ch == '"' || l.ch == '\'':
		quote := l.ch
		raw, decoded := l.readString(quote)
		return token.STR, token.Value{Raw: raw, Pos: pos, Str: decoded}

	case l.ch == '/' && l.peekByte() == '/':
		l.advance() // first '/'
		l.advance() // second '/'
		text := l.readComment()
		return token.COMMENT, token.Value{Raw: text, Pos: pos, Str: text}
	}

	// try each operator, longest literal first, using lookahead of up to
	// len(op)-1 bytes (spec.md §4.1 matching algorithm).
	for _, op := range token.Operators {
		if l.matches(op.Literal) {
			for range op.Literal {
				l.advance()
			}
			return op.Token, token.Value{Raw: op.Literal, Pos: pos}
		}
	}

	bad := l.ch
	l.advance()
	l.errorf("illegal character %q", bad)
	return token.ILLEGAL, token.Value{Raw: string(bad), Pos: pos}
}

// matches reports whether the upcoming bytes starting at the current
// character equal lit, without consuming anything.
func (l *Lexer) matches(lit string) bool {
	if len(lit) == 0 {
		return false
	}
	if rune(lit[0]) != l.ch {
		return false
	}
	need := len(lit) - 1
	if l.readPosition+need > len(l.src) {
		return false
	}
	return string(l.src[l.readPosition:l.readPosition+need]) == lit[1:]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.advance()
	}
}

func (l *Lexer) readIdent() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.advance()
	}
	return string(l.src[start:l.position])
}

func (l *Lexer) readNumber() string {
	start := l.position
	for isDigit(l.ch) {
		l.advance()
	}
	return string(l.src[start:l.position])
}

// readComment consumes a "//"-introduced comment up to (not including) the
// terminating newline or end of input.
func (l *Lexer) readComment() string {
	start := l.position
	for l.ch != '\n' && l.ch != -1 {
		l.advance()
	}
	return string(l.src[start:l.position])
}

// readString consumes a quoted string literal balanced by the same quote
// character. It is not terminated by the lexer raising an error; an
// unterminated string simply runs to end of input, per spec.md §4.1.
// Backslash escapes \n \t \r \\ \" \' are interpreted (a supplement over
// pure pass-through, grounded on the original boalang lexer, see
// SPEC_FULL.md §7); any other backslash sequence passes through unchanged.
func (l *Lexer) readString(quote rune) (raw, decoded string) {
	startRaw := l.position
	l.advance() // consume opening quote
	var sb strings.Builder
	for l.ch != quote && l.ch != -1 {
		if l.ch == '\\' {
			l.advance()
			switch l.ch {
			case 'n':
				sb.WriteByte('\n')
				l.advance()
			case 't':
				sb.WriteByte('\t')
				l.advance()
			case 'r':
				sb.WriteByte('\r')
				l.advance()
			case '\\', '"', '\'':
				sb.WriteRune(l.ch)
				l.advance()
			case -1:
				// dangling backslash at EOF: pass it through literally
				sb.WriteByte('\\')
			default:
				sb.WriteByte('\\')
				sb.WriteRune(l.ch)
				l.advance()
			}
			continue
		}
		sb.WriteRune(l.ch)
		l.advance()
	}
	if l.ch == quote {
		l.advance() // consume closing quote
	}
	raw = string(l.src[startRaw:l.position])
	return raw, sb.String()
}

func isLetter(r rune) bool {
	return r == '_' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' ||
		(r >= utf8.RuneSelf && unicode.IsLetter(r))
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
