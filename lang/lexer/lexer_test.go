package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smog-lang/smog/lang/token"
)

func TestNextTokenBasic(t *testing.T) {
	src := `let five = 5;
let add = fn(x, y) {
  x + y;
};
let result = add(five, ten);
!-/*5;
5 < 10 > 5;

if (5 < 10) {
	return true;
} elif (1) {
	return false;
} else {
	return null;
}

10 == 10;
10 != 9;
"foobar"
'foo bar'
[1, 2];
{"foo": "bar"}
// a comment
this class and or not in notin while for break continue
`

	tests := []struct {
		tok token.Token
		lit string
	}{
		{token.LET, "let"}, {token.IDENT, "five"}, {token.EQ, "="}, {token.INT, "5"}, {token.SEMI, ";"},
		{token.LET, "let"}, {token.IDENT, "add"}, {token.EQ, "="}, {token.FN, "fn"},
		{token.LPAREN, "("}, {token.IDENT, "x"}, {token.COMMA, ","}, {token.IDENT, "y"}, {token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.IDENT, "x"}, {token.PLUS, "+"}, {token.IDENT, "y"}, {token.SEMI, ";"},
		{token.RBRACE, "}"}, {token.SEMI, ";"},
		{token.LET, "let"}, {token.IDENT, "result"}, {token.EQ, "="}, {token.IDENT, "add"},
		{token.LPAREN, "("}, {token.IDENT, "five"}, {token.COMMA, ","}, {token.IDENT, "ten"}, {token.RPAREN, ")"}, {token.SEMI, ";"},
		{token.BANG, "!"}, {token.MINUS, "-"}, {token.SLASH, "/"}, {token.STAR, "*"}, {token.INT, "5"}, {token.SEMI, ";"},
		{token.INT, "5"}, {token.LT, "<"}, {token.INT, "10"}, {token.GT, ">"}, {token.INT, "5"}, {token.SEMI, ";"},
		{token.IF, "if"}, {token.LPAREN, "("}, {token.INT, "5"}, {token.LT, "<"}, {token.INT, "10"}, {token.RPAREN, ")"},
		{token.LBRACE, "{"}, {token.RETURN, "return"}, {token.TRUE, "true"}, {token.SEMI, ";"}, {token.RBRACE, "}"},
		{token.ELIF, "elif"}, {token.LPAREN, "("}, {token.INT, "1"}, {token.RPAREN, ")"},
		{token.LBRACE, "{"}, {token.RETURN, "return"}, {token.FALSE, "false"}, {token.SEMI, ";"}, {token.RBRACE, "}"},
		{token.ELSE, "else"}, {token.LBRACE, "{"}, {token.RETURN, "return"}, {token.NULL, "null"}, {token.SEMI, ";"}, {token.RBRACE, "}"},
		{token.INT, "10"}, {token.EQEQ, "=="}, {token.INT, "10"}, {token.SEMI, ";"},
		{token.INT, "10"}, {token.NEQ, "!="}, {token.INT, "9"}, {token.SEMI, ";"},
		{token.STR, "foobar"},
		{token.STR, "foo bar"},
		{token.LBRACK, "["}, {token.INT, "1"}, {token.COMMA, ","}, {token.INT, "2"}, {token.RBRACK, "]"}, {token.SEMI, ";"},
		{token.LBRACE, "{"}, {token.STR, "foo"}, {token.COLON, ":"}, {token.STR, "bar"}, {token.RBRACE, "}"},
		{token.COMMENT, " a comment"},
		{token.THIS, "this"}, {token.CLASS, "class"}, {token.AND, "and"}, {token.OR, "or"}, {token.NOT, "not"},
		{token.IN, "in"}, {token.NOTIN, "notin"}, {token.WHILE, "while"}, {token.FOR, "for"},
		{token.BREAK, "break"}, {token.CONTINUE, "continue"},
		{token.EOF, ""},
	}

	fset := token.NewFileSet()
	f := fset.AddFile("test", -1, len(src))
	var errs token.ErrorList
	l := New(f, []byte(src), errs.Add)

	for i, tt := range tests {
		tok, val := l.NextToken()
		require.Equalf(t, tt.tok, tok, "test[%d] - tokentype wrong, literal %q", i, val.Raw)
		if tt.tok == token.STR || tt.tok == token.COMMENT {
			require.Equal(t, tt.lit, val.Str, "test[%d] - value wrong", i)
		}
	}
	require.NoError(t, errs.Err())
}

func TestNextTokenIllegal(t *testing.T) {
	_, toks, err := ScanAll("test", []byte("let a = @;"))
	require.Error(t, err)
	var sawIllegal bool
	for _, tv := range toks {
		if tv.Token == token.ILLEGAL {
			sawIllegal = true
		}
	}
	require.True(t, sawIllegal)
	// lexer totality: it always reaches EOF
	require.Equal(t, token.EOF, toks[len(toks)-1].Token)
}

func TestScanAllConsumesEveryByte(t *testing.T) {
	srcs := []string{
		"",
		"   \n\t  ",
		"let x = 1",
		"\"unterminated",
		"'unterminated",
		"// just a comment",
	}
	for _, src := range srcs {
		_, toks, _ := ScanAll("test", []byte(src))
		require.NotEmpty(t, toks)
		require.Equal(t, token.EOF, toks[len(toks)-1].Token)
	}
}

func TestOperatorLongestMatchFirst(t *testing.T) {
	_, toks, err := ScanAll("test", []byte("= == != <= >="))
	require.NoError(t, err)
	want := []token.Token{token.EQ, token.EQEQ, token.NEQ, token.LE, token.GE, token.EOF}
	for i, w := range want {
		require.Equal(t, w, toks[i].Token)
	}
}

func TestStringEscapes(t *testing.T) {
	_, toks, err := ScanAll("test", []byte(`"a\nb\tc\\d\"e"`))
	require.NoError(t, err)
	require.Equal(t, "a\nb\tc\\d\"e", toks[0].Value.Str)
}
