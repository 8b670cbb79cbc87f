package lexer

import "github.com/smog-lang/smog/lang/token"

// TokenAndValue pairs a scanned token kind with its decoded value.
type TokenAndValue struct {
	Token token.Token
	Value token.Value
}

// ScanAll tokenizes src to completion (including a trailing EOF) and returns
// every token together with the accumulated errors (nil if every byte could
// be classified). Comment tokens are included; callers that don't want them
// (e.g. the parser) filter them out while advancing.
func ScanAll(filename string, src []byte) (*token.File, []TokenAndValue, error) {
	fset := token.NewFileSet()
	f := fset.AddFile(filename, -1, len(src))

	var errs token.ErrorList
	l := New(f, src, errs.Add)

	var toks []TokenAndValue
	for {
		tok, val := l.NextToken()
		toks = append(toks, TokenAndValue{Token: tok, Value: val})
		if tok == token.EOF {
			break
		}
	}
	errs.Sort()
	return f, toks, errs.Err()
}
