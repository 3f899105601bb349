// Package tokens turns source text into an ordered sequence of integer
// token-kind codes using the Go grammar.
//
// Comments, whitespace and the semicolons the scanner inserts at line ends
// are not tokens; an explicit ';' is. Any scan error fails the whole file.
package tokens

import (
	"go/scanner"
	"go/token"

	"github.com/pkg/errors"
)

// Sequence is the token-kind code of every token of a file, in source order.
type Sequence []int

const (
	// MinCode is the lowest token-kind code the grammar produces.
	MinCode = int(token.ILLEGAL)

	// MaxCode is the highest token-kind code the grammar produces.
	MaxCode = int(token.TILDE)
)

// ErrParse is returned when the source cannot be tokenized.
var ErrParse = errors.New("source cannot be tokenized")

// Extract tokenizes src. The name is only used in error positions.
func Extract(name string, src []byte) (Sequence, error) {
	var errs scanner.ErrorList
	var s scanner.Scanner

	fset := token.NewFileSet()
	file := fset.AddFile(name, fset.Base(), len(src))
	s.Init(file, src, errs.Add, 0)

	var seq = Sequence{}
	for {
		_, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		if tok == token.SEMICOLON && lit == "\n" {
			continue
		}
		seq = append(seq, int(tok))
	}
	if errs.Len() > 0 {
		errs.Sort()
		return nil, errors.Wrapf(ErrParse, "%s: %d errors, first: %s", name, errs.Len(), errs[0])
	}
	return seq, nil
}

// Kind returns the grammar name of a token-kind code.
func Kind(code int) string {
	return token.Token(code).String()
}
