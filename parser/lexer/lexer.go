package lexer

import (
	"io"

	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/wlp4c/ast"
)

// Lexer reads a pre-scanned token stream, one "KIND lexeme" pair per line.
type Lexer struct {
	*LineReader
}

func NewLexer(reader parseutil.BufferedByteLocationReader) *Lexer {
	return &Lexer{
		LineReader: NewLineReader(reader),
	}
}

// Next returns the next token, or io.EOF once the stream is exhausted.
func (lexer *Lexer) Next() (*ast.Leaf, error) {
	fields, pos, err := lexer.LineReader.Next()
	if err != nil {
		return nil, err
	}

	if len(fields) != 2 {
		return nil, parseutil.NewLocationError(
			pos.Loc(),
			"expected \"KIND lexeme\", found %d fields",
			len(fields))
	}

	return ast.NewLeaf(pos, fields[0], fields[1]), nil
}

// ReadAll returns the entire token stream, wrapped in BOF/EOF markers.  The
// markers are only added when the stream does not already carry them.
func (lexer *Lexer) ReadAll() ([]*ast.Leaf, error) {
	tokens := []*ast.Leaf{}
	for {
		token, err := lexer.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}

	return WrapMarkers(tokens, lexer.CurrentLocation()), nil
}

// WrapMarkers adds missing BOF/EOF marker tokens.  Missing EOF markers are
// located at end.
func WrapMarkers(tokens []*ast.Leaf, end parseutil.Location) []*ast.Leaf {
	if len(tokens) == 0 || tokens[0].Kind != ast.BOF {
		loc := end
		if len(tokens) > 0 {
			loc = tokens[0].Loc()
		}

		bof := ast.NewLeaf(parseutil.NewStartEndPos(loc, loc), ast.BOF, ast.BOF)
		tokens = append([]*ast.Leaf{bof}, tokens...)
	}

	if tokens[len(tokens)-1].Kind != ast.EOF {
		eof := ast.NewLeaf(parseutil.NewStartEndPos(end, end), ast.EOF, ast.EOF)
		tokens = append(tokens, eof)
	}

	return tokens
}
