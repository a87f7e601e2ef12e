package lr

import (
	_ "embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/wlp4c/ast"
	"github.com/pattyshack/wlp4c/parser/lexer"
)

const (
	defaultGrammarFileName = "wlp4.cfg"
)

var (
	//go:embed wlp4.cfg
	defaultGrammar []byte

	defaultTableOnce sync.Once
	defaultTable     *Table
	defaultTableErr  error
)

// ParseGrammar reads one production per line ("lhs rhs..." or
// "lhs .EMPTY").  Productions are numbered in order.
func ParseGrammar(fileName string, content []byte) ([]*ast.Production, error) {
	reader := lexer.NewLineReader(
		parseutil.NewBufferedByteLocationReaderFromSlice(fileName, content))

	productions := []*ast.Production{}
	for {
		fields, pos, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		production, ok := ast.ParseProduction(
			len(productions),
			strings.Join(fields, " "))
		if !ok {
			return nil, parseutil.NewLocationError(
				pos.Loc(),
				"invalid production: %s",
				strings.Join(fields, " "))
		}
		productions = append(productions, production)
	}

	return productions, nil
}

// Default returns the table for the bundled language grammar.  The table is
// built once and shared; it must not be modified.
func Default() (*Table, error) {
	defaultTableOnce.Do(func() {
		productions, err := ParseGrammar(defaultGrammarFileName, defaultGrammar)
		if err != nil {
			defaultTableErr = fmt.Errorf("bundled grammar: %w", err)
			return
		}

		defaultTable, err = Build(productions)
		if err != nil {
			defaultTableErr = fmt.Errorf("bundled grammar: %w", err)
		}
	})

	return defaultTable, defaultTableErr
}
